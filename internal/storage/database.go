package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite).
	// Every reference-validation and cascade-delete guarantee depends on this pragma.
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
//
// Uniqueness (projects.name, tags.name, the note_tags pair) and referential
// integrity are enforced at the schema level, so concurrent writers are
// arbitrated by SQLite rather than by application-level pre-checks. Cascade
// deletes are declared with ON DELETE CASCADE: removing a project removes its
// journals, which removes their notes and AI jobs; removing a note or a tag
// removes only the association rows between them.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS journals (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			processed_markdown TEXT,
			notes_snapshot TEXT,
			project_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			meta TEXT,
			journal_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (journal_id) REFERENCES journals(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS tags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ai_jobs (
			id TEXT PRIMARY KEY,
			journal_id TEXT NOT NULL,
			model_name TEXT NOT NULL,
			model_version TEXT,
			prompt TEXT NOT NULL,
			response TEXT,
			status TEXT NOT NULL,
			error_message TEXT,
			meta TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (journal_id) REFERENCES journals(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS note_tags (
			note_id TEXT NOT NULL,
			tag_id TEXT NOT NULL,
			PRIMARY KEY (note_id, tag_id),
			FOREIGN KEY (note_id) REFERENCES notes(id) ON DELETE CASCADE,
			FOREIGN KEY (tag_id) REFERENCES tags(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journals_project_id ON journals(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_notes_journal_id ON notes(journal_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ai_jobs_journal_id ON ai_jobs(journal_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ai_jobs_status ON ai_jobs(status);`,
		`CREATE INDEX IF NOT EXISTS idx_note_tags_tag_id ON note_tags(tag_id);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
