package sqldb

import (
	"context"
	"fmt"
)

// FOREIGN KEYS WITHOUT ON DELETE:
// None of the references below cascade. Removing a question or a user is done
// by the cascade package, statement by statement, leaf to root. If a step is
// ever run out of order the store rejects it instead of silently orphaning rows.
//
// The CHECK on comments enforces that exactly one parent column is set.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		score      INTEGER NOT NULL DEFAULT 0,
		user_id    INTEGER NOT NULL REFERENCES users(id),
		user_name  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		body               TEXT NOT NULL,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		score              INTEGER NOT NULL DEFAULT 0,
		user_id            INTEGER NOT NULL REFERENCES users(id),
		user_name          TEXT NOT NULL,
		parent_question_id INTEGER NOT NULL REFERENCES questions(id),
		accepted           BOOLEAN NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id                 INTEGER PRIMARY KEY AUTOINCREMENT,
		body               TEXT NOT NULL,
		user_id            INTEGER NOT NULL REFERENCES users(id),
		user_name          TEXT NOT NULL,
		created_at         DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		parent_question_id INTEGER REFERENCES questions(id),
		parent_answer_id   INTEGER REFERENCES answers(id),
		CHECK ((parent_question_id IS NULL) <> (parent_answer_id IS NULL))
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id   BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id         BIGSERIAL PRIMARY KEY,
		title      TEXT NOT NULL,
		body       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		score      INTEGER NOT NULL DEFAULT 0,
		user_id    BIGINT NOT NULL REFERENCES users(id),
		user_name  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answers (
		id                 BIGSERIAL PRIMARY KEY,
		body               TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		score              INTEGER NOT NULL DEFAULT 0,
		user_id            BIGINT NOT NULL REFERENCES users(id),
		user_name          TEXT NOT NULL,
		parent_question_id BIGINT NOT NULL REFERENCES questions(id),
		accepted           BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id                 BIGSERIAL PRIMARY KEY,
		body               TEXT NOT NULL,
		user_id            BIGINT NOT NULL REFERENCES users(id),
		user_name          TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		parent_question_id BIGINT REFERENCES questions(id),
		parent_answer_id   BIGINT REFERENCES answers(id),
		CHECK ((parent_question_id IS NULL) <> (parent_answer_id IS NULL))
	)`,
}

// Indexes cover every column the cascade plans filter on.
var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_questions_user_id ON questions(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_user_name ON questions(user_name)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_user_id ON answers(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_answers_parent_question_id ON answers(parent_question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_user_id ON comments(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_parent_question_id ON comments(parent_question_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_parent_answer_id ON comments(parent_answer_id)`,
}

// Schema returns the bootstrap statements for a dialect, in execution order.
func Schema(dialect Dialect) ([]string, error) {
	var tables []string
	switch dialect {
	case SQLite:
		tables = sqliteSchema
	case Postgres:
		tables = postgresSchema
	default:
		return nil, fmt.Errorf("sqldb: unsupported dialect %q", dialect)
	}
	stmts := make([]string, 0, len(tables)+len(indexes))
	stmts = append(stmts, tables...)
	return append(stmts, indexes...), nil
}

// Bootstrap creates any missing tables and indexes. It is idempotent and is
// not a migration system: existing tables are never altered.
func (db *DB) Bootstrap(ctx context.Context) error {
	stmts, err := Schema(db.dialect)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqldb: applying schema: %w", err)
		}
	}
	return nil
}
