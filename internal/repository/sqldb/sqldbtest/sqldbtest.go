// Package sqldbtest provides fixtures for tests that need a real database.
package sqldbtest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sakif/qa-backend/internal/repository/sqldb"
)

// Forum fixture ids.
const (
	AliceID    int64 = 1
	BobID      int64 = 2
	QuestionID int64 = 10
	AnswerID   int64 = 100
	CommentID  int64 = 1000
)

// New opens a fresh SQLite database in the test's temp dir. A file is used
// rather than ":memory:" because every pooled connection to ":memory:" would
// see its own empty database.
func New(t *testing.T) *sqldb.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qa.db")
	db, err := sqldb.Open(context.Background(), sqldb.SQLite, path, sqldb.Options{MaxOpenConns: 4})
	require.NoError(t, err, "opening test database")
	t.Cleanup(func() { db.Close() })
	return db
}

// Exec runs raw statements against db, failing the test on the first error.
func Exec(t *testing.T, db *sqldb.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Pool().ExecContext(context.Background(), query, args...)
	require.NoError(t, err, "exec %s", query)
}

// SeedForum inserts the canonical forum:
//
//	alice (1) asks question 10
//	bob   (2) answers it with answer 100
//	alice comments on answer 100 with comment 1000
func SeedForum(t *testing.T, db *sqldb.DB) {
	t.Helper()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	Exec(t, db, `INSERT INTO users (id, name) VALUES ($1, 'alice'), ($2, 'bob')`, AliceID, BobID)
	Exec(t, db,
		`INSERT INTO questions (id, title, body, created_at, score, user_id, user_name)
		 VALUES ($1, 'How do transactions work?', 'Asking for a friend.', $2, 0, $3, 'alice')`,
		QuestionID, at, AliceID)
	Exec(t, db,
		`INSERT INTO answers (id, body, created_at, score, user_id, user_name, parent_question_id, accepted)
		 VALUES ($1, 'Begin, do work, commit.', $2, 3, $3, 'bob', $4, $5)`,
		AnswerID, at.Add(time.Minute), BobID, QuestionID, false)
	Exec(t, db,
		`INSERT INTO comments (id, body, user_id, user_name, created_at, parent_question_id, parent_answer_id)
		 VALUES ($1, 'Thanks!', $2, 'alice', $3, NULL, $4)`,
		CommentID, AliceID, at.Add(2*time.Minute), AnswerID)
}

// Count returns the number of rows in table matching where (which may be empty).
func Count(t *testing.T, db *sqldb.DB, table, where string, args ...any) int {
	t.Helper()
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	require.NoError(t, db.Pool().QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}
