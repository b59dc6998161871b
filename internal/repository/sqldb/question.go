package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

// Questions returns the question repository view of db.
func (db *DB) Questions() repository.QuestionRepository { return questionRepo{db} }

type questionRepo struct{ db *DB }

var _ repository.QuestionRepository = questionRepo{}

const questionSummarySelect = `
	SELECT q.id, q.title, q.body, q.created_at, q.score, q.user_id, q.user_name,
	       COUNT(DISTINCT a.id) AS answer_count
	FROM questions q
	LEFT JOIN answers a ON a.parent_question_id = q.id`

func (r questionRepo) Create(ctx context.Context, q *model.Question) error {
	q.CreatedAt = time.Now().UTC()
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO questions (title, body, created_at, score, user_id, user_name)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		q.Title, q.Body, q.CreatedAt, q.Score, q.UserID, q.UserName,
	).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting question: %w", err)
	}
	return nil
}

func (r questionRepo) GetByID(ctx context.Context, id int64) (*model.Question, error) {
	var q model.Question
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT id, title, body, created_at, score, user_id, user_name
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.Title, &q.Body, &q.CreatedAt, &q.Score, &q.UserID, &q.UserName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("question", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqldb: getting question %d: %w", id, err)
	}
	return &q, nil
}

func (r questionRepo) List(ctx context.Context, userName string) ([]model.QuestionSummary, error) {
	query := questionSummarySelect + ` GROUP BY q.id ORDER BY q.created_at DESC, q.id DESC`
	args := []any{}
	if userName != "" {
		query = questionSummarySelect + ` WHERE q.user_name = $1 GROUP BY q.id ORDER BY q.created_at DESC, q.id DESC`
		args = append(args, userName)
	}

	rows, err := r.db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing questions: %w", err)
	}
	defer rows.Close()

	out := []model.QuestionSummary{}
	for rows.Next() {
		var s model.QuestionSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Body, &s.CreatedAt, &s.Score,
			&s.UserID, &s.UserName, &s.AnswerCount); err != nil {
			return nil, fmt.Errorf("sqldb: scanning question: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating questions: %w", err)
	}
	return out, nil
}

func (r questionRepo) CountAnswers(ctx context.Context, questionID int64) (int, error) {
	var n int
	err := r.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM answers WHERE parent_question_id = $1`, questionID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("sqldb: counting answers for question %d: %w", questionID, err)
	}
	return n, nil
}
