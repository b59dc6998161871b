package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

// Answers returns the answer repository view of db.
func (db *DB) Answers() repository.AnswerRepository { return answerRepo{db} }

type answerRepo struct{ db *DB }

var _ repository.AnswerRepository = answerRepo{}

func (r answerRepo) Create(ctx context.Context, a *model.Answer) error {
	a.CreatedAt = time.Now().UTC()
	err := r.db.conn.QueryRowContext(ctx,
		`INSERT INTO answers (body, created_at, score, user_id, user_name, parent_question_id, accepted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		a.Body, a.CreatedAt, a.Score, a.UserID, a.UserName, a.ParentQuestionID, a.Accepted,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting answer on question %d: %w", a.ParentQuestionID, err)
	}
	return nil
}

func (r answerRepo) ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, body, created_at, score, user_id, user_name, parent_question_id, accepted
		 FROM answers
		 WHERE parent_question_id = $1
		 ORDER BY accepted DESC, score DESC, created_at ASC, id ASC`, questionID)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing answers for question %d: %w", questionID, err)
	}
	defer rows.Close()

	out := []model.Answer{}
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.Body, &a.CreatedAt, &a.Score, &a.UserID,
			&a.UserName, &a.ParentQuestionID, &a.Accepted); err != nil {
			return nil, fmt.Errorf("sqldb: scanning answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating answers: %w", err)
	}
	return out, nil
}

func (r answerRepo) ListByUser(ctx context.Context, userName string) ([]model.UserAnswer, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT a.id, a.body, a.created_at, a.score, a.user_id, a.user_name,
		        a.parent_question_id, a.accepted, q.title
		 FROM answers a
		 JOIN questions q ON q.id = a.parent_question_id
		 WHERE a.user_name = $1
		 ORDER BY a.created_at DESC, a.id DESC`, userName)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing answers by %q: %w", userName, err)
	}
	defer rows.Close()

	out := []model.UserAnswer{}
	for rows.Next() {
		var a model.UserAnswer
		if err := rows.Scan(&a.ID, &a.Body, &a.CreatedAt, &a.Score, &a.UserID,
			&a.UserName, &a.ParentQuestionID, &a.Accepted, &a.QuestionTitle); err != nil {
			return nil, fmt.Errorf("sqldb: scanning answer: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating answers: %w", err)
	}
	return out, nil
}
