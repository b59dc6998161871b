package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

// Comments returns the comment repository view of db.
func (db *DB) Comments() repository.CommentRepository { return commentRepo{db} }

type commentRepo struct{ db *DB }

var _ repository.CommentRepository = commentRepo{}

func (r commentRepo) Create(ctx context.Context, c *model.Comment) error {
	pq, pa, err := parentColumns(c.Parent)
	if err != nil {
		return err
	}
	c.CreatedAt = time.Now().UTC()
	err = r.db.conn.QueryRowContext(ctx,
		`INSERT INTO comments (body, user_id, user_name, created_at, parent_question_id, parent_answer_id)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		c.Body, c.UserID, c.UserName, c.CreatedAt, pq, pa,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting comment on %s: %w", c.Parent, err)
	}
	return nil
}

func (r commentRepo) ListByParent(ctx context.Context, parent model.ParentRef) ([]model.Comment, error) {
	var column string
	switch parent.Kind {
	case model.ParentQuestion:
		column = "parent_question_id"
	case model.ParentAnswer:
		column = "parent_answer_id"
	default:
		return nil, fmt.Errorf("sqldb: listing comments: no parent given")
	}

	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT id, body, user_id, user_name, created_at, parent_question_id, parent_answer_id
		 FROM comments
		 WHERE `+column+` = $1
		 ORDER BY created_at ASC, id ASC`, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing comments on %s: %w", parent, err)
	}
	defer rows.Close()

	out := []model.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating comments: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's comments newest first. ParentTitle is the title
// of the question the comment hangs off, directly or through an answer.
func (r commentRepo) ListByUser(ctx context.Context, userName string) ([]model.UserComment, error) {
	rows, err := r.db.conn.QueryContext(ctx,
		`SELECT c.id, c.body, c.user_id, c.user_name, c.created_at,
		        c.parent_question_id, c.parent_answer_id,
		        COALESCE(qd.title, qa.title, '')
		 FROM comments c
		 LEFT JOIN questions qd ON qd.id = c.parent_question_id
		 LEFT JOIN answers a ON a.id = c.parent_answer_id
		 LEFT JOIN questions qa ON qa.id = a.parent_question_id
		 WHERE c.user_name = $1
		 ORDER BY c.created_at DESC, c.id DESC`, userName)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing comments by %q: %w", userName, err)
	}
	defer rows.Close()

	out := []model.UserComment{}
	for rows.Next() {
		var (
			uc     model.UserComment
			pq, pa sql.NullInt64
		)
		if err := rows.Scan(&uc.ID, &uc.Body, &uc.UserID, &uc.UserName, &uc.CreatedAt,
			&pq, &pa, &uc.ParentTitle); err != nil {
			return nil, fmt.Errorf("sqldb: scanning comment: %w", err)
		}
		if uc.Parent, err = parentFromColumns(pq, pa); err != nil {
			return nil, err
		}
		out = append(out, uc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating comments: %w", err)
	}
	return out, nil
}

func scanComment(rows *sql.Rows) (model.Comment, error) {
	var (
		c      model.Comment
		pq, pa sql.NullInt64
	)
	if err := rows.Scan(&c.ID, &c.Body, &c.UserID, &c.UserName, &c.CreatedAt, &pq, &pa); err != nil {
		return model.Comment{}, fmt.Errorf("sqldb: scanning comment: %w", err)
	}
	parent, err := parentFromColumns(pq, pa)
	if err != nil {
		return model.Comment{}, err
	}
	c.Parent = parent
	return c, nil
}
