// Package repository defines the storage contract the rest of the application
// depends on. The sqldb package implements it for SQLite and Postgres.
package repository

import (
	"context"

	"github.com/sakif/qa-backend/internal/model"
)

// Entity names one of the four stored entity sets.
type Entity string

const (
	EntityUser     Entity = "user"
	EntityQuestion Entity = "question"
	EntityAnswer   Entity = "answer"
	EntityComment  Entity = "comment"
)

// Existence is the single read primitive the parent resolver and the
// delete preconditions are built on.
type Existence interface {
	Exists(ctx context.Context, entity Entity, id int64) (bool, error)
}

// TxConn is a transaction running on a connection held exclusively by the
// caller until Release. Statements on it never interleave with other work.
type TxConn interface {
	// Exec runs one statement and reports how many rows it affected.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Commit() error
	Rollback() error
	// Release returns the connection to the pool. It is safe to call more
	// than once and after Commit or Rollback.
	Release() error
}

// TxBeginner hands out dedicated transactional connections.
type TxBeginner interface {
	BeginTx(ctx context.Context) (TxConn, error)
}

type UserRepository interface {
	// Create inserts a user and fills in its ID. A taken name is a Conflict.
	Create(ctx context.Context, user *model.User) error
	GetByName(ctx context.Context, name string) (*model.User, error)
	ListNames(ctx context.Context) ([]string, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	GetByID(ctx context.Context, id int64) (*model.Question, error)
	// List returns questions newest first. A non-empty userName restricts
	// the result to that author.
	List(ctx context.Context, userName string) ([]model.QuestionSummary, error)
	CountAnswers(ctx context.Context, questionID int64) (int, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, a *model.Answer) error
	// ListByQuestion orders accepted answers first, then by score, then oldest first.
	ListByQuestion(ctx context.Context, questionID int64) ([]model.Answer, error)
	ListByUser(ctx context.Context, userName string) ([]model.UserAnswer, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	// ListByParent returns the comments on one question or answer, oldest first.
	ListByParent(ctx context.Context, parent model.ParentRef) ([]model.Comment, error)
	ListByUser(ctx context.Context, userName string) ([]model.UserComment, error)
}
