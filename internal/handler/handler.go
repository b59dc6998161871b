// Package handler holds the HTTP handlers. Each handler parses its request,
// calls one service method and writes the result with writeJSON or
// writeError. Handlers never talk to storage directly.
package handler

import (
	"context"

	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/service"
)

// The interfaces below are what the handlers need from the service layer.
// The *service.XxxService types satisfy them.

type UserService interface {
	Register(ctx context.Context, name string) (*model.User, error)
	Get(ctx context.Context, name string) (*model.User, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) (service.DeleteResult, error)
}

type QuestionService interface {
	Create(ctx context.Context, title, body, userName string) (*model.Question, error)
	Get(ctx context.Context, id int64) (*model.QuestionDetail, error)
	List(ctx context.Context, userName string) ([]model.QuestionSummary, error)
	Delete(ctx context.Context, id int64) (service.DeleteResult, error)
}

type AnswerService interface {
	Create(ctx context.Context, questionID int64, body, userName string) (*model.Answer, error)
	ListByQuestion(ctx context.Context, questionID int64) ([]model.AnswerWithComments, error)
	ListByUser(ctx context.Context, userName string) ([]model.UserAnswer, error)
	Delete(ctx context.Context, id int64) (service.DeleteResult, error)
}

type CommentService interface {
	Create(ctx context.Context, in service.NewComment) (*model.Comment, error)
	ListByParent(ctx context.Context, parentID int64) ([]model.Comment, error)
	ListByUser(ctx context.Context, userName string) ([]model.UserComment, error)
	Delete(ctx context.Context, id int64) (service.DeleteResult, error)
}

var (
	_ UserService     = (*service.UserService)(nil)
	_ QuestionService = (*service.QuestionService)(nil)
	_ AnswerService   = (*service.AnswerService)(nil)
	_ CommentService  = (*service.CommentService)(nil)
)

// DeleteResponse is the body of every successful DELETE.
type DeleteResponse struct {
	Message string `json:"message"`
	service.DeleteResult
}
