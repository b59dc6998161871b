package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/cascade"
	"github.com/sakif/qa-backend/internal/events"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

type QuestionService struct {
	questions repository.QuestionRepository
	comments  repository.CommentRepository
	users     repository.UserRepository
	exists    repository.Existence
	deleter   Deleter
	events    events.Publisher
	logger    *zap.Logger
}

type QuestionDeps struct {
	Questions repository.QuestionRepository
	Comments  repository.CommentRepository
	Users     repository.UserRepository
	Existence repository.Existence
	Deleter   Deleter
	Events    events.Publisher
	Logger    *zap.Logger
}

func NewQuestionService(d QuestionDeps) *QuestionService {
	return &QuestionService{
		questions: d.Questions,
		comments:  d.Comments,
		users:     d.Users,
		exists:    d.Existence,
		deleter:   d.Deleter,
		events:    d.Events,
		logger:    d.Logger,
	}
}

// Create posts a question as userName. The author must exist.
func (s *QuestionService) Create(ctx context.Context, title, body, userName string) (*model.Question, error) {
	title = strings.TrimSpace(title)
	userName = strings.TrimSpace(userName)
	if title == "" || strings.TrimSpace(body) == "" || userName == "" {
		return nil, apperror.ValidationFailed("", "missing required fields: title, body, or user_name")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}

	author, err := s.users.GetByName(ctx, userName)
	if err != nil {
		return nil, storageErr(s.logger, "looking up author", err)
	}

	q := &model.Question{Title: title, Body: body, UserID: author.ID, UserName: author.Name}
	if err := s.questions.Create(ctx, q); err != nil {
		return nil, storageErr(s.logger, "creating question", err)
	}

	s.logger.Info("question created", zap.Int64("id", q.ID), zap.String("user", q.UserName))
	return q, nil
}

// Get returns the question with its answer count and direct comments.
func (s *QuestionService) Get(ctx context.Context, id int64) (*model.QuestionDetail, error) {
	if err := validID("id", "question", id); err != nil {
		return nil, err
	}

	q, err := s.questions.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(s.logger, "getting question", err)
	}
	count, err := s.questions.CountAnswers(ctx, id)
	if err != nil {
		return nil, storageErr(s.logger, "counting answers", err)
	}
	comments, err := s.comments.ListByParent(ctx, model.QuestionParent(id))
	if err != nil {
		return nil, storageErr(s.logger, "listing question comments", err)
	}

	return &model.QuestionDetail{Question: *q, AnswerCount: count, Comments: comments}, nil
}

// List returns questions newest first, optionally only those by userName.
func (s *QuestionService) List(ctx context.Context, userName string) ([]model.QuestionSummary, error) {
	qs, err := s.questions.List(ctx, strings.TrimSpace(userName))
	if err != nil {
		return nil, storageErr(s.logger, "listing questions", err)
	}
	return qs, nil
}

// Delete removes the question, its answers and all comments on either.
func (s *QuestionService) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	if err := validID("id", "question", id); err != nil {
		return DeleteResult{}, err
	}

	found, err := s.exists.Exists(ctx, repository.EntityQuestion, id)
	if err != nil {
		return DeleteResult{}, storageErr(s.logger, "checking question", err)
	}
	if !found {
		return DeleteResult{}, apperror.NotFound("question", strconv.FormatInt(id, 10))
	}

	return runDelete(ctx, s.deleter, s.events, s.logger, cascade.QuestionPlan, id,
		events.SubjectQuestionDeleted, nil)
}
