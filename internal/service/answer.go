package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/cascade"
	"github.com/sakif/qa-backend/internal/events"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

type AnswerService struct {
	answers  repository.AnswerRepository
	comments repository.CommentRepository
	users    repository.UserRepository
	exists   repository.Existence
	deleter  Deleter
	events   events.Publisher
	logger   *zap.Logger
}

type AnswerDeps struct {
	Answers   repository.AnswerRepository
	Comments  repository.CommentRepository
	Users     repository.UserRepository
	Existence repository.Existence
	Deleter   Deleter
	Events    events.Publisher
	Logger    *zap.Logger
}

func NewAnswerService(d AnswerDeps) *AnswerService {
	return &AnswerService{
		answers:  d.Answers,
		comments: d.Comments,
		users:    d.Users,
		exists:   d.Existence,
		deleter:  d.Deleter,
		events:   d.Events,
		logger:   d.Logger,
	}
}

// Create posts an answer to questionID as userName.
func (s *AnswerService) Create(ctx context.Context, questionID int64, body, userName string) (*model.Answer, error) {
	if err := validID("question_id", "question", questionID); err != nil {
		return nil, err
	}
	userName = strings.TrimSpace(userName)
	if strings.TrimSpace(body) == "" || userName == "" {
		return nil, apperror.ValidationFailed("", "missing required fields: body or user_name")
	}
	if err := validateBody(body); err != nil {
		return nil, err
	}

	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	author, err := s.users.GetByName(ctx, userName)
	if err != nil {
		return nil, storageErr(s.logger, "looking up author", err)
	}

	a := &model.Answer{Body: body, UserID: author.ID, UserName: author.Name, ParentQuestionID: questionID}
	if err := s.answers.Create(ctx, a); err != nil {
		return nil, storageErr(s.logger, "creating answer", err)
	}

	s.logger.Info("answer created",
		zap.Int64("id", a.ID),
		zap.Int64("question_id", questionID),
		zap.String("user", a.UserName),
	)
	return a, nil
}

// ListByQuestion returns a question's answers, accepted first, then by score,
// then oldest first, each with its comments.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID int64) ([]model.AnswerWithComments, error) {
	if err := validID("question", "question", questionID); err != nil {
		return nil, err
	}
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, storageErr(s.logger, "listing answers", err)
	}

	out := make([]model.AnswerWithComments, 0, len(answers))
	for _, a := range answers {
		comments, err := s.comments.ListByParent(ctx, model.AnswerParent(a.ID))
		if err != nil {
			return nil, storageErr(s.logger, "listing answer comments", err)
		}
		out = append(out, model.AnswerWithComments{Answer: a, Comments: comments})
	}
	return out, nil
}

func (s *AnswerService) ListByUser(ctx context.Context, userName string) ([]model.UserAnswer, error) {
	userName, err := validateUserName(userName)
	if err != nil {
		return nil, err
	}
	answers, err := s.answers.ListByUser(ctx, userName)
	if err != nil {
		return nil, storageErr(s.logger, "listing answers by user", err)
	}
	return answers, nil
}

// Delete removes the answer and the comments attached to it.
func (s *AnswerService) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	if err := validID("id", "answer", id); err != nil {
		return DeleteResult{}, err
	}

	found, err := s.exists.Exists(ctx, repository.EntityAnswer, id)
	if err != nil {
		return DeleteResult{}, storageErr(s.logger, "checking answer", err)
	}
	if !found {
		return DeleteResult{}, apperror.NotFound("answer", strconv.FormatInt(id, 10))
	}

	return runDelete(ctx, s.deleter, s.events, s.logger, cascade.AnswerPlan, id,
		events.SubjectAnswerDeleted, nil)
}

func (s *AnswerService) requireQuestion(ctx context.Context, id int64) error {
	found, err := s.exists.Exists(ctx, repository.EntityQuestion, id)
	if err != nil {
		return storageErr(s.logger, "checking question", err)
	}
	if !found {
		return apperror.NotFound("question", strconv.FormatInt(id, 10))
	}
	return nil
}
