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

type CommentService struct {
	comments repository.CommentRepository
	users    repository.UserRepository
	exists   repository.Existence
	parents  ParentResolver
	deleter  Deleter
	events   events.Publisher
	logger   *zap.Logger
}

type CommentDeps struct {
	Comments  repository.CommentRepository
	Users     repository.UserRepository
	Existence repository.Existence
	Resolver  ParentResolver
	Deleter   Deleter
	Events    events.Publisher
	Logger    *zap.Logger
}

func NewCommentService(d CommentDeps) *CommentService {
	return &CommentService{
		comments: d.Comments,
		users:    d.Users,
		exists:   d.Existence,
		parents:  d.Resolver,
		deleter:  d.Deleter,
		events:   d.Events,
		logger:   d.Logger,
	}
}

// NewComment is the input to CommentService.Create.
type NewComment struct {
	ParentID int64
	// ParentType is "question" or "answer". Empty means infer it from
	// ParentID, in which case a question wins over an answer with the same id.
	ParentType string
	Body       string
	UserName   string
}

// Create attaches a comment to a question or an answer.
//
// An explicit ParentType is the canonical form: only that entity set is
// checked. Leaving it empty falls back to inference.
func (s *CommentService) Create(ctx context.Context, in NewComment) (*model.Comment, error) {
	if err := validID("parent_id", "parent", in.ParentID); err != nil {
		return nil, err
	}
	userName := strings.TrimSpace(in.UserName)
	if strings.TrimSpace(in.Body) == "" || userName == "" {
		return nil, apperror.ValidationFailed("", "missing required fields: body or user_name")
	}
	if err := validateBody(in.Body); err != nil {
		return nil, err
	}

	var (
		parent model.ParentRef
		err    error
	)
	if in.ParentType == "" {
		parent, err = s.parents.Resolve(ctx, in.ParentID)
	} else {
		parent, err = s.parents.ResolveAs(ctx, in.ParentType, in.ParentID)
	}
	if err != nil {
		return nil, storageErr(s.logger, "resolving parent", err)
	}

	author, err := s.users.GetByName(ctx, userName)
	if err != nil {
		return nil, storageErr(s.logger, "looking up author", err)
	}

	c := &model.Comment{Body: in.Body, UserID: author.ID, UserName: author.Name, Parent: parent}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, storageErr(s.logger, "creating comment", err)
	}

	s.logger.Info("comment created",
		zap.Int64("id", c.ID),
		zap.Stringer("parent", c.Parent),
		zap.String("user", c.UserName),
	)
	return c, nil
}

// ListByParent returns the comments on parentID, inferring whether it is a
// question or an answer.
func (s *CommentService) ListByParent(ctx context.Context, parentID int64) ([]model.Comment, error) {
	if err := validID("parent", "parent", parentID); err != nil {
		return nil, err
	}
	parent, err := s.parents.Resolve(ctx, parentID)
	if err != nil {
		return nil, storageErr(s.logger, "resolving parent", err)
	}
	comments, err := s.comments.ListByParent(ctx, parent)
	if err != nil {
		return nil, storageErr(s.logger, "listing comments", err)
	}
	return comments, nil
}

func (s *CommentService) ListByUser(ctx context.Context, userName string) ([]model.UserComment, error) {
	userName, err := validateUserName(userName)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByUser(ctx, userName)
	if err != nil {
		return nil, storageErr(s.logger, "listing comments by user", err)
	}
	return comments, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) (DeleteResult, error) {
	if err := validID("id", "comment", id); err != nil {
		return DeleteResult{}, err
	}

	found, err := s.exists.Exists(ctx, repository.EntityComment, id)
	if err != nil {
		return DeleteResult{}, storageErr(s.logger, "checking comment", err)
	}
	if !found {
		return DeleteResult{}, apperror.NotFound("comment", strconv.FormatInt(id, 10))
	}

	return runDelete(ctx, s.deleter, s.events, s.logger, cascade.CommentPlan, id,
		events.SubjectCommentDeleted, nil)
}
