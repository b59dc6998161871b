package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/cascade"
	"github.com/sakif/qa-backend/internal/events"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

type UserService struct {
	users   repository.UserRepository
	deleter Deleter
	events  events.Publisher
	logger  *zap.Logger
}

func NewUserService(users repository.UserRepository, deleter Deleter, pub events.Publisher, logger *zap.Logger) *UserService {
	return &UserService{users: users, deleter: deleter, events: pub, logger: logger}
}

// Register creates a user. A name that is already taken is a Conflict; the
// unique constraint decides, so two concurrent registrations cannot both win.
func (s *UserService) Register(ctx context.Context, name string) (*model.User, error) {
	name, err := validateUserName(name)
	if err != nil {
		return nil, err
	}

	user := &model.User{Name: name}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storageErr(s.logger, "registering user", err)
	}

	publish(ctx, s.events, s.logger, events.New(events.SubjectUserRegistered, user.ID,
		map[string]any{"name": user.Name}))
	s.logger.Info("user registered", zap.Int64("id", user.ID), zap.String("name", user.Name))
	return user, nil
}

func (s *UserService) Get(ctx context.Context, name string) (*model.User, error) {
	name, err := validateUserName(name)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, storageErr(s.logger, "getting user", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]string, error) {
	names, err := s.users.ListNames(ctx)
	if err != nil {
		return nil, storageErr(s.logger, "listing users", err)
	}
	return names, nil
}

// Delete removes the named user with every question, answer and comment they
// own, and every comment attached to their answers.
func (s *UserService) Delete(ctx context.Context, name string) (DeleteResult, error) {
	user, err := s.Get(ctx, name)
	if err != nil {
		return DeleteResult{}, err
	}
	return runDelete(ctx, s.deleter, s.events, s.logger, cascade.UserPlan, user.ID,
		events.SubjectUserDeleted, map[string]any{"name": user.Name})
}
