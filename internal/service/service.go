// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and call services; services validate input, check
// preconditions and call the repository, the parent resolver or the cascade
// engine. Services know nothing about HTTP or SQL, so the CLI calls the same
// methods the handlers do.
//
// Errors returned from here are either *apperror.AppError values (validation,
// not found, conflict, rolled-back transaction) or wrapped storage errors.
// Storage errors are logged here once, at the point they are first seen.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/cascade"
	"github.com/sakif/qa-backend/internal/events"
	"github.com/sakif/qa-backend/internal/model"
)

// Validation limits.
const (
	MaxUserNameLength = 64
	MaxTitleLength    = 300
	MaxBodyLength     = 30000
)

// Deleter runs a cascade plan. *cascade.Engine satisfies it.
type Deleter interface {
	Run(ctx context.Context, plan cascade.Plan, id int64) (cascade.Result, error)
}

// ParentResolver classifies comment parent ids. *resolver.Resolver satisfies it.
type ParentResolver interface {
	Resolve(ctx context.Context, id int64) (model.ParentRef, error)
	ResolveAs(ctx context.Context, token string, id int64) (model.ParentRef, error)
}

// DeleteResult is returned by every delete operation.
type DeleteResult struct {
	cascade.Result
	Removed int64 `json:"removed"`
}

func newDeleteResult(r cascade.Result) DeleteResult {
	return DeleteResult{Result: r, Removed: r.Removed()}
}

// validID rejects ids that cannot name a row.
func validID(field, resource string, id int64) error {
	if id <= 0 {
		return apperror.ValidationFailed(field, "invalid "+resource+" ID")
	}
	return nil
}

// ParseID parses a decimal id from a path or query value. It is exported for
// the handler and CLI layers so both reject the same inputs.
func ParseID(field, resource, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.ValidationFailed(field, "invalid "+resource+" ID")
	}
	return id, nil
}

func validateUserName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.ValidationFailed("name", "user name is required")
	}
	if len(name) > MaxUserNameLength {
		return "", apperror.ValidationFailed("name",
			fmt.Sprintf("user name must be %d characters or less", MaxUserNameLength))
	}
	return name, nil
}

func validateBody(body string) error {
	if len(body) > MaxBodyLength {
		return apperror.ValidationFailed("body",
			fmt.Sprintf("body must be %d characters or less", MaxBodyLength))
	}
	return nil
}

// isAppError reports whether err is one of the expected outcomes that should
// not be logged as a failure.
func isAppError(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && !errors.Is(err, apperror.ErrTransaction)
}

// storageErr passes expected outcomes through untouched and logs anything
// else as a storage failure before wrapping it with action.
func storageErr(log *zap.Logger, action string, err error) error {
	if isAppError(err) {
		return err
	}
	log.Error("storage failure", zap.String("action", action), zap.Error(err))
	return fmt.Errorf("%s: %w", action, err)
}

// publish sends evt without letting a delivery failure affect the caller.
func publish(ctx context.Context, pub events.Publisher, log *zap.Logger, evt events.Event) {
	if err := pub.Publish(ctx, evt); err != nil {
		log.Warn("event not published",
			zap.String("event", evt.EventName),
			zap.Int64("entity_id", evt.EntityID),
			zap.Error(err),
		)
	}
}

// runDelete applies a cascade plan and reports the outcome on subject.
func runDelete(ctx context.Context, d Deleter, pub events.Publisher, log *zap.Logger,
	plan cascade.Plan, id int64, subject string, props map[string]any) (DeleteResult, error) {
	res, err := d.Run(ctx, plan, id)
	if err != nil {
		return DeleteResult{}, err // logged by the engine
	}

	if props == nil {
		props = map[string]any{}
	}
	props["removed"] = res.Removed()
	props["run_id"] = res.RunID
	publish(ctx, pub, log, events.New(subject, id, props))

	log.Info(plan.Name+" completed",
		zap.Int64("id", id),
		zap.String("run_id", res.RunID),
		zap.Int64("removed", res.Removed()),
	)
	return newDeleteResult(res), nil
}
