// Package resolver works out which entity a comment's parent id refers to.
//
// Questions and answers draw ids from independent sequences, so the same
// number can name one of each. Two entry points share one existence check:
//
//   - Resolve infers the kind. Questions are checked first and win a tie.
//   - ResolveAs checks only the kind the caller named.
package resolver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
)

// Resolver is stateless and safe for concurrent use.
type Resolver struct {
	store repository.Existence
}

func New(store repository.Existence) *Resolver {
	return &Resolver{store: store}
}

// inferenceOrder is the tie-break: an id present in both sets is a question.
var inferenceOrder = []model.ParentKind{model.ParentQuestion, model.ParentAnswer}

// Resolve infers the parent kind of id. It returns a NotFound error when id
// is neither a question nor an answer.
func (r *Resolver) Resolve(ctx context.Context, id int64) (model.ParentRef, error) {
	for _, kind := range inferenceOrder {
		ok, err := r.exists(ctx, kind, id)
		if err != nil {
			return model.ParentRef{}, err
		}
		if ok {
			return model.ParentRef{Kind: kind, ID: id}, nil
		}
	}
	return model.ParentRef{}, apperror.NotFound("parent", strconv.FormatInt(id, 10))
}

// ResolveAs checks id against the single entity set named by token, which must
// be "question" or "answer". Any other token is a validation error on
// parent_type and no lookup happens.
func (r *Resolver) ResolveAs(ctx context.Context, token string, id int64) (model.ParentRef, error) {
	kind, ok := model.ParseParentKind(token)
	if !ok {
		return model.ParentRef{}, apperror.ValidationFailed("parent_type",
			`parent_type must be either "question" or "answer"`)
	}

	found, err := r.exists(ctx, kind, id)
	if err != nil {
		return model.ParentRef{}, err
	}
	if !found {
		return model.ParentRef{}, apperror.NotFound(kind.String(), strconv.FormatInt(id, 10))
	}
	return model.ParentRef{Kind: kind, ID: id}, nil
}

func (r *Resolver) exists(ctx context.Context, kind model.ParentKind, id int64) (bool, error) {
	entity := repository.EntityQuestion
	if kind == model.ParentAnswer {
		entity = repository.EntityAnswer
	}
	ok, err := r.store.Exists(ctx, entity, id)
	if err != nil {
		return false, fmt.Errorf("resolver: looking up %s %d: %w", kind, id, err)
	}
	return ok, nil
}
