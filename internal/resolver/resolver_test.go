package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
	"github.com/sakif/qa-backend/internal/repository/sqldb/sqldbtest"
)

// fakeStore answers Exists from fixed sets and records every lookup.
type fakeStore struct {
	questions map[int64]bool
	answers   map[int64]bool
	err       error
	calls     []repository.Entity
}

func (f *fakeStore) Exists(_ context.Context, entity repository.Entity, id int64) (bool, error) {
	f.calls = append(f.calls, entity)
	if f.err != nil {
		return false, f.err
	}
	switch entity {
	case repository.EntityQuestion:
		return f.questions[id], nil
	case repository.EntityAnswer:
		return f.answers[id], nil
	}
	return false, nil
}

func newFake() *fakeStore {
	return &fakeStore{
		questions: map[int64]bool{10: true, 7: true},
		answers:   map[int64]bool{100: true, 7: true},
	}
}

// =========================================================================
// INFERENCE
// =========================================================================

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		want      model.ParentRef
		wantCalls []repository.Entity
	}{
		{"question only", 10, model.QuestionParent(10), []repository.Entity{repository.EntityQuestion}},
		{"answer only", 100, model.AnswerParent(100),
			[]repository.Entity{repository.EntityQuestion, repository.EntityAnswer}},
		{"both sets, question wins", 7, model.QuestionParent(7), []repository.Entity{repository.EntityQuestion}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFake()
			got, err := New(store).Resolve(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, store.calls)
		})
	}
}

func TestResolve_Neither(t *testing.T) {
	store := newFake()
	got, err := New(store).Resolve(context.Background(), 55)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.True(t, got.IsZero())
	assert.Len(t, store.calls, 2)
}

func TestResolve_StorageError(t *testing.T) {
	boom := errors.New("connection reset")
	store := &fakeStore{err: boom}

	_, err := New(store).Resolve(context.Background(), 10)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)
	assert.Len(t, store.calls, 1, "stops at the first failure")
}

func TestResolve_Repeatable(t *testing.T) {
	r := New(newFake())
	for i := 0; i < 3; i++ {
		got, err := r.Resolve(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, model.QuestionParent(7), got)
	}
}

// =========================================================================
// EXPLICIT KIND
// =========================================================================

func TestResolveAs(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		id      int64
		want    model.ParentRef
		wantErr error
		wantMsg string
	}{
		{name: "question", token: "question", id: 10, want: model.QuestionParent(10)},
		{name: "answer", token: "answer", id: 100, want: model.AnswerParent(100)},
		{name: "ambiguous id as answer", token: "answer", id: 7, want: model.AnswerParent(7)},
		{name: "padded token", token: " question ", id: 7, want: model.QuestionParent(7)},
		{name: "answer id named as question", token: "question", id: 100,
			wantErr: apperror.ErrNotFound, wantMsg: "question not found with id 100"},
		{name: "question id named as answer", token: "answer", id: 10,
			wantErr: apperror.ErrNotFound, wantMsg: "answer not found with id 10"},
		{name: "unknown token", token: "post", id: 10, wantErr: apperror.ErrValidation},
		{name: "wrong case", token: "Question", id: 10, wantErr: apperror.ErrValidation},
		{name: "empty token", token: "", id: 10, wantErr: apperror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(newFake()).ResolveAs(context.Background(), tt.token, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantMsg != "" {
					assert.EqualError(t, err, tt.wantMsg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAs_InvalidTokenSkipsLookup(t *testing.T) {
	store := newFake()
	_, err := New(store).ResolveAs(context.Background(), "comment", 10)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "parent_type", appErr.Field)
	assert.Empty(t, store.calls)
}

// =========================================================================
// AGAINST SQLITE
// =========================================================================

func TestResolve_Database(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	// Question 100 collides with answer 100.
	sqldbtest.Exec(t, db, `INSERT INTO questions (id, title, body, user_id, user_name) VALUES (100, 'Collide', 'x', 1, 'alice')`)

	r := New(db)
	ctx := context.Background()

	got, err := r.Resolve(ctx, sqldbtest.QuestionID)
	require.NoError(t, err)
	assert.Equal(t, model.QuestionParent(sqldbtest.QuestionID), got)

	got, err = r.Resolve(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, model.QuestionParent(100), got, "question precedence")

	got, err = r.ResolveAs(ctx, "answer", 100)
	require.NoError(t, err)
	assert.Equal(t, model.AnswerParent(100), got)

	_, err = r.Resolve(ctx, sqldbtest.CommentID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
