package sqldb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/qa-backend/internal/apperror"
	"github.com/sakif/qa-backend/internal/model"
	"github.com/sakif/qa-backend/internal/repository"
	"github.com/sakif/qa-backend/internal/repository/sqldb"
	"github.com/sakif/qa-backend/internal/repository/sqldb/sqldbtest"
)

// =========================================================================
// SCHEMA
// =========================================================================

func TestBootstrap_Idempotent(t *testing.T) {
	db := sqldbtest.New(t)
	require.NoError(t, db.Bootstrap(context.Background()))
	require.NoError(t, db.Bootstrap(context.Background()))
}

func TestSchema_UnknownDialect(t *testing.T) {
	_, err := sqldb.Schema("oracle")
	assert.Error(t, err)
}

func TestSchema_CommentParentCheck(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	ctx := context.Background()
	_, err := db.Pool().ExecContext(ctx,
		`INSERT INTO comments (body, user_id, user_name, parent_question_id, parent_answer_id)
		 VALUES ('both', 1, 'alice', 10, 100)`)
	assert.Error(t, err, "both parent columns set")

	_, err = db.Pool().ExecContext(ctx,
		`INSERT INTO comments (body, user_id, user_name) VALUES ('neither', 1, 'alice')`)
	assert.Error(t, err, "no parent column set")
}

func TestSchema_ForeignKeysEnforced(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	// Answer 100 still has comment 1000 attached.
	_, err := db.Pool().ExecContext(context.Background(), `DELETE FROM answers WHERE id = 100`)
	assert.Error(t, err)
}

// =========================================================================
// EXISTENCE
// =========================================================================

func TestExists(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	tests := []struct {
		entity repository.Entity
		id     int64
		want   bool
	}{
		{repository.EntityUser, sqldbtest.AliceID, true},
		{repository.EntityUser, 99, false},
		{repository.EntityQuestion, sqldbtest.QuestionID, true},
		{repository.EntityQuestion, sqldbtest.AnswerID, false},
		{repository.EntityAnswer, sqldbtest.AnswerID, true},
		{repository.EntityAnswer, sqldbtest.QuestionID, false},
		{repository.EntityComment, sqldbtest.CommentID, true},
		{repository.EntityComment, 1, false},
	}

	for _, tt := range tests {
		got, err := db.Exists(context.Background(), tt.entity, tt.id)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %d", tt.entity, tt.id)
	}
}

func TestExists_UnknownEntity(t *testing.T) {
	db := sqldbtest.New(t)
	_, err := db.Exists(context.Background(), "badge", 1)
	assert.Error(t, err)
}

// =========================================================================
// USERS
// =========================================================================

func TestUsers_CreateAndGet(t *testing.T) {
	db := sqldbtest.New(t)
	ctx := context.Background()

	u := &model.User{Name: "carol"}
	require.NoError(t, db.Users().Create(ctx, u))
	assert.NotZero(t, u.ID)

	got, err := db.Users().GetByName(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestUsers_CreateDuplicateIsConflict(t *testing.T) {
	db := sqldbtest.New(t)
	ctx := context.Background()

	require.NoError(t, db.Users().Create(ctx, &model.User{Name: "carol"}))
	err := db.Users().Create(ctx, &model.User{Name: "carol"})
	assert.True(t, errors.Is(err, apperror.ErrConflict), "got %v", err)

	// Names are case-sensitive.
	assert.NoError(t, db.Users().Create(ctx, &model.User{Name: "Carol"}))
}

func TestUsers_GetMissing(t *testing.T) {
	db := sqldbtest.New(t)
	_, err := db.Users().GetByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUsers_ListNames(t *testing.T) {
	db := sqldbtest.New(t)

	names, err := db.Users().ListNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names)

	sqldbtest.SeedForum(t, db)
	names, err = db.Users().ListNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, names)
}

// =========================================================================
// QUESTIONS
// =========================================================================

func TestQuestions_CreateAndGet(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	q := &model.Question{Title: "Why?", Body: "Because.", UserID: sqldbtest.BobID, UserName: "bob"}
	require.NoError(t, db.Questions().Create(ctx, q))
	assert.NotZero(t, q.ID)
	assert.False(t, q.CreatedAt.IsZero())

	got, err := db.Questions().GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "Why?", got.Title)
	assert.Equal(t, "bob", got.UserName)
	assert.WithinDuration(t, q.CreatedAt, got.CreatedAt, 0)
}

func TestQuestions_GetMissing(t *testing.T) {
	db := sqldbtest.New(t)
	_, err := db.Questions().GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.EqualError(t, err, "question not found with id 42")
}

func TestQuestions_ListWithAnswerCounts(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	newer := &model.Question{Title: "Second", Body: "b", UserID: sqldbtest.BobID, UserName: "bob"}
	require.NoError(t, db.Questions().Create(ctx, newer))

	all, err := db.Questions().List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID, "newest first")
	assert.Equal(t, 0, all[0].AnswerCount)
	assert.Equal(t, sqldbtest.QuestionID, all[1].ID)
	assert.Equal(t, 1, all[1].AnswerCount)

	mine, err := db.Questions().List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, sqldbtest.QuestionID, mine[0].ID)

	none, err := db.Questions().List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuestions_CountAnswers(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	n, err := db.Questions().CountAnswers(context.Background(), sqldbtest.QuestionID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// =========================================================================
// ANSWERS
// =========================================================================

func TestAnswers_ListByQuestionOrdering(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	low := &model.Answer{Body: "low", UserID: sqldbtest.AliceID, UserName: "alice", ParentQuestionID: sqldbtest.QuestionID}
	accepted := &model.Answer{Body: "accepted", UserID: sqldbtest.AliceID, UserName: "alice",
		ParentQuestionID: sqldbtest.QuestionID, Accepted: true}
	require.NoError(t, db.Answers().Create(ctx, low))
	require.NoError(t, db.Answers().Create(ctx, accepted))

	got, err := db.Answers().ListByQuestion(ctx, sqldbtest.QuestionID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, accepted.ID, got[0].ID)
	assert.True(t, got[0].Accepted)
	assert.Equal(t, sqldbtest.AnswerID, got[1].ID, "score 3 before score 0")
	assert.Equal(t, low.ID, got[2].ID)
}

func TestAnswers_ListByUser(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	got, err := db.Answers().ListByUser(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sqldbtest.AnswerID, got[0].ID)
	assert.Equal(t, "How do transactions work?", got[0].QuestionTitle)
}

// =========================================================================
// COMMENTS
// =========================================================================

func TestComments_CreateOnEachParentKind(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	onQuestion := &model.Comment{Body: "q", UserID: sqldbtest.BobID, UserName: "bob",
		Parent: model.QuestionParent(sqldbtest.QuestionID)}
	require.NoError(t, db.Comments().Create(ctx, onQuestion))

	got, err := db.Comments().ListByParent(ctx, model.QuestionParent(sqldbtest.QuestionID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, onQuestion.ID, got[0].ID)
	assert.Equal(t, model.QuestionParent(sqldbtest.QuestionID), got[0].Parent)

	got, err = db.Comments().ListByParent(ctx, model.AnswerParent(sqldbtest.AnswerID))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sqldbtest.CommentID, got[0].ID)
	assert.Equal(t, model.AnswerParent(sqldbtest.AnswerID), got[0].Parent)
}

func TestComments_CreateWithoutParent(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)

	err := db.Comments().Create(context.Background(),
		&model.Comment{Body: "orphan", UserID: sqldbtest.AliceID, UserName: "alice"})
	assert.Error(t, err)
	assert.Equal(t, 1, sqldbtest.Count(t, db, "comments", ""))
}

func TestComments_ListByUserCarriesParentTitle(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	require.NoError(t, db.Comments().Create(ctx, &model.Comment{Body: "direct", UserID: sqldbtest.AliceID,
		UserName: "alice", Parent: model.QuestionParent(sqldbtest.QuestionID)}))

	got, err := db.Comments().ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "How do transactions work?", c.ParentTitle, "comment %d", c.ID)
	}
	assert.Equal(t, model.ParentQuestion, got[0].Parent.Kind, "newest first")
	assert.Equal(t, model.ParentAnswer, got[1].Parent.Kind)
}

// =========================================================================
// TRANSACTIONS
// =========================================================================

func TestBeginTx_CommitAndRollback(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	n, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, sqldbtest.CommentID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, tx.Rollback())
	require.NoError(t, tx.Release())
	assert.Equal(t, 1, sqldbtest.Count(t, db, "comments", ""), "rolled back")

	tx, err = db.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, sqldbtest.CommentID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Release())
	require.NoError(t, tx.Release(), "release is idempotent")
	assert.Equal(t, 0, sqldbtest.Count(t, db, "comments", ""))
}

func TestBeginTx_ReleaseWithoutCommitRollsBack(t *testing.T) {
	db := sqldbtest.New(t)
	sqldbtest.SeedForum(t, db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.Exec(ctx, `DELETE FROM comments`)
	require.NoError(t, err)
	require.NoError(t, tx.Release())

	assert.Equal(t, 1, sqldbtest.Count(t, db, "comments", ""))
}
