package sqldb

import (
	"database/sql"
	"fmt"

	"github.com/sakif/qa-backend/internal/model"
)

// parentColumns turns a ParentRef into the (parent_question_id,
// parent_answer_id) pair stored on comments. Exactly one side is non-null.
func parentColumns(p model.ParentRef) (question, answer sql.NullInt64, err error) {
	switch p.Kind {
	case model.ParentQuestion:
		return sql.NullInt64{Int64: p.ID, Valid: true}, sql.NullInt64{}, nil
	case model.ParentAnswer:
		return sql.NullInt64{}, sql.NullInt64{Int64: p.ID, Valid: true}, nil
	default:
		return sql.NullInt64{}, sql.NullInt64{}, fmt.Errorf("sqldb: comment has no parent")
	}
}

// parentFromColumns is the inverse of parentColumns.
func parentFromColumns(question, answer sql.NullInt64) (model.ParentRef, error) {
	switch {
	case question.Valid && !answer.Valid:
		return model.QuestionParent(question.Int64), nil
	case answer.Valid && !question.Valid:
		return model.AnswerParent(answer.Int64), nil
	case question.Valid:
		return model.ParentRef{}, fmt.Errorf("sqldb: comment row has both parent columns set")
	default:
		return model.ParentRef{}, fmt.Errorf("sqldb: comment row has no parent column set")
	}
}
