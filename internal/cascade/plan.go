package cascade

import "github.com/sakif/qa-backend/internal/repository"

// Step is one DELETE statement. Its only parameter, $1, is the root id.
type Step struct {
	Name string
	SQL  string
}

// Plan is an ordered list of deletions, leaf to root. The last step removes
// the root row itself and must affect exactly one row.
type Plan struct {
	Name  string
	Root  repository.Entity
	Steps []Step
}

// ORDERING:
// Comments go before answers, answers before questions, questions before
// users. Foreign keys do not cascade, so a step that ran early would fail on
// rows a later step has not removed yet.
//
// Comments are removed in more than one pass because the set to remove is a
// union of disjoint selections: comments hanging off the root's answers, and
// comments attached to or written by the root directly.

// UserPlan removes a user and everything they own. Ownership of a comment
// follows its author, so the user's comments on other people's content go,
// and other people's comments on the user's answers go as well.
//
// Steps 4 to 6 clear other people's answers and comments on the user's
// questions, which would otherwise keep those questions pinned.
var UserPlan = Plan{
	Name: "delete user",
	Root: repository.EntityUser,
	Steps: []Step{
		{"comments on the user's answers",
			`DELETE FROM comments WHERE parent_answer_id IN (SELECT id FROM answers WHERE user_id = $1)`},
		{"comments by the user",
			`DELETE FROM comments WHERE user_id = $1`},
		{"answers by the user",
			`DELETE FROM answers WHERE user_id = $1`},
		{"comments on answers to the user's questions",
			`DELETE FROM comments WHERE parent_answer_id IN (
				SELECT a.id FROM answers a JOIN questions q ON q.id = a.parent_question_id
				WHERE q.user_id = $1)`},
		{"comments on the user's questions",
			`DELETE FROM comments WHERE parent_question_id IN (SELECT id FROM questions WHERE user_id = $1)`},
		{"answers to the user's questions",
			`DELETE FROM answers WHERE parent_question_id IN (SELECT id FROM questions WHERE user_id = $1)`},
		{"questions by the user",
			`DELETE FROM questions WHERE user_id = $1`},
		{"user",
			`DELETE FROM users WHERE id = $1`},
	},
}

// QuestionPlan removes a question, its answers and every comment on either,
// whoever wrote them.
var QuestionPlan = Plan{
	Name: "delete question",
	Root: repository.EntityQuestion,
	Steps: []Step{
		{"comments on the question's answers",
			`DELETE FROM comments WHERE parent_answer_id IN (SELECT id FROM answers WHERE parent_question_id = $1)`},
		{"comments on the question",
			`DELETE FROM comments WHERE parent_question_id = $1`},
		{"answers to the question",
			`DELETE FROM answers WHERE parent_question_id = $1`},
		{"question",
			`DELETE FROM questions WHERE id = $1`},
	},
}

var AnswerPlan = Plan{
	Name: "delete answer",
	Root: repository.EntityAnswer,
	Steps: []Step{
		{"comments on the answer",
			`DELETE FROM comments WHERE parent_answer_id = $1`},
		{"answer",
			`DELETE FROM answers WHERE id = $1`},
	},
}

var CommentPlan = Plan{
	Name: "delete comment",
	Root: repository.EntityComment,
	Steps: []Step{
		{"comment", `DELETE FROM comments WHERE id = $1`},
	},
}
