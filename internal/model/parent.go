package model

import (
	"fmt"
	"strings"
)

// ParentKind says which entity set a comment's parent lives in.
type ParentKind int

const (
	ParentNone ParentKind = iota
	ParentQuestion
	ParentAnswer
)

func (k ParentKind) String() string {
	switch k {
	case ParentQuestion:
		return "question"
	case ParentAnswer:
		return "answer"
	default:
		return "none"
	}
}

// MarshalText renders the kind as its lowercase token, so JSON output reads
// "question" or "answer" rather than an integer.
func (k ParentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the same tokens ParseParentKind does.
func (k *ParentKind) UnmarshalText(b []byte) error {
	parsed, ok := ParseParentKind(string(b))
	if !ok {
		return fmt.Errorf("model: unknown parent kind %q", string(b))
	}
	*k = parsed
	return nil
}

// ParseParentKind maps a caller-supplied token to a kind. Only the exact
// tokens "question" and "answer" (surrounding whitespace ignored) are valid.
func ParseParentKind(token string) (ParentKind, bool) {
	switch strings.TrimSpace(token) {
	case "question":
		return ParentQuestion, true
	case "answer":
		return ParentAnswer, true
	default:
		return ParentNone, false
	}
}

// ParentRef is the tagged parent of a comment: Question(id) or Answer(id).
type ParentRef struct {
	Kind ParentKind `json:"type"`
	ID   int64      `json:"id"`
}

// QuestionParent refers to the question with the given id.
func QuestionParent(id int64) ParentRef {
	return ParentRef{Kind: ParentQuestion, ID: id}
}

// AnswerParent refers to the answer with the given id.
func AnswerParent(id int64) ParentRef {
	return ParentRef{Kind: ParentAnswer, ID: id}
}

// IsZero reports whether the ref points at nothing.
func (p ParentRef) IsZero() bool {
	return p.Kind == ParentNone
}

func (p ParentRef) String() string {
	return fmt.Sprintf("%s(%d)", p.Kind, p.ID)
}
