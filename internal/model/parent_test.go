package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParentKind(t *testing.T) {
	tests := []struct {
		token  string
		want   ParentKind
		wantOK bool
	}{
		{"question", ParentQuestion, true},
		{"answer", ParentAnswer, true},
		{"  answer ", ParentAnswer, true},
		{"Question", ParentNone, false},
		{"comment", ParentNone, false},
		{"", ParentNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseParentKind(tt.token)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParentRef_JSON(t *testing.T) {
	c := Comment{ID: 1000, Body: "nice", Parent: AnswerParent(100)}

	raw, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"parent":{"type":"answer","id":100}`)

	var back Comment
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, AnswerParent(100), back.Parent)
}

func TestParentRef_IsZero(t *testing.T) {
	assert.True(t, ParentRef{}.IsZero())
	assert.False(t, QuestionParent(10).IsZero())
	assert.Equal(t, "question(10)", QuestionParent(10).String())
}
