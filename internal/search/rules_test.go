package search

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
)

func TestFields(t *testing.T) {
	sketch := model.Sketch{
		ID:    1,
		Name:  "Red Square sketch",
		Place: "Moscow",
		Author: model.User{
			Login:    "ivan",
			Username: "Ivan P.",
		},
	}

	tests := []struct {
		rule Rule
		want []string
	}{
		{RuleAuthor, []string{"Ivan P.", "ivan"}},
		{RulePlace, []string{"Moscow"}},
		{RuleTitle, []string{"Red Square sketch"}},
		{RuleAny, []string{"Red Square sketch", "Moscow", "Ivan P.", "ivan"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.rule), func(t *testing.T) {
			got, err := Fields(&sketch, tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_UnknownRule(t *testing.T) {
	_, err := Fields(&model.Sketch{}, Rule("color"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, internalErrors.ErrUnknownRule))
}

func TestParseRule(t *testing.T) {
	for _, rule := range Rules() {
		got, err := ParseRule(string(rule))
		require.NoError(t, err)
		assert.Equal(t, rule, got)
	}

	for _, name := range []string{"color", "", "Title", "ANY"} {
		_, err := ParseRule(name)
		assert.ErrorIs(t, err, internalErrors.ErrUnknownRule, "rule %q", name)
	}
}
