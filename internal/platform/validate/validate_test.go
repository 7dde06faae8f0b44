// Copyright (c) 2026 Fantasy Fight League. All rights reserved.
// Author: dev@fantasyfightleague.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fantasyfightleague/fflcli/internal/platform/apperr"
	"github.com/fantasyfightleague/fflcli/internal/platform/validate"
)

/*
TestValidator_CollectsEveryFailure verifies that the chain reports all
broken fields in one error rather than stopping at the first.
*/
func TestValidator_CollectsEveryFailure(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("username", "  ").
		Email("email", "not-an-email").
		MinLen("password", "abc", 6).
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeValidation, ae.Code)
	assert.Len(t, ae.Fields, 3)
}

func TestValidator_PassesCleanInput(t *testing.T) {
	v := &validate.Validator{}
	err := v.
		Required("username", "ada").
		MinLen("username", "ada", 3).
		MaxLen("username", "ada", 20).
		Email("email", "ada@example.com").
		MinLen("password", "hunter22", 6).
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

func TestValidator_Rules(t *testing.T) {
	tests := []struct {
		name  string
		run   func(v *validate.Validator)
		fails bool
	}{
		{"required_trims_whitespace", func(v *validate.Validator) { v.Required("f", " \t ") }, true},
		{"min_len_counts_runes", func(v *validate.Validator) { v.MinLen("f", "日本", 3) }, true},
		{"max_len_counts_runes", func(v *validate.Validator) { v.MaxLen("f", "日本語", 3) }, false},
		{"range_inclusive_low", func(v *validate.Validator) { v.Range("f", 1, 1, 3) }, false},
		{"range_inclusive_high", func(v *validate.Validator) { v.Range("f", 3, 1, 3) }, false},
		{"range_outside", func(v *validate.Validator) { v.Range("f", 4, 1, 3) }, true},
		{"custom_condition", func(v *validate.Validator) { v.Custom("f", true, "boom") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			tt.run(v)
			assert.Equal(t, tt.fails, v.HasErrors())
		})
	}
}
