// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "name", "family-album", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			err := v.Required(tt.field, tt.value).Err()

			if tt.hasError {
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestValidator_MaxLen counts Unicode characters, not bytes.
*/
func TestValidator_MaxLen(t *testing.T) {
	v := &validate.Validator{}
	assert.NoError(t, v.MaxLen("nickname", "다나와친구들", 6).Err())

	v = &validate.Validator{}
	assert.Error(t, v.MaxLen("nickname", "다나와친구들", 5).Err())
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules) and
error accumulation.
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("nickname", "dana").
		MaxLen("nickname", "dana", 30).
		Custom("tags", false, "Maximum 20 tags").
		Err()
	assert.NoError(t, err)

	v = &validate.Validator{}
	err = v.
		Required("nickname", "").              // Fails
		MaxLen("title", "way too long", 5).    // Fails
		Custom("tags", true, "Maximum 20 tags"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}
