// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package slice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jogakzip/api/pkg/slice"
)

func TestDifference(t *testing.T) {
	current := []string{"winter", "family"}
	next := []string{"family", "travel"}

	// Names to attach and names to detach for a tag-set replacement.
	assert.Equal(t, []string{"travel"}, slice.Difference(next, current))
	assert.Equal(t, []string{"winter"}, slice.Difference(current, next))

	assert.Nil(t, slice.Difference([]string{}, current))
	assert.Equal(t, next, slice.Difference(next, nil))
}
