// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestListFilterClause ensures the clause shared by the page and count queries
carries the full filter and nothing page-shaped, so the reported total stays
accurate regardless of LIMIT/OFFSET.
*/
func TestListFilterClause(t *testing.T) {
	clause, args := listFilterClause(Filter{IsPublic: true})
	assert.Equal(t, " WHERE ispublic = $1", clause)
	assert.Equal(t, []any{true}, args)

	clause, args = listFilterClause(Filter{IsPublic: false, Keyword: "family"})
	assert.Contains(t, clause, "name ILIKE $2")
	assert.Equal(t, []any{false, "%family%"}, args)

	// The count query is countQuery = "SELECT COUNT(*) ..." + clause, so the
	// clause itself must never constrain the page window.
	assert.NotContains(t, strings.ToUpper(clause), "LIMIT")
	assert.NotContains(t, strings.ToUpper(clause), "OFFSET")
}

func TestSortClause_FallsBackToLatest(t *testing.T) {
	assert.Equal(t, "postcount DESC, createdat DESC", sortClause(SortMostPosted))
	assert.Equal(t, "likecount DESC, createdat DESC", sortClause(SortMostLiked))
	assert.Equal(t, "createdat DESC", sortClause(SortLatest))
	assert.Equal(t, "createdat DESC", sortClause("oldest"))
}
