// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post

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
	clause, args := listFilterClause("group-1", Filter{IsPublic: true})
	assert.Equal(t, " WHERE groupid = $1 AND ispublic = $2", clause)
	assert.Equal(t, []any{"group-1", true}, args)

	clause, args = listFilterClause("group-1", Filter{IsPublic: true, Keyword: "snow"})
	assert.Contains(t, clause, "title ILIKE $3")
	assert.Equal(t, []any{"group-1", true, "%snow%"}, args)

	assert.NotContains(t, strings.ToUpper(clause), "LIMIT")
	assert.NotContains(t, strings.ToUpper(clause), "OFFSET")
}

func TestSortClause_FallsBackToLatest(t *testing.T) {
	assert.Equal(t, "commentcount DESC, createdat DESC", sortClause(SortMostCommented))
	assert.Equal(t, "likecount DESC, createdat DESC", sortClause(SortMostLiked))
	assert.Equal(t, "createdat DESC", sortClause(SortLatest))
	assert.Equal(t, "createdat DESC", sortClause("oldest"))
}
