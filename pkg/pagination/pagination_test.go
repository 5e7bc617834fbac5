// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jogakzip/api/pkg/pagination"
)

/*
TestParams_Skip verifies the (page-1)*pageSize offset arithmetic.
*/
func TestParams_Skip(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
	}{
		{"first_page", 1, 10, 0},
		{"second_page", 2, 10, 10},
		{"large_page", 7, 25, 150},
		{"page_zero_clamps", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, PageSize: tt.pageSize}
			assert.Equal(t, tt.want, p.Skip())
		})
	}
}

/*
TestNewEnvelope verifies ceil-based total pages and the envelope fields.
*/
func TestNewEnvelope(t *testing.T) {
	tests := []struct {
		name           string
		page           int
		pageSize       int
		total          int
		wantTotalPages int
	}{
		{"exact_fit", 1, 10, 30, 3},
		{"remainder_rounds_up", 1, 10, 31, 4},
		{"empty_set", 1, 10, 0, 0},
		{"single_item", 1, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := pagination.NewEnvelope(pagination.Params{Page: tt.page, PageSize: tt.pageSize}, tt.total, []string{})

			assert.Equal(t, tt.page, env.CurrentPage)
			assert.Equal(t, tt.wantTotalPages, env.TotalPages)
			assert.Equal(t, tt.total, env.TotalItemCount)
		})
	}
}

/*
TestFromRequest checks query parsing and clamping of out-of-range values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", pagination.DefaultPage, pagination.DefaultPageSize},
		{"explicit", "?page=3&pageSize=50", 3, 50},
		{"negative_page", "?page=-1", pagination.DefaultPage, pagination.DefaultPageSize},
		{"oversized_page_size", "?pageSize=9999", pagination.DefaultPage, pagination.DefaultPageSize},
		{"garbage_input", "?page=abc&pageSize=xyz", pagination.DefaultPage, pagination.DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/groups"+tt.query, nil)
			params := pagination.FromRequest(request)

			assert.Equal(t, tt.wantPage, params.Page)
			assert.Equal(t, tt.wantPageSize, params.PageSize)
		})
	}
}
