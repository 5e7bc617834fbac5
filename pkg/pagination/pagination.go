// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// It standardizes how page-based navigation is requested via query parameters
// and how list results are delivered in the API response envelope:
//
//	{ "currentPage": 1, "totalPages": 4, "totalItemCount": 73, "data": [...] }
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultPageSize is the number of items per page if not specified.
	DefaultPageSize = 20
	// MaxPageSize is the upper bound for items per page to prevent system abuse.
	MaxPageSize = 100
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1
)

// Params holds the parsed page and pageSize from a request's query string.
type Params struct {
	Page     int
	PageSize int
}

// Skip returns the SQL OFFSET value derived from [Page] and [PageSize].
func (p Params) Skip() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Envelope is the list response body shared by every paginated endpoint.
//
// A page past the end of the result set yields an empty Data array with the
// metadata still describing the full set — never an error.
type Envelope struct {
	CurrentPage    int         `json:"currentPage"`
	TotalPages     int         `json:"totalPages"`
	TotalItemCount int         `json:"totalItemCount"`
	Data           interface{} `json:"data"`
}

// NewEnvelope constructs the response envelope for a page of results.
//
// TotalPages is ceil(total / pageSize).
func NewEnvelope(params Params, total int, data interface{}) Envelope {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = (total + params.PageSize - 1) / params.PageSize
	}

	return Envelope{
		CurrentPage:    params.Page,
		TotalPages:     totalPages,
		TotalItemCount: total,
		Data:           data,
	}
}

// FromRequest parses "page" and "pageSize" query parameters from an HTTP request.
//
// # Clamping
//
// Invalid, negative, or excessive values are automatically clamped to
// [DefaultPage], [DefaultPageSize], or [MaxPageSize].
func FromRequest(r *http.Request) Params {
	page := parseIntParam(r, "page", DefaultPage)
	pageSize := parseIntParam(r, "pageSize", DefaultPageSize)

	if page < 1 {
		page = DefaultPage
	}

	if pageSize < 1 || pageSize > MaxPageSize {
		pageSize = DefaultPageSize
	}

	return Params{Page: page, PageSize: pageSize}
}

// parseIntParam parses a single integer query parameter with a fallback default.
func parseIntParam(r *http.Request, key string, defaultVal int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultVal
	}

	return n
}
