// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

/*
Package post manages memories: dated, taggable posts owned by a group.

Creating a post is gated by the owning group's password; the same plaintext
then becomes the post's own capability for later updates and deletes. Posts
carry a free-form tag list reconciled against a shared tag table.

# Core Responsibility

  - Lifecycle: Group-gated creation, password-gated update/delete, and the
    cascade that removes a post's comments and tag associations.
  - Tags: Full-diff reconciliation of the tag-name list on create and update.
  - Milestones: The post-level like badge granted to the owning group.
*/
package post

import (
	"context"
	"time"

	"github.com/jogakzip/api/pkg/date"
)

// # Sort Keys

const (
	SortLatest        = "latest"
	SortMostCommented = "mostCommented"
	SortMostLiked     = "mostLiked"
)

// # Core Entities

// Post represents a single memory inside a group.
type Post struct {
	ID             string     `json:"id"` // UUIDv7
	GroupID        string     `json:"groupId"`
	Nickname       string     `json:"nickname"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	PasswordDigest string     `json:"-"` // Never serialized
	ImageURL       *string    `json:"imageUrl"`
	Location       *string    `json:"location"`
	Moment         *date.Date `json:"moment"` // User-supplied date, distinct from CreatedAt
	IsPublic       bool       `json:"isPublic"`
	LikeCount      int        `json:"likeCount"`
	CommentCount   int        `json:"commentCount"`
	CreatedAt      time.Time  `json:"createdAt"`
	Tags           []string   `json:"tags,omitempty"` // Populated on detail fetches only
}

// # Inputs

// CreateInput carries the fields accepted when posting a memory. Password is
// the owning group's plaintext password; it is verified against the group and
// then hashed as the post's own capability.
type CreateInput struct {
	Nickname string     `json:"nickname"`
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	Password string     `json:"password"`
	ImageURL *string    `json:"imageUrl"`
	Location *string    `json:"location"`
	Moment   *date.Date `json:"moment"`
	IsPublic bool       `json:"isPublic"`
	Tags     []string   `json:"tags"`
}

// UpdateInput carries the mutable fields of a post. A nil pointer keeps the
// stored value. A nil Tags slice keeps the association set; a non-nil slice
// replaces it to match exactly.
type UpdateInput struct {
	Nickname *string    `json:"nickname"`
	Title    *string    `json:"title"`
	Content  *string    `json:"content"`
	ImageURL *string    `json:"imageUrl"`
	Location *string    `json:"location"`
	Moment   *date.Date `json:"moment"`
	IsPublic *bool      `json:"isPublic"`
	Tags     []string   `json:"tags"`
}

// # Search & Filtering

// Filter holds parameters for listing the posts of a group.
type Filter struct {
	Keyword  string `json:"keyword"`
	IsPublic bool   `json:"isPublic"`
	Sort     string `json:"sortBy"` // latest, mostCommented, mostLiked
}

// # Cross-Domain Contracts

// GroupDirectory is the slice of group storage the post domain needs:
// credential lookup for the creation gate, the post counter, and badge
// persistence for the post-level like badge. Implemented by the group
// domain's Postgres store.
type GroupDirectory interface {

	// AuthDigest returns the group's password digest, or NotFound.
	AuthDigest(context context.Context, groupID string) (string, error)

	// IncrementPostCount atomically bumps the group's post counter.
	IncrementPostCount(context context.Context, groupID string) error

	// GrantBadge records a badge for the group; duplicates are a no-op.
	GrantBadge(context context.Context, groupID, name string) error

	// RecountBadges refreshes the group's badgeCount from its badge rows.
	RecountBadges(context context.Context, groupID string) (int, error)
}
