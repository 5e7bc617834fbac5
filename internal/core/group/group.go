// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

/*
Package group manages memory groups and their achievement badges.

A group is the top-level container of the journal: it owns posts, carries a
shared password that acts as the capability for every mutation, and collects
badges as its milestones are crossed.

# Core Responsibility

  - Lifecycle: Creation, password-gated update/delete, and the cascade that
    removes a group's posts, comments, and tag associations in one unit.
  - Milestones: The [Snapshot] evaluator and the idempotent badge grant.
  - Visibility: Public/private listing filters and the cached is-public probe.

This package provides the organizational context for posts in the core domain.
*/
package group

import "time"

// # Sort Keys

const (
	SortLatest     = "latest"
	SortMostPosted = "mostPosted"
	SortMostLiked  = "mostLiked"
)

// # Core Entities

// Group represents a shared journal container gated by a single password.
type Group struct {
	ID             string    `json:"id"` // UUIDv7
	Name           string    `json:"name"`
	PasswordDigest string    `json:"-"` // Never serialized
	ImageURL       *string   `json:"imageUrl"`
	IsPublic       bool      `json:"isPublic"`
	Introduction   *string   `json:"introduction"`
	LikeCount      int       `json:"likeCount"`
	PostCount      int       `json:"postCount"`
	BadgeCount     int       `json:"badgeCount"`
	CreatedAt      time.Time `json:"createdAt"`
	Badges         []Badge   `json:"badges,omitempty"` // Populated on detail fetches only
}

// Badge is the client-facing view of a granted achievement. Only the name is
// ever exposed.
type Badge struct {
	Name string `json:"name"`
}

// # Inputs

// CreateInput carries the fields accepted when registering a new group.
type CreateInput struct {
	Name         string  `json:"name"`
	Password     string  `json:"password"`
	ImageURL     *string `json:"imageUrl"`
	IsPublic     bool    `json:"isPublic"`
	Introduction *string `json:"introduction"`
}

// UpdateInput carries the mutable fields of a group. A nil pointer means
// "keep the stored value"; a pointer to an empty string clears the field.
type UpdateInput struct {
	Name         *string `json:"name"`
	ImageURL     *string `json:"imageUrl"`
	IsPublic     *bool   `json:"isPublic"`
	Introduction *string `json:"introduction"`
}

// # Search & Filtering

// Filter holds parameters for searching and listing groups.
type Filter struct {
	Keyword  string `json:"keyword"`
	IsPublic bool   `json:"isPublic"`
	Sort     string `json:"sortBy"` // latest, mostPosted, mostLiked
}
