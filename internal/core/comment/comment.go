// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

/*
Package comment manages the comments left under posts.

Writing a comment requires only that the post exists; the comment's own
password, hashed at creation, gates later edits and deletion.
*/
package comment

import (
	"context"
	"time"
)

// # Core Entities

// Comment represents a single remark under a post.
type Comment struct {
	ID             string    `json:"id"` // UUIDv7
	PostID         string    `json:"postId"`
	Nickname       string    `json:"nickname"`
	Content        string    `json:"content"`
	PasswordDigest string    `json:"-"` // Never serialized
	CreatedAt      time.Time `json:"createdAt"`
}

// # Inputs

// CreateInput carries the fields accepted when commenting.
type CreateInput struct {
	Nickname string `json:"nickname"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

// UpdateInput carries the mutable fields of a comment. A nil pointer keeps
// the stored value.
type UpdateInput struct {
	Nickname *string `json:"nickname"`
	Content  *string `json:"content"`
}

// # Cross-Domain Contracts

// PostDirectory is the slice of post storage the comment domain needs.
// Implemented by the post domain's Postgres store.
type PostDirectory interface {

	// Exists fails NotFound when the post is missing.
	Exists(context context.Context, postID string) error

	// IncrementCommentCount atomically bumps the post's comment counter.
	IncrementCommentCount(context context.Context, postID string) error
}
