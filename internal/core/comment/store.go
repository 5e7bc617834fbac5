// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for comments.
type Repository interface {

	/*
		ListByPost returns a paginated slice of a post's comments, oldest
		first, and the total count.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*Comment: Matching comments (empty, never nil)
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListByPost(context context.Context, postID string, limit, offset int) ([]*Comment, int, error)

	/*
		FindByID retrieves a comment by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Comment: Hydrated entity including the password digest
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

	/*
		Create persists a new comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (CreatedAt is populated on return)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Update applies the non-nil fields of input to the comment row.

		Parameters:
		  - context: context.Context
		  - id: string
		  - input: UpdateInput

		Returns:
		  - *Comment: The updated entity
		  - error: NotFound if missing, other persistence failures
	*/
	Update(context context.Context, id string, input UpdateInput) (*Comment, error)

	/*
		Delete removes a comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id string) error
}
