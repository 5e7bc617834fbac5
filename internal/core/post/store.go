// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post

import "context"

// # Post Data Access

// Repository defines the data access contract for posts and their tags.
type Repository interface {

	/*
		List returns a filtered, paginated slice of a group's posts and the
		total count.

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - filter: Filter (Visibility, keyword, sort key)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Post: Matching posts without tag lists (empty, never nil)
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, groupID string, filter Filter, limit, offset int) ([]*Post, int, error)

	/*
		FindByID retrieves a post with its tag names.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Post: Hydrated entity including the password digest and tags
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		Create persists a post together with its tag rows and associations in
		one transaction. Existing tag rows are reused by name.

		Parameters:
		  - context: context.Context
		  - post: *Post (CreatedAt is populated on return)

		Returns:
		  - error: Transactional or persistence failures
	*/
	Create(context context.Context, post *Post) error

	/*
		Update applies the non-nil fields of input and, when input.Tags is
		non-nil, reconciles the association set to match the list exactly.

		Parameters:
		  - context: context.Context
		  - id: string
		  - input: UpdateInput

		Returns:
		  - *Post: The updated entity with its tags
		  - error: NotFound if missing, other persistence failures
	*/
	Update(context context.Context, id string, input UpdateInput) (*Post, error)

	/*
		Delete removes a post, its comments, and its tag associations in one
		transaction. Shared tag rows are left untouched.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Transactional or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		PushLike atomically increments the post's like counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Post: The entity as of the increment (for badge evaluation)
		  - error: NotFound if missing
	*/
	PushLike(context context.Context, id string) (*Post, error)

	/*
		CountComments returns the live number of comments under a post,
		bypassing the denormalized counter.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - int: Comment row count
		  - error: Retrieval failures
	*/
	CountComments(context context.Context, postID string) (int, error)
}
