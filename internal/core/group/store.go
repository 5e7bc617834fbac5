// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import "context"

// # Group Data Access

// Repository defines the data access contract for groups and their badges.
type Repository interface {

	/*
		List returns a filtered, paginated slice of groups and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Visibility, keyword, sort key)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Group: Slice of matching groups (empty, never nil)
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error)

	/*
		FindByID retrieves a group by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Group: Hydrated entity including the password digest
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Group, error)

	/*
		ExistsByName reports whether a group with the given name already exists.

		Parameters:
		  - context: context.Context
		  - name: string

		Returns:
		  - bool: True when a row with this name is present
		  - error: Database retrieval failures
	*/
	ExistsByName(context context.Context, name string) (bool, error)

	/*
		Create persists a new group.

		Parameters:
		  - context: context.Context
		  - group: *Group (CreatedAt is populated on return)

		Returns:
		  - error: Conflict on duplicate name, other persistence failures
	*/
	Create(context context.Context, group *Group) error

	/*
		Update applies the non-nil fields of input to the group row.

		Parameters:
		  - context: context.Context
		  - id: string
		  - input: UpdateInput (nil pointer keeps the stored value)

		Returns:
		  - *Group: The updated entity
		  - error: NotFound if missing, other persistence failures
	*/
	Update(context context.Context, id string, input UpdateInput) (*Group, error)

	/*
		Delete removes a group and cascades to its posts, their comments, and
		their tag associations inside a single transaction. Shared tag rows
		are left untouched.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Transactional or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		PushLike atomically increments the group's like counter.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Group: The entity as of the increment (for badge evaluation)
		  - error: NotFound if missing
	*/
	PushLike(context context.Context, id string) (*Group, error)

	// # Badge Persistence

	/*
		GrantBadge records a badge for a group. Granting an already-held badge
		is a silent no-op.

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - name: string (Badge name)

		Returns:
		  - error: Persistence failures (never a duplicate conflict)
	*/
	GrantBadge(context context.Context, groupID, name string) error

	/*
		RecountBadges recomputes badgeCount as the full count of badge rows
		and persists it back onto the group.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - int: The fresh badge count
		  - error: Persistence failures
	*/
	RecountBadges(context context.Context, groupID string) (int, error)

	/*
		ListBadges returns the badges held by a group, oldest first.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - []Badge: Granted badges (empty, never nil)
		  - error: Retrieval failures
	*/
	ListBadges(context context.Context, groupID string) ([]Badge, error)
}
