// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

import (
	"context"
	"log/slog"
	"time"

	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/sec"
	"github.com/jogakzip/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for groups and their badges.
type Service struct {
	repo       Repository
	visibility VisibilityCache
	logger     *slog.Logger
}

// NewService constructs a new group [Service].
func NewService(repo Repository, visibility VisibilityCache, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		visibility: visibility,
		logger:     logger,
	}
}

// # Group Management

/*
ListGroups retrieves a paginated and filtered list of groups.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Group: List of groups, digests stripped
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListGroups(context context.Context, filter Filter, limit, offset int) ([]*Group, int, error) {
	groups, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, group := range groups {
		sanitize(group)
	}

	return groups, total, nil
}

/*
CreateGroup registers a new group with a hashed password.

Description: Enforces global name uniqueness up front (Conflict on duplicate);
the unique constraint on the name column closes the race with concurrent
creates, surfacing as the same Conflict.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Group: The created entity, digest stripped
  - error: Conflict on duplicate name, persistence failures
*/
func (service *Service) CreateGroup(context context.Context, input CreateInput) (*Group, error) {
	taken, err := service.repo.ExistsByName(context, input.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Group name is already in use")
	}

	digest, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	group := &Group{
		ID:             uuid.New(),
		Name:           input.Name,
		PasswordDigest: digest,
		ImageURL:       input.ImageURL,
		IsPublic:       input.IsPublic,
		Introduction:   input.Introduction,
	}

	if err := service.repo.Create(context, group); err != nil {
		return nil, err
	}

	service.logger.Info("group_created",
		slog.String("group_id", group.ID),
		slog.Bool("is_public", group.IsPublic),
	)

	return sanitize(group), nil
}

/*
GetGroupDetail retrieves a group, reconciles its badges, and attaches the
badge list.

Description: This is one of the two trigger points of the badge evaluator
(the other is the like push), so badge state catches up with reality on
every detail fetch.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Group: Hydrated entity with badges, digest stripped
  - error: NotFound if missing
*/
func (service *Service) GetGroupDetail(context context.Context, id string) (*Group, error) {
	group, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	count, err := service.reconcileBadges(context, group.ID, Snapshot{
		CreatedAt: group.CreatedAt,
		LikeCount: group.LikeCount,
		PostCount: group.PostCount,
	})
	if err != nil {
		return nil, err
	}
	group.BadgeCount = count

	badges, err := service.repo.ListBadges(context, group.ID)
	if err != nil {
		return nil, err
	}
	group.Badges = badges

	return sanitize(group), nil
}

/*
UpdateGroup modifies a group after verifying the owner's password.

Parameters:
  - context: context.Context
  - id: string
  - password: string (Plaintext capability)
  - input: UpdateInput (nil pointers keep stored values)

Returns:
  - *Group: The updated entity, digest stripped
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) UpdateGroup(context context.Context, id, password string, input UpdateInput) (*Group, error) {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := verifyCredential(password, current.PasswordDigest); err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, id, input)
	if err != nil {
		return nil, err
	}

	service.invalidateVisibility(context, id)
	service.logger.Info("group_updated", slog.String("group_id", id))

	return sanitize(updated), nil
}

/*
DeleteGroup removes a group and everything it owns after password
verification. Shared tag rows survive the cascade.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) DeleteGroup(context context.Context, id, password string) error {
	current, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if err := verifyCredential(password, current.PasswordDigest); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.invalidateVisibility(context, id)
	service.logger.Info("group_deleted", slog.String("group_id", id))

	return nil
}

// # Social & Badges

/*
PushLike increments a group's like counter and reconciles badges against the
fresh counter value. Likes are not password-gated.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound, persistence failures
*/
func (service *Service) PushLike(context context.Context, id string) error {
	group, err := service.repo.PushLike(context, id)
	if err != nil {
		return err
	}

	_, err = service.reconcileBadges(context, group.ID, Snapshot{
		CreatedAt: group.CreatedAt,
		LikeCount: group.LikeCount,
		PostCount: group.PostCount,
	})
	if err != nil {
		return err
	}

	service.logger.Info("group_liked",
		slog.String("group_id", id),
		slog.Int("like_count", group.LikeCount),
	)

	return nil
}

/*
reconcileBadges persists every badge the snapshot qualifies for and refreshes
badgeCount as a full recount.

Granting an already-held badge is a no-op, so concurrent reconciles converge.

Parameters:
  - context: context.Context
  - groupID: string
  - snapshot: Snapshot

Returns:
  - int: The fresh badge count
  - error: Persistence failures
*/
func (service *Service) reconcileBadges(context context.Context, groupID string, snapshot Snapshot) (int, error) {
	for _, name := range Evaluate(snapshot, time.Now()) {
		if err := service.repo.GrantBadge(context, groupID, name); err != nil {
			return 0, err
		}
	}

	return service.repo.RecountBadges(context, groupID)
}

// # Access Checks

/*
VerifyPassword checks a plaintext password against the group's digest.

Description: Public groups accept any caller; private groups require the
matching password.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: NotFound, Forbidden on mismatch
*/
func (service *Service) VerifyPassword(context context.Context, id, password string) error {
	group, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if group.IsPublic {
		return nil
	}

	return verifyCredential(password, group.PasswordDigest)
}

/*
GetVisibility reports whether a group is public, preferring the cache.

Description: Cache misses fall through to the relational store and repopulate
the cache best-effort; cache failures are logged, never surfaced.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: True when the group is public
  - error: NotFound, retrieval failures
*/
func (service *Service) GetVisibility(context context.Context, id string) (bool, error) {
	if service.visibility != nil {
		isPublic, found, err := service.visibility.Get(context, id)
		if err != nil {
			service.logger.Warn("group_visibility_cache_read_failed", slog.Any("error", err))
		} else if found {
			return isPublic, nil
		}
	}

	group, err := service.repo.FindByID(context, id)
	if err != nil {
		return false, err
	}

	if service.visibility != nil {
		if err := service.visibility.Set(context, id, group.IsPublic); err != nil {
			service.logger.Warn("group_visibility_cache_write_failed", slog.Any("error", err))
		}
	}

	return group.IsPublic, nil
}

// invalidateVisibility drops the cached visibility flag best-effort.
func (service *Service) invalidateVisibility(context context.Context, id string) {
	if service.visibility == nil {
		return
	}
	if err := service.visibility.Invalidate(context, id); err != nil {
		service.logger.Warn("group_visibility_cache_invalidate_failed", slog.Any("error", err))
	}
}

// # Helpers

// verifyCredential fails Forbidden when the plaintext does not match the
// stored digest. There is no session concept, so mismatch is never 401.
func verifyCredential(password, digest string) error {
	if !sec.CheckPasswordHash(password, digest) {
		return apperr.Forbidden("Password does not match")
	}
	return nil
}

// sanitize strips the password digest before an entity leaves the service.
func sanitize(group *Group) *Group {
	group.PasswordDigest = ""
	return group
}
