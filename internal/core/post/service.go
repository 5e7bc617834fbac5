// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post

import (
	"context"
	"log/slog"

	"github.com/jogakzip/api/internal/core/group"
	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/sec"
	"github.com/jogakzip/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for posts: the group-password creation
// gate, tag reconciliation, counters, and the post-level like badge.
type Service struct {
	repo       Repository
	groups     GroupDirectory
	visibility VisibilityCache
	logger     *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repo Repository, groups GroupDirectory, visibility VisibilityCache, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		groups:     groups,
		visibility: visibility,
		logger:     logger,
	}
}

// # Post Management

/*
ListPosts retrieves a paginated and filtered list of a group's posts.

Parameters:
  - context: context.Context
  - groupID: string
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Post: List of posts, digests stripped
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListPosts(context context.Context, groupID string, filter Filter, limit, offset int) ([]*Post, int, error) {
	posts, total, err := service.repo.List(context, groupID, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, post := range posts {
		sanitize(post)
	}

	return posts, total, nil
}

/*
CreatePost publishes a memory into a group.

Description: The supplied password is verified against the owning group's
digest (the creation gate), then hashed again and stored as the post's own
capability. The post row, its tag rows, and their associations commit as one
unit, after which the group's post counter is bumped.

Parameters:
  - context: context.Context
  - groupID: string
  - input: CreateInput

Returns:
  - *Post: The created entity with tags, digest stripped
  - error: NotFound if the group is missing, Forbidden on password mismatch
*/
func (service *Service) CreatePost(context context.Context, groupID string, input CreateInput) (*Post, error) {
	groupDigest, err := service.groups.AuthDigest(context, groupID)
	if err != nil {
		return nil, err
	}

	if err := verifyCredential(input.Password, groupDigest); err != nil {
		return nil, err
	}

	postDigest, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	post := &Post{
		ID:             uuid.New(),
		GroupID:        groupID,
		Nickname:       input.Nickname,
		Title:          input.Title,
		Content:        input.Content,
		PasswordDigest: postDigest,
		ImageURL:       input.ImageURL,
		Location:       input.Location,
		Moment:         input.Moment,
		IsPublic:       input.IsPublic,
		Tags:           input.Tags,
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	if err := service.groups.IncrementPostCount(context, groupID); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("group_id", groupID),
	)

	return sanitize(post), nil
}

/*
GetPostDetail retrieves a post with its tags and a live comment count.

Description: commentCount is recomputed from the comment rows on every detail
fetch, so the denormalized counter can never mislead this view.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Post: Hydrated entity, digest stripped
  - error: NotFound if missing
*/
func (service *Service) GetPostDetail(context context.Context, id string) (*Post, error) {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	count, err := service.repo.CountComments(context, id)
	if err != nil {
		return nil, err
	}
	post.CommentCount = count

	return sanitize(post), nil
}

/*
UpdatePost modifies a post after verifying its password.

Parameters:
  - context: context.Context
  - id: string
  - password: string (Plaintext capability)
  - input: UpdateInput (nil pointers keep stored values; non-nil Tags
    replaces the association set)

Returns:
  - *Post: The updated entity, digest stripped
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) UpdatePost(context context.Context, id, password string, input UpdateInput) (*Post, error) {
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
	service.logger.Info("post_updated", slog.String("post_id", id))

	return sanitize(updated), nil
}

/*
DeletePost removes a post, its comments, and its tag associations after
password verification.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) DeletePost(context context.Context, id, password string) error {
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
	service.logger.Info("post_deleted", slog.String("post_id", id))

	return nil
}

// # Social & Badges

/*
PushLike increments a post's like counter and, when the post crosses the
like threshold, grants the post-level badge to the owning group.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound, persistence failures
*/
func (service *Service) PushLike(context context.Context, id string) error {
	post, err := service.repo.PushLike(context, id)
	if err != nil {
		return err
	}

	if post.LikeCount >= group.LikeThreshold {
		if err := service.groups.GrantBadge(context, post.GroupID, group.BadgePostLikes10K); err != nil {
			return err
		}
		if _, err := service.groups.RecountBadges(context, post.GroupID); err != nil {
			return err
		}
	}

	service.logger.Info("post_liked",
		slog.String("post_id", id),
		slog.Int("like_count", post.LikeCount),
	)

	return nil
}

// # Access Checks

/*
VerifyPassword checks a plaintext password against the post's digest. Public
posts accept any caller.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: NotFound, Forbidden on mismatch
*/
func (service *Service) VerifyPassword(context context.Context, id, password string) error {
	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return err
	}

	if post.IsPublic {
		return nil
	}

	return verifyCredential(password, post.PasswordDigest)
}

/*
GetVisibility reports whether a post is public, preferring the cache.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: True when the post is public
  - error: NotFound, retrieval failures
*/
func (service *Service) GetVisibility(context context.Context, id string) (bool, error) {
	if service.visibility != nil {
		isPublic, found, err := service.visibility.Get(context, id)
		if err != nil {
			service.logger.Warn("post_visibility_cache_read_failed", slog.Any("error", err))
		} else if found {
			return isPublic, nil
		}
	}

	post, err := service.repo.FindByID(context, id)
	if err != nil {
		return false, err
	}

	if service.visibility != nil {
		if err := service.visibility.Set(context, id, post.IsPublic); err != nil {
			service.logger.Warn("post_visibility_cache_write_failed", slog.Any("error", err))
		}
	}

	return post.IsPublic, nil
}

// invalidateVisibility drops the cached visibility flag best-effort.
func (service *Service) invalidateVisibility(context context.Context, id string) {
	if service.visibility == nil {
		return
	}
	if err := service.visibility.Invalidate(context, id); err != nil {
		service.logger.Warn("post_visibility_cache_invalidate_failed", slog.Any("error", err))
	}
}

// # Helpers

// verifyCredential fails Forbidden when the plaintext does not match the
// stored digest.
func verifyCredential(password, digest string) error {
	if !sec.CheckPasswordHash(password, digest) {
		return apperr.Forbidden("Password does not match")
	}
	return nil
}

// sanitize strips the password digest before an entity leaves the service.
func sanitize(post *Post) *Post {
	post.PasswordDigest = ""
	return post
}
