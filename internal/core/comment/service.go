// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package comment

import (
	"context"
	"log/slog"

	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/sec"
	"github.com/jogakzip/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for comments.
type Service struct {
	repo   Repository
	posts  PostDirectory
	logger *slog.Logger
}

// NewService constructs a new comment [Service].
func NewService(repo Repository, posts PostDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		logger: logger,
	}
}

/*
ListComments retrieves a page of a post's comments.

Parameters:
  - context: context.Context
  - postID: string
  - limit, offset: int

Returns:
  - []*Comment: List of comments, digests stripped
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListComments(context context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	comments, total, err := service.repo.ListByPost(context, postID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, comment := range comments {
		sanitize(comment)
	}

	return comments, total, nil
}

/*
CreateComment writes a comment under a post.

Description: Creation is existence-gated only; the password in the input is
hashed and stored as the comment's own capability for later edits. The
parent post's comment counter is bumped after the row commits.

Parameters:
  - context: context.Context
  - postID: string
  - input: CreateInput

Returns:
  - *Comment: The created entity, digest stripped
  - error: NotFound if the post is missing, persistence failures
*/
func (service *Service) CreateComment(context context.Context, postID string, input CreateInput) (*Comment, error) {
	if err := service.posts.Exists(context, postID); err != nil {
		return nil, err
	}

	digest, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	comment := &Comment{
		ID:             uuid.New(),
		PostID:         postID,
		Nickname:       input.Nickname,
		Content:        input.Content,
		PasswordDigest: digest,
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	if err := service.posts.IncrementCommentCount(context, postID); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
	)

	return sanitize(comment), nil
}

/*
UpdateComment modifies a comment after verifying its password.

Parameters:
  - context: context.Context
  - id: string
  - password: string (Plaintext capability)
  - input: UpdateInput (nil pointers keep stored values)

Returns:
  - *Comment: The updated entity, digest stripped
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) UpdateComment(context context.Context, id, password string, input UpdateInput) (*Comment, error) {
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

	service.logger.Info("comment_updated", slog.String("comment_id", id))

	return sanitize(updated), nil
}

/*
DeleteComment removes a comment after password verification.

Parameters:
  - context: context.Context
  - id: string
  - password: string

Returns:
  - error: NotFound, Forbidden on password mismatch, persistence failures
*/
func (service *Service) DeleteComment(context context.Context, id, password string) error {
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

	service.logger.Info("comment_deleted", slog.String("comment_id", id))

	return nil
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
func sanitize(comment *Comment) *Comment {
	comment.PasswordDigest = ""
	return comment
}
