// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogakzip/api/internal/core/comment"
	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/dberr"
)

// # In-Memory Fakes

type fakeRepository struct {
	comments map[string]*comment.Comment
	order    []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{comments: make(map[string]*comment.Comment)}
}

func clone(c *comment.Comment) *comment.Comment {
	copied := *c
	return &copied
}

func (f *fakeRepository) ListByPost(_ context.Context, postID string, limit, offset int) ([]*comment.Comment, int, error) {
	matches := make([]*comment.Comment, 0)
	for _, id := range f.order {
		if c, ok := f.comments[id]; ok && c.PostID == postID {
			matches = append(matches, clone(c))
		}
	}
	total := len(matches)
	if offset >= len(matches) {
		return []*comment.Comment{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return clone(c), nil
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	c.CreatedAt = time.Now()
	f.comments[c.ID] = clone(c)
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, id string, input comment.UpdateInput) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Nickname != nil {
		c.Nickname = *input.Nickname
	}
	if input.Content != nil {
		c.Content = *input.Content
	}
	return clone(c), nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

// fakePostDirectory tracks existence checks and counter bumps.
type fakePostDirectory struct {
	posts         map[string]bool
	commentCounts map[string]int
}

func newFakePostDirectory() *fakePostDirectory {
	return &fakePostDirectory{
		posts:         map[string]bool{testPostID: true},
		commentCounts: make(map[string]int),
	}
}

func (f *fakePostDirectory) Exists(_ context.Context, postID string) error {
	if !f.posts[postID] {
		return dberr.ErrNotFound
	}
	return nil
}

func (f *fakePostDirectory) IncrementCommentCount(_ context.Context, postID string) error {
	f.commentCounts[postID]++
	return nil
}

// # Test Setup

const testPostID = "post-1"

func newTestService(t *testing.T) (*comment.Service, *fakeRepository, *fakePostDirectory) {
	t.Helper()
	repo := newFakeRepository()
	posts := newFakePostDirectory()
	service := comment.NewService(repo, posts, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, repo, posts
}

func mustCreate(t *testing.T, service *comment.Service, nickname, password string) *comment.Comment {
	t.Helper()
	created, err := service.CreateComment(context.Background(), testPostID, comment.CreateInput{
		Nickname: nickname,
		Content:  "so pretty",
		Password: password,
	})
	require.NoError(t, err)
	return created
}

// # Creation Tests

func TestCreateComment_BumpsParentCounter(t *testing.T) {
	service, repo, posts := newTestService(t)

	created := mustCreate(t, service, "dana", "pw")

	assert.Empty(t, created.PasswordDigest)
	assert.Equal(t, 1, posts.commentCounts[testPostID])

	stored := repo.comments[created.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.PasswordDigest)
	assert.NotEqual(t, "pw", stored.PasswordDigest)
}

func TestCreateComment_MissingPost_NotFound(t *testing.T) {
	service, repo, posts := newTestService(t)

	_, err := service.CreateComment(context.Background(), "no-such-post", comment.CreateInput{
		Nickname: "dana",
		Content:  "hello",
		Password: "pw",
	})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.Empty(t, repo.comments)
	assert.Empty(t, posts.commentCounts)
}

// # Lifecycle Gate Tests

func TestUpdateComment_PasswordGate(t *testing.T) {
	service, _, _ := newTestService(t)
	created := mustCreate(t, service, "dana", "pw")

	newContent := "edited remark"

	_, err := service.UpdateComment(context.Background(), created.ID, "wrong", comment.UpdateInput{Content: &newContent})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdateComment(context.Background(), created.ID, "pw", comment.UpdateInput{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, newContent, updated.Content)
	assert.Equal(t, "dana", updated.Nickname) // nil -> kept
}

func TestDeleteComment_PasswordGate(t *testing.T) {
	service, repo, _ := newTestService(t)
	created := mustCreate(t, service, "dana", "pw")

	err := service.DeleteComment(context.Background(), created.ID, "wrong")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Contains(t, repo.comments, created.ID)

	require.NoError(t, service.DeleteComment(context.Background(), created.ID, "pw"))
	assert.NotContains(t, repo.comments, created.ID)
}

// # Listing Tests

func TestListComments_PaginatesAndStripsDigests(t *testing.T) {
	service, _, _ := newTestService(t)
	for i := 0; i < 5; i++ {
		mustCreate(t, service, "dana", "pw")
	}

	page, total, err := service.ListComments(context.Background(), testPostID, 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, total)
	assert.Len(t, page, 2)
	for _, c := range page {
		assert.Empty(t, c.PasswordDigest)
	}

	// A page past the end returns an empty, non-nil slice.
	empty, total, err := service.ListComments(context.Background(), testPostID, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
