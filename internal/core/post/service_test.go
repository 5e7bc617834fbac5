// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jogakzip/api/internal/core/group"
	"github.com/jogakzip/api/internal/core/post"
	"github.com/jogakzip/api/internal/platform/apperr"
	"github.com/jogakzip/api/internal/platform/dberr"
	"github.com/jogakzip/api/internal/platform/sec"
)

// # In-Memory Fakes

type fakeRepository struct {
	posts         map[string]*post.Post
	commentCounts map[string]int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		posts:         make(map[string]*post.Post),
		commentCounts: make(map[string]int),
	}
}

func clone(p *post.Post) *post.Post {
	copied := *p
	copied.Tags = append([]string(nil), p.Tags...)
	return &copied
}

func (f *fakeRepository) List(_ context.Context, groupID string, filter post.Filter, limit, offset int) ([]*post.Post, int, error) {
	matches := make([]*post.Post, 0)
	for _, p := range f.posts {
		if p.GroupID == groupID && p.IsPublic == filter.IsPublic {
			matches = append(matches, clone(p))
		}
	}
	total := len(matches)
	if offset >= len(matches) {
		return []*post.Post{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}
	return matches[offset:end], total, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return clone(p), nil
}

func (f *fakeRepository) Create(_ context.Context, p *post.Post) error {
	p.CreatedAt = time.Now()
	f.posts[p.ID] = clone(p)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, id string, input post.UpdateInput) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	if input.Nickname != nil {
		p.Nickname = *input.Nickname
	}
	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Content != nil {
		p.Content = *input.Content
	}
	if input.IsPublic != nil {
		p.IsPublic = *input.IsPublic
	}
	if input.Tags != nil {
		p.Tags = append([]string(nil), input.Tags...)
	}
	return clone(p), nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.posts, id)
	return nil
}

func (f *fakeRepository) PushLike(_ context.Context, id string) (*post.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	p.LikeCount++
	return clone(p), nil
}

func (f *fakeRepository) CountComments(_ context.Context, postID string) (int, error) {
	return f.commentCounts[postID], nil
}

// fakeGroupDirectory records the calls the post service makes into the
// group domain.
type fakeGroupDirectory struct {
	digests    map[string]string
	postCounts map[string]int
	badges     map[string][]string
}

func newFakeGroupDirectory() *fakeGroupDirectory {
	return &fakeGroupDirectory{
		digests:    make(map[string]string),
		postCounts: make(map[string]int),
		badges:     make(map[string][]string),
	}
}

func (f *fakeGroupDirectory) AuthDigest(_ context.Context, groupID string) (string, error) {
	digest, ok := f.digests[groupID]
	if !ok {
		return "", dberr.ErrNotFound
	}
	return digest, nil
}

func (f *fakeGroupDirectory) IncrementPostCount(_ context.Context, groupID string) error {
	f.postCounts[groupID]++
	return nil
}

func (f *fakeGroupDirectory) GrantBadge(_ context.Context, groupID, name string) error {
	for _, held := range f.badges[groupID] {
		if held == name {
			return nil
		}
	}
	f.badges[groupID] = append(f.badges[groupID], name)
	return nil
}

func (f *fakeGroupDirectory) RecountBadges(_ context.Context, groupID string) (int, error) {
	return len(f.badges[groupID]), nil
}

// # Test Setup

const testGroupID = "group-1"

func newTestService(t *testing.T) (*post.Service, *fakeRepository, *fakeGroupDirectory) {
	t.Helper()

	repo := newFakeRepository()
	groups := newFakeGroupDirectory()

	digest, err := sec.HashPassword("group-pw")
	require.NoError(t, err)
	groups.digests[testGroupID] = digest

	service := post.NewService(repo, groups, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, repo, groups
}

func mustCreate(t *testing.T, service *post.Service, tags []string) *post.Post {
	t.Helper()
	created, err := service.CreatePost(context.Background(), testGroupID, post.CreateInput{
		Nickname: "dana",
		Title:    "first snow",
		Content:  "it snowed today",
		Password: "group-pw",
		IsPublic: true,
		Tags:     tags,
	})
	require.NoError(t, err)
	return created
}

// # Creation Gate Tests

func TestCreatePost_WrongGroupPassword_Forbidden(t *testing.T) {
	service, repo, groups := newTestService(t)

	_, err := service.CreatePost(context.Background(), testGroupID, post.CreateInput{
		Nickname: "dana",
		Title:    "first snow",
		Content:  "it snowed today",
		Password: "wrong",
	})

	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Empty(t, repo.posts)
	assert.Zero(t, groups.postCounts[testGroupID])
}

func TestCreatePost_CorrectPassword_IncrementsGroupCounter(t *testing.T) {
	service, repo, groups := newTestService(t)

	created := mustCreate(t, service, nil)

	assert.Empty(t, created.PasswordDigest)
	assert.Equal(t, 1, groups.postCounts[testGroupID])

	// The post carries its own digest of the same plaintext.
	stored := repo.posts[created.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, groups.digests[testGroupID], stored.PasswordDigest)
	assert.True(t, sec.CheckPasswordHash("group-pw", stored.PasswordDigest))
}

func TestCreatePost_MissingGroup_NotFound(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreatePost(context.Background(), "no-such-group", post.CreateInput{
		Password: "group-pw",
	})

	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

// # Tag & Detail Tests

func TestCreatePost_TagRoundTrip(t *testing.T) {
	service, _, _ := newTestService(t)

	created := mustCreate(t, service, []string{"winter", "family"})

	detail, err := service.GetPostDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"winter", "family"}, detail.Tags)
}

func TestUpdatePost_ReplacesTagSet(t *testing.T) {
	service, _, _ := newTestService(t)
	created := mustCreate(t, service, []string{"winter", "family"})

	updated, err := service.UpdatePost(context.Background(), created.ID, "group-pw", post.UpdateInput{
		Tags: []string{"family", "travel"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"family", "travel"}, updated.Tags)
}

func TestGetPostDetail_LiveCommentCount(t *testing.T) {
	service, repo, _ := newTestService(t)
	created := mustCreate(t, service, nil)

	// Denormalized counter is stale; the live count wins on detail.
	repo.commentCounts[created.ID] = 7

	detail, err := service.GetPostDetail(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, detail.CommentCount)
}

// # Lifecycle Gate Tests

func TestUpdatePost_PasswordGate(t *testing.T) {
	service, _, _ := newTestService(t)
	created := mustCreate(t, service, nil)

	newTitle := "second snow"

	_, err := service.UpdatePost(context.Background(), created.ID, "wrong", post.UpdateInput{Title: &newTitle})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.UpdatePost(context.Background(), created.ID, "group-pw", post.UpdateInput{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
}

func TestDeletePost_PasswordGate(t *testing.T) {
	service, repo, _ := newTestService(t)
	created := mustCreate(t, service, nil)

	err := service.DeletePost(context.Background(), created.ID, "wrong")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Contains(t, repo.posts, created.ID)

	require.NoError(t, service.DeletePost(context.Background(), created.ID, "group-pw"))
	assert.NotContains(t, repo.posts, created.ID)
}

// # Badge Tests

func TestPushLike_ThresholdGrantsBadgeToOwningGroup(t *testing.T) {
	service, repo, groups := newTestService(t)
	created := mustCreate(t, service, nil)

	repo.posts[created.ID].LikeCount = 9999
	require.NoError(t, service.PushLike(context.Background(), created.ID))

	assert.Equal(t, []string{group.BadgePostLikes10K}, groups.badges[testGroupID])

	// Repeated likes past the threshold never duplicate the badge.
	require.NoError(t, service.PushLike(context.Background(), created.ID))
	assert.Len(t, groups.badges[testGroupID], 1)
}

func TestPushLike_BelowThreshold_NoBadge(t *testing.T) {
	service, _, groups := newTestService(t)
	created := mustCreate(t, service, nil)

	require.NoError(t, service.PushLike(context.Background(), created.ID))
	assert.Empty(t, groups.badges[testGroupID])
}

// # Access Check Tests

func TestVerifyPassword_PrivatePost(t *testing.T) {
	service, repo, _ := newTestService(t)
	created := mustCreate(t, service, nil)
	repo.posts[created.ID].IsPublic = false

	require.NoError(t, service.VerifyPassword(context.Background(), created.ID, "group-pw"))

	err := service.VerifyPassword(context.Background(), created.ID, "wrong")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}
