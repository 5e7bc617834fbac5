// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jogakzip/api/internal/platform/constants"
	requestutil "github.com/jogakzip/api/internal/platform/request"
	"github.com/jogakzip/api/internal/platform/respond"
	"github.com/jogakzip/api/internal/platform/validate"
	"github.com/jogakzip/api/pkg/pagination"
)

// # Handler Implementation

// CommentGateway serves the comment endpoints nested under a post. It is
// implemented by the comment domain's handler.
type CommentGateway interface {
	CreateUnderPost(writer http.ResponseWriter, request *http.Request)
	ListUnderPost(writer http.ResponseWriter, request *http.Request)
}

// Handler implements the HTTP layer for post operations.
type Handler struct {
	service  *Service
	comments CommentGateway
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service, comments CommentGateway) *Handler {
	return &Handler{service: service, comments: comments}
}

// Routes returns a [chi.Router] with the post endpoints that live under
// /posts. Creation and listing live under /groups/{id}/posts instead; see
// [Handler.CreateInGroup] and [Handler.ListInGroup].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Detail & Lifecycle
	router.Get("/{id}", handler.getPost)
	router.Put("/{id}", handler.updatePost)
	router.Delete("/{id}", handler.deletePost)

	// ## Access & Social
	router.Post("/{id}/verify-password", handler.verifyPassword)
	router.Post("/{id}/like", handler.pushLike)
	router.Get("/{id}/is-public", handler.getVisibility)

	// ## Nested Comments
	router.Post("/{id}/comments", handler.comments.CreateUnderPost)
	router.Get("/{id}/comments", handler.comments.ListUnderPost)

	return router
}

// # Group-Nested Endpoints

/*
POST /api/v1/groups/{id}/posts.

Description: Publishes a memory into a group. The password in the body is
the group's password; on success it also becomes the post's own password.

Request (Body):
  - nickname, title, content, password: string (Required)
  - imageUrl, location, moment, tags: optional
  - isPublic: bool

Response:
  - 201: Post: Created entity with tags
  - 400: Validation: Missing required fields
  - 403: Forbidden: Group password mismatch
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) CreateInGroup(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("nickname", input.Nickname).MaxLen("nickname", input.Nickname, 50)
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	v.Required("content", input.Content)
	v.Required("password", input.Password)
	v.Custom("tags", len(input.Tags) > 20, "Maximum 20 tags")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.CreatePost(request.Context(), groupID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
GET /api/v1/groups/{id}/posts.

Request:
  - page, pageSize: int
  - sortBy: string (latest | mostCommented | mostLiked)
  - keyword: string (Substring match on title)
  - isPublic: bool (Defaults to true)

Response:
  - 200: Pagination envelope of []Post
*/
func (handler *Handler) ListInGroup(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")
	params := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Keyword:  queryParams.Get("keyword"),
		IsPublic: queryParams.Get("isPublic") != "false",
		Sort:     queryParams.Get("sortBy"),
	}

	posts, total, err := handler.service.ListPosts(request.Context(), groupID, filter, params.PageSize, params.Skip())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewEnvelope(params, total, posts))
}

// # Post Endpoints

/*
GET /api/v1/posts/{id}.

Description: Full post detail with tags and a live comment count.

Response:
  - 200: Post
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) getPost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	post, err := handler.service.GetPostDetail(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// updatePostRequest is the PUT body: the post's password plus the fields to
// change. A provided tags list replaces the association set.
type updatePostRequest struct {
	Password string `json:"password"`
	UpdateInput
}

/*
PUT /api/v1/posts/{id}.

Response:
  - 200: Post: Updated entity
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) updatePost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	var input updatePostRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("password", input.Password)
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	v.Custom("tags", len(input.Tags) > 20, "Maximum 20 tags")

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.UpdatePost(request.Context(), postID, input.Password, input.UpdateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

// passwordRequest is the shared body shape for delete and verify endpoints.
type passwordRequest struct {
	Password string `json:"password"`
}

/*
DELETE /api/v1/posts/{id}.

Response:
  - 204: No Content
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) deletePost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if err := v.Required("password", input.Password).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePost(request.Context(), postID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Access & Social Endpoints

/*
POST /api/v1/posts/{id}/verify-password.

Response:
  - 200: Message: Password verified (public posts always verify)
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) verifyPassword(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.VerifyPassword(request.Context(), postID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Password verified"})
}

/*
POST /api/v1/posts/{id}/like.

Description: Increments the like counter. Crossing the threshold grants the
post-level badge to the owning group.

Response:
  - 200: Message: Like recorded
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) pushLike(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	if err := handler.service.PushLike(request.Context(), postID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Like recorded"})
}

/*
GET /api/v1/posts/{id}/is-public.

Response:
  - 200: {id, isPublic}
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) getVisibility(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	isPublic, err := handler.service.GetVisibility(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"id": postID, "isPublic": isPublic})
}
