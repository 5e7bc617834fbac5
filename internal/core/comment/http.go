// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/jogakzip/api/internal/platform/request"
	"github.com/jogakzip/api/internal/platform/respond"
	"github.com/jogakzip/api/internal/platform/validate"
	"github.com/jogakzip/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comment operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the comment endpoints that live under
// /comments. Creation and listing live under /posts/{id}/comments; see
// [Handler.CreateUnderPost] and [Handler.ListUnderPost].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Put("/{id}", handler.updateComment)
	router.Delete("/{id}", handler.deleteComment)

	return router
}

// # Post-Nested Endpoints

/*
POST /api/v1/posts/{id}/comments.

Request (Body):
  - nickname, content, password: string (Required)

Response:
  - 201: Comment: Created entity
  - 400: Validation: Missing required fields
  - 404: NotFound: Post does not exist
*/
func (handler *Handler) CreateUnderPost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("nickname", input.Nickname).MaxLen("nickname", input.Nickname, 50)
	v.Required("content", input.Content)
	v.Required("password", input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), postID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/posts/{id}/comments.

Request:
  - page, pageSize: int

Response:
  - 200: Pagination envelope of []Comment, oldest first
*/
func (handler *Handler) ListUnderPost(writer http.ResponseWriter, request *http.Request) {
	postID := requestutil.ID(request, "id")
	params := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), postID, params.PageSize, params.Skip())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewEnvelope(params, total, comments))
}

// # Comment Endpoints

// updateCommentRequest is the PUT body: the comment's password plus the
// fields to change.
type updateCommentRequest struct {
	Password string `json:"password"`
	UpdateInput
}

/*
PUT /api/v1/comments/{id}.

Response:
  - 200: Comment: Updated entity
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Comment does not exist
*/
func (handler *Handler) updateComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

	var input updateCommentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if err := v.Required("password", input.Password).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.UpdateComment(request.Context(), commentID, input.Password, input.UpdateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// passwordRequest is the body shape for the delete endpoint.
type passwordRequest struct {
	Password string `json:"password"`
}

/*
DELETE /api/v1/comments/{id}.

Response:
  - 204: No Content
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Comment does not exist
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	commentID := requestutil.ID(request, "id")

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

	if err := handler.service.DeleteComment(request.Context(), commentID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
