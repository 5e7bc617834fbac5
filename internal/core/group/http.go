// Copyright (c) 2026 Jogakzip. All rights reserved.
// Author: dev@jogakzip.app

package group

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

// PostGateway serves the post endpoints nested under a group. It is
// implemented by the post domain's handler; the indirection keeps this
// package free of a post import.
type PostGateway interface {
	CreateInGroup(writer http.ResponseWriter, request *http.Request)
	ListInGroup(writer http.ResponseWriter, request *http.Request)
}

// Handler implements the HTTP layer for group operations.
type Handler struct {
	service *Service
	posts   PostGateway
}

// NewHandler constructs a new group [Handler].
func NewHandler(service *Service, posts PostGateway) *Handler {
	return &Handler{service: service, posts: posts}
}

// Routes returns a [chi.Router] configured with group-related endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/", handler.listGroups)
	router.Get("/{id}", handler.getGroup)
	router.Get("/{id}/is-public", handler.getVisibility)

	// ## Lifecycle (Password-Gated)
	router.Post("/", handler.createGroup)
	router.Put("/{id}", handler.updateGroup)
	router.Delete("/{id}", handler.deleteGroup)

	// ## Access & Social
	router.Post("/{id}/verify-password", handler.verifyPassword)
	router.Post("/{id}/like", handler.pushLike)

	// ## Nested Posts
	router.Post("/{id}/posts", handler.posts.CreateInGroup)
	router.Get("/{id}/posts", handler.posts.ListInGroup)

	return router
}

// # Group Endpoints

/*
GET /api/v1/groups.

Description: Retrieves a paginated list of groups filtered by visibility,
with optional keyword search on the name.

Request:
  - page, pageSize: int
  - sortBy: string (latest | mostPosted | mostLiked)
  - keyword: string (Substring match on name)
  - isPublic: bool (Defaults to true)

Response:
  - 200: Pagination envelope of []Group
*/
func (handler *Handler) listGroups(writer http.ResponseWriter, request *http.Request) {
	params := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Keyword:  queryParams.Get("keyword"),
		IsPublic: queryParams.Get("isPublic") != "false",
		Sort:     queryParams.Get("sortBy"),
	}

	groups, total, err := handler.service.ListGroups(request.Context(), filter, params.PageSize, params.Skip())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewEnvelope(params, total, groups))
}

/*
GET /api/v1/groups/{id}.

Description: Retrieves full group details. Badge eligibility is reconciled
as a side effect, so the returned badge list and badgeCount are current.

Response:
  - 200: Group: Detail including badges
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) getGroup(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	group, err := handler.service.GetGroupDetail(request.Context(), groupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
POST /api/v1/groups.

Request (Body):
  - name: string (Required, unique)
  - password: string (Required)
  - imageUrl, introduction: string (Optional)
  - isPublic: bool

Response:
  - 201: Group: Created entity
  - 400: Validation: Missing required fields
  - 422: Conflict: Name already in use
*/
func (handler *Handler) createGroup(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("name", input.Name).MaxLen("name", input.Name, 100)
	v.Required("password", input.Password)

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.CreateGroup(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}

// updateGroupRequest is the PUT body: the owner's password plus the fields
// to change. Absent fields keep their stored values.
type updateGroupRequest struct {
	Password string `json:"password"`
	UpdateInput
}

/*
PUT /api/v1/groups/{id}.

Request (Body):
  - password: string (Required, must match)
  - name, imageUrl, introduction: string (Optional)
  - isPublic: bool (Optional)

Response:
  - 200: Group: Updated entity
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) updateGroup(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	var input updateGroupRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("password", input.Password)
	if input.Name != nil {
		v.Required("name", *input.Name).MaxLen("name", *input.Name, 100)
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.UpdateGroup(request.Context(), groupID, input.Password, input.UpdateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

// passwordRequest is the shared body shape for delete and verify endpoints.
type passwordRequest struct {
	Password string `json:"password"`
}

/*
DELETE /api/v1/groups/{id}.

Description: Deletes the group, its posts, their comments, and their tag
associations in one transaction.

Request (Body):
  - password: string (Required, must match)

Response:
  - 204: No Content
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) deleteGroup(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

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

	if err := handler.service.DeleteGroup(request.Context(), groupID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Access & Social Endpoints

/*
POST /api/v1/groups/{id}/verify-password.

Response:
  - 200: Message: Password verified (public groups always verify)
  - 403: Forbidden: Password mismatch
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) verifyPassword(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	var input passwordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.VerifyPassword(request.Context(), groupID, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Password verified"})
}

/*
POST /api/v1/groups/{id}/like.

Description: Increments the like counter and reconciles badges, so the
10000-like badge appears on the like that crosses the threshold.

Response:
  - 200: Message: Like recorded
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) pushLike(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	if err := handler.service.PushLike(request.Context(), groupID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Like recorded"})
}

/*
GET /api/v1/groups/{id}/is-public.

Description: Lightweight visibility probe served through the Redis cache.

Response:
  - 200: {id, isPublic}
  - 404: NotFound: Group does not exist
*/
func (handler *Handler) getVisibility(writer http.ResponseWriter, request *http.Request) {
	groupID := requestutil.ID(request, "id")

	isPublic, err := handler.service.GetVisibility(request.Context(), groupID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"id": groupID, "isPublic": isPublic})
}
