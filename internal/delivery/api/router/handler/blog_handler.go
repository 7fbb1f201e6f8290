package handler

import (
	"net/http"

	"quill/internal/delivery/api/response"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BlogHandlerParams holds dependencies for BlogHandler, injected by Fx.
type BlogHandlerParams struct {
	fx.In

	BlogUC usecase.BlogUsecase
}

// BlogHandler serves blog posts.
type BlogHandler struct {
	blogUC usecase.BlogUsecase
}

// NewBlogHandler is the constructor for BlogHandler.
func NewBlogHandler(params BlogHandlerParams) *BlogHandler {
	return &BlogHandler{blogUC: params.BlogUC}
}

// CreateBlogRequest is the body of POST /blogs.
type CreateBlogRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdateBlogRequest is the body of PATCH /blogs/:id. The author is not patchable.
type UpdateBlogRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content"`
}

// Create publishes a post as the signed-in user.
func (h *BlogHandler) Create(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req CreateBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	blog, err := h.blogUC.Create(c.Request().Context(), claim, &usecase.CreateBlogInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, blog)
}

// List returns every post. No authentication required.
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.blogUC.ListAll(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, blogs)
}

// ListMine returns the signed-in user's posts.
func (h *BlogHandler) ListMine(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	blogs, err := h.blogUC.ListMine(c.Request().Context(), claim)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, blogs)
}

// Get returns one post.
func (h *BlogHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	blog, err := h.blogUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, blog)
}

// Update edits a post owned by the signed-in user, or any post for an admin.
func (h *BlogHandler) Update(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateBlogRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	blog, err := h.blogUC.Update(c.Request().Context(), claim, id, &usecase.UpdateBlogInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, blog)
}

// Remove deletes a post.
func (h *BlogHandler) Remove(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.blogUC.Remove(c.Request().Context(), claim, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "Blog deleted successfully")
}
