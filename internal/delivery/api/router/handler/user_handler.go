package handler

import (
	"net/http"

	"quill/internal/delivery/api/response"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
}

// UserHandler serves account management for signed-in users.
type UserHandler struct {
	userUC usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{userUC: params.UserUC}
}

// UpdateUserRequest is the body of PATCH /users/:id. Omitted fields are unchanged.
type UpdateUserRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName" validate:"omitempty,min=1"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
}

// ListAll returns every active user. Admin only.
func (h *UserHandler) ListAll(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	users, err := h.userUC.ListAll(c.Request().Context(), claim)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, users)
}

// Get returns one user's public profile.
func (h *UserHandler) Get(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.userUC.GetByID(c.Request().Context(), claim, id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// Update applies a partial profile update.
func (h *UserHandler) Update(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err = h.userUC.UpdateByID(c.Request().Context(), claim, id, &usecase.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User updated successfully")
}

// Delete soft-deletes the account.
func (h *UserHandler) Delete(c echo.Context) error {
	claim, err := requireClaim(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.userUC.SoftDelete(c.Request().Context(), claim, id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Message(c, "User deleted successfully")
}
