// Package handler contains the echo handlers of the API delivery.
package handler

import (
	"strconv"

	"quill/internal/delivery/api/middleware"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("request body is not valid JSON")
	}

	if err := c.Validate(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.ErrValidationFailed.WithDetails("id must be a positive integer")
	}

	return id, nil
}

// requireClaim returns the claim set by the authentication middleware.
func requireClaim(c echo.Context) (entity.SessionClaim, error) {
	claim, ok := middleware.GetClaim(c)
	if !ok {
		return entity.SessionClaim{}, domainerrors.ErrUnauthenticated
	}

	return claim, nil
}
