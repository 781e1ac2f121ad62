package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labclass/scheduler/internal/service"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
}

// Login обменивает email/пароль на access-токен
func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: "Malformed request body",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    codeValidation,
			Message: "Email and password are required",
		})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    codeUnauthorized,
				Message: "Invalid email or password",
			})
		}
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		UserID:      user.ID,
		Name:        user.Name,
		IsAdmin:     user.IsAdmin,
	})
}
