package controller

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	ctxUserIDKey  = "userID"
	ctxIsAdminKey = "isAdmin"
)

// AuthMiddleware проверяет access-токен и кладёт user_id в контекст запроса
func (h *Handler) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    codeUnauthorized,
				Message: "Authorization header is required",
			})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := h.authService.ParseToken(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    codeUnauthorized,
				Message: "Invalid or expired token",
			})
		}

		c.Set(ctxUserIDKey, claims.UserID)
		c.Set(ctxIsAdminKey, claims.IsAdmin)
		return next(c)
	}
}

// AdminMiddleware пускает дальше только администраторов.
// Должен стоять после AuthMiddleware.
func (h *Handler) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get(ctxIsAdminKey).(bool)
		if !ok || !isAdmin {
			return c.JSON(http.StatusForbidden, ErrorResponse{
				Code:    codeForbidden,
				Message: "Admin access required",
			})
		}
		return next(c)
	}
}

func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(ctxUserIDKey).(int64)
	return id
}
