package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/schoolday/core/internal/application/services"
	"github.com/schoolday/core/internal/domain/entities"
)

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
				})
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("user", claims.UserID)
			c.Set("user_role", claims.Role)
			c.Set("user_email", claims.Email)

			return next(c)
		}
	}
}

// requireRole checks if user has one of the required roles
func (s *Server) requireRole(roles ...entities.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRole, ok := c.Get("user_role").(entities.UserRole)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Role information not found")
			}

			for _, requiredRole := range roles {
				if userRole == requiredRole {
					return next(c)
				}
			}

			userID, _ := c.Get("user").(string)
			s.logger.LogSecurityEvent("insufficient_permissions",
				userID,
				c.RealIP(),
				map[string]interface{}{
					"required_roles": roles,
					"user_role":      userRole,
					"endpoint":       c.Request().URL.Path,
				})

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// mapDomainError translates domain sentinel errors into HTTP status codes.
// Unknown errors stay internal.
func mapDomainError(err error, code *int) interface{} {
	switch {
	case errors.Is(err, entities.ErrEmptyMessage):
		*code = http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrHomeworkNotFound),
		errors.Is(err, entities.ErrEntryNotFound):
		*code = http.StatusNotFound
	case errors.Is(err, entities.ErrUnauthorized):
		*code = http.StatusUnauthorized
	case errors.Is(err, entities.ErrInvalidRole),
		errors.Is(err, entities.ErrInvalidBatch),
		errors.Is(err, entities.ErrBatchRequired),
		errors.Is(err, entities.ErrInvalidThemeMode),
		errors.Is(err, entities.ErrInvalidFilter),
		errors.Is(err, entities.ErrInvalidInterval):
		*code = http.StatusBadRequest
	case errors.Is(err, entities.ErrThreadClosed):
		*code = http.StatusConflict
	}

	if *code == http.StatusInternalServerError {
		return map[string]string{"message": http.StatusText(*code)}
	}
	return map[string]string{"message": err.Error()}
}
