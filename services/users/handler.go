package users

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	jwtmw "github.com/mynews-app/backend/middleware/jwt"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/zap"
)

type Handler struct {
	service *Service
	logger  *logging.Service
}

func NewHandler(service *Service, logger *logging.Service) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Me returns the authenticated caller's profile.
func (h *Handler) Me(c echo.Context) error {
	userID := jwtmw.UserID(c)
	if userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}

	profile, err := h.service.Profile(userID)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, profile)
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	default:
		h.logger.Error("profile lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}

// GetByEmail returns a public profile by address.
func (h *Handler) GetByEmail(c echo.Context) error {
	profile, err := h.service.ProfileByEmail(c.Param("email"))
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, profile)
	case errors.Is(err, ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	default:
		h.logger.Error("profile lookup failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
	}
}
