package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestorfincas/gestor-fincas-api/internal/api/middleware"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

type profileResponse struct {
	Success   bool             `json:"success"`
	Message   string           `json:"message"`
	User      *domain.Identity `json:"user"`
	Timestamp string           `json:"timestamp"`
}

// Profile returns the authenticated identity for the current request.
//
// @Summary      Get the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/profile [get]
func (h *ProfileHandler) Profile(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		// The RequireAuth guard runs before this handler; reaching this
		// branch means the route was wired without it.
		return c.JSON(http.StatusUnauthorized, messageResponse{
			Success: false,
			Message: "Unauthorized - Valid JWT token required",
		})
	}

	return c.JSON(http.StatusOK, profileResponse{
		Success:   true,
		Message:   "Profile data retrieved successfully",
		User:      identity,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
