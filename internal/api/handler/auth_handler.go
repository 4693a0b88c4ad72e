package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestorfincas/gestor-fincas-api/internal/api/metrics"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/ports"
)

type AuthHandler struct {
	login ports.LoginUseCase
}

func NewAuthHandler(login ports.LoginUseCase) *AuthHandler {
	return &AuthHandler{login: login}
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{
			Success: false,
			Message: "Username and password are required",
		})
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("bad_request").Inc()
		return c.JSON(http.StatusBadRequest, messageResponse{
			Success: false,
			Message: "Username and password are required",
		})
	}

	result := h.login.Login(c.Request().Context(), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})

	if !result.Success {
		// Every failure, including store faults, renders the same generic
		// 401 so the response never distinguishes unknown users from wrong
		// passwords.
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return c.JSON(http.StatusUnauthorized, messageResponse{
			Success: false,
			Message: "Invalid credentials",
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Message: "Login successful",
		Token:   result.Token,
		User: &userSummary{
			ID:       result.User.ID,
			Username: result.User.Username,
		},
	})
}
