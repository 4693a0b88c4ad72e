package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
	"github.com/gestorfincas/gestor-fincas-api/internal/core/ports"
)

const recentMessagesLimit = 5

// DBTestHandler handles GET /api/test-db — a database smoke test that reads
// the most recent marker rows and writes a fresh one on every call.
type DBTestHandler struct {
	diagnostics ports.DiagnosticsRepository
}

func NewDBTestHandler(diagnostics ports.DiagnosticsRepository) *DBTestHandler {
	return &DBTestHandler{diagnostics: diagnostics}
}

type dbTestResponse struct {
	Status          string               `json:"status"`
	Message         string               `json:"message"`
	ExistingRecords []domain.TestMessage `json:"existingRecords,omitempty"`
	Error           string               `json:"error,omitempty"`
	Timestamp       string               `json:"timestamp"`
}

// TestDB exercises the database round-trip.
//
// @Summary      Database smoke test
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  dbTestResponse
// @Router       /api/test-db [get]
func (h *DBTestHandler) TestDB(c echo.Context) error {
	ctx := c.Request().Context()
	now := time.Now().UTC()

	records, err := h.diagnostics.RecentMessages(ctx, recentMessagesLimit)
	if err != nil {
		return c.JSON(http.StatusOK, dbTestResponse{
			Status:    "error",
			Message:   "Database connection failed",
			Error:     err.Error(),
			Timestamp: now.Format(time.RFC3339),
		})
	}

	marker := fmt.Sprintf("Test connection at %s", now.Format(time.RFC3339))
	if err := h.diagnostics.InsertMessage(ctx, marker); err != nil {
		return c.JSON(http.StatusOK, dbTestResponse{
			Status:    "error",
			Message:   "Database connection failed",
			Error:     err.Error(),
			Timestamp: now.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, dbTestResponse{
		Status:          "success",
		Message:         "Database connection working correctly",
		ExistingRecords: records,
		Timestamp:       now.Format(time.RFC3339),
	})
}
