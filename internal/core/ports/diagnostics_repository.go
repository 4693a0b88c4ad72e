package ports

import (
	"context"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// DiagnosticsRepository backs the database smoke-test endpoint.
type DiagnosticsRepository interface {
	RecentMessages(ctx context.Context, limit int) ([]domain.TestMessage, error)
	InsertMessage(ctx context.Context, message string) error
}
