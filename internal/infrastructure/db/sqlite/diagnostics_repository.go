package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// DiagnosticsRepository reads and writes the test_table rows backing the
// database smoke-test endpoint.
type DiagnosticsRepository struct {
	db *sql.DB
}

func NewDiagnosticsRepository(store *Store) *DiagnosticsRepository {
	return &DiagnosticsRepository{db: store.DB()}
}

func (r *DiagnosticsRepository) RecentMessages(ctx context.Context, limit int) ([]domain.TestMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, message, created_at FROM test_table ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	messages := make([]domain.TestMessage, 0, limit)
	for rows.Next() {
		var (
			m         domain.TestMessage
			createdAt int64
		)
		if err := rows.Scan(&m.ID, &m.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("recent messages: %w", err)
		}
		m.CreatedAt = unixToTime(createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}

	return messages, nil
}

func (r *DiagnosticsRepository) InsertMessage(ctx context.Context, message string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO test_table (message, created_at) VALUES (?, ?)`,
		message, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
