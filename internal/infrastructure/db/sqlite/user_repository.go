package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/gestorfincas/gestor-fincas-api/internal/core/domain"
)

// UserRepository persists users in the users table.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{db: store.DB()}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?`,
		username,
	)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx,
		`SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?`,
		id,
	)
}

// Save inserts user when its ID is zero, assigning the fresh auto-increment
// id, and otherwise updates the existing row in place, refreshing
// updated_at. A username collision maps to domain.ErrUserExists.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	role := user.Role
	if role == "" {
		role = domain.RoleResident
	}

	if user.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO users (username, password, role, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			user.Username, user.Password, role, now.Unix(), now.Unix(),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, domain.ErrUserExists
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert user: %w", err)
		}

		saved := *user
		saved.ID = id
		saved.Role = role
		saved.CreatedAt = now
		saved.UpdatedAt = now
		return &saved, nil
	}

	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, password = ?, role = ?, updated_at = ? WHERE id = ?`,
		user.Username, user.Password, role, now.Unix(), user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Password, &u.Role, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.CreatedAt = unixToTime(createdAt)
	u.UpdatedAt = unixToTime(updatedAt)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY ||
			code == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
