package domain

import (
	"errors"
	"time"
)

const (
	RoleResident      = "Resident"
	RoleAdministrator = "Administrator"
)

var ErrInvalidCredentials = errors.New("Invalid username or password")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// User models an account in the users table. Password holds the stored value
// as-is: this system compares plaintext passwords byte-for-byte and performs
// no hashing.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Credentials is the transient username/password pair submitted on a login
// attempt. Never persisted.
type Credentials struct {
	Username string
	Password string
}
