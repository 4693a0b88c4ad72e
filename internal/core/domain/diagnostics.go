package domain

import "time"

// TestMessage is a row of the test_table used by the database smoke test.
type TestMessage struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
