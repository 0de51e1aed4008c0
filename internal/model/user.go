package model

import "time"

// User represents an authentication user. The service runs with a single
// admin account created on first start.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
