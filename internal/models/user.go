// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import "time"

// User represents a registered account. Visitors browse anonymously;
// a user becomes the author of every post and comment they create.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	DisplayName  string    `json:"display_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
