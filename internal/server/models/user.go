package models

import "time"

// User is a stored account. PasswordHash is a bcrypt hash; the raw password
// never leaves the request that carried it.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the {id, username} pair returned by login and current-user.
type Identity struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
}

// Credentials is a login request body.
type Credentials struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is a registration request body.
type RegisterRequest struct {
	UserName       string `json:"username"`
	Password       string `json:"password"`
	VerifyPassword string `json:"verifyPassword"`
}
