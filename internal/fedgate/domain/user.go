package domain

import "time"

type User struct {
	ID           string
	Username     string // unique natural key
	Email        string // optional, empty when the external principal has none
	PasswordHash string // argon2 encoded; empty for federated accounts
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
