package auth

import (
	"time"

	"caseflow/actor"
)

// Account is the domain representation of an authenticated staff member.
// It mirrors the staff_accounts table and should not include JSON annotations
// so it can be reused by different presentation layers.
type Account struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Kind         actor.Kind
	Network      actor.Network
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor projects the account into the identity commands are executed as.
func (a Account) Actor() actor.Actor {
	return actor.Actor{ID: a.ID, Kind: a.Kind, Network: a.Network}
}

// RegisterRequest contains account registration data supplied by callers.
type RegisterRequest struct {
	Email    string        `json:"email"`
	Password string        `json:"password"`
	FullName string        `json:"full_name"`
	Kind     actor.Kind    `json:"kind"`
	Network  actor.Network `json:"network"`
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
