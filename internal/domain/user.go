package domain

import "time"

// User is the account model for every caller: ticket owners, agents and admins.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the caller identity carried by this account.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role}
}
