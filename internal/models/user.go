package models

import "time"

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose this to the client
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Active       bool      `json:"active"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FullName joins the first and last name for display.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// AuthID implements auth.Subject.
func (u User) AuthID() string { return u.ID }

// AuthName implements auth.Subject.
func (u User) AuthName() string { return u.Username }

// UserView is the projection of a user returned by listing endpoints.
// The password hash is never part of it; createdAt is RFC 3339 or null.
type UserView struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FullName  string  `json:"fullName"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Active    bool    `json:"active"`
	IsAdmin   bool    `json:"isAdmin"`
	CreatedAt *string `json:"createdAt"`
}

// View projects the user for API responses.
func (u User) View() UserView {
	v := UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Active:    u.Active,
		IsAdmin:   u.IsAdmin,
	}
	if !u.CreatedAt.IsZero() {
		ts := u.CreatedAt.UTC().Format(time.RFC3339)
		v.CreatedAt = &ts
	}
	return v
}
