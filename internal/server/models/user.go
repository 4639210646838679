// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a stored account. PasswordHash is a bcrypt digest and is never
// serialised; handlers respond with UserView.
type User struct {
	ID           string
	Name         string
	Age          *int
	Gender       string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the redacted shape of a user returned by the API.
type UserView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       *int      `json:"age,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// View returns the redacted representation of u.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Gender:    u.Gender,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Views maps a slice of users to their redacted views.
func Views(users []*User) []UserView {
	out := make([]UserView, 0, len(users))
	for _, u := range users {
		out = append(out, u.View())
	}
	return out
}
