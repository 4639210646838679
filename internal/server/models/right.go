package models

import "time"

// Right is a named permission tagged to a user.
type Right struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RightOwner is the part of a user embedded in a right listing.
type RightOwner struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RightWithUser is a right joined with its owner's name.
type RightWithUser struct {
	Right
	User RightOwner `json:"user"`
}
