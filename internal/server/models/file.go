package models

import "time"

// File describes an uploaded profile file. The content itself lives in
// object storage under StorageKey.
type File struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	Mime       string    `json:"mime"`
	StorageKey string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
