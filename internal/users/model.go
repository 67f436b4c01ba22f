package users

import "time"

// User is a registered account. PasswordHash never leaves the package in responses.
type User struct {
	ID           string
	Email        string
	Username     string
	FullName     string
	PictureURL   string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ListFilter narrows the admin user list.
type ListFilter struct {
	Search string
	Role   string
	Limit  int
	Offset int
}
