package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash []byte
	Role         UserRole
	Active       bool
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
