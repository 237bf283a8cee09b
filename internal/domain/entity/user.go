package entity

import "time"

// Roles de usuario del back-office.
const (
	RoleAdmin  = "admin"
	RoleCajero = "cajero"
)

// User es un usuario del back-office (login con email/password).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | cajero
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
