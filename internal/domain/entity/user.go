package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleCajero  = "cajero"
	RoleGerente = "gerente"
)

// User es quien opera el back-office; cada entrada del libro lleva su id.
type User struct {
	ID           string
	Email        string // único
	Name         string
	PasswordHash string // bcrypt
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
