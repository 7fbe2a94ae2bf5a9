package models

import "time"

// UserRole define qué operaciones puede ejecutar un usuario. Solo los
// administradores ingresan resultados, togglean sanciones y cierran la
// temporada; el motor de posiciones no verifica roles por sí mismo.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
