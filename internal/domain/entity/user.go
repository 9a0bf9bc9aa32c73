package entity

import "time"

// User usuario local del portal (almacén propio, no ERPNext).
// Email se guarda normalizado (case-folded) y es único.
type User struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordSalt string // hex, 16 bytes aleatorios
	PasswordHash string // PBKDF2-SHA256 hex; nunca sale del dominio
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
