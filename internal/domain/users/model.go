package users

import "time"

// User es la identidad de quien inicia sesión. No se edita ni se borra.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
