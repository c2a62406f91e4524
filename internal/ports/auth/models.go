package auth

import "time"

// Claims representa la información extraída de la sesión.
type Claims struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}
