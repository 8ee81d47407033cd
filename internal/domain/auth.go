package domain

import "time"

// Principal is the identity a verified token vouches for.
type Principal struct {
	ID        string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
