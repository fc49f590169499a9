package auth

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// VerificationToken authorizes one registration attempt for one email
// address. The ID travels to the end user as lower-case hex and the
// record is deleted when registration consumes it.
type VerificationToken struct {
	ID        []byte
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
}
