package domain

import "time"

type User struct {
	UserID      string
	Username    string
	Email       string
	DisplayName string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// CredentialVersion is filled by authentication and increases every time the
	// stored password hash is overwritten.
	CredentialVersion uint
}

// Credential is the stored password material of one user.
type Credential struct {
	UserID            string
	SaltedHash        []byte
	CredentialVersion uint
}

// VerificationCode is the single active email verification code for an email
// address, bound to the user that requested it.
type VerificationCode struct {
	Email  string
	UserID string
	Code   string
}
