package repo

import (
	"context"
	"errors"

	"accountd/be/biz/model/domain"
)

var (
	// ErrDuplicated is returned when a write collides with a unique index.
	ErrDuplicated = errors.New("duplicated key")
	ErrNotFound   = errors.New("record not found")
)

// AccountStore persists user records and their credential hashes. Lookups
// return (nil, nil) when nothing matches.
type AccountStore interface {
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User, saltedHash []byte) (*domain.User, error)
	UpdateField(ctx context.Context, userID string, field domain.SettingField, value string) error
	// UsernameExists and EmailExists compare with the store's collation and
	// ignore the row of excludeUserID, so an account never collides with itself.
	UsernameExists(ctx context.Context, username, excludeUserID string) (bool, error)
	EmailExists(ctx context.Context, email, excludeUserID string) (bool, error)

	GetCredentialHash(ctx context.Context, userID string) (*domain.Credential, error)
	// SetCredentialHash overwrites the stored hash and returns the new credential version.
	SetCredentialHash(ctx context.Context, userID string, saltedHash []byte) (uint, error)
}
