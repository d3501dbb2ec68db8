package repo

import (
	"context"
	"errors"

	"accountd/be/biz/model/convert"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *AccountRepository) credentials(db *gorm.DB) *gorm.DB {
	return db.Model(&storage.UserCredentialRecord{}).Table(r.schema.CredentialTable)
}

func (r *AccountRepository) GetCredentialHash(ctx context.Context, userID string) (*domain.Credential, error) {
	m, err := r.findCredential(r.db.WithContext(ctx), userID, false)
	if err != nil || m == nil {
		return nil, err
	}
	return convert.CredentialRecordToDomain(m), nil
}

// SetCredentialHash replaces the hash under a row lock and bumps the version,
// so every session issued with the previous version can be told apart.
func (r *AccountRepository) SetCredentialHash(ctx context.Context, userID string, saltedHash []byte) (uint, error) {
	var version uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := r.findCredential(tx, userID, true)
		if err != nil {
			return err
		}

		if m == nil {
			m = &storage.UserCredentialRecord{
				UserId:            userID,
				SaltedHash:        saltedHash,
				CredentialVersion: 1,
			}
			if err := tx.Table(r.schema.CredentialTable).Create(m).Error; err != nil {
				return err
			}
			version = m.CredentialVersion
			return nil
		}

		version = m.CredentialVersion + 1
		return r.credentials(tx).
			Where(clause.Eq{Column: r.schema.UserIDColumn, Value: userID}).
			Updates(map[string]any{
				"salted_hash":        saltedHash,
				"credential_version": version,
			}).Error
	})
	if err != nil {
		return 0, translate(err)
	}
	return version, nil
}

func (r *AccountRepository) findCredential(db *gorm.DB, userID string, lock bool) (*storage.UserCredentialRecord, error) {
	q := r.credentials(db)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m storage.UserCredentialRecord
	err := q.Where(clause.Eq{Column: r.schema.UserIDColumn, Value: userID}).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
