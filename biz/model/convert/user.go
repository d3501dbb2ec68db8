package convert

import (
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/storage"
)

func UserDomainToRecord(u *domain.User) *storage.UserRecord {
	if u == nil {
		return nil
	}
	return &storage.UserRecord{
		GormModel: storage.GormModel{
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
		UserId:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}

func UserRecordToDomain(m *storage.UserRecord) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UserID:      m.UserId,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func CredentialRecordToDomain(m *storage.UserCredentialRecord) *domain.Credential {
	if m == nil {
		return nil
	}
	return &domain.Credential{
		UserID:            m.UserId,
		SaltedHash:        m.SaltedHash,
		CredentialVersion: m.CredentialVersion,
	}
}
