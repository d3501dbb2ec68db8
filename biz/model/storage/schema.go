package storage

import "accountd/be/biz/model/domain"

// AccountSchema maps account fields to table columns. Each store gets its own
// copy at construction time.
type AccountSchema struct {
	UserTable       string
	CredentialTable string

	UserIDColumn      string
	UsernameColumn    string
	EmailColumn       string
	DisplayNameColumn string
}

func DefaultAccountSchema() AccountSchema {
	return AccountSchema{
		UserTable:         UserRecord{}.TableName(),
		CredentialTable:   UserCredentialRecord{}.TableName(),
		UserIDColumn:      "user_id",
		UsernameColumn:    "username",
		EmailColumn:       "email",
		DisplayNameColumn: "display_name",
	}
}

// Column returns the column that stores field, or "" for unknown fields.
func (s AccountSchema) Column(field domain.SettingField) string {
	switch field {
	case domain.SettingDisplayName:
		return s.DisplayNameColumn
	case domain.SettingUsername:
		return s.UsernameColumn
	case domain.SettingEmail:
		return s.EmailColumn
	}
	return ""
}
