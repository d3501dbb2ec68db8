package domain

import "strings"

// SettingField is a user-editable profile attribute.
type SettingField string

const (
	SettingDisplayName SettingField = "displayName"
	SettingUsername    SettingField = "username"
	SettingEmail       SettingField = "email"
)

var settingFields = []SettingField{SettingDisplayName, SettingUsername, SettingEmail}

// ParseSettingField matches name case-insensitively, so "Displayname" and
// "displayName" are the same field.
func ParseSettingField(name string) (SettingField, bool) {
	for _, f := range settingFields {
		if strings.EqualFold(name, string(f)) {
			return f, true
		}
	}
	return "", false
}

// ClaimKey returns the session claim that mirrors the field.
func (f SettingField) ClaimKey() ClaimKey {
	switch f {
	case SettingDisplayName:
		return ClaimDisplayName
	case SettingUsername:
		return ClaimUsername
	case SettingEmail:
		return ClaimEmail
	}
	return ""
}

// Unique reports whether the store enforces uniqueness of the field.
func (f SettingField) Unique() bool {
	return f == SettingUsername || f == SettingEmail
}
