package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClaims(t *testing.T) {
	c := NewClaims(&User{
		UserID:            "1",
		Username:          "alice",
		Email:             "a@x.com",
		DisplayName:       "Alice",
		CredentialVersion: 3,
	})

	assert.Equal(t, "1", c.Subject())
	assert.Equal(t, "alice", c.Username())
	assert.Equal(t, "a@x.com", c.Email())
	assert.Equal(t, "Alice", c.DisplayName())
	assert.Equal(t, AuthSchemeCookie, c[ClaimAuthScheme])
	v, ok := c.CredentialVersion()
	assert.True(t, ok)
	assert.Equal(t, uint(3), v)
	assert.True(t, c.Valid())
}

func TestClaims_WithLeavesOriginalUntouched(t *testing.T) {
	c := Claims{ClaimSubject: "1", ClaimUsername: "alice", ClaimEmail: "a@x.com"}
	next := c.With(ClaimUsername, "bob")

	assert.Equal(t, "alice", c.Username())
	assert.Equal(t, Claims{ClaimSubject: "1", ClaimUsername: "bob", ClaimEmail: "a@x.com"}, next)
}

func TestClaims_CredentialVersionMalformed(t *testing.T) {
	_, ok := Claims{ClaimCredentialVersion: "x"}.CredentialVersion()
	assert.False(t, ok)
	_, ok = Claims{}.CredentialVersion()
	assert.False(t, ok)
	assert.False(t, Claims{}.Valid())
}

func TestClaims_MapRoundTrip(t *testing.T) {
	c := Claims{ClaimSubject: "1", ClaimDisplayName: "A"}
	assert.Equal(t, c, ClaimsFromMap(c.ToMap()))
}

func TestParseSettingField(t *testing.T) {
	cases := []struct {
		name  string
		want  SettingField
		valid bool
	}{
		{"displayName", SettingDisplayName, true},
		{"Displayname", SettingDisplayName, true},
		{"username", SettingUsername, true},
		{"Username", SettingUsername, true},
		{"EMAIL", SettingEmail, true},
		{"password", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseSettingField(tc.name)
			assert.Equal(t, tc.valid, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSettingField_ClaimKey(t *testing.T) {
	assert.Equal(t, ClaimDisplayName, SettingDisplayName.ClaimKey())
	assert.Equal(t, ClaimUsername, SettingUsername.ClaimKey())
	assert.Equal(t, ClaimEmail, SettingEmail.ClaimKey())
	assert.False(t, SettingDisplayName.Unique())
	assert.True(t, SettingUsername.Unique())
	assert.True(t, SettingEmail.Unique())
}
