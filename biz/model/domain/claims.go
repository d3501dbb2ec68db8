package domain

import "strconv"

type ClaimKey string

const (
	ClaimSubject           ClaimKey = "sub"
	ClaimUsername          ClaimKey = "username"
	ClaimEmail             ClaimKey = "email"
	ClaimDisplayName       ClaimKey = "display_name"
	ClaimAuthScheme        ClaimKey = "auth_scheme"
	ClaimCredentialVersion ClaimKey = "credential_version"
)

const AuthSchemeCookie = "cookie"

// Claims is the identity of an authenticated session. A Claims value is never
// modified in place once it has been handed out; use With to derive a new one.
type Claims map[ClaimKey]string

func NewClaims(u *User) Claims {
	return Claims{
		ClaimSubject:           u.UserID,
		ClaimUsername:          u.Username,
		ClaimEmail:             u.Email,
		ClaimDisplayName:       u.DisplayName,
		ClaimAuthScheme:        AuthSchemeCookie,
		ClaimCredentialVersion: strconv.FormatUint(uint64(u.CredentialVersion), 10),
	}
}

func (c Claims) Clone() Claims {
	out := make(Claims, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// With returns a copy of c where only key is replaced.
func (c Claims) With(key ClaimKey, value string) Claims {
	out := c.Clone()
	out[key] = value
	return out
}

func (c Claims) Subject() string {
	return c[ClaimSubject]
}

func (c Claims) Username() string {
	return c[ClaimUsername]
}

func (c Claims) Email() string {
	return c[ClaimEmail]
}

func (c Claims) DisplayName() string {
	return c[ClaimDisplayName]
}

func (c Claims) CredentialVersion() (uint, bool) {
	v, err := strconv.ParseUint(c[ClaimCredentialVersion], 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}

// Valid reports whether the claims identify a subject.
func (c Claims) Valid() bool {
	return c[ClaimSubject] != ""
}

func (c Claims) ToMap() map[string]string {
	out := make(map[string]string, len(c))
	for k, v := range c {
		out[string(k)] = v
	}
	return out
}

func ClaimsFromMap(m map[string]string) Claims {
	out := make(Claims, len(m))
	for k, v := range m {
		out[ClaimKey(k)] = v
	}
	return out
}
