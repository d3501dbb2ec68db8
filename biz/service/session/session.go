package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"accountd/be/biz/config"
	"accountd/be/biz/dal/repo"
	"accountd/be/biz/db/redis"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrUnknownField = errors.New("unknown setting field")

// Transport installs and reads the claim set of one session. Replace and
// Update must be atomic: readers see either the old or the new set, never a mix.
type Transport interface {
	Load(ctx context.Context, sessionID string) (domain.Claims, error)
	Replace(ctx context.Context, sessionID string, claims domain.Claims) error
	Update(ctx context.Context, sessionID string, fn func(domain.Claims) (domain.Claims, error)) (domain.Claims, error)
	Refresh(ctx context.Context, sessionID string) (bool, error)
	Clear(ctx context.Context, sessionID string) error
}

type Manager struct {
	transport Transport
}

func New(transport Transport) *Manager {
	return &Manager{transport: transport}
}

func NewDefault() *Manager {
	conf := config.GetSessionConf()
	prefix := conf.ClaimsPrefix
	if prefix == "" {
		prefix = "auth_claims:"
	}
	maxAge := conf.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * 3600
	}
	return New(repo.NewSessionClaimsRepository(redis.GetRedisClient(), prefix, time.Duration(maxAge)*time.Second))
}

// RotateClaim returns a copy of cur where only the claim mirroring field holds
// value. cur itself is left untouched.
func RotateClaim(cur domain.Claims, field domain.SettingField, value string) (domain.Claims, error) {
	key := field.ClaimKey()
	if key == "" {
		return nil, ErrUnknownField
	}
	return cur.With(key, value), nil
}

// Issue replaces whatever the session held with the claims of a freshly
// authenticated user.
func (m *Manager) Issue(ctx context.Context, sessionID string, u *domain.User) (domain.Claims, errs.Error) {
	if sessionID == "" {
		return nil, errs.Unauthenticated
	}
	claims := domain.NewClaims(u)
	if err := m.transport.Replace(ctx, sessionID, claims); err != nil {
		hlog.CtxErrorf(ctx, "replace session claims err: %v", err)
		return nil, errs.PersistenceError
	}
	return claims, nil
}

// Load returns the claims of the session, or errs.Unauthenticated when the
// session carries none.
func (m *Manager) Load(ctx context.Context, sessionID string) (domain.Claims, errs.Error) {
	if sessionID == "" {
		return nil, errs.Unauthenticated
	}
	claims, err := m.transport.Load(ctx, sessionID)
	if err != nil {
		hlog.CtxErrorf(ctx, "load session claims err: %v", err)
		return nil, errs.PersistenceError
	}
	if !claims.Valid() {
		return nil, errs.Unauthenticated
	}
	return claims, nil
}

// Rotate installs RotateClaim(current, field, value) as the new claim set of
// the session.
func (m *Manager) Rotate(ctx context.Context, sessionID string, field domain.SettingField, value string) (domain.Claims, errs.Error) {
	return m.update(ctx, sessionID, func(c domain.Claims) (domain.Claims, error) {
		return RotateClaim(c, field, value)
	})
}

// SetCredentialVersion keeps the current session valid after its own password
// change.
func (m *Manager) SetCredentialVersion(ctx context.Context, sessionID string, version uint) (domain.Claims, errs.Error) {
	return m.update(ctx, sessionID, func(c domain.Claims) (domain.Claims, error) {
		return c.With(domain.ClaimCredentialVersion, strconv.FormatUint(uint64(version), 10)), nil
	})
}

func (m *Manager) update(ctx context.Context, sessionID string, fn func(domain.Claims) (domain.Claims, error)) (domain.Claims, errs.Error) {
	if sessionID == "" {
		return nil, errs.Unauthenticated
	}
	claims, err := m.transport.Update(ctx, sessionID, func(c domain.Claims) (domain.Claims, error) {
		if !c.Valid() {
			return nil, repo.ErrClaimsNotFound
		}
		return fn(c)
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrClaimsNotFound):
			return nil, errs.Unauthenticated
		case errors.Is(err, ErrUnknownField):
			return nil, errs.InvalidSettingType
		}
		hlog.CtxErrorf(ctx, "update session claims err: %v", err)
		return nil, errs.PersistenceError
	}
	return claims, nil
}

// Refresh extends the lifetime of the claims together with the session.
func (m *Manager) Refresh(ctx context.Context, sessionID string) errs.Error {
	if sessionID == "" {
		return errs.Unauthenticated
	}
	ok, err := m.transport.Refresh(ctx, sessionID)
	if err != nil {
		hlog.CtxErrorf(ctx, "refresh session claims err: %v", err)
		return errs.PersistenceError
	}
	if !ok {
		return errs.Unauthenticated
	}
	return nil
}

// Clear drops every claim of the session.
func (m *Manager) Clear(ctx context.Context, sessionID string) errs.Error {
	if sessionID == "" {
		return nil
	}
	if err := m.transport.Clear(ctx, sessionID); err != nil {
		hlog.CtxErrorf(ctx, "clear session claims err: %v", err)
		return errs.PersistenceError
	}
	return nil
}
