package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accountd/be/biz/model/domain"

	"github.com/redis/go-redis/v9"
)

const maxClaimsUpdateRetries = 16

var (
	ErrClaimsNotFound = errors.New("session claims not found")
	ErrClaimsConflict = errors.New("session claims update conflict")
)

// SessionClaimsRepository keeps the claim set of each session in one redis
// hash. Readers always see a whole claim set: writes go through MULTI/EXEC and
// read-modify-write cycles are guarded with WATCH.
type SessionClaimsRepository struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

func NewSessionClaimsRepository(rdb *redis.Client, prefix string, ttl time.Duration) *SessionClaimsRepository {
	return &SessionClaimsRepository{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *SessionClaimsRepository) Load(ctx context.Context, sessionID string) (domain.Claims, error) {
	m, err := r.rdb.HGetAll(ctx, r.key(sessionID)).Result()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return domain.ClaimsFromMap(m), nil
}

// Replace installs claims as the whole claim set of the session.
func (r *SessionClaimsRepository) Replace(ctx context.Context, sessionID string, claims domain.Claims) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		r.write(ctx, pipe, sessionID, claims)
		return nil
	})
	return err
}

// Update applies fn to the current claim set and installs the result. When
// another writer touched the session in between, fn runs again on the fresh
// value, so concurrent updates of different claims never overwrite each other.
func (r *SessionClaimsRepository) Update(ctx context.Context, sessionID string, fn func(domain.Claims) (domain.Claims, error)) (domain.Claims, error) {
	key := r.key(sessionID)

	var next domain.Claims
	txf := func(tx *redis.Tx) error {
		m, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(m) == 0 {
			return ErrClaimsNotFound
		}

		next, err = fn(domain.ClaimsFromMap(m))
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			r.write(ctx, pipe, sessionID, next)
			return nil
		})
		return err
	}

	for i := 0; i < maxClaimsUpdateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return next, nil
	}
	return nil, ErrClaimsConflict
}

// Refresh extends the claim set to a full ttl. It reports false when the
// session has no claims.
func (r *SessionClaimsRepository) Refresh(ctx context.Context, sessionID string) (bool, error) {
	return r.rdb.Expire(ctx, r.key(sessionID), r.ttl).Result()
}

func (r *SessionClaimsRepository) Clear(ctx context.Context, sessionID string) error {
	return r.rdb.Del(ctx, r.key(sessionID)).Err()
}

func (r *SessionClaimsRepository) write(ctx context.Context, pipe redis.Pipeliner, sessionID string, claims domain.Claims) {
	key := r.key(sessionID)
	pipe.Del(ctx, key)
	if len(claims) == 0 {
		return
	}
	values := make([]interface{}, 0, len(claims)*2)
	for k, v := range claims {
		values = append(values, string(k), v)
	}
	pipe.HSet(ctx, key, values...)
	pipe.Expire(ctx, key, r.ttl)
}

func (r *SessionClaimsRepository) key(sessionID string) string {
	return fmt.Sprintf("%s%s", r.prefix, sessionID)
}
