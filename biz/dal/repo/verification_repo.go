package repo

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"accountd/be/biz/model/domain"

	"github.com/redis/go-redis/v9"
)

const (
	verificationFieldUserID   = "user_id"
	verificationFieldCode     = "code"
	verificationFieldAttempts = "attempts"

	defaultMaxAttempts = 5
)

// VerificationRepository stores at most one active email verification code per
// email address. A code is dropped after maxAttempts wrong guesses.
type VerificationRepository struct {
	rdb         *redis.Client
	maxAttempts int
}

func NewVerificationRepository(rdb *redis.Client, maxAttempts int) *VerificationRepository {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &VerificationRepository{rdb: rdb, maxAttempts: maxAttempts}
}

// Save replaces any code previously issued for the same email.
func (r *VerificationRepository) Save(ctx context.Context, vc domain.VerificationCode, ttl time.Duration) error {
	key := verificationKey(vc.Email)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			verificationFieldUserID, vc.UserID,
			verificationFieldCode, vc.Code,
		)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

// Consume reports whether code is the active code of email issued to userID.
// A matching code is deleted in the same transaction, so it can be used once.
// Every miss counts against the active code, whoever sent it.
func (r *VerificationRepository) Consume(ctx context.Context, vc domain.VerificationCode) (bool, error) {
	key := verificationKey(vc.Email)

	var ok bool
	txf := func(tx *redis.Tx) error {
		ok = false
		m, err := tx.HGetAll(ctx, key).Result()
		if err != nil {
			return err
		}
		if len(m) == 0 {
			return nil
		}

		match := m[verificationFieldUserID] == vc.UserID &&
			subtle.ConstantTimeCompare([]byte(m[verificationFieldCode]), []byte(vc.Code)) == 1
		attempts, _ := strconv.Atoi(m[verificationFieldAttempts])
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			switch {
			case match, attempts+1 >= r.maxAttempts:
				pipe.Del(ctx, key)
			default:
				pipe.HIncrBy(ctx, key, verificationFieldAttempts, 1)
			}
			return nil
		})
		if err == nil {
			ok = match
		}
		return err
	}

	// a conflicting writer either consumed the code or replaced it, read again
	for i := 0; i < 2; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return ok, err
	}
	return false, nil
}

func verificationKey(email string) string {
	return fmt.Sprintf("email_verify:%s", strings.ToLower(email))
}
