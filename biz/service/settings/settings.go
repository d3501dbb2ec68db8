package settings

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"accountd/be/biz/config"
	"accountd/be/biz/dal/repo"
	"accountd/be/biz/db/mysql"
	"accountd/be/biz/db/redis"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/model/storage"
	"accountd/be/biz/service/notify"
	"accountd/be/biz/service/session"
	"accountd/be/biz/util/random"
	"accountd/be/biz/util/validate"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	maxValueLength = 64
	maxEmailLength = 128

	defaultCodeLength = 8
	defaultCodeTTL    = 10 * time.Minute
)

// CodeStore keeps one active verification code per email.
type CodeStore interface {
	Save(ctx context.Context, vc domain.VerificationCode, ttl time.Duration) error
	Consume(ctx context.Context, vc domain.VerificationCode) (bool, error)
}

type Service struct {
	store    repo.AccountStore
	sessions *session.Manager
	codes    CodeStore
	notifier notify.EmailNotifier

	codeLength int
	codeTTL    time.Duration
}

func New(store repo.AccountStore, sessions *session.Manager, codes CodeStore, notifier notify.EmailNotifier, conf config.VerificationConf) *Service {
	s := &Service{
		store:      store,
		sessions:   sessions,
		codes:      codes,
		notifier:   notifier,
		codeLength: conf.CodeLength,
		codeTTL:    time.Duration(conf.TTLSeconds) * time.Second,
	}
	if s.codeLength <= 0 {
		s.codeLength = defaultCodeLength
	}
	if s.codeTTL <= 0 {
		s.codeTTL = defaultCodeTTL
	}
	return s
}

func NewDefault() *Service {
	return New(
		repo.NewAccountRepository(mysql.GetDbConn(), storage.DefaultAccountSchema()),
		session.NewDefault(),
		repo.NewVerificationRepository(redis.GetRedisClient(), config.GetVerificationConf().MaxAttempts),
		notify.NewDefault(),
		config.GetVerificationConf(),
	)
}

// ChangeSetting validates and stores one profile field of userID, then rotates
// the matching claim of sessionID. Claims are never rotated unless the store
// accepted the write. If the rotation itself fails the new value is already
// stored and the error is returned anyway; the session keeps the old claim
// until the caller signs in again.
func (s *Service) ChangeSetting(ctx context.Context, userID, sessionID, fieldName, newValue string) (domain.Claims, errs.Error) {
	field, ok := domain.ParseSettingField(fieldName)
	if !ok {
		hlog.CtxInfof(ctx, "invalid setting type: %q", fieldName)
		return nil, errs.InvalidSettingType
	}

	value := strings.TrimSpace(newValue)
	if bizErr := validateValue(field, value); bizErr != nil {
		return nil, bizErr
	}

	if field.Unique() {
		if bizErr := s.checkAvailable(ctx, userID, field, value); bizErr != nil {
			return nil, bizErr
		}
	}

	if err := s.store.UpdateField(ctx, userID, field, value); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicated):
			// 唯一索引兜底, 并发修改时只有一个能成功
			hlog.CtxInfof(ctx, "setting %s lost uniqueness race", field)
			return nil, errs.AlreadyTaken
		case errors.Is(err, repo.ErrNotFound):
			return nil, errs.Unauthenticated
		}
		hlog.CtxErrorf(ctx, "UpdateField err: %v, user_id=%s, field=%s", err, userID, field)
		return nil, errs.PersistenceError
	}

	claims, bizErr := s.sessions.Rotate(ctx, sessionID, field, value)
	if bizErr != nil {
		// 新值已经写入, 只是会话里的 claim 还是旧的
		hlog.CtxErrorf(ctx, "setting persisted, claims stale: %v, user_id=%s, field=%s", bizErr, userID, field)
		return nil, bizErr
	}
	return claims, nil
}

// checkAvailable fails with AlreadyTaken when another account holds value.
// The requester's own row is excluded by the store, which compares with the
// same collation as its unique index.
func (s *Service) checkAvailable(ctx context.Context, userID string, field domain.SettingField, value string) errs.Error {
	var (
		exists bool
		err    error
	)
	switch field {
	case domain.SettingUsername:
		exists, err = s.store.UsernameExists(ctx, value, userID)
	case domain.SettingEmail:
		exists, err = s.store.EmailExists(ctx, value, userID)
	}
	if err != nil {
		hlog.CtxErrorf(ctx, "exists check err: %v", err)
		return errs.PersistenceError
	}
	if exists {
		return errs.AlreadyTaken
	}
	return nil
}

func validateValue(field domain.SettingField, value string) errs.Error {
	if value == "" {
		return errs.InvalidSettingValue.SetMsg(string(field) + " must not be empty")
	}

	switch field {
	case domain.SettingEmail:
		if utf8.RuneCountInString(value) > maxEmailLength {
			return errs.InvalidSettingValue.SetMsg("email too long")
		}
		if err := validate.Default().Var(value, "email"); err != nil {
			return errs.InvalidSettingValue.SetMsg("invalid email address")
		}
	case domain.SettingUsername:
		if utf8.RuneCountInString(value) > maxValueLength {
			return errs.InvalidSettingValue.SetMsg("username too long")
		}
		// '@' routes sign in to the email lookup
		if strings.Contains(value, "@") {
			return errs.InvalidSettingValue.SetMsg("username must not contain '@'")
		}
	default:
		if utf8.RuneCountInString(value) > maxValueLength {
			return errs.InvalidSettingValue.SetMsg(string(field) + " too long")
		}
	}
	return nil
}

// RequestEmailChange sends a one-time code to email, replacing any code sent
// to it before. It returns how long the code stays valid.
func (s *Service) RequestEmailChange(ctx context.Context, userID, email string) (time.Duration, errs.Error) {
	email = strings.TrimSpace(email)
	if bizErr := validateValue(domain.SettingEmail, email); bizErr != nil {
		return 0, bizErr
	}

	self, err := s.store.GetByID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetByID err: %v", err)
		return 0, errs.PersistenceError
	}
	if self == nil {
		return 0, errs.Unauthenticated
	}
	if strings.EqualFold(self.Email, email) {
		return 0, errs.InvalidSettingValue.SetMsg("email is unchanged")
	}
	if bizErr := s.checkAvailable(ctx, userID, domain.SettingEmail, email); bizErr != nil {
		return 0, bizErr
	}

	vc := domain.VerificationCode{Email: email, UserID: userID, Code: random.RandStr(s.codeLength)}
	if err := s.codes.Save(ctx, vc, s.codeTTL); err != nil {
		hlog.CtxErrorf(ctx, "save verification code err: %v", err)
		return 0, errs.PersistenceError
	}

	name := self.DisplayName
	if name == "" {
		name = self.Username
	}
	if !s.notifier.SendVerificationCode(ctx, email, name, vc.Code) {
		return 0, errs.NotificationFailed
	}
	return s.codeTTL, nil
}

// ConfirmEmailChange consumes code and switches the email of userID.
func (s *Service) ConfirmEmailChange(ctx context.Context, userID, sessionID, email, code string) (domain.Claims, errs.Error) {
	email = strings.TrimSpace(email)
	ok, err := s.codes.Consume(ctx, domain.VerificationCode{Email: email, UserID: userID, Code: strings.TrimSpace(code)})
	if err != nil {
		hlog.CtxErrorf(ctx, "consume verification code err: %v", err)
		return nil, errs.PersistenceError
	}
	if !ok {
		return nil, errs.VerificationCodeInvalid
	}
	return s.ChangeSetting(ctx, userID, sessionID, string(domain.SettingEmail), email)
}
