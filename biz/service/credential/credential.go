package credential

import (
	"context"
	"strings"

	"accountd/be/biz/config"
	"accountd/be/biz/dal/repo"
	"accountd/be/biz/db/mysql"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/model/storage"
	"accountd/be/biz/util/encode"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Service struct {
	store  repo.AccountStore
	hasher *encode.PasswordHasher
}

func New(store repo.AccountStore, hasher *encode.PasswordHasher) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
	}
}

func NewDefault() *Service {
	return New(
		repo.NewAccountRepository(mysql.GetDbConn(), storage.DefaultAccountSchema()),
		encode.NewPasswordHasher(config.GetPasswordConf().Iterations),
	)
}

// Authenticate resolves identifier (an email when it contains '@', a username
// otherwise) and verifies password. Unknown accounts, wrong passwords and
// corrupt hashes all yield errs.InvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, identifier, password string) (*domain.User, errs.Error) {
	var (
		u   *domain.User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.store.GetByEmail(ctx, identifier)
	} else {
		u, err = s.store.GetByUsername(ctx, identifier)
	}
	if err != nil {
		hlog.CtxErrorf(ctx, "lookup account err: %v", err)
		return nil, errs.PersistenceError
	}
	if u == nil {
		s.hasher.DummyVerify(password)
		hlog.CtxNoticef(ctx, "authenticate failed: account not found")
		return nil, errs.AccountNotFound
	}

	cred, err := s.store.GetCredentialHash(ctx, u.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetCredentialHash err: %v, user_id=%s", err, u.UserID)
		return nil, errs.PersistenceError
	}
	if cred == nil {
		s.hasher.DummyVerify(password)
		hlog.CtxErrorf(ctx, "authenticate failed: corrupt credential, no credential row, user_id=%s", u.UserID)
		return nil, errs.CorruptCredential
	}

	ok, err := s.hasher.Check(password, cred.SaltedHash)
	if err != nil {
		hlog.CtxErrorf(ctx, "authenticate failed: corrupt credential: %v, user_id=%s", err, u.UserID)
		return nil, errs.CorruptCredential
	}
	if !ok {
		hlog.CtxNoticef(ctx, "authenticate failed: invalid password, user_id=%s", u.UserID)
		return nil, errs.InvalidPassword
	}
	u.CredentialVersion = cred.CredentialVersion

	if s.hasher.NeedsRehash(cred.SaltedHash) {
		// 旧格式或旧迭代次数, 登录成功后顺便升级
		if v, err := s.store.SetCredentialHash(ctx, u.UserID, s.hasher.Hash(password)); err != nil {
			hlog.CtxWarnf(ctx, "rehash credential err: %v, user_id=%s", err, u.UserID)
		} else {
			u.CredentialVersion = v
		}
	}

	return u, nil
}

// SetPassword overwrites the credential of userID with a freshly salted hash
// and returns the new credential version.
func (s *Service) SetPassword(ctx context.Context, userID, password string) (uint, errs.Error) {
	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetByID err: %v", err)
		return 0, errs.PersistenceError
	}
	if u == nil {
		return 0, errs.AccountNotFound
	}

	v, err := s.store.SetCredentialHash(ctx, userID, s.hasher.Hash(password))
	if err != nil {
		hlog.CtxErrorf(ctx, "SetCredentialHash err: %v, user_id=%s", err, userID)
		return 0, errs.PersistenceError
	}
	return v, nil
}

// CheckPassword reports whether password matches the stored credential. A
// missing or corrupt credential is a mismatch, not an error.
func (s *Service) CheckPassword(ctx context.Context, userID, password string) (bool, errs.Error) {
	cred, err := s.store.GetCredentialHash(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetCredentialHash err: %v", err)
		return false, errs.PersistenceError
	}
	if cred == nil {
		s.hasher.DummyVerify(password)
		return false, nil
	}

	ok, err := s.hasher.Check(password, cred.SaltedHash)
	if err != nil {
		hlog.CtxErrorf(ctx, "corrupt credential: %v, user_id=%s", err, userID)
		return false, nil
	}
	return ok, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (uint, errs.Error) {
	ok, bizErr := s.CheckPassword(ctx, userID, oldPassword)
	if bizErr != nil {
		return 0, bizErr
	}
	if !ok {
		return 0, errs.InvalidPassword
	}
	return s.SetPassword(ctx, userID, newPassword)
}

func (s *Service) GetCredentialVersion(ctx context.Context, userID string) (uint, errs.Error) {
	cred, err := s.store.GetCredentialHash(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetCredentialHash err: %v", err)
		return 0, errs.PersistenceError
	}
	if cred == nil {
		return 0, errs.AccountNotFound
	}
	return cred.CredentialVersion, nil
}
