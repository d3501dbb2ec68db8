package user

import (
	"context"
	"errors"
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
	users  repo.AccountStore
	hasher *encode.PasswordHasher
}

func New(users repo.AccountStore, hasher *encode.PasswordHasher) *Service {
	return &Service{users: users, hasher: hasher}
}

func NewDefault() *Service {
	return New(
		repo.NewAccountRepository(mysql.GetDbConn(), storage.DefaultAccountSchema()),
		encode.NewPasswordHasher(config.GetPasswordConf().Iterations),
	)
}

// Register creates the account and its credential together. The display name
// defaults to the username.
func (s *Service) Register(ctx context.Context, username, email, displayName, password string) (*domain.User, errs.Error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = username
	}

	exists, err := s.users.UsernameExists(ctx, username, "")
	if err != nil {
		hlog.CtxErrorf(ctx, "UsernameExists err: %v", err)
		return nil, errs.PersistenceError
	}
	if exists {
		return nil, errs.AlreadyTaken.SetMsg("username already taken")
	}

	exists, err = s.users.EmailExists(ctx, email, "")
	if err != nil {
		hlog.CtxErrorf(ctx, "EmailExists err: %v", err)
		return nil, errs.PersistenceError
	}
	if exists {
		return nil, errs.AlreadyTaken.SetMsg("email already taken")
	}

	u, err := s.users.Create(ctx, &domain.User{
		Username:    username,
		Email:       email,
		DisplayName: displayName,
	}, s.hasher.Hash(password))
	if err != nil {
		if errors.Is(err, repo.ErrDuplicated) {
			return nil, errs.AlreadyTaken
		}
		hlog.CtxErrorf(ctx, "create user err: %v", err)
		return nil, errs.PersistenceError
	}
	hlog.CtxInfof(ctx, "user registered, user_id=%s", u.UserID)
	return u, nil
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (*domain.User, errs.Error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		hlog.CtxErrorf(ctx, "GetByID err: %v", err)
		return nil, errs.PersistenceError
	}
	if u == nil {
		return nil, errs.AccountNotFound
	}
	return u, nil
}
