package security

import (
	"context"
	"testing"
	"time"

	"accountd/be/biz/dal/repo"
	"accountd/be/biz/middleware/session"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/service/credential"
	sessionsvc "accountd/be/biz/service/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/mockey"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestCredentialCheck(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	manager := sessionsvc.New(repo.NewSessionClaimsRepository(rdb, "auth_claims:", time.Hour))

	mockey.PatchConvey("TestCredentialCheck", t, func() {
		ctx := context.Background()
		sid := "s1"
		dbVersion := uint(1)
		var dbErr errs.Error

		mockey.Mock(session.ID).To(func(*app.RequestContext) string { return sid }).Build()
		mockey.Mock(sessionsvc.NewDefault).Return(manager).Build()
		mockey.Mock(credential.NewDefault).Return(&credential.Service{}).Build()
		mockey.Mock((*credential.Service).GetCredentialVersion).To(
			func(*credential.Service, context.Context, string) (uint, errs.Error) {
				return dbVersion, dbErr
			}).Build()

		// run executes the check followed by a handler that records the claims it saw
		run := func() (*app.RequestContext, domain.Claims) {
			var seen domain.Claims
			c := app.NewContext(0)
			c.SetHandlers(app.HandlersChain{
				NewCredentialCheck(),
				func(ctx context.Context, c *app.RequestContext) {
					seen, _ = sessionsvc.ClaimsFromContext(ctx)
				},
			})
			c.Next(ctx)
			return c, seen
		}

		_, bizErr := manager.Issue(ctx, "s1", &domain.User{UserID: "u1", Username: "alice", CredentialVersion: 1})
		assert.Nil(t, bizErr)

		t.Run("Valid Session", func(t *testing.T) {
			c, seen := run()
			assert.False(t, c.IsAborted())
			assert.Equal(t, "u1", seen.Subject())
			assert.Equal(t, "alice", seen.Username())
		})

		t.Run("No Claims", func(t *testing.T) {
			sid = "unknown"
			defer func() { sid = "s1" }()
			c, seen := run()
			assert.True(t, c.IsAborted())
			assert.Equal(t, consts.StatusUnauthorized, c.Response.StatusCode())
			assert.Nil(t, seen)
		})

		t.Run("Password Changed Elsewhere", func(t *testing.T) {
			dbVersion = 2
			defer func() { dbVersion = 1 }()
			c, _ := run()
			assert.True(t, c.IsAborted())
			assert.Equal(t, consts.StatusForbidden, c.Response.StatusCode())
			assert.Contains(t, string(c.Response.Body()), "Credential has changed")
		})

		t.Run("Account Removed", func(t *testing.T) {
			dbErr = errs.AccountNotFound
			defer func() { dbErr = nil }()
			c, _ := run()
			assert.True(t, c.IsAborted())
			assert.Equal(t, consts.StatusForbidden, c.Response.StatusCode())
		})

		t.Run("Store Outage Fails Open", func(t *testing.T) {
			dbErr = errs.PersistenceError
			defer func() { dbErr = nil }()
			c, seen := run()
			assert.False(t, c.IsAborted())
			assert.Equal(t, "u1", seen.Subject())
		})
	})
}
