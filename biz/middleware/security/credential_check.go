package security

import (
	"context"
	"net/http"

	"accountd/be/biz/middleware/jwt"
	"accountd/be/biz/middleware/session"
	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/service/credential"
	sessionsvc "accountd/be/biz/service/session"
	"accountd/be/biz/util/resp"
	"accountd/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// NewCredentialCheck loads the claims of the caller's session into the
// request context. Sessions issued before the last password change of the
// account are rejected with SessionExpired.
func NewCredentialCheck() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		claims, bizErr := sessionsvc.NewDefault().Load(ctx, session.ID(c))
		if bizErr != nil {
			if errs.ErrorEqual(bizErr, errs.Unauthenticated) {
				resp.AbortWithErr(c, errs.Unauthenticated.SetMsg("User not logged in"), http.StatusUnauthorized)
				return
			}
			resp.AbortWithErr(c, bizErr, http.StatusServiceUnavailable)
			return
		}

		userID := claims.Subject()
		if p := jwt.GetPayload(ctx); p.UserID != "" && p.UserID != userID {
			hlog.CtxWarnf(ctx, "token subject %s does not own session of %s", p.UserID, userID)
			resp.AbortWithErr(c, errs.Unauthenticated, http.StatusUnauthorized)
			return
		}

		sessCV, ok := claims.CredentialVersion()
		if !ok {
			resp.AbortWithErr(c, errs.Unauthenticated, http.StatusUnauthorized)
			return
		}

		currentCV, bizErr := credential.NewDefault().GetCredentialVersion(ctx, userID)
		if bizErr != nil {
			if errs.ErrorEqual(bizErr, errs.AccountNotFound) {
				resp.AbortWithErr(c, errs.SessionExpired.SetMsg("User not found"), http.StatusForbidden)
				return
			}
			// 数据库故障时放行, 避免整体不可用
			hlog.CtxErrorf(ctx, "GetCredentialVersion err: %v", bizErr)
			c.Next(withIdentity(ctx, claims))
			return
		}

		if currentCV != sessCV {
			hlog.CtxInfof(ctx, "credential version mismatch: session=%d, db=%d, user_id=%s", sessCV, currentCV, userID)
			resp.AbortWithErr(c, errs.SessionExpired.SetMsg("Credential has changed, please login again"),
				http.StatusForbidden)
			return
		}

		c.Next(withIdentity(ctx, claims))
	}
}

func withIdentity(ctx context.Context, claims domain.Claims) context.Context {
	return trace_info.WithUserId(sessionsvc.WithClaims(ctx, claims), claims.Subject())
}
