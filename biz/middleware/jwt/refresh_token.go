package jwt

import (
	"context"
	"time"

	"accountd/be/biz/config"
	rediscli "accountd/be/biz/db/redis"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol"
)

// TokenRemovalTTL is how long a consumed refresh token stays usable, so that
// concurrent refreshes from the same client do not log it out.
const TokenRemovalTTL = time.Minute

const refreshTokenCookieName = "refresh_token"

func GenerateRefreshToken(ctx context.Context, payload Payload, sessID string) (string, int64, error) {
	return issue(ctx, refreshKind, payload, sessID)
}

// ConsumeRefreshToken validates refreshToken against sessID and retires it.
// The returned claims carry the payload the token was issued with.
func ConsumeRefreshToken(ctx context.Context, refreshToken, sessID string) (*Claims, error) {
	claims, err := validateToken(refreshToken, refreshKind.secret(config.GetJWTConfig()))
	if err != nil {
		hlog.CtxInfof(ctx, "validate refresh token err: %v", err)
		return nil, ErrRefreshTokenInvalid
	}
	if !claims.CheckSum(sessID) {
		return nil, ErrRefreshTokenInvalid
	}

	exist, err := tokenExists(ctx, refreshKind, claims.ID)
	if err != nil {
		hlog.CtxErrorf(ctx, "get refresh token from redis err: %v", err)
		return nil, err
	}
	if !exist {
		return nil, ErrRefreshTokenInvalid
	}

	// 缩短剩余有效期而不是直接删除
	ttl := TokenRemovalTTL
	if left := time.Until(claims.ExpiresAt.Time); left < ttl {
		ttl = left
	}
	if err := rediscli.GetRedisClient().Expire(ctx, refreshKind.key(claims.ID), ttl).Err(); err != nil {
		return nil, err
	}
	return claims, nil
}

// RevokeRefreshToken drops refreshToken immediately if it belongs to sessID.
func RevokeRefreshToken(ctx context.Context, refreshToken, sessID string) error {
	claims, err := validateToken(refreshToken, refreshKind.secret(config.GetJWTConfig()))
	if err != nil || !claims.CheckSum(sessID) {
		return ErrRefreshTokenInvalid
	}
	return rediscli.GetRedisClient().Del(ctx, refreshKind.key(claims.ID)).Err()
}

func GetRefreshTokenFromCookie(c *app.RequestContext) string {
	return string(c.Cookie(refreshTokenCookieName))
}

func SetRefreshTokenCookie(c *app.RequestContext, refreshToken string, expireAt int64) {
	setCookie(c, refreshToken, int(expireAt-time.Now().Unix()))
}

func ClearRefreshTokenCookie(c *app.RequestContext) {
	setCookie(c, "", -1)
}

func setCookie(c *app.RequestContext, value string, maxAge int) {
	conf := config.GetSessionConf()
	path := conf.Path
	if path == "" {
		path = "/"
	}
	c.SetCookie(refreshTokenCookieName, value, maxAge, path, conf.Domain,
		parseCookieSameSite(conf.SameSite), conf.Secure, conf.HTTPOnly)
}

func refreshExpiration(conf config.JWTConf) time.Duration {
	if conf.RefreshExpiration > 0 {
		return time.Duration(conf.RefreshExpiration) * time.Second
	}
	return 30 * 24 * time.Hour
}

func parseCookieSameSite(v string) protocol.CookieSameSite {
	switch v {
	case "Lax":
		return protocol.CookieSameSiteLaxMode
	case "None":
		return protocol.CookieSameSiteNoneMode
	default:
		return protocol.CookieSameSiteStrictMode
	}
}
