package jwt

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"accountd/be/biz/config"
	rediscli "accountd/be/biz/db/redis"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/util/encode"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hertz-contrib/sessions"
	"github.com/redis/go-redis/v9"
)

var (
	ErrUnexpectedJwtMethod = errors.New("unexpected jwt method")
	ErrJwtInvalid          = errors.New("jwt is invalid")
	ErrJwtExpired          = errors.New("jwt is expired")
	ErrRefreshTokenInvalid = errors.New("refresh token is invalid")
)

// tokenKind separates access and refresh tokens: each has its own secret,
// lifetime and redis namespace for issued token ids.
type tokenKind struct {
	keyPrefix  string
	secret     func(config.JWTConf) string
	expiration func(config.JWTConf) time.Duration
}

var (
	accessKind = tokenKind{
		keyPrefix:  "jwt_id_exist",
		secret:     func(c config.JWTConf) string { return c.AccessTokenSecret },
		expiration: accessExpiration,
	}
	refreshKind = tokenKind{
		keyPrefix:  "refresh_token",
		secret:     func(c config.JWTConf) string { return c.RefreshTokenSecret },
		expiration: refreshExpiration,
	}
)

func (k tokenKind) key(tokenID string) string {
	return fmt.Sprintf("%s:%s", k.keyPrefix, tokenID)
}

// ValidateMW accepts a request only when its access token is signed, unexpired,
// still registered in redis and bound to the caller's session cookie.
func ValidateMW() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		jwtStr := exactJWT(c)
		if jwtStr == "" {
			hlog.CtxInfof(ctx, "authorization failed, token is empty")
			resp.AbortWithErr(c, errs.Unauthorized, http.StatusUnauthorized)
			return
		}

		claims, err := validateToken(jwtStr, accessKind.secret(config.GetJWTConfig()))
		if err != nil {
			hlog.CtxInfof(ctx, "jwt invalid: %v", err)
			resp.AbortWithErr(c, errs.Unauthorized, http.StatusUnauthorized)
			return
		}

		// token 必须和当前会话绑定
		if !claims.CheckSum(sessions.Default(c).ID()) {
			hlog.CtxInfof(ctx, "session not match")
			resp.AbortWithErr(c, errs.Unauthorized, http.StatusUnauthorized)
			return
		}

		exist, err := tokenExists(ctx, accessKind, claims.ID)
		if err != nil {
			hlog.CtxErrorf(ctx, "redis get err: %v", err)
			resp.AbortWithErr(c, errs.ServerError, http.StatusInternalServerError)
			return
		}
		if !exist {
			hlog.CtxInfof(ctx, "jwt token invalid or expired")
			resp.AbortWithErr(c, errs.Unauthorized, http.StatusUnauthorized)
			return
		}

		c.Next(context.WithValue(ctx, Payload{}, claims))
	}
}

type Payload struct {
	UserID string `json:"user_id,omitempty"`
}

type Claims struct {
	jwt.RegisteredClaims
	Payload

	Sum string `json:"sum,omitempty"`
}

// CheckSum reports whether the token was issued for sessID.
func (c *Claims) CheckSum(sessID string) bool {
	return sessID != "" && encode.Checksum(c.ID, sessID) == c.Sum
}

// GenerateToken issues an access token for the session and returns it with
// its expiry as a unix timestamp.
func GenerateToken(ctx context.Context, payload Payload, sessID string) (string, int64, error) {
	return issue(ctx, accessKind, payload, sessID)
}

func GetPayload(ctx context.Context) Payload {
	if claims, ok := ctx.Value(Payload{}).(*Claims); ok {
		return claims.Payload
	}
	return Payload{}
}

// RemoveToken revokes the access token carried by ctx if it belongs to sessID.
func RemoveToken(ctx context.Context, sessID string) error {
	claims, ok := ctx.Value(Payload{}).(*Claims)
	if !ok || !claims.CheckSum(sessID) {
		return nil
	}
	return rediscli.GetRedisClient().Del(ctx, accessKind.key(claims.ID)).Err()
}

func issue(ctx context.Context, kind tokenKind, payload Payload, sessID string) (string, int64, error) {
	jwtConf := config.GetJWTConfig()
	tokenID := uuid.New().String()
	exp := kind.expiration(jwtConf)

	tokenStr, err := generateToken(payload, exp, tokenID, sessID, kind.secret(jwtConf), jwtConf.Issuer)
	if err != nil {
		hlog.CtxErrorf(ctx, "generate %s token err: %v", kind.keyPrefix, err)
		return "", 0, err
	}

	if err := rediscli.GetRedisClient().Set(ctx, kind.key(tokenID), true, exp).Err(); err != nil {
		hlog.CtxErrorf(ctx, "cache %s token id err: %v", kind.keyPrefix, err)
		return "", 0, err
	}

	return tokenStr, time.Now().Add(exp).Unix(), nil
}

func tokenExists(ctx context.Context, kind tokenKind, tokenID string) (bool, error) {
	exist, err := rediscli.GetRedisClient().Get(ctx, kind.key(tokenID)).Bool()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return exist, nil
}

func generateToken(payload Payload, expiration time.Duration, tokenID, sessID, secret, issuer string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
			Subject:   payload.UserID,
			ID:        tokenID,
		},
		Payload: payload,
		Sum:     encode.Checksum(tokenID, sessID),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func validateToken(tokenStr, secret string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrHashUnavailable
		}
		return []byte(secret), nil
	})
	switch {
	case errors.Is(err, jwt.ErrHashUnavailable):
		return nil, ErrUnexpectedJwtMethod
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrJwtExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrJwtInvalid
	case err != nil:
		return nil, err
	}
	if !token.Valid {
		return nil, ErrJwtInvalid
	}
	return &claims, nil
}

func exactJWT(c *app.RequestContext) string {
	return c.Request.Header.Get("Authorization")
}

func accessExpiration(conf config.JWTConf) time.Duration {
	if conf.AccessExpiration > 0 {
		return time.Duration(conf.AccessExpiration) * time.Second
	}
	return 30 * time.Minute
}
