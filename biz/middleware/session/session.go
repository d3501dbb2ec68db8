package session

import (
	"context"
	"net/http"

	"accountd/be/biz/config"
	"accountd/be/biz/db/redis"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/rbcervilla/redisstore/v9"
)

const (
	defaultName   = "auth_session_id"
	defaultPrefix = "auth_session:"
	defaultMaxAge = 7 * 24 * 3600

	userIDKey = "user_id"
)

// New installs the cookie session. Its id keys the claim set kept by the
// session manager.
func New() app.HandlerFunc {
	conf := config.GetSessionConf()

	store := NewRedisStore(conf.StorePrefix)
	store.Options(options(conf, defaultInt(conf.MaxAge, defaultMaxAge)))

	return sessions.New(defaultString(conf.Name, defaultName), store)
}

// Establish binds the session of c to userID and saves it, which assigns the
// session id on first use. The id is returned.
func Establish(c *app.RequestContext, userID string) (string, error) {
	sess := sessions.Default(c)
	sess.Set(userIDKey, userID)
	if err := sess.Save(); err != nil {
		return "", err
	}
	return sess.ID(), nil
}

// UserID returns the account the session was established for.
func UserID(c *app.RequestContext) string {
	userID, _ := sessions.Default(c).Get(userIDKey).(string)
	return userID
}

// Touch saves the session again, extending its cookie and stored lifetime.
func Touch(c *app.RequestContext) error {
	return sessions.Default(c).Save()
}

func ID(c *app.RequestContext) string {
	return sessions.Default(c).ID()
}

// Remove expires the session cookie and deletes the stored session.
func Remove(c *app.RequestContext) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(options(config.GetSessionConf(), -1))
	return sess.Save()
}

type RedisStore struct {
	*redisstore.RedisStore
}

func (r *RedisStore) Options(opts sessions.Options) {
	r.RedisStore.Options(*opts.ToGorillaOptions())
}

func NewRedisStore(prefix string) *RedisStore {
	redisStore, err := redisstore.NewRedisStore(context.Background(), redis.GetRedisClient())
	if err != nil {
		panic(err)
	}
	redisStore.KeyPrefix(defaultString(prefix, defaultPrefix))
	return &RedisStore{RedisStore: redisStore}
}

func options(conf config.SessionConf, maxAge int) sessions.Options {
	return sessions.Options{
		Path:     defaultString(conf.Path, "/"),
		Domain:   conf.Domain,
		MaxAge:   maxAge,
		Secure:   conf.Secure,
		HttpOnly: conf.HTTPOnly,
		SameSite: parseSameSite(conf.SameSite),
	}
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func parseSameSite(v string) http.SameSite {
	switch v {
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}
