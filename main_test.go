package be_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	be "accountd/be"
	"accountd/be/biz/config"
	"accountd/be/biz/db/mysql"
	redisdb "accountd/be/biz/db/redis"
	"accountd/be/biz/model/dto"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/model/storage"
	usersvc "accountd/be/biz/service/user"

	"github.com/alicebob/miniredis/v2"
	"github.com/bytedance/mockey"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/test/assert"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	testEngine *server.Hertz
	testDB     *gorm.DB
	testRedis  *miniredis.Miniredis
)

func TestMain(m *testing.M) {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}
	testRedis = mr

	dir, err := os.MkdirTemp("", "accountd_test_conf_*")
	if err != nil {
		panic(err)
	}
	confPath := filepath.Join(dir, "deploy.yml")
	confStr := `redis:
  ip: "` + mr.Host() + `"
  port: ` + mr.Port() + `

jwt:
  access_expiration: 3600
  refresh_expiration: 7200
  access_token_secret: "test-secret"
  refresh_token_secret: "test-refresh-secret"
  issuer: "test"

session:
  store_prefix: "auth_session:"
  claims_prefix: "auth_claims:"
  name: "auth_session_id"
  path: "/"
  max_age: 604800
  http_only: true
  same_site: "Strict"

rate_limit:
` + rateLimits(
		"/api/v1/user/register", "/api/v1/user/info",
		"/api/v1/auth/signin", "/api/v1/auth/refresh_token", "/api/v1/auth/signout",
		"/api/v1/settings/change", "/api/v1/settings/password",
		"/api/v1/settings/email/code", "/api/v1/settings/email/verify",
	) + `
login_protection:
  limit: 100
  success_limit: 100

verification:
  code_length: 8
  ttl_seconds: 300
`
	if err := os.WriteFile(confPath, []byte(confStr), 0600); err != nil {
		panic(err)
	}
	config.Init(confPath)
	redisdb.Init()

	testDB, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}
	sqlDB, _ := testDB.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := testDB.AutoMigrate(&storage.UserRecord{}, &storage.UserCredentialRecord{}); err != nil {
		panic(err)
	}
	mockey.Mock(mysql.GetDbConn).Return(testDB).Build()

	testEngine = be.NewEngine()
	code := m.Run()
	mr.Close()
	os.RemoveAll(dir)
	os.Exit(code)
}

func rateLimits(paths ...string) string {
	var sb strings.Builder
	for _, p := range paths {
		sb.WriteString("  - path: \"" + p + "\"\n    window_seconds: 1\n    limit: 100\n")
	}
	return sb.String()
}

func newTestServer(t *testing.T) *server.Hertz {
	t.Helper()
	redisdb.GetRedisClient().FlushAll(context.Background())
	testDB.Exec("DELETE FROM users")
	testDB.Exec("DELETE FROM user_credentials")
	return testEngine
}

// client keeps the cookies and access token of one browser.
type client struct {
	t       *testing.T
	h       *server.Hertz
	cookies map[string]string
	token   string
}

func newClient(t *testing.T, h *server.Hertz) *client {
	return &client{t: t, h: h, cookies: make(map[string]string)}
}

func (cl *client) do(method, url, body string) (int, dto.CommonResp) {
	cl.t.Helper()
	var b *ut.Body
	if body != "" {
		b = &ut.Body{Body: bytes.NewBufferString(body), Len: len(body)}
	}
	headers := []ut.Header{{Key: "Content-Type", Value: "application/json"}}
	if cl.token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: cl.token})
	}
	if len(cl.cookies) > 0 {
		var pairs []string
		for k, v := range cl.cookies {
			pairs = append(pairs, k+"="+v)
		}
		headers = append(headers, ut.Header{Key: "Cookie", Value: strings.Join(pairs, "; ")})
	}

	resp := ut.PerformRequest(cl.h.Engine, method, url, b, headers...).Result()
	resp.Header.VisitAllCookie(func(_, value []byte) {
		cl.keepCookie(string(value))
	})

	var r dto.CommonResp
	assert.Nil(cl.t, json.Unmarshal(resp.Body(), &r))
	return resp.StatusCode(), r
}

func (cl *client) keepCookie(setCookie string) {
	nameValue, attrs, _ := strings.Cut(setCookie, ";")
	name, value, _ := strings.Cut(strings.TrimSpace(nameValue), "=")
	lower := strings.ToLower(attrs)
	if value == "" || strings.Contains(lower, "max-age=0") || strings.Contains(lower, "1970") {
		delete(cl.cookies, name)
		return
	}
	cl.cookies[name] = value
}

func (cl *client) signIn(account, password string) dto.CommonResp {
	cl.t.Helper()
	_, r := cl.do(http.MethodPost, "/api/v1/auth/signin",
		`{"account":"`+account+`","password":"`+password+`"}`)
	if r.Success {
		var data dto.SignInResp
		decodeData(cl.t, r, &data)
		cl.token = data.AccessToken
	}
	return r
}

func decodeData(t *testing.T, r dto.CommonResp, out any) {
	t.Helper()
	b, err := json.Marshal(r.Data)
	assert.Nil(t, err)
	assert.Nil(t, json.Unmarshal(b, out))
}

func registerUser(t *testing.T, username, email, password string) string {
	t.Helper()
	u, bizErr := usersvc.NewDefault().Register(context.Background(), username, email, "", password)
	assert.Nil(t, bizErr)
	return u.UserID
}

func TestRegister_ParamError(t *testing.T) {
	cl := newClient(t, newTestServer(t))

	for _, body := range []string{
		"{",
		`{"username":"` + strings.Repeat("a", 65) + `","email":"a@x.com","password":"secret1"}`,
		`{"username":"a@b","email":"a@x.com","password":"secret1"}`,
		`{"username":"alice","email":"not-an-email","password":"secret1"}`,
		`{"username":"alice","email":"a@x.com","password":"123"}`,
	} {
		status, r := cl.do(http.MethodPost, "/api/v1/user/register", body)
		assert.DeepEqual(t, http.StatusBadRequest, status)
		assert.False(t, r.Success)
		assert.DeepEqual(t, int(errs.ParamError.Code()), r.Code)
	}
}

func TestRegister_SuccessAndAlreadyTaken(t *testing.T) {
	h := newTestServer(t)
	registerUser(t, "taken", "taken@x.com", "secret1")

	cl := newClient(t, h)
	_, r := cl.do(http.MethodPost, "/api/v1/user/register",
		`{"username":"taken","email":"other@x.com","password":"secret1"}`)
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.AlreadyTaken.Code()), r.Code)

	status, r := cl.do(http.MethodPost, "/api/v1/user/register",
		`{"username":"alice","email":"alice@x.com","password":"secret1"}`)
	assert.DeepEqual(t, http.StatusOK, status)
	assert.True(t, r.Success)
	var reg dto.RegisterResp
	decodeData(t, r, &reg)
	assert.True(t, reg.UserID != "")

	// 注册成功后同一 IP 暂时不能再注册
	status, r = cl.do(http.MethodPost, "/api/v1/user/register",
		`{"username":"bob","email":"bob@x.com","password":"secret1"}`)
	assert.DeepEqual(t, http.StatusForbidden, status)
	assert.DeepEqual(t, int(errs.RequestBlocked.Code()), r.Code)
}

func TestSignIn_FailuresAreIndistinguishable(t *testing.T) {
	h := newTestServer(t)
	registerUser(t, "alice", "alice@x.com", "secret1")

	unknown := newClient(t, h).signIn("nobody", "secret1")
	wrong := newClient(t, h).signIn("alice", "wrong-password")
	unknownEmail := newClient(t, h).signIn("nobody@x.com", "secret1")

	for _, r := range []dto.CommonResp{unknown, wrong, unknownEmail} {
		assert.False(t, r.Success)
		assert.DeepEqual(t, int(errs.InvalidCredentials.Code()), r.Code)
		assert.DeepEqual(t, unknown.Message, r.Message)
	}
}

func TestGetUserInfo_Unauthorized(t *testing.T) {
	cl := newClient(t, newTestServer(t))

	status, r := cl.do(http.MethodGet, "/api/v1/user/info", "")
	assert.DeepEqual(t, http.StatusUnauthorized, status)
	assert.False(t, r.Success)
	assert.DeepEqual(t, int(errs.Unauthorized.Code()), r.Code)
}

func TestAccountFlow(t *testing.T) {
	h := newTestServer(t)
	userID := registerUser(t, "alice", "alice@x.com", "secret1")

	cl := newClient(t, h)
	r := cl.signIn("alice", "secret1")
	assert.True(t, r.Success)
	var signIn dto.SignInResp
	decodeData(t, r, &signIn)
	assert.DeepEqual(t, userID, signIn.Claims["sub"])
	assert.DeepEqual(t, "alice", signIn.Claims["username"])
	assert.DeepEqual(t, "alice", signIn.Claims["display_name"])
	assert.DeepEqual(t, "1", signIn.Claims["credential_version"])

	t.Run("user info", func(t *testing.T) {
		status, r := cl.do(http.MethodGet, "/api/v1/user/info", "")
		assert.DeepEqual(t, http.StatusOK, status)
		var info dto.GetUserInfoResp
		decodeData(t, r, &info)
		assert.DeepEqual(t, userID, info.UserID)
		assert.DeepEqual(t, "alice@x.com", info.Email)
		assert.DeepEqual(t, "alice", info.Claims["username"])
	})

	t.Run("change display name", func(t *testing.T) {
		_, r := cl.do(http.MethodPost, "/api/v1/settings/change", `{"type":"Displayname","data":"Alice A."}`)
		assert.True(t, r.Success)
		var changed dto.ChangeSettingResp
		decodeData(t, r, &changed)
		assert.DeepEqual(t, "Alice A.", changed.Claims["display_name"])
		assert.DeepEqual(t, "alice", changed.Claims["username"])

		_, r = cl.do(http.MethodGet, "/api/v1/user/info", "")
		var info dto.GetUserInfoResp
		decodeData(t, r, &info)
		assert.DeepEqual(t, "Alice A.", info.DisplayName)
		assert.DeepEqual(t, "Alice A.", info.Claims["display_name"])
	})

	t.Run("invalid setting type", func(t *testing.T) {
		_, r := cl.do(http.MethodPost, "/api/v1/settings/change", `{"type":"password","data":"x"}`)
		assert.False(t, r.Success)
		assert.DeepEqual(t, int(errs.InvalidSettingType.Code()), r.Code)
	})

	t.Run("username taken", func(t *testing.T) {
		registerUser(t, "bob", "bob@x.com", "secret1")
		_, r := cl.do(http.MethodPost, "/api/v1/settings/change", `{"type":"username","data":"bob"}`)
		assert.False(t, r.Success)
		assert.DeepEqual(t, int(errs.AlreadyTaken.Code()), r.Code)
	})

	t.Run("email verification", func(t *testing.T) {
		_, r := cl.do(http.MethodPost, "/api/v1/settings/email/code", `{"email":"new@x.com"}`)
		assert.True(t, r.Success)
		code := testRedis.HGet("email_verify:new@x.com", "code")
		assert.DeepEqual(t, 8, len(code))

		_, r = cl.do(http.MethodPost, "/api/v1/settings/email/verify", `{"email":"new@x.com","code":"wrong"}`)
		assert.DeepEqual(t, int(errs.VerificationCodeInvalid.Code()), r.Code)

		_, r = cl.do(http.MethodPost, "/api/v1/settings/email/verify", `{"email":"new@x.com","code":"`+code+`"}`)
		assert.True(t, r.Success)
		var verified dto.VerifyEmailResp
		decodeData(t, r, &verified)
		assert.DeepEqual(t, "new@x.com", verified.Claims["email"])

		_, r = cl.do(http.MethodPost, "/api/v1/settings/email/verify", `{"email":"new@x.com","code":"`+code+`"}`)
		assert.DeepEqual(t, int(errs.VerificationCodeInvalid.Code()), r.Code)

		// 新邮箱可以直接登录
		assert.True(t, newClient(t, h).signIn("new@x.com", "secret1").Success)
	})

	t.Run("refresh token", func(t *testing.T) {
		_, r := cl.do(http.MethodPost, "/api/v1/auth/refresh_token", "{}")
		assert.True(t, r.Success)
		var refreshed dto.RefreshTokenResp
		decodeData(t, r, &refreshed)
		assert.True(t, refreshed.AccessToken != "")
		assert.True(t, refreshed.RefreshToken != "")
		cl.token = refreshed.AccessToken

		status, _ := cl.do(http.MethodGet, "/api/v1/user/info", "")
		assert.DeepEqual(t, http.StatusOK, status)
	})

	t.Run("sign out", func(t *testing.T) {
		token := cl.token
		_, r := cl.do(http.MethodPost, "/api/v1/auth/signout", "{}")
		assert.True(t, r.Success)

		cl.token = token
		status, _ := cl.do(http.MethodGet, "/api/v1/user/info", "")
		assert.DeepEqual(t, http.StatusUnauthorized, status)
	})
}

func TestChangePassword_ExpiresOtherSessions(t *testing.T) {
	h := newTestServer(t)
	registerUser(t, "alice", "alice@x.com", "secret1")

	current := newClient(t, h)
	assert.True(t, current.signIn("alice", "secret1").Success)
	other := newClient(t, h)
	assert.True(t, other.signIn("alice@x.com", "secret1").Success)

	_, r := current.do(http.MethodPost, "/api/v1/settings/password",
		`{"old_password":"wrong-password","new_password":"secret2"}`)
	assert.DeepEqual(t, int(errs.InvalidCredentials.Code()), r.Code)

	_, r = current.do(http.MethodPost, "/api/v1/settings/password",
		`{"old_password":"secret1","new_password":"secret2"}`)
	assert.True(t, r.Success)

	status, _ := current.do(http.MethodGet, "/api/v1/user/info", "")
	assert.DeepEqual(t, http.StatusOK, status)

	status, r = other.do(http.MethodGet, "/api/v1/user/info", "")
	assert.DeepEqual(t, http.StatusForbidden, status)
	assert.DeepEqual(t, int(errs.SessionExpired.Code()), r.Code)

	assert.False(t, newClient(t, h).signIn("alice", "secret1").Success)
	assert.True(t, newClient(t, h).signIn("alice", "secret2").Success)
}
