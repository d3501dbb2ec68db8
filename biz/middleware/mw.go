package middleware

import (
	"accountd/be/biz/middleware/accesslog"
	"accountd/be/biz/middleware/cors"
	"accountd/be/biz/middleware/jwt"
	"accountd/be/biz/middleware/ratelimit"
	"accountd/be/biz/middleware/recovery"
	"accountd/be/biz/middleware/security"
	"accountd/be/biz/middleware/session"
	"accountd/be/biz/middleware/trace"

	"github.com/cloudwego/hertz/pkg/app"
)

// Suite is installed on every route.
func Suite() []app.HandlerFunc {
	return []app.HandlerFunc{
		trace.New(),     // 链路ID, panic 日志也要带上
		recovery.New(),  // panic handler
		accesslog.New(), // 接口日志
		cors.New(),      // 跨域请求
		session.New(),   // 会话
		ratelimit.New(), // 限流
	}
}

// Authenticated guards routes that act on behalf of a signed in account.
func Authenticated() []app.HandlerFunc {
	return []app.HandlerFunc{
		jwt.ValidateMW(),
		security.NewCredentialCheck(),
	}
}
