package be

import (
	_ "accountd/be/docs"

	"accountd/be/biz/handler"
	"accountd/be/biz/middleware"
	"accountd/be/biz/middleware/ratelimit"
	"accountd/be/biz/middleware/security"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"
)

func register(h *server.Hertz) {
	h.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler))

	v1 := h.Group("/api/v1")

	userGroup := v1.Group("/user")
	userGroup.POST("/register", ratelimit.NewRegisterProtection(), handler.Register)
	userGroup.GET("/info", append(middleware.Authenticated(), handler.GetUserInfo)...)

	authGroup := v1.Group("/auth")
	authGroup.POST("/signin", security.NewLoginProtection(), security.NewLoginSuccessRecorder(), handler.SignIn)
	authGroup.POST("/refresh_token", handler.RefreshToken)
	authGroup.POST("/signout", append(middleware.Authenticated(), handler.SignOut)...)

	settingsGroup := v1.Group("/settings", middleware.Authenticated()...)
	settingsGroup.POST("/change", handler.ChangeSetting)
	settingsGroup.POST("/password", handler.ChangePassword)
	settingsGroup.POST("/email/code", handler.SendEmailCode)
	settingsGroup.POST("/email/verify", handler.VerifyEmail)
}
