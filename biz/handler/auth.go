package handler

import (
	"context"
	"errors"
	"net/http"

	"accountd/be/biz/middleware/jwt"
	"accountd/be/biz/middleware/session"
	"accountd/be/biz/model/dto"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/service/credential"
	sessionsvc "accountd/be/biz/service/session"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// SignIn 登录接口
//
//	@Tags			auth
//	@Summary		登录接口
//	@Description	account 可以是用户名或邮箱, 包含 @ 时按邮箱查找
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.SignInReq	true	"sign in request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.SignInResp}
//	@Header			200	{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/signin [POST]
func SignIn(ctx context.Context, c *app.RequestContext) {
	var req dto.SignInReq
	if !bind(ctx, c, &req) {
		return
	}

	u, bizErr := credential.NewDefault().Authenticate(ctx, req.Account, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	sessID, err := session.Establish(c, u.UserID)
	if err != nil {
		hlog.CtxErrorf(ctx, "save session err: %v", err)
		resp.AbortWithErr(c, errs.ServerError, http.StatusInternalServerError)
		return
	}

	claims, bizErr := sessionsvc.NewDefault().Issue(ctx, sessID, u)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	payload := jwt.Payload{UserID: u.UserID}
	accessToken, expAt, err := jwt.GenerateToken(ctx, payload, sessID)
	if err != nil {
		resp.FailResp(c, errs.ServerError)
		return
	}
	refreshToken, refreshExpAt, err := jwt.GenerateRefreshToken(ctx, payload, sessID)
	if err != nil {
		resp.FailResp(c, errs.ServerError)
		return
	}
	jwt.SetRefreshTokenCookie(c, refreshToken, refreshExpAt)

	hlog.CtxInfof(ctx, "sign in success, user_id=%s", u.UserID)
	resp.SuccessResp(c, dto.SignInResp{
		AccessToken: accessToken,
		ExpiresAt:   expAt,
		Claims:      claims.ToMap(),
	})
}

// RefreshToken 刷新token接口
//
//	@Tags			auth
//	@Summary		刷新token接口
//	@Description	使用 cookie 中的 refresh token 换取新的 access token, 同时延长会话
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.RefreshTokenReq	true	"refresh token request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.RefreshTokenResp}
//	@Header			200	{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/refresh_token [POST]
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenReq
	if !bind(ctx, c, &req) {
		return
	}

	sessID := session.ID(c)
	refreshToken := jwt.GetRefreshTokenFromCookie(c)
	if sessID == "" || refreshToken == "" {
		hlog.CtxNoticef(ctx, "refresh without session or refresh token")
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	tokenClaims, err := jwt.ConsumeRefreshToken(ctx, refreshToken, sessID)
	if err != nil {
		if errors.Is(err, jwt.ErrRefreshTokenInvalid) {
			resp.FailResp(c, errs.Unauthorized)
			return
		}
		hlog.CtxErrorf(ctx, "ConsumeRefreshToken err: %v", err)
		resp.FailResp(c, errs.ServerError)
		return
	}
	if tokenClaims.UserID == "" || tokenClaims.UserID != session.UserID(c) {
		hlog.CtxNoticef(ctx, "refresh token subject does not own the session")
		resp.FailResp(c, errs.Unauthorized)
		return
	}

	// 会话的 claims 已被清除时不再续期
	if bizErr := sessionsvc.NewDefault().Refresh(ctx, sessID); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}
	if err := session.Touch(c); err != nil {
		hlog.CtxErrorf(ctx, "touch session err: %v", err)
	}

	payload := jwt.Payload{UserID: tokenClaims.UserID}
	newAccessToken, accessExpAt, err := jwt.GenerateToken(ctx, payload, sessID)
	if err != nil {
		resp.FailResp(c, errs.ServerError)
		return
	}
	newRefreshToken, refreshExpAt, err := jwt.GenerateRefreshToken(ctx, payload, sessID)
	if err != nil {
		resp.FailResp(c, errs.ServerError)
		return
	}
	jwt.SetRefreshTokenCookie(c, newRefreshToken, refreshExpAt)

	resp.SuccessResp(c, dto.RefreshTokenResp{
		AccessToken:      newAccessToken,
		ExpiresAt:        accessExpAt,
		RefreshToken:     newRefreshToken,
		RefreshExpiresAt: refreshExpAt,
	})
}

// SignOut 登出接口
//
//	@Tags			auth
//	@Summary		登出接口
//	@Description	清除会话 claims, 吊销 token 并删除会话 cookie
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.SignOutReq	true	"sign out request body"
//	@Param			Authorization	header		string			true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.SignOutResp}
//	@Header			200				{string}	set-cookie	"cookie"
//	@Router			/api/v1/auth/signout [POST]
func SignOut(ctx context.Context, c *app.RequestContext) {
	var req dto.SignOutReq
	if !bind(ctx, c, &req) {
		return
	}

	sessID := session.ID(c)
	if bizErr := sessionsvc.NewDefault().Clear(ctx, sessID); bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	if err := jwt.RemoveToken(ctx, sessID); err != nil {
		hlog.CtxErrorf(ctx, "RemoveToken err: %v", err)
	}
	if rt := jwt.GetRefreshTokenFromCookie(c); rt != "" {
		if err := jwt.RevokeRefreshToken(ctx, rt, sessID); err != nil {
			hlog.CtxNoticef(ctx, "RevokeRefreshToken err: %v", err)
		}
		jwt.ClearRefreshTokenCookie(c)
	}
	if err := session.Remove(c); err != nil {
		hlog.CtxErrorf(ctx, "remove session err: %v", err)
	}

	hlog.CtxInfof(ctx, "sign out success")
	resp.SuccessResp(c, dto.SignOutResp{})
}
