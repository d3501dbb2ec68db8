package handler

import (
	"context"

	"accountd/be/biz/middleware/session"
	"accountd/be/biz/model/dto"
	"accountd/be/biz/service/credential"
	sessionsvc "accountd/be/biz/service/session"
	"accountd/be/biz/service/settings"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// ChangeSetting 修改个人资料接口
//
//	@Tags			settings
//	@Summary		修改个人资料接口
//	@Description	type 为 displayName, username 或 email (不区分大小写), 成功后返回新的 claims.
//	@Description	email 在这里直接修改, 不经过邮箱验证; 需要验证时使用 /api/v1/settings/email/code 和 /api/v1/settings/email/verify.
//	@Description	返回 Unauthenticated 或 PersistenceError 时新值可能已经保存但会话 claims 未更新, 请重新登录.
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.ChangeSettingReq	true	"change setting request body"
//	@Param			Authorization	header		string					true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.ChangeSettingResp}
//	@Router			/api/v1/settings/change [POST]
func ChangeSetting(ctx context.Context, c *app.RequestContext) {
	var req dto.ChangeSettingReq
	if !bind(ctx, c, &req) {
		return
	}
	claims, ok := currentClaims(ctx, c)
	if !ok {
		return
	}

	newClaims, bizErr := settings.NewDefault().ChangeSetting(ctx, claims.Subject(), session.ID(c), req.Type, req.Data)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.ChangeSettingResp{Claims: newClaims.ToMap()})
}

// ChangePassword 修改密码接口
//
//	@Tags			settings
//	@Summary		修改密码接口
//	@Description	修改成功后其它会话失效, 当前会话保持登录
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.ChangePasswordReq	true	"change password request body"
//	@Param			Authorization	header		string					true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.ChangePasswordResp}
//	@Router			/api/v1/settings/password [POST]
func ChangePassword(ctx context.Context, c *app.RequestContext) {
	var req dto.ChangePasswordReq
	if !bind(ctx, c, &req) {
		return
	}
	claims, ok := currentClaims(ctx, c)
	if !ok {
		return
	}

	version, bizErr := credential.NewDefault().ChangePassword(ctx, claims.Subject(), req.OldPassword, req.NewPassword)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	if _, bizErr := sessionsvc.NewDefault().SetCredentialVersion(ctx, session.ID(c), version); bizErr != nil {
		// 密码已修改, 当前会话需要重新登录
		hlog.CtxErrorf(ctx, "SetCredentialVersion err: %v", bizErr)
	}

	resp.SuccessResp(c, dto.ChangePasswordResp{})
}

// SendEmailCode 发送邮箱验证码接口
//
//	@Tags			settings
//	@Summary		发送邮箱验证码接口
//	@Description	向新邮箱发送一次性验证码, 同一邮箱只保留最后一个验证码
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.SendEmailCodeReq	true	"send email code request body"
//	@Param			Authorization	header		string					true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.SendEmailCodeResp}
//	@Router			/api/v1/settings/email/code [POST]
func SendEmailCode(ctx context.Context, c *app.RequestContext) {
	var req dto.SendEmailCodeReq
	if !bind(ctx, c, &req) {
		return
	}
	claims, ok := currentClaims(ctx, c)
	if !ok {
		return
	}

	ttl, bizErr := settings.NewDefault().RequestEmailChange(ctx, claims.Subject(), req.Email)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.SendEmailCodeResp{ExpiresIn: int64(ttl.Seconds())})
}

// VerifyEmail 验证并修改邮箱接口
//
//	@Tags			settings
//	@Summary		验证并修改邮箱接口
//	@Description	验证码只能使用一次, 成功后返回新的 claims
//	@Accept			json
//	@Produce		json
//	@Param			req				body		dto.VerifyEmailReq	true	"verify email request body"
//	@Param			Authorization	header		string				true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.VerifyEmailResp}
//	@Router			/api/v1/settings/email/verify [POST]
func VerifyEmail(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyEmailReq
	if !bind(ctx, c, &req) {
		return
	}
	claims, ok := currentClaims(ctx, c)
	if !ok {
		return
	}

	newClaims, bizErr := settings.NewDefault().ConfirmEmailChange(ctx, claims.Subject(), session.ID(c), req.Email, req.Code)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.VerifyEmailResp{Claims: newClaims.ToMap()})
}
