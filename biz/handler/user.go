package handler

import (
	"context"
	"net/http"

	"accountd/be/biz/model/domain"
	"accountd/be/biz/model/dto"
	"accountd/be/biz/model/errs"
	sessionsvc "accountd/be/biz/service/session"
	"accountd/be/biz/service/user"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Register 用户注册接口
//
//	@Tags			user
//	@Summary		用户注册接口
//	@Description	用户注册接口, display_name 为空时使用 username
//	@Accept			json
//	@Produce		json
//	@Param			req	body		dto.RegisterReq	true	"register request body"
//	@Success		200	{object}	dto.CommonResp{data=dto.RegisterResp}
//	@Router			/api/v1/user/register [POST]
func Register(ctx context.Context, c *app.RequestContext) {
	var req dto.RegisterReq
	if !bind(ctx, c, &req) {
		return
	}

	u, bizErr := user.NewDefault().Register(ctx, req.Username, req.Email, req.DisplayName, req.Password)
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.RegisterResp{UserID: u.UserID})
}

// GetUserInfo 获取用户信息接口
//
//	@Tags			user
//	@Summary		获取用户信息接口
//	@Description	返回账户信息以及当前会话的 claims
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string	true	"jwt"
//	@Success		200				{object}	dto.CommonResp{data=dto.GetUserInfoResp}
//	@Router			/api/v1/user/info [GET]
func GetUserInfo(ctx context.Context, c *app.RequestContext) {
	var req dto.GetUserInfoReq
	if !bind(ctx, c, &req) {
		return
	}

	claims, ok := currentClaims(ctx, c)
	if !ok {
		return
	}

	u, bizErr := user.NewDefault().GetByUserID(ctx, claims.Subject())
	if bizErr != nil {
		resp.FailResp(c, bizErr)
		return
	}

	resp.SuccessResp(c, dto.GetUserInfoResp{
		UserID:      u.UserID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt.Unix(),
		UpdatedAt:   u.UpdatedAt.Unix(),
		Claims:      claims.ToMap(),
	})
}

func bind(ctx context.Context, c *app.RequestContext, req any) bool {
	if err := c.BindAndValidate(req); err != nil {
		hlog.CtxNoticef(ctx, "BindAndValidate err: %v", err)
		resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
		return false
	}
	return true
}

// currentClaims returns the claims the credential check attached to ctx.
func currentClaims(ctx context.Context, c *app.RequestContext) (domain.Claims, bool) {
	claims, ok := sessionsvc.ClaimsFromContext(ctx)
	if !ok {
		resp.AbortWithErr(c, errs.Unauthenticated, http.StatusUnauthorized)
		return nil, false
	}
	return claims, true
}
