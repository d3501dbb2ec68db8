package security

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"accountd/be/biz/config"
	"accountd/be/biz/db/redis"
	"accountd/be/biz/model/dto"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/util/interceptor"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const (
	keyLoginBlockHour   = "login_block_h:"
	keyLoginBlockMinute = "login_block_m:"
	keyLoginFailLvl     = "login_fail_level:"
	keyLoginFail        = "login_fail:"
	keyLoginSuccess     = "login_success:"
)

type loginProtection struct {
	window     int
	limit      int
	blockMin   time.Duration
	blockHour  time.Duration
	levelAlive time.Duration
}

func loadLoginProtection() loginProtection {
	conf := config.GetLoginProtectionConf()
	p := loginProtection{
		window:     conf.WindowSeconds,
		limit:      conf.Limit,
		blockMin:   time.Duration(conf.BlockMinDuration) * time.Minute,
		blockHour:  time.Duration(conf.BlockHourDuration) * time.Hour,
		levelAlive: time.Duration(conf.LevelDuration) * time.Second,
	}
	if p.window <= 0 {
		p.window = 300
	}
	if p.limit <= 0 {
		p.limit = 3
	}
	if p.blockMin <= 0 {
		p.blockMin = 5 * time.Minute
	}
	if p.blockHour <= 0 {
		p.blockHour = 24 * time.Hour
	}
	if p.levelAlive <= 0 {
		p.levelAlive = 30 * time.Minute
	}
	return p
}

// NewLoginProtection blocks an ip after repeated sign in failures: first for
// minutes, then for hours if it keeps failing while still on probation.
// Only credential failures count, store outages do not.
func NewLoginProtection() app.HandlerFunc {
	p := loadLoginProtection()
	// Interceptor 在 current > limit 时拒绝, 第 N 次失败触发封禁
	failures := interceptor.NewInterceptor(p.window, int64(p.limit-1))

	return func(ctx context.Context, c *app.RequestContext) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		rdb := redis.GetRedisClient()

		if n, _ := rdb.Exists(ctx, interceptor.Key(keyLoginBlockHour+ip)).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Too many login failures, please try again after %v hours", p.blockHour.Hours())),
				http.StatusForbidden)
			return
		}
		if n, _ := rdb.Exists(ctx, interceptor.Key(keyLoginBlockMinute+ip)).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Too many login failures, please try again after %v minutes", p.blockMin.Minutes())),
				http.StatusForbidden)
			return
		}

		c.Next(ctx)

		r, err := resp.Parse(c)
		if err != nil {
			hlog.CtxErrorf(ctx, "parse sign in response err: %v", err)
			return
		}
		if r.Success || int32(r.Code) != errs.InvalidCredentials.Code() {
			return
		}

		allowed, err := failures.Allow(ctx, keyLoginFail+ip)
		if err != nil {
			hlog.CtxErrorf(ctx, "count login failure err: %v", err)
			return
		}
		if allowed {
			return
		}

		if n, _ := rdb.Exists(ctx, keyLoginFailLvl+ip).Result(); n > 0 {
			rdb.Set(ctx, interceptor.Key(keyLoginBlockHour+ip), "1", p.blockHour)
			hlog.CtxInfof(ctx, "login protection: ip %s blocked for %v (level 2)", ip, p.blockHour)
			return
		}
		pipe := rdb.Pipeline()
		pipe.Set(ctx, interceptor.Key(keyLoginBlockMinute+ip), "1", p.blockMin)
		pipe.Set(ctx, keyLoginFailLvl+ip, "1", p.levelAlive)
		if _, err := pipe.Exec(ctx); err != nil {
			hlog.CtxErrorf(ctx, "set login block keys err: %v", err)
		}
		hlog.CtxInfof(ctx, "login protection: ip %s blocked for %v (level 1)", ip, p.blockMin)
	}
}

// NewLoginSuccessRecorder caps how often one account may sign in successfully
// within success_window_seconds.
func NewLoginSuccessRecorder() app.HandlerFunc {
	conf := config.GetLoginProtectionConf()
	window := conf.SuccessWindowSeconds
	if window <= 0 {
		window = 60
	}
	limit := conf.SuccessLimit
	if limit <= 0 {
		limit = 10
	}
	recorder := interceptor.NewInterceptor(window, int64(limit-1))

	return func(ctx context.Context, c *app.RequestContext) {
		var req dto.SignInReq
		if err := c.BindAndValidate(&req); err != nil {
			resp.AbortWithErr(c, errs.ParamError.SetMsg(err.Error()), http.StatusBadRequest)
			return
		}
		// 用户名和邮箱各自计数, 邮箱不区分大小写
		key := keyLoginSuccess + strings.ToLower(strings.TrimSpace(req.Account))

		if recorder.ReachLimit(ctx, key) {
			resp.AbortWithErr(c, errs.LoginReachLimit.SetMsg("Login limit reached, please try again later"),
				http.StatusForbidden)
			return
		}

		c.Next(ctx)

		if r, err := resp.Parse(c); err != nil || !r.Success {
			return
		}
		if _, err := recorder.Allow(ctx, key); err != nil {
			hlog.CtxErrorf(ctx, "record login success err: %v", err)
		}
	}
}
