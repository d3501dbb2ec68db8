package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"accountd/be/biz/config"
	"accountd/be/biz/db/redis"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/util/interceptor"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const keyRegisterBlock = "register_block:"

// NewRegisterProtection blocks an ip from registering again for a while after
// it registered successfully.
func NewRegisterProtection() app.HandlerFunc {
	blockMinutes := config.GetRegisterProtectionConf().BlockMinutes
	if blockMinutes <= 0 {
		blockMinutes = 10
	}
	blockDuration := time.Duration(blockMinutes) * time.Minute

	return func(ctx context.Context, c *app.RequestContext) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		blockKey := interceptor.Key(keyRegisterBlock + ip)
		rdb := redis.GetRedisClient()

		if n, _ := rdb.Exists(ctx, blockKey).Result(); n > 0 {
			resp.AbortWithErr(c, errs.RequestBlocked.SetMsg(
				fmt.Sprintf("Registration is temporarily blocked. Please try again after %v minutes", blockMinutes)),
				http.StatusForbidden)
			return
		}

		c.Next(ctx)

		r, err := resp.Parse(c)
		if err != nil {
			hlog.CtxErrorf(ctx, "parse register response err: %v", err)
			return
		}
		if !r.Success {
			return
		}
		if err := rdb.Set(ctx, blockKey, "1", blockDuration).Err(); err != nil {
			hlog.CtxErrorf(ctx, "set register block key err: %v", err)
			return
		}
		hlog.CtxInfof(ctx, "register protection: ip %s blocked for %v", ip, blockDuration)
	}
}
