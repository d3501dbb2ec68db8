package ratelimit

import (
	"context"
	"net/http"

	"accountd/be/biz/config"
	"accountd/be/biz/middleware/session"
	"accountd/be/biz/model/errs"
	"accountd/be/biz/util/interceptor"
	"accountd/be/biz/util/resp"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type rule struct {
	interceptor *interceptor.Interceptor
	hasSession  bool
}

// 未配置的路径: 1 秒 2 次, 按 IP 计数
var defaultRule = rule{interceptor: interceptor.NewInterceptor(1, 2)}

// New limits requests per path with the windows of config.GetRateLimitConf().
// A rule with has_session counts per session instead of per client ip.
func New() app.HandlerFunc {
	rules := make(map[string]rule)
	for _, conf := range config.GetRateLimitConf() {
		if conf.Path == "" || conf.WindowSeconds <= 0 || conf.Limit <= 0 {
			hlog.Warnf("ignore rate limit rule: %+v", conf)
			continue
		}
		rules[conf.Path] = rule{
			interceptor: interceptor.NewInterceptor(conf.WindowSeconds, conf.Limit),
			hasSession:  conf.HasSession,
		}
	}

	return func(ctx context.Context, c *app.RequestContext) {
		path := string(c.Request.URI().Path())
		r, ok := rules[path]
		if !ok {
			r = defaultRule
		}

		key := c.ClientIP()
		if r.hasSession {
			// 没有会话时退回到 IP
			if sid := session.ID(c); sid != "" {
				key = "sess:" + sid
			}
		}

		allowed, err := r.interceptor.Allow(ctx, path+":"+key)
		if err != nil {
			// redis 故障时放行
			hlog.CtxErrorf(ctx, "rate limit err, key=%s: %v", key, err)
			c.Next(ctx)
			return
		}
		if !allowed {
			resp.AbortWithErr(c, errs.TooManyRequest, http.StatusTooManyRequests)
			return
		}

		c.Next(ctx)
	}
}
