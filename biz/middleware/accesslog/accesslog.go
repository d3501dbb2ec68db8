package accesslog

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/logger/accesslog"
)

// quietPrefixes are served without access logs.
var quietPrefixes = []string{"/swagger/"}

func New() app.HandlerFunc {
	mw := accesslog.New(
		accesslog.WithAccessLogFunc(hlog.CtxInfof),
		accesslog.WithFormat("${status} ${latency} ${method} ${path} ${queryParams} ${ip}"),
	)
	return func(ctx context.Context, c *app.RequestContext) {
		path := string(c.Request.URI().Path())
		for _, p := range quietPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next(ctx)
				return
			}
		}
		mw(ctx, c)
	}
}
