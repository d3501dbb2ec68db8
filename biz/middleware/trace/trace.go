package trace

import (
	"context"

	"accountd/be/biz/util/id_gen"
	"accountd/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/app"
)

const (
	headerKeyLogId = "X-Log-ID"

	maxLogIdLength = 64
)

// New tags the request with a log id, reusing the caller's X-Log-ID when it is
// well formed, and echoes it in the response.
func New() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		logID := c.Request.Header.Get(headerKeyLogId)
		if !wellFormed(logID) {
			logID = id_gen.NewID()
		}
		// 先写响应头, 被中断的请求也能带上
		c.Header(headerKeyLogId, logID)
		c.Next(trace_info.WithLogId(ctx, logID))
	}
}

func wellFormed(logID string) bool {
	if logID == "" || len(logID) > maxLogIdLength {
		return false
	}
	for _, r := range logID {
		if !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
