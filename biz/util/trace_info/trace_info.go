package trace_info

import (
	"context"
)

type logIdKey struct{}

type userIdKey struct{}

func WithLogId(ctx context.Context, logId string) context.Context {
	return context.WithValue(ctx, logIdKey{}, logId)
}

func GetLogId(ctx context.Context) string {
	logId, _ := ctx.Value(logIdKey{}).(string)
	return logId
}

// WithUserId tags ctx with the authenticated account so log lines carry it.
func WithUserId(ctx context.Context, userId string) context.Context {
	return context.WithValue(ctx, userIdKey{}, userId)
}

func GetUserId(ctx context.Context) string {
	userId, _ := ctx.Value(userIdKey{}).(string)
	return userId
}
