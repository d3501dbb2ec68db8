package interceptor

import (
	"context"
	"time"

	"accountd/be/biz/db/redis"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "rate_limit:"

// luaScript ensures atomicity of INCR + EXPIRE and provides self-healing for keys without TTL.
// KEYS[1]: The rate limit key
// ARGV[1]: Window duration in seconds
// ARGV[2]: Max limit count
const luaScript = `
local key = KEYS[1]
local window = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call("INCR", key)

if current == 1 then
    redis.call("EXPIRE", key, window)
else
    if redis.call("TTL", key) == -1 then
        redis.call("EXPIRE", key, window)
    end
end

if current > limit then
    return 0 -- Denied
end
return 1 -- Allowed
`

var script = goredis.NewScript(luaScript)

// Interceptor is a fixed window counter shared by every instance through redis.
type Interceptor struct {
	window time.Duration
	limit  int64
}

func NewInterceptor(windowSeconds int, limit int64) *Interceptor {
	return &Interceptor{
		window: time.Duration(windowSeconds) * time.Second,
		limit:  limit,
	}
}

// Allow counts one hit for key and reports whether the window still has room.
func (i *Interceptor) Allow(ctx context.Context, key string) (bool, error) {
	result, err := script.Run(ctx, redis.GetRedisClient(),
		[]string{Key(key)}, int(i.window.Seconds()), i.limit).Int64()
	if err != nil {
		return false, err
	}

	// Result is 1 (Allowed) or 0 (Denied)
	return result == 1, nil
}

// ReachLimit reports whether key is already over the limit without counting a hit.
// A missing key or a redis failure is treated as not reached.
func (i *Interceptor) ReachLimit(ctx context.Context, key string) bool {
	n, err := redis.GetRedisClient().Get(ctx, Key(key)).Int64()
	if err != nil {
		return false
	}
	return n > i.limit
}

// Key is the redis key that backs the counter of key.
func Key(key string) string {
	return keyPrefix + key
}
