package cors

import (
	"slices"
	"time"

	"accountd/be/biz/config"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/cors"
)

var (
	defaultMethods = []string{"GET", "POST", "OPTIONS"}
	defaultHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Requested-With", "X-Log-ID"}
)

func New() app.HandlerFunc {
	return cors.New(buildConfig(config.GetCORSConf()))
}

func buildConfig(conf config.CORSConf) cors.Config {
	cfg := cors.Config{
		AllowMethods:     defaultIfEmpty(conf.AllowMethods, defaultMethods),
		AllowHeaders:     defaultIfEmpty(conf.AllowHeaders, defaultHeaders),
		ExposeHeaders:    []string{"X-Log-ID"},
		AllowCredentials: conf.AllowCredentials,
		MaxAge:           time.Duration(conf.MaxAge) * time.Second,
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 12 * time.Hour
	}

	allowAny := len(conf.AllowOrigins) == 0 || slices.Contains(conf.AllowOrigins, "*")
	switch {
	case !allowAny:
		cfg.AllowOrigins = conf.AllowOrigins
	case conf.AllowCredentials:
		// 携带 cookie 时不能返回 *, 回显请求的 origin
		cfg.AllowOriginFunc = func(string) bool { return true }
	default:
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func defaultIfEmpty(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}
