package logger

import (
	"io"
	"path/filepath"

	"accountd/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newOutput is the rotating log file described by the logger section.
func newOutput() io.Writer {
	conf := config.GetLoggerConf()
	return &lumberjack.Logger{
		Filename:   filepath.Join(defaultString(conf.Dir, "./log"), defaultString(conf.FileName, "accountd.log")),
		MaxSize:    defaultInt(conf.MaxSize, 512),
		MaxAge:     defaultInt(conf.MaxAge, 14),
		MaxBackups: defaultInt(conf.MaxBackups, 10),
		LocalTime:  true,
	}
}

var levels = map[string]hlog.Level{
	"trace":  hlog.LevelTrace,
	"debug":  hlog.LevelDebug,
	"info":   hlog.LevelInfo,
	"notice": hlog.LevelNotice,
	"warn":   hlog.LevelWarn,
	"error":  hlog.LevelError,
	"fatal":  hlog.LevelFatal,
}

func newLevel() hlog.Level {
	if level, ok := levels[config.GetLoggerConf().Level]; ok {
		return level
	}
	return hlog.LevelInfo
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
