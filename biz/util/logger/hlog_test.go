package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"accountd/be/biz/config"
	"accountd/be/biz/util/random"
	"accountd/be/biz/util/trace_info"

	"github.com/bytedance/mockey"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/assert"
)

func TestHlog(t *testing.T) {
	Init()

	ctx := trace_info.WithLogId(context.Background(), random.RandStr(32))

	hlog.CtxInfof(ctx, "test info data: %d, %s", 123, "ttt")
	hlog.CtxErrorf(ctx, "test error data: %d, %s", 123, "ttt")

	hlog.Infof("test info data: %d, %s", 123, "ttt")
	hlog.Errorf("test error data: %d, %s", 123, "ttt")
}

func TestLogger_LogIDField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, hlog.LevelInfo)

	ctx := trace_info.WithLogId(context.Background(), "log-1")
	l.CtxInfof(ctx, "hello %s", "world")

	var line map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "log-1", line["log_id"])
	assert.Equal(t, "hello world", line["msg"])
	assert.Equal(t, "info", line["level"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, hlog.LevelWarn)

	l.CtxInfof(context.Background(), "dropped")
	assert.Zero(t, buf.Len())

	l.CtxWarnf(context.Background(), "kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLogger_UserIDField(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, hlog.LevelInfo)

	ctx := trace_info.WithUserId(context.Background(), "u1")
	l.CtxNoticef(ctx, "signed in")

	var line map[string]any
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "u1", line["user_id"])
	assert.Nil(t, line["log_id"])
}

func TestNewLevel(t *testing.T) {
	mockey.PatchConvey("TestNewLevel", t, func() {
		conf := config.LoggerConf{}
		mockey.Mock(config.GetLoggerConf).To(func() config.LoggerConf { return conf }).Build()

		assert.Equal(t, hlog.LevelInfo, newLevel())
		conf.Level = "warn"
		assert.Equal(t, hlog.LevelWarn, newLevel())
		conf.Level = "verbose"
		assert.Equal(t, hlog.LevelInfo, newLevel())
	})
}
