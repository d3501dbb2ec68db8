package logger

import (
	"context"
	"io"
	"os"

	"accountd/be/biz/util/ip"
	"accountd/be/biz/util/trace_info"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/sirupsen/logrus"
)

func Init() {
	hlog.SetLogger(newLogger(io.MultiWriter(os.Stdout, newOutput()), newLevel()))
}

type logrusLogger struct {
	l *logrus.Logger
}

var _ hlog.FullLogger = (*logrusLogger)(nil)

func newLogger(out io.Writer, level hlog.Level) *logrusLogger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	l.SetOutput(out)
	if host := ip.IPv4(); host != "" {
		l.AddHook(hostHook(host))
	}
	ll := &logrusLogger{l: l}
	ll.SetLevel(level)
	return ll
}

// hostHook stamps every entry with the address of the instance that wrote it.
type hostHook string

func (h hostHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h hostHook) Fire(e *logrus.Entry) error {
	e.Data["host"] = string(h)
	return nil
}

func (ll *logrusLogger) SetLevel(level hlog.Level) {
	ll.l.SetLevel(toLogrusLevel(level))
}

func (ll *logrusLogger) SetOutput(w io.Writer) {
	ll.l.SetOutput(w)
}

func (ll *logrusLogger) entry(ctx context.Context) *logrus.Entry {
	e := logrus.NewEntry(ll.l)
	if ctx == nil {
		return e
	}
	if logID := trace_info.GetLogId(ctx); logID != "" {
		e = e.WithField("log_id", logID)
	}
	if userID := trace_info.GetUserId(ctx); userID != "" {
		e = e.WithField("user_id", userID)
	}
	return e.WithContext(ctx)
}

func (ll *logrusLogger) Trace(v ...interface{})  { ll.l.Trace(v...) }
func (ll *logrusLogger) Debug(v ...interface{})  { ll.l.Debug(v...) }
func (ll *logrusLogger) Info(v ...interface{})   { ll.l.Info(v...) }
func (ll *logrusLogger) Notice(v ...interface{}) { ll.l.Info(v...) }
func (ll *logrusLogger) Warn(v ...interface{})   { ll.l.Warn(v...) }
func (ll *logrusLogger) Error(v ...interface{})  { ll.l.Error(v...) }
func (ll *logrusLogger) Fatal(v ...interface{})  { ll.l.Fatal(v...) }

func (ll *logrusLogger) Tracef(format string, v ...interface{})  { ll.l.Tracef(format, v...) }
func (ll *logrusLogger) Debugf(format string, v ...interface{})  { ll.l.Debugf(format, v...) }
func (ll *logrusLogger) Infof(format string, v ...interface{})   { ll.l.Infof(format, v...) }
func (ll *logrusLogger) Noticef(format string, v ...interface{}) { ll.l.Infof(format, v...) }
func (ll *logrusLogger) Warnf(format string, v ...interface{})   { ll.l.Warnf(format, v...) }
func (ll *logrusLogger) Errorf(format string, v ...interface{})  { ll.l.Errorf(format, v...) }
func (ll *logrusLogger) Fatalf(format string, v ...interface{})  { ll.l.Fatalf(format, v...) }

func (ll *logrusLogger) CtxTracef(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Tracef(format, v...)
}

func (ll *logrusLogger) CtxDebugf(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Debugf(format, v...)
}

func (ll *logrusLogger) CtxInfof(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Infof(format, v...)
}

func (ll *logrusLogger) CtxNoticef(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Infof(format, v...)
}

func (ll *logrusLogger) CtxWarnf(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Warnf(format, v...)
}

func (ll *logrusLogger) CtxErrorf(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Errorf(format, v...)
}

func (ll *logrusLogger) CtxFatalf(ctx context.Context, format string, v ...interface{}) {
	ll.entry(ctx).Fatalf(format, v...)
}

// logrus has no notice level, notice is written as info.
func toLogrusLevel(level hlog.Level) logrus.Level {
	switch level {
	case hlog.LevelTrace:
		return logrus.TraceLevel
	case hlog.LevelDebug:
		return logrus.DebugLevel
	case hlog.LevelInfo, hlog.LevelNotice:
		return logrus.InfoLevel
	case hlog.LevelWarn:
		return logrus.WarnLevel
	case hlog.LevelError:
		return logrus.ErrorLevel
	case hlog.LevelFatal:
		return logrus.FatalLevel
	}
	return logrus.TraceLevel
}
