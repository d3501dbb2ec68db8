package notify

import (
	"context"

	"accountd/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// EmailNotifier delivers verification codes. It reports delivery failure as
// false and never blocks longer than its transport does.
type EmailNotifier interface {
	SendVerificationCode(ctx context.Context, email, name, code string) bool
}

// NewDefault sends through SMTP when a mail host is configured and only logs
// otherwise.
func NewDefault() EmailNotifier {
	conf := config.GetMailConf()
	if conf.Host == "" {
		return LogNotifier{}
	}
	return NewSMTPNotifier(conf)
}

// LogNotifier writes codes to the log instead of sending them. Local
// development only.
type LogNotifier struct{}

func (LogNotifier) SendVerificationCode(ctx context.Context, email, name, code string) bool {
	hlog.CtxNoticef(ctx, "mail disabled, verification code for %s (%s): %s", email, name, code)
	return true
}
