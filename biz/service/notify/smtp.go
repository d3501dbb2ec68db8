package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"time"

	"accountd/be/biz/config"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

const verificationSubject = "Your verification code"

type sendFunc func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error

type SMTPNotifier struct {
	conf config.MailConf
	send sendFunc
}

func NewSMTPNotifier(conf config.MailConf) *SMTPNotifier {
	n := &SMTPNotifier{conf: conf, send: smtp.SendMail}
	if conf.EnableTLS {
		n.send = n.sendTLS
	}
	return n
}

func (n *SMTPNotifier) SendVerificationCode(ctx context.Context, email, name, code string) bool {
	to := mail.Address{Name: name, Address: email}
	msg := n.buildMessage(to, code)

	var auth smtp.Auth
	if n.conf.Username != "" {
		auth = smtp.PlainAuth("", n.conf.Username, n.conf.Password, n.conf.Host)
	}

	if err := n.send(n.addr(), auth, n.conf.Address, []string{email}, msg); err != nil {
		hlog.CtxErrorf(ctx, "send verification mail err: %v", err)
		return false
	}
	hlog.CtxInfof(ctx, "verification mail sent")
	return true
}

func (n *SMTPNotifier) buildMessage(to mail.Address, code string) []byte {
	from := mail.Address{Name: n.conf.Name, Address: n.conf.Address}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from.String())
	fmt.Fprintf(&buf, "To: %s\r\n", to.String())
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", verificationSubject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	fmt.Fprintf(&buf, "Hi %s,\r\n\r\nYour verification code is: %s\r\n", to.Name, code)
	return buf.Bytes()
}

func (n *SMTPNotifier) addr() string {
	port := n.conf.Port
	if port == 0 {
		port = 587
	}
	return net.JoinHostPort(n.conf.Host, strconv.Itoa(port))
}

// sendTLS talks to servers that expect TLS from the first byte (usually port 465).
func (n *SMTPNotifier) sendTLS(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr,
		&tls.Config{ServerName: n.conf.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, n.conf.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer c.Close()

	if auth != nil {
		if err := c.Auth(auth); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
