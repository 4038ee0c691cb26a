package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type Mail struct {
	To      []string
	Cc      []string
	Subject string
	Body    string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

type smtpMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer sends through a plain SMTP relay. host is "host:port"; auth
// may be nil for an open relay on a private network.
func NewSMTPMailer(addr, from string, auth smtp.Auth) Mailer {
	return &smtpMailer{addr: addr, from: from, auth: auth}
}

func (m *smtpMailer) Send(_ context.Context, mail Mail) error {
	recipients := append(append([]string{}, mail.To...), mail.Cc...)

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(mail.To, ", "))
	if len(mail.Cc) > 0 {
		fmt.Fprintf(&msg, "Cc: %s\r\n", strings.Join(mail.Cc, ", "))
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", mail.Subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(mail.Body)

	return smtp.SendMail(m.addr, m.auth, m.from, recipients, []byte(msg.String()))
}

type logMailer struct {
	logger *zap.Logger
}

// NewLogMailer is the fallback when SMTP_ADDR is not configured.
func NewLogMailer(logger *zap.Logger) Mailer {
	return &logMailer{logger: logger.Named("notify.mailer.log")}
}

func (m *logMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Info("email (log only)",
		zap.Strings("to", mail.To),
		zap.Strings("cc", mail.Cc),
		zap.String("subject", mail.Subject),
		zap.String("body", mail.Body),
	)
	return nil
}
