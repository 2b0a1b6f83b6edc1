package service

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"github.com/xxxsen/bizdir/internal/config"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

type Mail struct {
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

type EmailSender interface {
	Send(ctx context.Context, mail Mail) error
}

type smtpSender struct {
	cfg config.MailConfig
}

func NewEmailSender(cfg config.MailConfig) EmailSender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) enabled() bool {
	return s.cfg.Host != "" && s.cfg.Port != 0 && strings.TrimSpace(s.cfg.From) != ""
}

func (s *smtpSender) Send(ctx context.Context, mail Mail) error {
	if !s.enabled() || len(mail.To) == 0 {
		return appErr.ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	from := strings.TrimSpace(s.cfg.From)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return smtp.SendMail(addr, auth, from, mail.To, buildMessage(from, mail, time.Now()))
}

// buildMessage renders a plain text RFC 5322 message, the subject is
// Q-encoded so non ASCII company names survive.
func buildMessage(from string, mail Mail, now time.Time) []byte {
	var sb strings.Builder
	writeHeader := func(key, value string) {
		sb.WriteString(key)
		sb.WriteString(": ")
		sb.WriteString(value)
		sb.WriteString("\r\n")
	}
	writeHeader("From", from)
	writeHeader("To", strings.Join(mail.To, ", "))
	if mail.ReplyTo != "" {
		writeHeader("Reply-To", mail.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", mail.Subject))
	writeHeader("Date", now.Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", "text/plain; charset=UTF-8")
	sb.WriteString("\r\n")
	sb.WriteString(strings.ReplaceAll(mail.Body, "\n", "\r\n"))
	return []byte(sb.String())
}
