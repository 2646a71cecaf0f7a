package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func NewEmailSender(host string, port int, user, password, from string, linkTTL time.Duration) *EmailSender {
	return NewEmailSenderWithDialer(gomail.NewDialer(host, port, user, password), from, linkTTL)
}

func NewEmailSenderWithDialer(d Dialer, from string, linkTTL time.Duration) *EmailSender {
	return &EmailSender{
		From:    from,
		LinkTTL: humanDuration(linkTTL),
		dialer:  d,
	}
}

func (s *EmailSender) SendVerificationEmail(ctx context.Context, to, link string) error {
	var body bytes.Buffer
	data := VerificationEmailData{Link: link, ExpiresIn: s.LinkTTL}
	if err := templates.ExecuteTemplate(&body, "verify_email.html", data); err != nil {
		return fmt.Errorf("render verification email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Verify your email address")
	m.SetBody("text/plain", "Verify your email address: "+link)
	m.AddAlternative("text/html", body.String())

	return s.send(ctx, m)
}

// SendReport sends a plain-text message, used by the daily stage report.
func (s *EmailSender) SendReport(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	return s.send(ctx, m)
}

func (s *EmailSender) send(ctx context.Context, m *gomail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via SMTP: %w", err)
	}
	return nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short while"
	case d%time.Hour == 0:
		h := int(d / time.Hour)
		if h == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", h)
	default:
		m := int(d.Round(time.Minute) / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
}
