package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/smtp"
	"time"

	"github.com/mailersend/mailersend-go"

	"github.com/example/damrideal/internal/config"
)

// Notifier dispatches OTP codes to users. The auth service treats
// delivery as best effort, so implementations just report failure.
type Notifier interface {
	Send(to, subject, body string) error
}

// NewNotifier picks a backend from configuration: "smtp", "mailersend"
// or the default log-only notifier for development.
func NewNotifier(cfg *config.Config) Notifier {
	switch cfg.MailBackend {
	case "smtp":
		return &SMTPNotifier{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			From: cfg.MailFrom,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
		}
	case "mailersend":
		return NewMailerSendNotifier(cfg.MailerSendKey, cfg.MailFromName, cfg.MailFrom)
	default:
		return &LogNotifier{}
	}
}

// LogNotifier writes the message to the process log instead of sending
// it. Development only.
type LogNotifier struct{}

func (n *LogNotifier) Send(to, subject, body string) error {
	log.Printf("mail to=%s subject=%q body=%q", to, subject, body)
	return nil
}

// SMTPNotifier delivers plain-text mail over SMTP.
type SMTPNotifier struct {
	Host string
	Port int
	From string
	User string
	Pass string
}

func (n *SMTPNotifier) Send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("empty recipient email")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", n.From)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n", body)

	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}

	return smtp.SendMail(addr, auth, n.From, []string{to}, buf.Bytes())
}

// MailerSendNotifier delivers mail through the MailerSend API.
type MailerSendNotifier struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendNotifier(apiKey, fromName, fromEmail string) *MailerSendNotifier {
	return &MailerSendNotifier{
		client: mailersend.NewMailersend(apiKey),
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}
}

func (n *MailerSendNotifier) Send(to, subject, body string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := n.client.Email.NewMessage()
	msg.SetFrom(n.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: to}})
	msg.SetSubject(subject)
	msg.SetText(body)

	_, err := n.client.Email.Send(ctx, msg)
	return err
}
