package email

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"autoblog/internal/apperr"

	"github.com/wneessen/go-mail"
)

// SMTPSettings configures an SMTP relay.
type SMTPSettings struct {
	Host     string
	Port     int
	Secure   bool // Implicit TLS; otherwise STARTTLS when offered
	Username string
	Password string
}

// SMTPMailer sends messages through an SMTP relay with go-mail.
type SMTPMailer struct {
	settings SMTPSettings
}

func NewSMTPMailer(s SMTPSettings) (*SMTPMailer, error) {
	if s.Host == "" {
		return nil, errors.New("SMTP host is required")
	}
	return &SMTPMailer{settings: s}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out, err := buildMsg(msg)
	if err != nil {
		return apperr.NewDelivery("email", err)
	}

	client, err := mail.NewClient(m.settings.Host, m.clientOptions()...)
	if err != nil {
		return apperr.NewDelivery("email", fmt.Errorf("failed to create SMTP client: %w", err))
	}
	if err := client.DialAndSendWithContext(ctx, out); err != nil {
		return apperr.NewDelivery("email", err)
	}
	return nil
}

func (m *SMTPMailer) clientOptions() []mail.Option {
	opts := []mail.Option{mail.WithPort(m.settings.Port)}
	if m.settings.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.settings.Username),
			mail.WithPassword(m.settings.Password),
		)
	}
	return opts
}

func buildMsg(msg Message) (*mail.Msg, error) {
	out := mail.NewMsg()
	if err := out.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid from address %q: %w", msg.From, err)
	}
	if err := out.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient list: %w", err)
	}
	out.Subject(msg.Subject)
	out.SetBodyString(mail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		err := out.AttachReader(a.Filename, bytes.NewReader(a.Data),
			mail.WithFileContentType(mail.ContentType(a.ContentType)))
		if err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", a.Filename, err)
		}
	}
	return out, nil
}
