// Package mail envío de correo por SMTP con gomail.
package mail

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/hrportal-api/internal/application/ports"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// Config servidor SMTP.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// SMTPMailer adaptador de ports.Mailer.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer construye el adaptador. Sin usuario no se autentica contra el servidor.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

// Send arma el mensaje y lo envía; si el contexto vence antes, devuelve su error.
func (m *SMTPMailer) Send(ctx context.Context, mail ports.Mail) error {
	msg, err := buildMessage(m.from, mail)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case <-ctx.Done():
		return fmt.Errorf("smtp: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp: enviar a %v: %w", mail.To, err)
		}
		return nil
	}
}

// buildMessage texto plano con alternativa HTML cuando vienen ambos.
func buildMessage(from string, mail ports.Mail) (*gomail.Message, error) {
	if len(mail.To) == 0 {
		return nil, errors.New("smtp: sin destinatarios")
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", mail.To...)
	msg.SetHeader("Subject", mail.Subject)

	switch {
	case mail.Text != "" && mail.HTML != "":
		msg.SetBody("text/plain", mail.Text)
		msg.AddAlternative("text/html", mail.HTML)
	case mail.HTML != "":
		msg.SetBody("text/html", mail.HTML)
	default:
		msg.SetBody("text/plain", mail.Text)
	}
	return msg, nil
}
