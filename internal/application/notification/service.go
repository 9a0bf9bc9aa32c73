// Package notification códigos de un solo uso por correo y envío de correo de servicio.
package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/jhoicas/hrportal-api/internal/application/auth"
	"github.com/jhoicas/hrportal-api/internal/application/dto"
	"github.com/jhoicas/hrportal-api/internal/application/ports"
	"github.com/jhoicas/hrportal-api/internal/domain"
)

// DefaultMaxAttempts intentos fallidos tolerados antes de invalidar el secreto.
const DefaultMaxAttempts = 5

// SecretStore guarda el secreto TOTP vigente por email y cuenta sus intentos fallidos.
type SecretStore interface {
	Put(email, secret string, ttl time.Duration)
	Get(email string) (string, bool)
	Fail(email string) int
	Delete(email string)
}

// Config parámetros TOTP.
type Config struct {
	Issuer        string
	PeriodSeconds int
	Digits        int
	MaxAttempts   int // 0 usa DefaultMaxAttempts
}

// Service OTP por correo y correo libre.
type Service struct {
	mailer ports.Mailer
	store  SecretStore
	issuer string
	period uint
	digits otp.Digits
	max    int
	now    func() time.Time
}

// NewService valida la configuración: 6 u 8 dígitos y período positivo.
func NewService(mailer ports.Mailer, store SecretStore, cfg Config) (*Service, error) {
	if cfg.PeriodSeconds <= 0 {
		return nil, fmt.Errorf("notification: período OTP inválido (%d)", cfg.PeriodSeconds)
	}
	var digits otp.Digits
	switch cfg.Digits {
	case 6:
		digits = otp.DigitsSix
	case 8:
		digits = otp.DigitsEight
	default:
		return nil, fmt.Errorf("notification: OTP_DIGITS debe ser 6 u 8, no %d", cfg.Digits)
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Service{
		mailer: mailer,
		max:    maxAttempts,
		store:  store,
		issuer: cfg.Issuer,
		period: uint(cfg.PeriodSeconds),
		digits: digits,
		now:    time.Now,
	}, nil
}

func (s *Service) validateOpts() totp.ValidateOpts {
	return totp.ValidateOpts{Period: s.period, Skew: 1, Digits: s.digits, Algorithm: otp.AlgorithmSHA1}
}

// SendOTP genera un secreto nuevo para el email, reemplaza el anterior y envía el código.
func (s *Service) SendOTP(ctx context.Context, in dto.SendOTPRequest) error {
	email := auth.NormalizeEmail(in.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: a valid email is required", domain.ErrInvalidInput)
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: email,
		Period:      s.period,
		Digits:      s.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return fmt.Errorf("generar secreto OTP: %w", err)
	}
	code, err := totp.GenerateCodeCustom(key.Secret(), s.now(), s.validateOpts())
	if err != nil {
		return fmt.Errorf("generar código OTP: %w", err)
	}

	ttl := time.Duration(s.period) * time.Second
	s.store.Put(email, key.Secret(), ttl)

	minutes := int(ttl.Minutes())
	return s.mailer.Send(ctx, ports.Mail{
		To:      []string{email},
		Subject: fmt.Sprintf("%s verification code", s.issuer),
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes),
		HTML:    fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>", code, minutes),
	})
}

// VerifyOTP valida y consume el código. Código incorrecto o vencido devuelve ErrUnauthorized;
// al llegar a max fallos el secreto se descarta y hace falta pedir otro código.
func (s *Service) VerifyOTP(_ context.Context, in dto.VerifyOTPRequest) error {
	email := auth.NormalizeEmail(in.Email)
	code := strings.TrimSpace(in.OTP)
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and otp are required", domain.ErrInvalidInput)
	}
	secret, ok := s.store.Get(email)
	if !ok {
		return domain.ErrUnauthorized
	}
	valid, err := totp.ValidateCustom(code, secret, s.now(), s.validateOpts())
	if err != nil || !valid {
		if s.store.Fail(email) >= s.max {
			s.store.Delete(email)
		}
		return domain.ErrUnauthorized
	}
	s.store.Delete(email)
	return nil
}

// SendMail correo de servicio: destinatarios, asunto y al menos un cuerpo.
func (s *Service) SendMail(ctx context.Context, in dto.SendMailRequest) error {
	var to []string
	for _, addr := range in.To {
		if addr = strings.TrimSpace(addr); addr != "" {
			to = append(to, addr)
		}
	}
	if len(to) == 0 || strings.TrimSpace(in.Subject) == "" || (in.HTML == "" && in.Text == "") {
		return fmt.Errorf("%w: to, subject and html or text are required", domain.ErrInvalidInput)
	}
	return s.mailer.Send(ctx, ports.Mail{To: to, Subject: in.Subject, HTML: in.HTML, Text: in.Text})
}
