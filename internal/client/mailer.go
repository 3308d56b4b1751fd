package client

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/booknest/backend/internal/config"
)

const otpBody = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2c3e50;">BookNest OTP Verification</h2>
  <p>Hello,</p>
  <p>Your One-Time Password (OTP) for BookNest is:</p>
  <div style="background-color: #f8f9fa; padding: 20px; text-align: center; margin: 20px 0;">
    <h1 style="color: #3498db; letter-spacing: 5px; margin: 0;">%s</h1>
  </div>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you didn't request this OTP, please ignore this email.</p>
</div>`

// SMTPMailer delivers OTP codes over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    *zap.Logger
}

func NewSMTPMailer(cfg config.EmailConfig, log *zap.Logger) *SMTPMailer {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		port = 587
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	// gomail dials synchronously; honor cancellation before starting.
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Your BookNest OTP Code")
	msg.SetBody("text/html", fmt.Sprintf(otpBody, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Error("failed to send otp email", zap.String("to", to), zap.Error(err))
		return err
	}

	m.log.Info("otp email sent", zap.String("to", to))
	return nil
}
