package client

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/booknest/backend/internal/config"
)

func TestSendOTPHonorsCancelledContext(t *testing.T) {
	mailer := NewSMTPMailer(config.EmailConfig{
		Host: "smtp.invalid",
		Port: "587",
		From: "noreply@booknest.local",
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := mailer.SendOTP(ctx, "alice@x.com", "123456")
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewSMTPMailerPortFallback(t *testing.T) {
	mailer := NewSMTPMailer(config.EmailConfig{
		Host: "smtp.invalid",
		Port: "not-a-port",
		From: "noreply@booknest.local",
	}, zap.NewNop())

	if mailer.dialer.Port != 587 {
		t.Fatalf("Port = %d, want 587", mailer.dialer.Port)
	}
}
