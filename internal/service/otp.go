package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const DefaultOTPTTL = 10 * time.Minute

// Challenge is a pending OTP bound to a user record. It lives on the user
// row between a successful password check and a successful verification.
type Challenge struct {
	Code      string
	ExpiresAt time.Time
}

type OTPManager struct {
	ttl time.Duration
}

func NewOTPManager(ttl time.Duration) *OTPManager {
	if ttl <= 0 {
		ttl = DefaultOTPTTL
	}
	return &OTPManager{ttl: ttl}
}

// Issue draws a uniform 6-digit code (100000-999999) and stamps the expiry.
func (m *OTPManager) Issue(now time.Time) (Challenge, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return Challenge{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	return Challenge{
		Code:      fmt.Sprintf("%06d", n.Int64()+100000),
		ExpiresAt: now.Add(m.ttl),
	}, nil
}

// Verify fails closed: no challenge, expired, or mismatch all return false.
// It does not clear the challenge; the caller spends it with an atomic
// compare-and-clear after acting on a true result.
func (m *OTPManager) Verify(ch *Challenge, submitted string, now time.Time) bool {
	if ch == nil || ch.Code == "" || ch.ExpiresAt.IsZero() {
		return false
	}
	if now.After(ch.ExpiresAt) {
		return false
	}
	return ch.Code == submitted
}
