package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/booknest/backend/internal/db"
	"github.com/booknest/backend/internal/model"
)

// bcrypt work factor, matching the account store's original hashing policy.
const passwordCost = 12

// bcrypt truncates input beyond 72 bytes and newer versions reject it.
const maxPasswordLength = 72

// UserStore is the slice of the persistence layer the auth flow needs.
// *db.Postgres satisfies it; tests plug in an in-memory fake.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error)
	SetOTP(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	ClearOTPIfMatches(ctx context.Context, id uuid.UUID, code string) (bool, error)
}

// OTPMailer delivers the challenge out of band. A delivery failure aborts the
// login with ErrDeliveryFailed but leaves the stored challenge for a retry.
type OTPMailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// AuthService drives the login state machine:
// anonymous -> password verified (OTP pending) -> authenticated.
// The pending state lives on the user row, not in a session store.
type AuthService struct {
	users  UserStore
	otp    *OTPManager
	tokens *TokenIssuer
	mailer OTPMailer
	log    *zap.Logger
}

func NewAuthService(users UserStore, otp *OTPManager, tokens *TokenIssuer, mailer OTPMailer, log *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		otp:    otp,
		tokens: tokens,
		mailer: mailer,
		log:    log,
	}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.Profile, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if len(password) > maxPasswordLength {
		return model.Profile{}, fmt.Errorf("%w: password cannot exceed %d characters", ErrInvalidInput, maxPasswordLength)
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, email, username)
	if err != nil && !db.IsNoRows(err) {
		return model.Profile{}, err
	}
	if existing != nil {
		return model.Profile{}, ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return model.Profile{}, err
	}

	user, err := s.users.CreateUser(ctx, username, email, string(hash))
	if err != nil {
		if db.IsUniqueViolation(err) {
			return model.Profile{}, ErrConflict
		}
		return model.Profile{}, err
	}

	s.log.Info("user registered", zap.String("userId", user.ID.String()))
	return user.Profile(), nil
}

// Login performs the password check and opens an OTP challenge. Unknown
// email, deactivated account, and wrong password all collapse to
// ErrInvalidCredentials so the response carries no enumeration signal.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if db.IsNoRows(err) {
			return model.LoginResponse{}, ErrInvalidCredentials
		}
		return model.LoginResponse{}, err
	}

	if !user.IsActive {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.LoginResponse{}, ErrInvalidCredentials
	}

	return s.openChallenge(ctx, user)
}

// ResendOTP reissues a code for a login already in progress. It never
// re-checks the password; a user with no pending challenge gets ErrInvalidOtp.
func (s *AuthService) ResendOTP(ctx context.Context, userID uuid.UUID) (model.LoginResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return model.LoginResponse{}, ErrNotFound
		}
		return model.LoginResponse{}, err
	}

	if !user.IsActive {
		return model.LoginResponse{}, ErrInvalidCredentials
	}
	if user.OTPCode == nil {
		return model.LoginResponse{}, ErrInvalidOtp
	}

	return s.openChallenge(ctx, user)
}

func (s *AuthService) openChallenge(ctx context.Context, user *model.User) (model.LoginResponse, error) {
	challenge, err := s.otp.Issue(time.Now())
	if err != nil {
		return model.LoginResponse{}, err
	}

	if err := s.users.SetOTP(ctx, user.ID, challenge.Code, challenge.ExpiresAt); err != nil {
		return model.LoginResponse{}, err
	}

	if err := s.mailer.SendOTP(ctx, user.Email, challenge.Code); err != nil {
		s.log.Error("otp delivery failed", zap.String("userId", user.ID.String()), zap.Error(err))
		return model.LoginResponse{}, ErrDeliveryFailed
	}

	s.log.Info("otp issued", zap.String("userId", user.ID.String()))
	return model.LoginResponse{UserID: user.ID, Email: user.Email}, nil
}

// VerifyOTP completes the second factor. The challenge is spent with a
// conditional update keyed on the code, so a concurrent duplicate request
// loses the race and fails with ErrInvalidOtp.
func (s *AuthService) VerifyOTP(ctx context.Context, userID uuid.UUID, code string) (model.VerifyOTPResponse, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return model.VerifyOTPResponse{}, ErrNotFound
		}
		return model.VerifyOTPResponse{}, err
	}

	var challenge *Challenge
	if user.OTPCode != nil && user.OTPExpiresAt != nil {
		challenge = &Challenge{Code: *user.OTPCode, ExpiresAt: *user.OTPExpiresAt}
	}

	now := time.Now()
	if !s.otp.Verify(challenge, code, now) {
		return model.VerifyOTPResponse{}, ErrInvalidOtp
	}

	cleared, err := s.users.ClearOTPIfMatches(ctx, user.ID, code)
	if err != nil {
		return model.VerifyOTPResponse{}, err
	}
	if !cleared {
		return model.VerifyOTPResponse{}, ErrInvalidOtp
	}

	user.OTPCode = nil
	user.OTPExpiresAt = nil
	user.LastLogin = &now

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return model.VerifyOTPResponse{}, err
	}
	refreshToken, err := s.tokens.IssueRefresh(user)
	if err != nil {
		return model.VerifyOTPResponse{}, err
	}

	s.log.Info("login completed", zap.String("userId", user.ID.String()))
	return model.VerifyOTPResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Profile(),
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token is not rotated; expiry is its only invalidation.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.RefreshResponse, error) {
	userID, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return model.RefreshResponse{}, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return model.RefreshResponse{}, ErrInvalidToken
		}
		return model.RefreshResponse{}, err
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return model.RefreshResponse{}, err
	}

	return model.RefreshResponse{
		AccessToken: accessToken,
		User:        user.Profile(),
	}, nil
}
