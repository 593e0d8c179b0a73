package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"farmdirect/internal/app/session"
	"farmdirect/internal/common"
	"farmdirect/internal/common/retry"
	"farmdirect/internal/common/security"
	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SignupLimiter throttles repeated signup attempts per email. Allow returns
// false while a previous attempt is still inside the cooldown window.
type SignupLimiter interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// OTPStore holds one-time codes keyed by phone. Consume returns the stored
// code and removes it in one step so a code can never be used twice.
type OTPStore interface {
	Put(ctx context.Context, phone, code string, ttl time.Duration) error
	Consume(ctx context.Context, phone string) (string, error)
}

// SMSSender delivers one-time codes out of band.
type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// Mailer sends account emails: confirmation links and one-time codes.
type Mailer interface {
	SendConfirmation(ctx context.Context, email, token string) error
	SendOTP(ctx context.Context, email, code string) error
}

// ConfirmationStore holds pending email-confirmation tokens keyed by the
// opaque token mailed to the user. Consume removes the token so a link can
// only be redeemed once.
type ConfirmationStore interface {
	Put(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

// IdentityVerifier validates an external provider token and returns the
// identity it asserts.
type IdentityVerifier interface {
	Verify(ctx context.Context, provider, token string) (email, fullName string, err error)
}

type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// SignUpResult reports how signup concluded. Session is nil when the account
// was created but could not be signed in; NeedsConfirmation tells the caller
// to prompt for email confirmation instead of treating it as a failure.
type SignUpResult struct {
	User              *model.User    `json:"user"`
	Session           *model.Session `json:"session,omitempty"`
	NeedsConfirmation bool           `json:"needs_confirmation"`
}

type AuthService struct {
	users         repository.UserRepository
	sessions      *session.Manager
	limiter       SignupLimiter
	otp           OTPStore
	sms           SMSSender
	mailer        Mailer
	confirmations ConfirmationStore
	identity      IdentityVerifier

	countryCode   string
	otpTTL        time.Duration
	confirmTTL    time.Duration
	fallbackDelay time.Duration
	sleep         retry.Sleeper
	newOTP        func() string
}

type AuthOption func(*AuthService)

// WithSleeper overrides the sleep used before the signup sign-in fallback.
func WithSleeper(sleep retry.Sleeper) AuthOption {
	return func(s *AuthService) { s.sleep = sleep }
}

// WithOTPGenerator overrides one-time code generation.
func WithOTPGenerator(gen func() string) AuthOption {
	return func(s *AuthService) { s.newOTP = gen }
}

func NewAuthService(
	users repository.UserRepository,
	sessions *session.Manager,
	limiter SignupLimiter,
	otp OTPStore,
	sms SMSSender,
	mailer Mailer,
	confirmations ConfirmationStore,
	identity IdentityVerifier,
	countryCode string,
	otpTTL time.Duration,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:         users,
		sessions:      sessions,
		limiter:       limiter,
		otp:           otp,
		sms:           sms,
		mailer:        mailer,
		confirmations: confirmations,
		identity:      identity,
		countryCode:   countryCode,
		otpTTL:        otpTTL,
		confirmTTL:    24 * time.Hour,
		fallbackDelay: 500 * time.Millisecond,
		sleep:         retry.Sleep,
		newOTP:        randomOTP,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignUp registers a new account. Rate-limited attempts surface a friendly
// wait message rather than the raw limiter error. When the fresh account
// cannot be signed in immediately, one password sign-in is attempted after a
// short pause before reporting that email confirmation is pending.
func (s *AuthService) SignUp(ctx context.Context, in SignUpInput) (*SignUpResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	allowed, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("Please wait a moment before trying again: %w", common.ErrRateLimited)
	}

	hashed, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("AuthService.SignUp: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.RoleConsumer
	}
	user := &model.User{
		ID:             uuid.New().String(),
		Email:          email,
		FullName:       in.FullName,
		HashedPassword: hashed,
		Role:           role,
	}
	if in.Phone != "" {
		phone, err := NormalizePhone(in.Phone, s.countryCode)
		if err != nil {
			return nil, err
		}
		user.Phone = phone
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.EmailConfirmed {
		sess, err := s.sessions.Issue(ctx, user.ID, user.Role)
		if err != nil {
			return nil, err
		}
		return &SignUpResult{User: user, Session: sess}, nil
	}

	// No session came back with the account. Give the write a moment to
	// settle, then try a regular password sign-in once before giving up.
	if err := s.sleep(ctx, s.fallbackDelay); err != nil {
		return nil, err
	}
	sess, err := s.SignIn(ctx, email, in.Password)
	if err == nil {
		return &SignUpResult{User: user, Session: sess}, nil
	}
	log.Info().Str("email", email).Msg("signup fallback sign-in did not produce a session, confirmation pending")

	if s.mailer != nil && s.confirmations != nil {
		token := uuid.New().String()
		if err := s.confirmations.Put(ctx, token, user.ID, s.confirmTTL); err != nil {
			return nil, err
		}
		if mailErr := s.mailer.SendConfirmation(ctx, email, token); mailErr != nil {
			log.Warn().Err(mailErr).Msg("could not send confirmation mail")
		}
	}
	return &SignUpResult{User: user, NeedsConfirmation: true}, nil
}

// SignIn authenticates with email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.EmailConfirmed {
		return nil, fmt.Errorf("email not confirmed: %w", common.ErrUnauthorized)
	}
	if !security.CheckPasswordHash(password, user.HashedPassword) {
		return nil, fmt.Errorf("invalid credentials: %w", common.ErrUnauthorized)
	}
	return s.sessions.Issue(ctx, user.ID, user.Role)
}

// ConfirmEmail redeems a confirmation token: the account is marked confirmed
// and the user is signed in directly, so the link completes signup in one
// click.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*model.Session, error) {
	if s.confirmations == nil {
		return nil, fmt.Errorf("email confirmation not configured: %w", common.ErrBadRequest)
	}
	userID, err := s.confirmations.Consume(ctx, token)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, fmt.Errorf("invalid or expired confirmation link: %w", common.ErrUnauthorized)
	}
	if err := s.users.ConfirmEmail(ctx, userID); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.sessions.Issue(ctx, user.ID, user.Role)
}

// RequestOTP stores a short-lived one-time code for the address and sends
// it out of band: email codes through the mailer, phone codes over SMS
// after normalization.
func (s *AuthService) RequestOTP(ctx context.Context, destination string) error {
	normalized, byEmail, err := s.normalizeOTPDestination(destination)
	if err != nil {
		return err
	}
	code := s.newOTP()
	if err := s.otp.Put(ctx, normalized, code, s.otpTTL); err != nil {
		return err
	}
	if byEmail {
		if s.mailer == nil {
			return fmt.Errorf("email codes not configured: %w", common.ErrBadRequest)
		}
		return s.mailer.SendOTP(ctx, normalized, code)
	}
	return s.sms.SendOTP(ctx, normalized, code)
}

// VerifyOTP consumes the stored code. A first-time address gets an account
// created on the fly; either way a session is issued.
func (s *AuthService) VerifyOTP(ctx context.Context, destination, code string) (*model.Session, error) {
	normalized, byEmail, err := s.normalizeOTPDestination(destination)
	if err != nil {
		return nil, err
	}
	stored, err := s.otp.Consume(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if stored == "" || stored != code {
		return nil, fmt.Errorf("invalid or expired code: %w", common.ErrUnauthorized)
	}

	user, err := s.findOTPUser(ctx, normalized, byEmail)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		user = &model.User{
			ID:             uuid.New().String(),
			Role:           model.RoleConsumer,
			EmailConfirmed: true,
		}
		if byEmail {
			user.Email = normalized
		} else {
			user.Phone = normalized
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.sessions.Issue(ctx, user.ID, user.Role)
}

func (s *AuthService) normalizeOTPDestination(destination string) (string, bool, error) {
	trimmed := strings.TrimSpace(destination)
	if strings.Contains(trimmed, "@") {
		return strings.ToLower(trimmed), true, nil
	}
	normalized, err := NormalizePhone(trimmed, s.countryCode)
	return normalized, false, err
}

func (s *AuthService) findOTPUser(ctx context.Context, normalized string, byEmail bool) (*model.User, error) {
	if byEmail {
		return s.users.FindByEmail(ctx, normalized)
	}
	return s.users.FindByPhone(ctx, normalized)
}

// ExternalSignIn signs in through a third-party identity provider.
func (s *AuthService) ExternalSignIn(ctx context.Context, provider, token string) (*model.Session, error) {
	if s.identity == nil {
		return nil, fmt.Errorf("external sign-in not configured: %w", common.ErrBadRequest)
	}
	email, fullName, err := s.identity.Verify(ctx, provider, token)
	if err != nil {
		return nil, fmt.Errorf("identity verification failed: %w", common.ErrUnauthorized)
	}
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		user = &model.User{
			ID:             uuid.New().String(),
			Email:          strings.ToLower(email),
			FullName:       fullName,
			Role:           model.RoleConsumer,
			EmailConfirmed: true,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
	}
	return s.sessions.Issue(ctx, user.ID, user.Role)
}

// Refresh rotates a refresh token into a new session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.Session, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

// Current returns a session safe to use for the near future, refreshing it
// when the access token is close to expiry.
func (s *AuthService) Current(ctx context.Context, sess *model.Session) (*model.Session, error) {
	return s.sessions.Current(ctx, sess)
}

// SignOut revokes the refresh token.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	return s.sessions.Revoke(ctx, refreshToken)
}

// NormalizePhone strips formatting characters and applies the default
// country code to bare national numbers. A number already carrying a "+"
// prefix passes through with only whitespace removed.
func NormalizePhone(phone, countryCode string) (string, error) {
	trimmed := strings.TrimSpace(phone)
	if trimmed == "" {
		return "", fmt.Errorf("phone number is required: %w", common.ErrValidation)
	}
	if strings.HasPrefix(trimmed, "+") {
		return strings.ReplaceAll(trimmed, " ", ""), nil
	}
	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return "", fmt.Errorf("phone number has no digits: %w", common.ErrValidation)
	}
	return countryCode + digits.String(), nil
}

func randomOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing means the platform is broken; do not issue codes.
		log.Error().Err(err).Msg("otp generation failed")
		return ""
	}
	return fmt.Sprintf("%06d", n.Int64())
}
