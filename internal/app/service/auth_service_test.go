package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"farmdirect/internal/app/session"
	"farmdirect/internal/common"
	"farmdirect/internal/common/security"
	"farmdirect/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*model.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if (user.Email != "" && u.Email == user.Email) || (user.Phone != "" && u.Phone == user.Phone) {
			return common.ErrConflict
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByPhone(_ context.Context, phone string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Phone == phone {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) UpdateRole(_ context.Context, id, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *memUserRepo) ConfirmEmail(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.EmailConfirmed = true
	return nil
}

type memLimiter struct {
	mu      sync.Mutex
	claimed map[string]bool
}

func newMemLimiter() *memLimiter { return &memLimiter{claimed: make(map[string]bool)} }

func (l *memLimiter) Allow(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.claimed[email] {
		return false, nil
	}
	l.claimed[email] = true
	return true, nil
}

type memOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemOTPStore() *memOTPStore { return &memOTPStore{codes: make(map[string]string)} }

func (s *memOTPStore) Put(_ context.Context, phone, code string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *memOTPStore) Consume(_ context.Context, phone string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.codes[phone]
	delete(s.codes, phone)
	return code, nil
}

type recordingSMS struct {
	mu   sync.Mutex
	sent []string
}

func (s *recordingSMS) SendOTP(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, phone+":"+code)
	return nil
}

type recordingMailer struct {
	mu     sync.Mutex
	tokens []string
	codes  []string
}

func (m *recordingMailer) SendConfirmation(_ context.Context, _, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = append(m.tokens, token)
	return nil
}

func (m *recordingMailer) SendOTP(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes = append(m.codes, email+":"+code)
	return nil
}

func (m *recordingMailer) lastToken() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.tokens) == 0 {
		return "", false
	}
	return m.tokens[len(m.tokens)-1], true
}

func noSleep(_ context.Context, _ time.Duration) error { return nil }

func newTestSessionManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(newMemoryStoreForService(), time.Minute, time.Hour,
		session.WithTokenIssuer(func(userID, role string) (string, time.Time, error) {
			return "access-" + userID, time.Now().Add(time.Hour), nil
		}))
	t.Cleanup(m.Close)
	return m
}

type memoryStoreForService struct {
	mu     sync.Mutex
	tokens map[string][2]string
}

func newMemoryStoreForService() *memoryStoreForService {
	return &memoryStoreForService{tokens: make(map[string][2]string)}
}

func (s *memoryStoreForService) Save(_ context.Context, token, userID, role string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = [2]string{userID, role}
	return nil
}

func (s *memoryStoreForService) Lookup(_ context.Context, token string) (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[token]
	if !ok {
		return "", "", common.ErrUnauthorized
	}
	return rec[0], rec[1], nil
}

func (s *memoryStoreForService) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func newTestAuthService(t *testing.T, users *memUserRepo, opts ...AuthOption) (*AuthService, *recordingSMS, *memOTPStore, *recordingMailer) {
	t.Helper()
	sms := &recordingSMS{}
	otp := newMemOTPStore()
	mailer := &recordingMailer{}
	opts = append([]AuthOption{WithSleeper(noSleep)}, opts...)
	svc := NewAuthService(users, newTestSessionManager(t), newMemLimiter(), otp, sms, mailer, newMemOTPStore(), nil,
		"+91", 5*time.Minute, opts...)
	return svc, sms, otp, mailer
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9876543210", "+919876543210"},
		{"98765 43210", "+919876543210"},
		{"(987) 654-3210", "+919876543210"},
		{"+14155550123", "+14155550123"},
		{"+91 98765 43210", "+919876543210"},
		{"09876543210", "+9109876543210"}, // 11 digits still get the country code
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.in, "+91")
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := NormalizePhone("  ", "+91")
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSignUp_RateLimitedGetsFriendlyMessage(t *testing.T) {
	users := newMemUserRepo()
	svc, _, _, _ := newTestAuthService(t, users)

	_, err := svc.SignUp(context.Background(), SignUpInput{Email: "asha@example.com", Password: "secret12"})
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "asha@example.com", Password: "secret12"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrRateLimited)
	assert.Contains(t, err.Error(), "Please wait a moment before trying again")
}

func TestSignUp_UnconfirmedAccountReportsConfirmationPending(t *testing.T) {
	users := newMemUserRepo()
	svc, _, _, _ := newTestAuthService(t, users)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "asha@example.com", Password: "secret12", FullName: "Asha", Role: model.RoleFarmer,
	})
	require.NoError(t, err)
	assert.True(t, res.NeedsConfirmation)
	assert.Nil(t, res.Session)
	require.NotNil(t, res.User)
	assert.Equal(t, model.RoleFarmer, res.User.Role)
}

func TestConfirmEmail_UnlocksSignIn(t *testing.T) {
	users := newMemUserRepo()
	svc, _, _, mailer := newTestAuthService(t, users)

	res, err := svc.SignUp(context.Background(), SignUpInput{
		Email: "asha@example.com", Password: "secret12", FullName: "Asha", Role: model.RoleFarmer,
	})
	require.NoError(t, err)
	require.True(t, res.NeedsConfirmation)
	require.Nil(t, res.Session)

	// Until the link is clicked, password sign-in keeps refusing.
	_, err = svc.SignIn(context.Background(), "asha@example.com", "secret12")
	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Contains(t, err.Error(), "email not confirmed")

	token, ok := mailer.lastToken()
	require.True(t, ok, "confirmation mail carries a token")

	sess, err := svc.ConfirmEmail(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, sess.UserID, "confirming signs the user in")

	again, err := svc.SignIn(context.Background(), "asha@example.com", "secret12")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, again.UserID)

	// The link is single-use.
	_, err = svc.ConfirmEmail(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSignUp_FallbackSignInWhenConfirmationNotRequired(t *testing.T) {
	users := newMemUserRepo()

	// Simulate a deployment where accounts are auto-confirmed: flip the flag
	// after creation, as the fallback sign-in would observe it.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			if u, err := users.FindByEmail(context.Background(), "ravi@example.com"); err == nil {
				u.EmailConfirmed = true
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	slowSleep := func(ctx context.Context, _ time.Duration) error {
		<-done
		return nil
	}
	svc, _, _, _ := newTestAuthService(t, users, WithSleeper(slowSleep))
	res, err := svc.SignUp(context.Background(), SignUpInput{Email: "ravi@example.com", Password: "secret12"})
	require.NoError(t, err)
	assert.False(t, res.NeedsConfirmation)
	require.NotNil(t, res.Session)
	assert.Equal(t, res.User.ID, res.Session.UserID)
}

func TestSignIn_WrongPassword(t *testing.T) {
	users := newMemUserRepo()
	hashed, err := security.HashPassword("right-password")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), &model.User{
		ID: "u1", Email: "asha@example.com", HashedPassword: hashed,
		Role: model.RoleConsumer, EmailConfirmed: true,
	}))
	svc, _, _, _ := newTestAuthService(t, users)

	_, err = svc.SignIn(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	sess, err := svc.SignIn(context.Background(), "asha@example.com", "right-password")
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
}

func TestOTPFlow_NormalizesPhoneAndConsumesCode(t *testing.T) {
	users := newMemUserRepo()
	svc, sms, _, _ := newTestAuthService(t, users, WithOTPGenerator(func() string { return "123456" }))

	require.NoError(t, svc.RequestOTP(context.Background(), "98765 43210"))
	require.Len(t, sms.sent, 1)
	assert.Equal(t, "+919876543210:123456", sms.sent[0])

	// Verification with a differently formatted number still matches.
	sess, err := svc.VerifyOTP(context.Background(), "9876543210", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, sess.AccessToken)

	// Second use of the same code fails.
	_, err = svc.VerifyOTP(context.Background(), "9876543210", "123456")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	users := newMemUserRepo()
	svc, _, _, _ := newTestAuthService(t, users, WithOTPGenerator(func() string { return "123456" }))

	require.NoError(t, svc.RequestOTP(context.Background(), "9876543210"))
	_, err := svc.VerifyOTP(context.Background(), "9876543210", "000000")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

type staticVerifier struct {
	email string
	name  string
	err   error
}

func (v staticVerifier) Verify(_ context.Context, _, _ string) (string, string, error) {
	return v.email, v.name, v.err
}

func TestExternalSignIn_CreatesUserOnFirstUse(t *testing.T) {
	users := newMemUserRepo()
	sms := &recordingSMS{}
	svc := NewAuthService(users, newTestSessionManager(t), newMemLimiter(), newMemOTPStore(), sms, nil, nil,
		staticVerifier{email: "Asha@Example.com", name: "Asha"},
		"+91", 5*time.Minute, WithSleeper(noSleep))

	sess, err := svc.ExternalSignIn(context.Background(), "google", "provider-token")
	require.NoError(t, err)

	user, err := users.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.True(t, user.EmailConfirmed)

	again, err := svc.ExternalSignIn(context.Background(), "google", "provider-token")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.UserID, "no duplicate account on repeat sign-in")
}

func TestExternalSignIn_VerifierFailure(t *testing.T) {
	users := newMemUserRepo()
	svc := NewAuthService(users, newTestSessionManager(t), newMemLimiter(), newMemOTPStore(), &recordingSMS{}, nil, nil,
		staticVerifier{err: errors.New("bad token")},
		"+91", 5*time.Minute, WithSleeper(noSleep))

	_, err := svc.ExternalSignIn(context.Background(), "google", "garbage")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}
