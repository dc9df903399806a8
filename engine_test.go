package goSignup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, rdb
}

type mockAccount struct {
	uid      string
	email    string
	password string
	verified bool
	disabled bool
}

type mockAccounts struct {
	mu       sync.Mutex
	byEmail  map[string]*mockAccount
	byUID    map[string]*mockAccount
	tokens   map[string]string // action token -> uid
	nextUID  int
	sent     []string // uids of verification emails
	resets   []string // emails of reset requests
	deleted  []string
	authed   int
	createns int

	authErr   error
	createErr error
	sendErr   error
	resetErr  error
}

func newMockAccounts() *mockAccounts {
	return &mockAccounts{
		byEmail: map[string]*mockAccount{},
		byUID:   map[string]*mockAccount{},
		tokens:  map[string]string{},
	}
}

func (m *mockAccounts) seed(email, password string, verified bool) *mockAccount {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextUID++
	acct := &mockAccount{
		uid:      fmt.Sprintf("u-%d", m.nextUID),
		email:    email,
		password: password,
		verified: verified,
	}
	m.byEmail[strings.ToLower(email)] = acct
	m.byUID[acct.uid] = acct
	return acct
}

func (m *mockAccounts) CreateAccount(_ context.Context, email, password string) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createns++
	if m.createErr != nil {
		return Identity{}, m.createErr
	}
	key := strings.ToLower(email)
	if _, ok := m.byEmail[key]; ok {
		return Identity{}, NewServiceError(CodeEmailAlreadyInUse, errors.New("duplicate"))
	}
	m.nextUID++
	acct := &mockAccount{
		uid:      fmt.Sprintf("u-%d", m.nextUID),
		email:    email,
		password: password,
	}
	m.byEmail[key] = acct
	m.byUID[acct.uid] = acct
	return Identity{UID: acct.uid, Email: acct.email}, nil
}

func (m *mockAccounts) Authenticate(_ context.Context, email, password string) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authed++
	if m.authErr != nil {
		return Identity{}, m.authErr
	}
	acct, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return Identity{}, NewServiceError(CodeUserNotFound, errors.New("no account"))
	}
	if acct.disabled {
		return Identity{}, NewServiceError(CodeUserDisabled, errors.New("disabled"))
	}
	if acct.password != password {
		return Identity{}, NewServiceError(CodeWrongPassword, errors.New("bad password"))
	}
	return Identity{UID: acct.uid, Email: acct.email, EmailVerified: acct.verified}, nil
}

func (m *mockAccounts) SendVerificationEmail(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	if _, ok := m.byUID[uid]; !ok {
		return NewServiceError(CodeUserNotFound, errors.New("no account"))
	}
	m.sent = append(m.sent, uid)
	m.tokens["verify-"+uid] = uid
	return nil
}

func (m *mockAccounts) ConfirmVerification(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.tokens[token]
	if !ok {
		return "", NewServiceError(CodeInvalidActionToken, errors.New("bad token"))
	}
	delete(m.tokens, token)
	m.byUID[uid].verified = true
	return uid, nil
}

func (m *mockAccounts) SendPasswordReset(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.resetErr != nil {
		return m.resetErr
	}
	acct, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return NewServiceError(CodeUserNotFound, errors.New("no account"))
	}
	m.resets = append(m.resets, email)
	m.tokens["reset-"+acct.uid] = acct.uid
	return nil
}

func (m *mockAccounts) ConfirmPasswordReset(_ context.Context, token, newPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.tokens[token]
	if !ok {
		return NewServiceError(CodeInvalidActionToken, errors.New("bad token"))
	}
	delete(m.tokens, token)
	m.byUID[uid].password = newPassword
	return nil
}

func (m *mockAccounts) DeleteAccount(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.byUID[uid]
	if !ok {
		return NewServiceError(CodeUserNotFound, errors.New("no account"))
	}
	delete(m.byUID, uid)
	delete(m.byEmail, strings.ToLower(acct.email))
	m.deleted = append(m.deleted, uid)
	return nil
}

type mockProfiles struct {
	mu       sync.Mutex
	profiles map[string]RegistrationProfile
	gets     int
	saveErr  error
	getErr   error
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{profiles: map[string]RegistrationProfile{}}
}

func (m *mockProfiles) Save(_ context.Context, profile RegistrationProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfiles) Get(_ context.Context, uid string) (RegistrationProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getErr != nil {
		return RegistrationProfile{}, m.getErr
	}
	profile, ok := m.profiles[uid]
	if !ok {
		return RegistrationProfile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (m *mockProfiles) Delete(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, uid)
	return nil
}

func (m *mockProfiles) setStatus(uid string, status ProfileStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profiles[uid]
	p.Status = status
	m.profiles[uid] = p
}

func engineTestConfig() Config {
	cfg := defaultConfig()
	cfg.Metrics.Enabled = true
	return cfg
}

func buildTestEngine(t *testing.T, cfg Config, accounts AccountService, profiles ProfileStore, sink AuditSink) (*Engine, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, rdb := newTestRedis(t)
	builder := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithAccountService(accounts).
		WithProfileStore(profiles)
	if sink != nil {
		builder = builder.WithAuditSink(sink)
	}

	engine, err := builder.Build()
	if err != nil {
		rdb.Close()
		mr.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return engine, mr, func() {
		engine.Close()
		rdb.Close()
		mr.Close()
	}
}

// seedApproved creates a verified account with an approved profile and
// returns its UID.
func seedApproved(accounts *mockAccounts, profiles *mockProfiles, email, password, firstName string) string {
	acct := accounts.seed(email, password, true)
	profiles.profiles[acct.uid] = RegistrationProfile{
		UserID:    acct.uid,
		FirstName: firstName,
		LastName:  "Reyes",
		Email:     email,
		Status:    StatusApproved,
	}
	return acct.uid
}

func validForm() RegistrationForm {
	return RegistrationForm{
		FirstName:      "Ana",
		LastName:       "Reyes",
		Gender:         "female",
		City:           "Manila",
		FacebookLink:   "facebook.com/ana.reyes",
		Email:          "ana@example.com",
		Password:       "Sup3r$ecret",
		MobileNumber:   "09171234567",
		SelfieProvided: true,
	}
}

func currentText(t *testing.T, e *Engine) string {
	t.Helper()
	msg, ok := e.Presenter().Current()
	if !ok {
		t.Fatal("expected a presenter message")
	}
	return msg.Text
}
