package account

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goSignup "github.com/MrEthical07/goSignup"
	"github.com/MrEthical07/goSignup/internal"
	"github.com/MrEthical07/goSignup/password"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix       = "acct"
	defaultVerificationTTL = 24 * time.Hour
	defaultResetTTL        = 15 * time.Minute
)

// Config defines a public type used by goSignup APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// KeyPrefix namespaces every Redis key the service writes. Empty
	// selects "acct".
	KeyPrefix string

	// Password tunes the argon2id hasher. A zero value selects the
	// package defaults.
	Password password.Config

	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func defaultPasswordConfig() password.Config {
	return password.Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

type accountRecord struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"hash"`
	Verified     bool      `json:"verified"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RedisService is a Redis-backed [goSignup.AccountService].
//
// Layout, under the configured prefix:
//
//	{p}:u:{uid}    account record, JSON
//	{p}:e:{email}  email index, value is the uid
//	{p}:vt:{hash}  verification token, value is the uid, TTL-bound
//	{p}:rt:{hash}  reset token, value is the uid, TTL-bound
type RedisService struct {
	redis  redis.UniversalClient
	hasher *password.Argon2
	mailer Mailer
	config Config
}

// NewRedisService describes the newredisservice operation and its observable behavior.
//
// NewRedisService may return an error when input validation, dependency calls, or security checks fail.
// NewRedisService does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewRedisService(client redis.UniversalClient, mailer Mailer, cfg Config) (*RedisService, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	if cfg.Password == (password.Config{}) {
		cfg.Password = defaultPasswordConfig()
	}
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = defaultVerificationTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = defaultResetTTL
	}
	if mailer == nil {
		mailer = NoOpMailer{}
	}

	hasher, err := password.NewArgon2(cfg.Password)
	if err != nil {
		return nil, err
	}

	return &RedisService{
		redis:  client,
		hasher: hasher,
		mailer: mailer,
		config: cfg,
	}, nil
}

func (s *RedisService) recordKey(uid string) string {
	return s.config.KeyPrefix + ":u:" + uid
}

func (s *RedisService) emailKey(email string) string {
	return s.config.KeyPrefix + ":e:" + strings.ToLower(strings.TrimSpace(email))
}

func (s *RedisService) verifyTokenKey(token string) string {
	return s.config.KeyPrefix + ":vt:" + internal.HashActionToken(token)
}

func (s *RedisService) resetTokenKey(token string) string {
	return s.config.KeyPrefix + ":rt:" + internal.HashActionToken(token)
}

// CreateAccount describes the createaccount operation and its observable behavior.
//
// CreateAccount may return an error when input validation, dependency calls, or security checks fail.
// CreateAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) CreateAccount(ctx context.Context, email, plaintext string) (goSignup.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeInvalidEmail, errors.New("malformed email"))
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeWeakPassword, err)
	}

	uid := uuid.NewString()

	// The email index is the uniqueness gate. SetNX either claims the
	// address or reports the conflict atomically.
	claimed, err := s.redis.SetNX(ctx, s.emailKey(email), uid, 0).Result()
	if err != nil {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	if !claimed {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeEmailAlreadyInUse, errors.New("email already registered"))
	}

	record := accountRecord{
		UID:          uid,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.writeRecord(ctx, record); err != nil {
		// Release the claimed address so a retry can succeed.
		_ = s.redis.Del(ctx, s.emailKey(email)).Err()
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	return goSignup.Identity{UID: uid, Email: email}, nil
}

// Authenticate describes the authenticate operation and its observable behavior.
//
// Authenticate may return an error when input validation, dependency calls, or security checks fail.
// Authenticate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) Authenticate(ctx context.Context, email, plaintext string) (goSignup.Identity, error) {
	uid, err := s.redis.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeUserNotFound, errors.New("no account for email"))
	}
	if err != nil {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return goSignup.Identity{}, err
	}
	if record.Disabled {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeUserDisabled, errors.New("account disabled"))
	}

	match, err := s.hasher.Verify(plaintext, record.PasswordHash)
	if err != nil {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeInvalidCredential, err)
	}
	if !match {
		return goSignup.Identity{}, goSignup.NewServiceError(goSignup.CodeWrongPassword, errors.New("password mismatch"))
	}

	return goSignup.Identity{
		UID:           record.UID,
		Email:         record.Email,
		EmailVerified: record.Verified,
		Disabled:      record.Disabled,
	}, nil
}

// SendVerificationEmail describes the sendverificationemail operation and its observable behavior.
//
// SendVerificationEmail may return an error when input validation, dependency calls, or security checks fail.
// SendVerificationEmail does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) SendVerificationEmail(ctx context.Context, uid string) error {
	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return err
	}

	token, err := internal.NewActionToken()
	if err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	if err := s.redis.Set(ctx, s.verifyTokenKey(token), uid, s.config.VerificationTTL).Err(); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	if err := s.mailer.SendVerification(ctx, record.Email, token); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return nil
}

// ConfirmVerification describes the confirmverification operation and its observable behavior.
//
// ConfirmVerification may return an error when input validation, dependency calls, or security checks fail.
// ConfirmVerification does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) ConfirmVerification(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", goSignup.NewServiceError(goSignup.CodeInvalidActionToken, errors.New("empty token"))
	}

	// Single-use: consume the token and mark in one pass.
	uid, err := s.redis.GetDel(ctx, s.verifyTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", goSignup.NewServiceError(goSignup.CodeInvalidActionToken, errors.New("unknown or expired token"))
	}
	if err != nil {
		return "", goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return "", err
	}
	record.Verified = true
	if err := s.writeRecord(ctx, record); err != nil {
		return "", goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return uid, nil
}

// SendPasswordReset describes the sendpasswordreset operation and its observable behavior.
//
// SendPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// SendPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) SendPasswordReset(ctx context.Context, email string) error {
	uid, err := s.redis.Get(ctx, s.emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return goSignup.NewServiceError(goSignup.CodeUserNotFound, errors.New("no account for email"))
	}
	if err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return err
	}

	token, err := internal.NewActionToken()
	if err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	if err := s.redis.Set(ctx, s.resetTokenKey(token), uid, s.config.ResetTTL).Err(); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	if err := s.mailer.SendPasswordReset(ctx, record.Email, token); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return nil
}

// ConfirmPasswordReset describes the confirmpasswordreset operation and its observable behavior.
//
// ConfirmPasswordReset may return an error when input validation, dependency calls, or security checks fail.
// ConfirmPasswordReset does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return goSignup.NewServiceError(goSignup.CodeInvalidActionToken, errors.New("empty token"))
	}

	// Hash before consuming the token so a weak password does not burn
	// the reset link.
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return goSignup.NewServiceError(goSignup.CodeWeakPassword, err)
	}

	uid, err := s.redis.GetDel(ctx, s.resetTokenKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return goSignup.NewServiceError(goSignup.CodeInvalidActionToken, errors.New("unknown or expired token"))
	}
	if err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return err
	}
	record.PasswordHash = hash
	if err := s.writeRecord(ctx, record); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return nil
}

// DeleteAccount describes the deleteaccount operation and its observable behavior.
//
// DeleteAccount may return an error when input validation, dependency calls, or security checks fail.
// DeleteAccount does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisService) DeleteAccount(ctx context.Context, uid string) error {
	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.redis.Del(ctx, s.recordKey(uid), s.emailKey(record.Email)).Err(); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return nil
}

// SetDisabled flips the administrative disable flag on an account.
func (s *RedisService) SetDisabled(ctx context.Context, uid string, disabled bool) error {
	record, err := s.readRecord(ctx, uid)
	if err != nil {
		return err
	}
	record.Disabled = disabled
	if err := s.writeRecord(ctx, record); err != nil {
		return goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}
	return nil
}

func (s *RedisService) readRecord(ctx context.Context, uid string) (accountRecord, error) {
	raw, err := s.redis.Get(ctx, s.recordKey(uid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return accountRecord{}, goSignup.NewServiceError(goSignup.CodeUserNotFound, errors.New("no account record"))
	}
	if err != nil {
		return accountRecord{}, goSignup.NewServiceError(goSignup.CodeNetworkRequestFailed, err)
	}

	var record accountRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return accountRecord{}, goSignup.NewServiceError(goSignup.CodeInvalidCredential, err)
	}
	return record, nil
}

func (s *RedisService) writeRecord(ctx context.Context, record accountRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, s.recordKey(record.UID), raw, 0).Err()
}
