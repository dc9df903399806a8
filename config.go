package goSignup

import (
	"errors"
	"time"
)

// Config defines a public type used by goSignup APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	JWT           JWTConfig
	Session       SessionConfig
	Security      SecurityConfig
	Account       AccountConfig
	Verification  VerificationConfig
	PasswordReset PasswordResetConfig
	Presenter     PresenterConfig
	Audit         AuditConfig
	Metrics       MetricsConfig
}

/*
====================================
JWT CONFIG
====================================
*/

// JWTConfig defines a public type used by goSignup APIs.
//
// JWTConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type JWTConfig struct {
	Enabled       bool
	AccessTTL     time.Duration
	SigningMethod string // "ed25519" (default), "hs256" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Audience      string
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goSignup APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
	Lifetime    time.Duration
}

/*
====================================
SECURITY CONFIG
====================================
*/

// SecurityConfig defines a public type used by goSignup APIs.
//
// SecurityConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SecurityConfig struct {
	ProductionMode         bool
	EnableIPThrottle       bool
	MaxLoginAttempts       int
	LoginCooldownDuration  time.Duration
	MaxSignupAttempts      int
	SignupCooldownDuration time.Duration
}

// AccountConfig defines a public type used by goSignup APIs.
//
// AccountConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AccountConfig struct {
	// CompensateOnProfileFailure deletes the freshly created account when
	// the profile write fails, so signup never leaves a credential record
	// without a profile document.
	CompensateOnProfileFailure bool
	AutoLoginAfterSignup       bool
}

// VerificationConfig defines a public type used by goSignup APIs.
//
// VerificationConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type VerificationConfig struct {
	Enabled         bool
	RequireForLogin bool
	VerificationTTL time.Duration
}

// PasswordResetConfig defines a public type used by goSignup APIs.
//
// PasswordResetConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordResetConfig struct {
	Enabled  bool
	ResetTTL time.Duration
}

// PresenterConfig defines a public type used by goSignup APIs.
//
// PresenterConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PresenterConfig struct {
	AutoHide       time.Duration
	AutoHideMarkup time.Duration
	RedirectDelay  time.Duration
}

// AuditConfig defines a public type used by goSignup APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goSignup APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig returns the baseline configuration the builder starts
// from. Callers mutate the result and pass it to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

// HardenedConfig returns a production-leaning preset: ProductionMode on,
// shorter sessions, tighter login throttling. JWT stays disabled until
// the caller supplies key material.
func HardenedConfig() Config {
	cfg := defaultConfig()
	cfg.Security.ProductionMode = true
	cfg.Security.MaxLoginAttempts = 3
	cfg.Security.LoginCooldownDuration = 30 * time.Minute
	cfg.Session.Lifetime = 12 * time.Hour
	cfg.Audit.Enabled = true
	cfg.Metrics.Enabled = true
	return cfg
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			Enabled:       false,
			AccessTTL:     5 * time.Minute,
			SigningMethod: "ed25519",
		},
		Session: SessionConfig{
			RedisPrefix: "ss",
			Lifetime:    24 * time.Hour,
		},
		Security: SecurityConfig{
			ProductionMode:         false,
			EnableIPThrottle:       true,
			MaxLoginAttempts:       5,
			LoginCooldownDuration:  15 * time.Minute,
			MaxSignupAttempts:      5,
			SignupCooldownDuration: time.Hour,
		},
		Account: AccountConfig{
			CompensateOnProfileFailure: true,
			AutoLoginAfterSignup:       false,
		},
		Verification: VerificationConfig{
			Enabled:         true,
			RequireForLogin: true,
			VerificationTTL: 24 * time.Hour,
		},
		PasswordReset: PasswordResetConfig{
			Enabled:  true,
			ResetTTL: 15 * time.Minute,
		},
		Presenter: PresenterConfig{
			AutoHide:       5 * time.Second,
			AutoHideMarkup: 8 * time.Second,
			RedirectDelay:  2 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.PrivateKey = cloneBytes(cfg.JWT.PrivateKey)
	out.JWT.PublicKey = cloneBytes(cfg.JWT.PublicKey)
	return out
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// JWT
	if c.JWT.Enabled {
		if c.JWT.AccessTTL <= 0 {
			return errors.New("JWT AccessTTL must be > 0")
		}
		if c.JWT.SigningMethod != "ed25519" && c.JWT.SigningMethod != "hs256" {
			return errors.New("unsupported JWT signing method")
		}
		if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PrivateKey) == 0 {
			return errors.New("ed25519 requires PrivateKey")
		}
		if c.JWT.SigningMethod == "ed25519" && len(c.JWT.PublicKey) == 0 {
			return errors.New("ed25519 requires PublicKey")
		}
		if c.JWT.SigningMethod == "hs256" && len(c.JWT.PrivateKey) == 0 {
			return errors.New("hs256 requires PrivateKey")
		}
	}

	// Session
	if c.Session.Lifetime <= 0 {
		return errors.New("Session Lifetime must be > 0")
	}

	// Security
	if c.Security.MaxLoginAttempts <= 0 {
		return errors.New("MaxLoginAttempts must be > 0")
	}
	if c.Security.LoginCooldownDuration <= 0 {
		return errors.New("LoginCooldownDuration must be > 0")
	}
	if c.Security.MaxSignupAttempts <= 0 {
		return errors.New("MaxSignupAttempts must be > 0")
	}
	if c.Security.SignupCooldownDuration <= 0 {
		return errors.New("SignupCooldownDuration must be > 0")
	}

	// Verification
	if c.Verification.Enabled && c.Verification.VerificationTTL <= 0 {
		return errors.New("Verification VerificationTTL must be > 0")
	}
	if c.Verification.RequireForLogin && !c.Verification.Enabled {
		return errors.New("Verification RequireForLogin requires Verification Enabled")
	}

	// Password reset
	if c.PasswordReset.Enabled && c.PasswordReset.ResetTTL <= 0 {
		return errors.New("PasswordReset ResetTTL must be > 0")
	}

	// Presenter
	if c.Presenter.AutoHide <= 0 {
		return errors.New("Presenter AutoHide must be > 0")
	}
	if c.Presenter.AutoHideMarkup <= 0 {
		return errors.New("Presenter AutoHideMarkup must be > 0")
	}
	if c.Presenter.RedirectDelay < 0 {
		return errors.New("Presenter RedirectDelay must be >= 0")
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	if c.Security.ProductionMode {
		if c.JWT.Enabled && c.JWT.AccessTTL > 15*time.Minute {
			return errors.New("ProductionMode requires JWT AccessTTL <= 15m")
		}
		if c.JWT.Enabled && c.JWT.SigningMethod == "hs256" && len(c.JWT.PrivateKey) < 32 {
			return errors.New("ProductionMode requires hs256 key length >= 256 bits")
		}
		if c.Session.Lifetime > 30*24*time.Hour {
			return errors.New("ProductionMode requires Session Lifetime <= 30d")
		}
		if !c.Security.EnableIPThrottle {
			return errors.New("ProductionMode requires EnableIPThrottle")
		}
		if !c.Verification.RequireForLogin {
			return errors.New("ProductionMode requires Verification RequireForLogin")
		}
		if !c.Account.CompensateOnProfileFailure {
			return errors.New("ProductionMode requires Account CompensateOnProfileFailure")
		}
	}

	return nil
}
