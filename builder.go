package goSignup

import (
	"errors"

	"github.com/MrEthical07/goSignup/internal/rate"
	"github.com/MrEthical07/goSignup/jwt"
	"github.com/MrEthical07/goSignup/notify"
	"github.com/MrEthical07/goSignup/session"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goSignup APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	accounts  AccountService
	profiles  ProfileStore
	presenter *notify.Presenter
	auditSink AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithAccountService describes the withaccountservice operation and its observable behavior.
//
// WithAccountService may return an error when input validation, dependency calls, or security checks fail.
// WithAccountService does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAccountService(svc AccountService) *Builder {
	b.accounts = svc
	return b
}

// WithProfileStore describes the withprofilestore operation and its observable behavior.
//
// WithProfileStore may return an error when input validation, dependency calls, or security checks fail.
// WithProfileStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithProfileStore(ps ProfileStore) *Builder {
	b.profiles = ps
	return b
}

// WithPresenter describes the withpresenter operation and its observable behavior.
//
// WithPresenter may return an error when input validation, dependency calls, or security checks fail.
// WithPresenter does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithPresenter(p *notify.Presenter) *Builder {
	b.presenter = p
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if b.redis == nil {
		return nil, errors.New("redis client required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.accounts == nil {
		return nil, errors.New("account service required")
	}

	if b.profiles == nil {
		return nil, errors.New("profile store required")
	}

	presenter := b.presenter
	if presenter == nil {
		presenter = notify.NewPresenter(nil)
	}
	presenter.SetAutoHide(cfg.Presenter.AutoHide, cfg.Presenter.AutoHideMarkup)

	engine := &Engine{
		config:       cloneConfig(cfg),
		accounts:     b.accounts,
		profiles:     b.profiles,
		presenter:    presenter,
		sessionStore: session.NewStore(b.redis, cfg.Session.RedisPrefix),
	}

	engine.rateLimiter = rate.New(b.redis, rate.Config{
		EnableIPThrottle:       cfg.Security.EnableIPThrottle,
		MaxLoginAttempts:       cfg.Security.MaxLoginAttempts,
		LoginCooldownDuration:  cfg.Security.LoginCooldownDuration,
		MaxSignupAttempts:      cfg.Security.MaxSignupAttempts,
		SignupCooldownDuration: cfg.Security.SignupCooldownDuration,
	})
	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	if cfg.JWT.Enabled {
		jm, err := jwt.NewManager(jwt.Config{
			AccessTTL:     cfg.JWT.AccessTTL,
			SigningMethod: jwt.SigningMethod(cfg.JWT.SigningMethod),
			PrivateKey:    cloneBytes(cfg.JWT.PrivateKey),
			PublicKey:     cloneBytes(cfg.JWT.PublicKey),
			Issuer:        cfg.JWT.Issuer,
			Audience:      cfg.JWT.Audience,
		})
		if err != nil {
			return nil, err
		}
		engine.jwtManager = jm
	}

	// The resend action on the unverified gate routes back through the
	// engine so hosts do not have to wire it themselves.
	presenter.SetDismissHandler(engine.handleDismiss)

	b.built = true

	return engine, nil
}
