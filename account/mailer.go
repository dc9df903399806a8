package account

import "context"

// Mailer delivers the action links produced by the account service. The
// token is the raw secret; implementations embed it in a link and must
// not persist it.
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// NoOpMailer is a [Mailer] that silently discards all mail.
type NoOpMailer struct{}

// SendVerification describes the sendverification operation and its observable behavior.
func (NoOpMailer) SendVerification(context.Context, string, string) error { return nil }

// SendPasswordReset describes the sendpasswordreset operation and its observable behavior.
func (NoOpMailer) SendPasswordReset(context.Context, string, string) error { return nil }

// Mail is one captured delivery from a [ChannelMailer].
type Mail struct {
	Kind  MailKind
	Email string
	Token string
}

// MailKind defines a public type used by goSignup APIs.
type MailKind string

const (
	// MailVerification is an exported constant or variable used by the signup engine.
	MailVerification MailKind = "verification"
	// MailPasswordReset is an exported constant or variable used by the signup engine.
	MailPasswordReset MailKind = "password_reset"
)

// ChannelMailer is a buffered channel-based [Mailer] for tests and
// local wiring.
type ChannelMailer struct {
	mail chan Mail
}

// NewChannelMailer creates a [ChannelMailer] with the given buffer capacity.
func NewChannelMailer(buffer int) *ChannelMailer {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelMailer{
		mail: make(chan Mail, buffer),
	}
}

// SendVerification describes the sendverification operation and its observable behavior.
func (m *ChannelMailer) SendVerification(ctx context.Context, email, token string) error {
	return m.deliver(ctx, Mail{Kind: MailVerification, Email: email, Token: token})
}

// SendPasswordReset describes the sendpasswordreset operation and its observable behavior.
func (m *ChannelMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	return m.deliver(ctx, Mail{Kind: MailPasswordReset, Email: email, Token: token})
}

// Mail describes the mail operation and its observable behavior.
func (m *ChannelMailer) Mail() <-chan Mail {
	return m.mail
}

func (m *ChannelMailer) deliver(ctx context.Context, mail Mail) error {
	select {
	case m.mail <- mail:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
