package account

import (
	"context"
	"errors"
	"testing"
	"time"

	goSignup "github.com/MrEthical07/goSignup"
	"github.com/MrEthical07/goSignup/password"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func fastPasswordConfig() password.Config {
	return password.Config{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   16,
	}
}

func newTestService(t *testing.T) (*RedisService, *ChannelMailer, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	mailer := NewChannelMailer(8)
	svc, err := NewRedisService(rdb, mailer, Config{
		Password:        fastPasswordConfig(),
		VerificationTTL: time.Hour,
		ResetTTL:        10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewRedisService: %v", err)
	}
	return svc, mailer, mr
}

func serviceCode(t *testing.T, err error) goSignup.ServiceCode {
	t.Helper()
	var svcErr *goSignup.ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	return svcErr.Code
}

func takeMail(t *testing.T, mailer *ChannelMailer) Mail {
	t.Helper()
	select {
	case m := <-mailer.Mail():
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("expected a mail delivery")
		return Mail{}
	}
}

func TestCreateAndAuthenticate(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if identity.UID == "" {
		t.Fatal("expected a UID")
	}

	got, err := svc.Authenticate(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if got.UID != identity.UID {
		t.Fatalf("UID mismatch: %q vs %q", got.UID, identity.UID)
	}
	if got.EmailVerified {
		t.Fatal("new accounts start unverified")
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := svc.CreateAccount(ctx, "Ana@Example.com", "Other$ecret1")
	if code := serviceCode(t, err); code != goSignup.CodeEmailAlreadyInUse {
		t.Fatalf("expected email-already-in-use, got %q", code)
	}
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAccount(context.Background(), "not-an-email", "Sup3r$ecret")
	if code := serviceCode(t, err); code != goSignup.CodeInvalidEmail {
		t.Fatalf("expected invalid-email, got %q", code)
	}
}

func TestCreateRejectsShortPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAccount(context.Background(), "ana@example.com", "tiny")
	if code := serviceCode(t, err); code != goSignup.CodeWeakPassword {
		t.Fatalf("expected weak-password, got %q", code)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := svc.Authenticate(ctx, "ana@example.com", "wrong-password")
	if code := serviceCode(t, err); code != goSignup.CodeWrongPassword {
		t.Fatalf("expected wrong-password, got %q", code)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever1")
	if code := serviceCode(t, err); code != goSignup.CodeUserNotFound {
		t.Fatalf("expected user-not-found, got %q", code)
	}
}

func TestAuthenticateDisabledAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SetDisabled(ctx, identity.UID, true); err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	_, err = svc.Authenticate(ctx, "ana@example.com", "Sup3r$ecret")
	if code := serviceCode(t, err); code != goSignup.CodeUserDisabled {
		t.Fatalf("expected user-disabled, got %q", code)
	}
}

func TestVerificationRoundTrip(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendVerificationEmail(ctx, identity.UID); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	mail := takeMail(t, mailer)
	if mail.Kind != MailVerification {
		t.Fatalf("expected verification mail, got %q", mail.Kind)
	}
	if mail.Email != "ana@example.com" {
		t.Fatalf("mail sent to wrong address: %q", mail.Email)
	}

	uid, err := svc.ConfirmVerification(ctx, mail.Token)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if uid != identity.UID {
		t.Fatalf("confirmed wrong account: %q", uid)
	}

	got, err := svc.Authenticate(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if !got.EmailVerified {
		t.Fatal("expected verified after confirmation")
	}
}

func TestVerificationTokenSingleUse(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendVerificationEmail(ctx, identity.UID); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	mail := takeMail(t, mailer)

	if _, err := svc.ConfirmVerification(ctx, mail.Token); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	_, err = svc.ConfirmVerification(ctx, mail.Token)
	if code := serviceCode(t, err); code != goSignup.CodeInvalidActionToken {
		t.Fatalf("expected invalid-action-code on replay, got %q", code)
	}
}

func TestVerificationTokenExpires(t *testing.T) {
	svc, mailer, mr := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendVerificationEmail(ctx, identity.UID); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	mail := takeMail(t, mailer)

	mr.FastForward(2 * time.Hour)

	_, err = svc.ConfirmVerification(ctx, mail.Token)
	if code := serviceCode(t, err); code != goSignup.CodeInvalidActionToken {
		t.Fatalf("expected invalid-action-code after expiry, got %q", code)
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "ana@example.com", "Old$ecret1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("reset send failed: %v", err)
	}

	mail := takeMail(t, mailer)
	if mail.Kind != MailPasswordReset {
		t.Fatalf("expected reset mail, got %q", mail.Kind)
	}

	if err := svc.ConfirmPasswordReset(ctx, mail.Token, "New$ecret1"); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "ana@example.com", "New$ecret1"); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}
	_, err := svc.Authenticate(ctx, "ana@example.com", "Old$ecret1")
	if code := serviceCode(t, err); code != goSignup.CodeWrongPassword {
		t.Fatalf("expected old password rejected, got %q", code)
	}
}

func TestPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.SendPasswordReset(context.Background(), "ghost@example.com")
	if code := serviceCode(t, err); code != goSignup.CodeUserNotFound {
		t.Fatalf("expected user-not-found, got %q", code)
	}
}

func TestPasswordResetWeakPasswordKeepsToken(t *testing.T) {
	svc, mailer, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.CreateAccount(ctx, "ana@example.com", "Old$ecret1"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendPasswordReset(ctx, "ana@example.com"); err != nil {
		t.Fatalf("reset send failed: %v", err)
	}
	mail := takeMail(t, mailer)

	err := svc.ConfirmPasswordReset(ctx, mail.Token, "tiny")
	if code := serviceCode(t, err); code != goSignup.CodeWeakPassword {
		t.Fatalf("expected weak-password, got %q", code)
	}

	// The link survives a weak-password attempt.
	if err := svc.ConfirmPasswordReset(ctx, mail.Token, "New$ecret1"); err != nil {
		t.Fatalf("expected token still valid: %v", err)
	}
}

func TestDeleteAccountReleasesEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.DeleteAccount(ctx, identity.UID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret"); err != nil {
		t.Fatalf("expected email reusable after delete: %v", err)
	}
	_, err = svc.Authenticate(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("expected re-created account to authenticate: %v", err)
	}
}

func TestRawTokensNeverStored(t *testing.T) {
	svc, mailer, mr := newTestService(t)
	ctx := context.Background()

	identity, err := svc.CreateAccount(ctx, "ana@example.com", "Sup3r$ecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := svc.SendVerificationEmail(ctx, identity.UID); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	mail := takeMail(t, mailer)

	for _, key := range mr.Keys() {
		if key == "acct:vt:"+mail.Token {
			t.Fatal("raw token used as storage key")
		}
	}
	if mr.Exists("acct:vt:" + mail.Token) {
		t.Fatal("raw token must not be a key")
	}
}
