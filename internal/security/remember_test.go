package security

import (
	"testing"
	"time"
)

func TestRememberTokensRoundTrip(t *testing.T) {
	tokens := NewRememberTokens("test-secret", time.Hour)
	now := time.Now()

	signed, exp, err := tokens.Issue(42, now)
	if err != nil {
		t.Fatalf("Issue error = %v", err)
	}
	if !exp.After(now) {
		t.Error("expiry not in the future")
	}

	userID, err := tokens.Verify(signed)
	if err != nil {
		t.Fatalf("Verify error = %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestRememberTokensRejections(t *testing.T) {
	tokens := NewRememberTokens("test-secret", time.Hour)

	if _, err := tokens.Verify("not-a-token"); err != ErrRememberToken {
		t.Errorf("garbage token error = %v, want ErrRememberToken", err)
	}

	// A token signed with a different secret must fail
	other := NewRememberTokens("other-secret", time.Hour)
	signed, _, err := other.Issue(7, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tokens.Verify(signed); err != ErrRememberToken {
		t.Errorf("cross-secret token error = %v, want ErrRememberToken", err)
	}

	// An expired token must fail
	expired, _, err := tokens.Issue(7, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tokens.Verify(expired); err != ErrRememberToken {
		t.Errorf("expired token error = %v, want ErrRememberToken", err)
	}
}

func TestRememberTokensDisabled(t *testing.T) {
	tokens := NewRememberTokens("", time.Hour)
	if tokens.Enabled() {
		t.Error("empty secret reported as enabled")
	}
	if _, _, err := tokens.Issue(1, time.Now()); err != ErrRememberToken {
		t.Errorf("Issue with no secret error = %v, want ErrRememberToken", err)
	}
	if _, err := tokens.Verify("anything"); err != ErrRememberToken {
		t.Errorf("Verify with no secret error = %v, want ErrRememberToken", err)
	}
}
