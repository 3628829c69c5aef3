package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/abdmnsor/MOVIES-API/internal/auth"
	"github.com/google/uuid"
)

func TestIssueAndVerify(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)
	userID := uuid.NewString()

	token, err := m.Issue(userID)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}

	if got != userID {
		t.Fatalf("got user id %q, want %q", got, userID)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := auth.NewManager("test-secret-key", -time.Minute)

	token, err := m.Issue(uuid.NewString())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("got %v, want ErrTokenExpired", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := auth.NewManager("secret-a", time.Hour)
	verifier := auth.NewManager("secret-b", time.Hour)

	token, err := issuer.Issue(uuid.NewString())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Tampered(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	token, err := m.Issue(uuid.NewString())
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	tampered := token + "AAAA"

	if _, err := m.Verify(tampered); !errors.Is(err, auth.ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := m.Verify(raw); !errors.Is(err, auth.ErrTokenInvalid) {
			t.Fatalf("Verify(%q) got %v, want ErrTokenInvalid", raw, err)
		}
	}
}
