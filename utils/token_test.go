package utils

import (
	"errors"
	"testing"
	"time"
)

func TestBlobTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	token, err := GenerateBlobToken("secret", "Gambar/2024-05-01_Rabu/photo.png", time.Hour, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	path, err := ParseBlobToken("secret", token, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if path != "Gambar/2024-05-01_Rabu/photo.png" {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestBlobTokenRejectsExpiredAndForeign(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	token, err := GenerateBlobToken("secret", "Video/a.mp4", time.Hour, now)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseBlobToken("secret", token, now.Add(2*time.Hour)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
	if _, err := ParseBlobToken("other", token, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected wrong secret to be rejected, got %v", err)
	}

	session, err := GenerateSessionToken("secret", "abc")
	if err != nil {
		t.Fatalf("generate session: %v", err)
	}
	if _, err := ParseBlobToken("secret", session, now); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected session token to be rejected as blob token")
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "session-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	id, err := ParseSessionToken("secret", token)
	if err != nil || id != "session-1" {
		t.Fatalf("expected session-1, got %q (%v)", id, err)
	}
	if _, err := ParseSessionToken("secret", "garbage"); err == nil {
		t.Fatalf("expected garbage to be rejected")
	}
}
