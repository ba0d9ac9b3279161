package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestAuthIssueAndValidate(t *testing.T) {
	auth, err := NewAuth(nil, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}
	token, sub, err := auth.IssueToken("Pilot")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := uuid.Parse(sub); err != nil {
		t.Errorf("expected uuid subject, got %q", sub)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Name != "Pilot" || claims.Subject != sub {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	auth, _ := NewAuth(nil, "test-secret", time.Hour)
	other, _ := NewAuth(nil, "other-secret", time.Hour)
	expired, _ := NewAuth(nil, "test-secret", -time.Minute)

	foreign, _, _ := other.IssueToken("Pilot")
	stale, _, _ := expired.IssueToken("Pilot")
	noSubject, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, PlayerClaims{Name: "Pilot"}).SignedString([]byte("test-secret"))

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      stale,
		"missing uuid": noSubject,
		"empty":        "",
	} {
		if _, err := auth.ValidateToken(token); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestAuthSecretPersisted(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	first, err := NewAuth(db, "", time.Hour)
	if err != nil {
		t.Fatalf("new auth: %v", err)
	}
	if len(db.GetSetting(jwtSecretSetting)) != 64 {
		t.Fatal("expected a hex secret stored in settings")
	}
	token, _, _ := first.IssueToken("Pilot")

	second, _ := NewAuth(db, "", time.Hour)
	if _, err := second.ValidateToken(token); err != nil {
		t.Errorf("token should survive a restart: %v", err)
	}
}
