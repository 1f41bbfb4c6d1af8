package jwt

import (
	"errors"
	"testing"
	"time"

	"turnout/backend/config"
)

func newTestManager(accessTTL time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParse(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateAccessToken("brigade-1", "test-brigade")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.BrigadeID != "brigade-1" || claims.BrigadeSlug != "test-brigade" {
		t.Fatalf("claims lost brigade context: %+v", claims)
	}
	if claims.TokenType != "access" {
		t.Fatalf("token type = %q, want access", claims.TokenType)
	}
	if claims.ID == "" {
		t.Fatalf("token has no jti")
	}
}

func TestRefreshTokenType(t *testing.T) {
	m := newTestManager(time.Hour)

	token, err := m.GenerateRefreshToken("brigade-1", "test-brigade")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}
	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.TokenType != "refresh" {
		t.Fatalf("token type = %q, want refresh", claims.TokenType)
	}
}

func TestParseExpiredToken(t *testing.T) {
	m := newTestManager(-time.Minute)

	token, err := m.GenerateAccessToken("brigade-1", "test-brigade")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseForeignToken(t *testing.T) {
	m := newTestManager(time.Hour)
	other := NewManager(&config.AuthConfig{
		JWTSecret:       "a-completely-different-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})

	token, err := other.GenerateAccessToken("brigade-1", "test-brigade")
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}
	if _, err := m.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	m := newTestManager(time.Hour)
	if _, err := m.ParseToken("not.a.token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
