package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"turnout/backend/config"
	"turnout/backend/internal/dto"
	"turnout/backend/internal/model"
	"turnout/backend/pkg/jwt"
)

func newAuthService(e *testEnv) AuthService {
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:       "test-secret-at-least-16-chars",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	return NewAuthService(e.repo, jwtMgr, nil, zap.NewNop())
}

func seedLoginBrigade(t *testing.T, e *testEnv, slug, pin string) *model.Brigade {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing pin failed: %v", err)
	}
	brigade := &model.Brigade{
		Name:    "Test Brigade",
		Slug:    slug,
		PinHash: string(hash),
	}
	if err := e.brigades.Create(context.Background(), brigade); err != nil {
		t.Fatalf("creating brigade failed: %v", err)
	}
	return brigade
}

func TestLoginSuccess(t *testing.T) {
	env := newTestEnv()
	brigade := seedLoginBrigade(t, env, "test-brigade", "4821")
	svc := newAuthService(env)

	tokens, err := svc.Login(context.Background(), &dto.LoginRequest{Slug: "test-brigade", Pin: "4821"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatalf("login returned empty tokens: %+v", tokens)
	}
	if tokens.BrigadeID != brigade.BrigadeID || tokens.BrigadeSlug != "test-brigade" {
		t.Fatalf("token response has wrong brigade: %+v", tokens)
	}
}

func TestLoginWrongPin(t *testing.T) {
	env := newTestEnv()
	seedLoginBrigade(t, env, "test-brigade", "4821")
	svc := newAuthService(env)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Slug: "test-brigade", Pin: "0000"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownSlug(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Slug: "nobody", Pin: "4821"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := newTestEnv()
	seedLoginBrigade(t, env, "test-brigade", "4821")
	svc := newAuthService(env)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Slug: "test-brigade", Pin: "4821"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.BrigadeID != tokens.BrigadeID {
		t.Fatalf("refresh returned bad pair: %+v", refreshed)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv()
	seedLoginBrigade(t, env, "test-brigade", "4821")
	svc := newAuthService(env)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, &dto.LoginRequest{Slug: "test-brigade", Pin: "4821"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// Only refresh tokens refresh.
	if _, err := svc.Refresh(ctx, tokens.AccessToken); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for access token, got %v", err)
	}
}

func TestLogoutWithoutRedisIsNoop(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	if err := svc.Logout(context.Background(), "some-jti", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Logout without redis failed: %v", err)
	}
}
