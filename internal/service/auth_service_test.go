package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"
	"github.com/coder-muller/radio-cultura-go/internal/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func devAuthService() *service.AuthService {
	return service.NewAuthService("", "segredo-dev", "chave-1", "test-jwt-secret", time.Hour, zap.NewNop())
}

func TestLoginIssuesValidToken(t *testing.T) {
	svc := devAuthService()

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "segredo-dev"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatal("empty access token")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", resp.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken returned error: %v", err)
	}
	if claims.TenantKey != "chave-1" {
		t.Errorf("tenant key = %q, want chave-1", claims.TenantKey)
	}
	if claims.Type != "access" {
		t.Errorf("type = %q, want access", claims.Type)
	}
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	// The hash wins even with a dev password configured.
	svc := service.NewAuthService(string(hash), "outra", "chave-1", "test-jwt-secret", time.Hour, zap.NewNop())

	if _, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "senha-forte"}); err != nil {
		t.Fatalf("Login with hashed password returned error: %v", err)
	}
	_, err = svc.Login(context.Background(), &domain.LoginRequest{Password: "outra"})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := devAuthService()

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "errada"})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestLoginEmptyPassword(t *testing.T) {
	svc := devAuthService()

	_, err := svc.Login(context.Background(), &domain.LoginRequest{})
	var verr *domain.ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if verr.Field != "senha" {
		t.Errorf("field = %q, want senha", verr.Field)
	}
}

func TestValidateAccessTokenRejectsForeignSignature(t *testing.T) {
	issuer := devAuthService()
	resp, err := issuer.Login(context.Background(), &domain.LoginRequest{Password: "segredo-dev"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	verifier := service.NewAuthService("", "segredo-dev", "chave-1", "another-secret", time.Hour, zap.NewNop())
	_, err = verifier.ValidateAccessToken(resp.AccessToken)
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("err = %v, want unauthorized", err)
	}
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	svc := service.NewAuthService("", "segredo-dev", "chave-1", "test-jwt-secret", -time.Minute, zap.NewNop())
	resp, err := svc.Login(context.Background(), &domain.LoginRequest{Password: "segredo-dev"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := svc.ValidateAccessToken(resp.AccessToken); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := devAuthService()
	if _, err := svc.ValidateAccessToken("not-a-jwt"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
