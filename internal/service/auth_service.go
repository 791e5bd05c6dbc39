package service

import (
	"context"
	"fmt"
	"time"

	"github.com/coder-muller/radio-cultura-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var authTracer = otel.Tracer("service/auth")

// AuthService gates access to the back office. The whole station shares one
// password; a successful login yields a short-lived JWT that carries the
// tenant key every subsequent call is scoped by.
type AuthService struct {
	passwordHash []byte // bcrypt hash; preferred
	passwordDev  string // plaintext fallback for local development
	tenantKey    string
	jwtSecret    []byte
	accessTTL    time.Duration
	logger       *zap.Logger
}

// NewAuthService creates the auth service. passwordHash wins when both a
// hash and a dev plaintext password are configured.
func NewAuthService(passwordHash, passwordDev, tenantKey, jwtSecret string, accessTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		passwordHash: []byte(passwordHash),
		passwordDev:  passwordDev,
		tenantKey:    tenantKey,
		jwtSecret:    []byte(jwtSecret),
		accessTTL:    accessTTL,
		logger:       logger,
	}
}

// ============================================================
// Login — POST /v1/auth/login
// ============================================================

// Login checks the shared password and issues an access token.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	_, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if req.Password == "" {
		return nil, &domain.ErrValidation{Field: "senha", Message: "Senha é obrigatória"}
	}

	if !s.checkPassword(req.Password) {
		s.logger.Warn("login: wrong password")
		return nil, &domain.ErrUnauthorized{Message: "Senha inválida"}
	}

	token, err := s.signAccessToken()
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	s.logger.Info("login ok", zap.String("tenant", s.tenantKey))
	return &domain.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthService) checkPassword(password string) bool {
	if len(s.passwordHash) > 0 {
		return bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	}
	return s.passwordDev != "" && password == s.passwordDev
}

// ============================================================
// Token validation — used by middleware
// ============================================================

// JWTClaims represents the custom claims in access tokens.
type JWTClaims struct {
	TenantKey string `json:"chave"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// ValidateAccessToken parses and verifies a bearer token, returning its
// claims when valid.
func (s *AuthService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido ou expirado"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Token inválido"}
	}

	if claims.Type != "access" || claims.TenantKey == "" {
		return nil, &domain.ErrUnauthorized{Message: "Tipo de token inválido"}
	}

	return claims, nil
}

func (s *AuthService) signAccessToken() (string, error) {
	now := time.Now()
	claims := JWTClaims{
		TenantKey: s.tenantKey,
		Type:      "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			Issuer:    "radio-cultura-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
