package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
)

var (
	ErrTokenExpired = errors.New("token expirado")
	ErrTokenInvalid = errors.New("token inválido")
)

// Claims declarações JWT customizadas
type Claims struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`                // admin | manager | worker
	WorkerID  string `json:"worker_id,omitempty"` // preenchido quando a conta pertence a um cooperado
	TokenType string `json:"token_type"`          // "access" | "refresh"
	jwtv5.RegisteredClaims
}

// Manager gerenciador de tokens JWT
type Manager struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewManager cria o gerenciador JWT
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// GenerateAccessToken gera um access token
func (m *Manager) GenerateAccessToken(userID, name, role, workerID string) (string, error) {
	return m.generate(userID, name, role, workerID, "access", m.accessTokenTTL)
}

// GenerateRefreshToken gera um refresh token
func (m *Manager) GenerateRefreshToken(userID, name, role, workerID string) (string, error) {
	return m.generate(userID, name, role, workerID, "refresh", m.refreshTokenTTL)
}

func (m *Manager) generate(userID, name, role, workerID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Name:      name,
		Role:      role,
		WorkerID:  workerID,
		TokenType: tokenType,
		RegisteredClaims: jwtv5.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
			Issuer:    "sistema-web-sub000",
		},
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken interpreta e valida um token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
