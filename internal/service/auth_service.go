package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
)

// ── Erros de negócio do módulo de autenticação ──

var (
	ErrInvalidCredentials = errors.New("usuário ou senha incorretos")
	ErrUserNotFound       = errors.New("usuário não encontrado")
	ErrInvalidTokenType   = errors.New("tipo de token inválido")
	ErrWrongPassword      = errors.New("senha atual incorreta")
)

// AuthService autenticação e gestão de sessão
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client // pode ser nil; blacklist degrada para no-op
	logger *zap.Logger
}

// NewAuthService cria AuthService
func NewAuthService(cfg *config.Config, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) AuthService {
	return &authService{cfg: cfg, repo: repo, jwtMgr: jwtMgr, rdb: rdb, logger: logger}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("falha ao buscar usuário no login", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.issueTokens(user.UserID, user.Name, user.Role, derefOrEmpty(user.WorkerID), user.Username)
	if err != nil {
		s.logger.Error("falha ao emitir tokens", zap.String("user_id", user.UserID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("login realizado",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role))
	return resp, nil
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidTokenType
	}

	if s.rdb != nil {
		blacklisted, err := s.rdb.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("falha ao consultar blacklist; token aceito", zap.Error(err))
		} else if blacklisted {
			return nil, jwt.ErrTokenInvalid
		}
	}

	// recarrega a conta: papel ou vínculo podem ter mudado desde a emissão
	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	// refresh usado uma única vez: o antigo vai para a blacklist
	if s.rdb != nil && claims.ExpiresAt != nil {
		if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("falha ao invalidar refresh token antigo", zap.Error(err))
		}
	}

	return s.issueTokens(user.UserID, user.Name, user.Role, derefOrEmpty(user.WorkerID), user.Username)
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.rdb.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
		s.logger.Error("falha ao registrar logout", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("logout realizado", zap.String("user_id", claims.UserID))
	return nil
}

// ────────────────────── ChangePassword ──────────────────────

func (s *authService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("falha ao atualizar senha", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	s.logger.Info("senha alterada", zap.String("user_id", userID))
	return nil
}

// ────────────────────── GetCurrentUser ──────────────────────

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserResponse{
		ID:       user.UserID,
		Name:     user.Name,
		Username: user.Username,
		Role:     user.Role,
		WorkerID: derefOrEmpty(user.WorkerID),
	}, nil
}

// ── auxiliares ──

func (s *authService) issueTokens(userID, name, role, workerID, username string) (*dto.TokenResponse, error) {
	access, err := s.jwtMgr.GenerateAccessToken(userID, name, role, workerID)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtMgr.GenerateRefreshToken(userID, name, role, workerID)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(s.cfg.Auth.AccessTokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:       userID,
			Name:     name,
			Username: username,
			Role:     role,
			WorkerID: workerID,
		},
	}, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
