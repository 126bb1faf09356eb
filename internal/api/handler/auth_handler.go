package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/internal/dto"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// AuthHandler handlers HTTP do módulo de autenticação
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler cria AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login autenticação por credenciais
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "usuário ou senha incorretos")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Refresh renovação do par de tokens
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired), errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrInvalidTokenType):
			response.Unauthorized(c, 10002, "refresh token inválido ou expirado")
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 10002, "conta não encontrada")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Logout encerra a sessão atual
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// ChangePassword troca de senha do próprio usuário
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.BadRequest(c, 11002, "senha atual incorreta")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 11003, "conta não encontrada")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// GetCurrentUser dados da conta autenticada
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 11003, "conta não encontrada")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, user)
}
