package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// JWTAuth middleware de autenticação JWT.
// Extrai e valida o access token de Authorization: Bearer <token>.
// rdb nil degrada sem a checagem de blacklist.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação ausente")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação em formato inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido ou expirado")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "sessão encerrada")
				c.Abort()
				return
			}
			// erro na consulta degrada aceitando o token
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_name", claims.Name)
		c.Set("role", claims.Role)
		c.Set("worker_id", claims.WorkerID)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth middleware de autorização por papel.
// Libera a requisição quando o usuário tem um dos papéis informados.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "não autenticado")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "acesso negado para este papel")
		c.Abort()
	}
}

// KioskAuth autenticação dos totens biométricos por token fixo
// (cabeçalho X-Kiosk-Token). Token vazio na configuração desabilita a
// rota de totem por completo.
func KioskAuth(kioskToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if kioskToken == "" {
			response.Forbidden(c, 10003, "registro por totem desabilitado")
			c.Abort()
			return
		}
		if c.GetHeader("X-Kiosk-Token") != kioskToken {
			response.Unauthorized(c, 10002, "token de totem inválido")
			c.Abort()
			return
		}
		c.Next()
	}
}
