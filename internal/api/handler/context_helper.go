package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/007-sistemas/Sistema-Web-sub000/pkg/response"
)

// MustGetUserID extrai user_id do contexto Gin com segurança.
// Se o middleware JWT não injetou user_id, escreve 401 e retorna false.
// O chamador deve retornar imediatamente quando ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	return s, true
}

// MustGetUserName extrai o nome do usuário autenticado do contexto Gin.
// As decisões gravam o nome legível do gestor, não o id.
func MustGetUserName(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_name")
	if !exists {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	return s, true
}

// MustGetRole extrai role do contexto Gin com segurança.
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return "", false
	}
	return s, true
}

// GetWorkerID extrai worker_id do contexto; vazio quando a conta não
// pertence a um cooperado.
func GetWorkerID(c *gin.Context) string {
	v, exists := c.Get("worker_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
