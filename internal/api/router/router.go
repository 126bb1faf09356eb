package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/api/handler"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/api/middleware"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/model"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
)

// Setup inicializa e devolve o motor de rotas Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middlewares globais ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// autenticação (sem token)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// totens biométricos (token fixo de totem)
		kiosk := v1.Group("/kiosk")
		kiosk.Use(middleware.KioskAuth(cfg.Auth.KioskToken))
		kiosk.Use(middleware.RateLimit(rdb, 120, time.Minute))
		{
			kiosk.POST("/punches", h.Punch.CreateKiosk)
		}

		// rotas autenticadas
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// cooperados
			workers := authorized.Group("/workers")
			{
				workers.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Worker.List)
				workers.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Worker.Get)
				workers.GET("/:id/shifts", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Shift.ListByWorker)
				workers.POST("", middleware.RoleAuth(model.RoleAdmin), h.Worker.Create)
				workers.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Worker.Update)
				workers.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Worker.Delete)
			}

			// hospitais e setores
			hospitals := authorized.Group("/hospitals")
			{
				hospitals.GET("", h.Hospital.List)
				hospitals.GET("/:id", h.Hospital.Get)
				hospitals.GET("/:id/sectors", h.Hospital.ListSectors)
				hospitals.POST("", middleware.RoleAuth(model.RoleAdmin), h.Hospital.Create)
				hospitals.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Hospital.Update)
				hospitals.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Hospital.Delete)
				hospitals.POST("/:id/sectors", middleware.RoleAuth(model.RoleAdmin), h.Hospital.CreateSector)
			}
			authorized.DELETE("/sectors/:id", middleware.RoleAuth(model.RoleAdmin), h.Hospital.DeleteSector)

			// registros de ponto
			punches := authorized.Group("/punches")
			{
				punches.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Punch.List)
				punches.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Punch.Get)
				punches.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Punch.Create)
				punches.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Punch.Delete)
			}

			// turnos derivados
			authorized.GET("/shifts/me", h.Shift.ListMine)

			// justificativas
			justifications := authorized.Group("/justifications")
			{
				justifications.POST("", h.Justification.Create)
				justifications.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Justification.List)
				justifications.GET("/me", h.Justification.ListMine)
				justifications.GET("/pending", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Justification.ListPending)
				justifications.GET("/:id", h.Justification.Get)
				justifications.POST("/:id/approve", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Justification.Approve)
				justifications.POST("/:id/reject", middleware.RoleAuth(model.RoleAdmin, model.RoleManager), h.Justification.Reject)
			}

			// administração
			authorized.POST("/admin/sweep", middleware.RoleAuth(model.RoleAdmin), h.Sweep.Run)
		}
	}

	return r
}
