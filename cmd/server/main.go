package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/api/handler"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/api/router"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/repository"
	"github.com/007-sistemas/Sistema-Web-sub000/internal/service"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/database"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/jwt"
	applogger "github.com/007-sistemas/Sistema-Web-sub000/pkg/logger"
	"github.com/007-sistemas/Sistema-Web-sub000/pkg/redis"
)

func main() {
	// 1. configuração
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// 2. logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("aplicação iniciando...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. banco de dados
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("falha na conexão com o banco", zap.Error(err))
	}
	logger.Info("conexão com o banco estabelecida")

	// 3.1 migrações
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao obter sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("falha nas migrações do banco", zap.Error(err))
	}

	// 4. Redis (opcional: sem ele a blacklist de tokens e o rate limit
	// ficam indisponíveis, mas a aplicação sobe)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("falha na conexão com o Redis; blacklist e rate limit desabilitados", zap.Error(err))
		rdb = nil
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. injeção de dependências: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. rotas
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. servidor HTTP com desligamento gracioso
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP no ar", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("falha no servidor HTTP", zap.Error(err))
		}
	}()

	// 9. sinais do sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("sinal de desligamento recebido, encerrando...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("falha no desligamento do servidor", zap.Error(err))
	}

	closeDB, _ := db.DB()
	if closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor encerrado")
}
