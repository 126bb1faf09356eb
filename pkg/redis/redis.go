package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/007-sistemas/Sistema-Web-sub000/config"
)

// Client encapsula o cliente Redis
// Usado para blacklist de tokens e rate limit; demais caches ficam fora
// do caminho de decisão (nenhuma aprovação é cacheada entre requisições)
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient abre a conexão Redis e executa um Ping de verificação
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("falha ao conectar no Redis: %w", err)
	}

	logger.Info("conexão Redis estabelecida", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// Close encerra a conexão
func (c *Client) Close() error {
	return c.rdb.Close()
}

// ── Blacklist de tokens ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken adiciona o JWT ID à blacklist com TTL igual à validade
// restante do token
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // token já expirado, nada a registrar
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted verifica se o JWT ID está na blacklist
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── Rate limit ──

// CheckRateLimit implementa janela fixa simples por chave.
// Retorna false quando o número de requisições na janela excede o limite.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}
