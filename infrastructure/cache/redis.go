package cache

import (
	"context"
	"time"

	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.Cache) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisCache{
		client: rdb,
		ttl:    cfg.TTL,
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*domain.RiskAssessment, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			logrus.WithError(err).Warn("Falha ao consultar o cache no Redis")
		}
		return nil, false
	}
	return decode(val)
}

func (r *RedisCache) Set(ctx context.Context, key string, assessment *domain.RiskAssessment) error {
	value, err := encode(assessment)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Ping verifica a conexão com o Redis
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
