// Package cache guarda avaliações de risco já calculadas
package cache

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=cache.go -destination=mocks/cache.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const keyPrefix = "churninsight:assessment:"

// AssessmentCache guarda a parte determinística de uma predição
type AssessmentCache interface {
	Get(ctx context.Context, key string) (*domain.RiskAssessment, bool)
	Set(ctx context.Context, key string, assessment *domain.RiskAssessment) error
}

// KeyFor gera a chave de cache a partir das métricas normalizadas e do modo de probabilidade
func KeyFor(metrics domain.QuarterlyMetrics, mode string) (string, error) {
	// o período fiscal não participa do score
	metrics.PeriodoFiscal = ""

	payload, err := json.Marshal(metrics)
	if err != nil {
		return "", err
	}

	digest := xxhash.New()
	digest.Write([]byte(mode))
	digest.Write([]byte{':'})
	digest.Write(payload)

	return keyPrefix + hex.EncodeToString(digest.Sum(nil)), nil
}

// New escolhe a implementação de acordo com a configuração.
// Sem REDIS_ADDR o cache fica em memória.
func New(cfg config.Cache) AssessmentCache {
	if cfg.RedisAddr == "" {
		logrus.Info("Cache de avaliações em memória")
		return NewMemoryCache(cfg.TTL, cfg.MaxEntries)
	}

	logrus.WithField("addr", cfg.RedisAddr).Info("Cache de avaliações no Redis")
	return NewRedisCache(cfg)
}

func encode(assessment *domain.RiskAssessment) (string, error) {
	payload, err := json.Marshal(assessment)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func decode(value string) (*domain.RiskAssessment, bool) {
	assessment := &domain.RiskAssessment{}
	if err := json.Unmarshal([]byte(value), assessment); err != nil {
		return nil, false
	}
	return assessment, true
}

func expired(expiresAt time.Time, now time.Time) bool {
	return !expiresAt.IsZero() && now.After(expiresAt)
}
