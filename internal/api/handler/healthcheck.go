package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/sirupsen/logrus"
)

// Tempo máximo de cada verificação de prontidão
const readinessTimeout = 2 * time.Second

// ReadinessCheck verifica uma dependência; erro indica que a API não está pronta
type ReadinessCheck func(ctx context.Context) error

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

func Live() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// Ready executa as verificações em ordem de nome e responde 503 se alguma falhar
func Ready(checks map[string]ReadinessCheck) http.Handler {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))

		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.ForContext(ctx).WithError(err).Warnf("Verificação de prontidão falhou: %s", name)
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "unavailable"
		}

		writeJSON(w, r, status, map[string]any{
			"status": overall,
			"checks": results,
		})
	})
}
