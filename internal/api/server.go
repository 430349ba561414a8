package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/pymer/churninsight-api/internal/api/handler"
	"github.com/pymer/churninsight-api/internal/api/handler/router"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/scheduler"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/pymer/churninsight-api/pkg/middleware"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa os casos de uso expostos pela API
type Services struct {
	Predictor        predicting.Predictor
	Exporter         exporting.Exporter
	Statistics       statistics.StatisticsService
	DatasetRefresher scheduler.DatasetRefresher
	ReadinessChecks  map[string]handler.ReadinessCheck
}

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com a cadeia global de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Predictor, services.ReadinessChecks)...),
		router.WithRoutes(handler.Predictions(services.Predictor, services.Exporter)...),
		router.WithRoutes(handler.Companies(services.Statistics)...),
		router.WithRoutes(handler.Dataset(services.DatasetRefresher, cfg.Auth.Secret)...),
	)

	return globalChain(cfg).Then(rt)
}

// globalChain aplica os middlewares na ordem da lista. O logging vem antes do recover
// para que o log de panic já tenha o ID de correlação.
func globalChain(cfg *config.Config) alice.Chain {
	middlewares := []alice.Constructor{
		middleware.LoggingMiddleware(),
		middleware.RecoverMiddleware(),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	}

	return alice.New(middlewares...)
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Predictor == nil || services.Statistics == nil || services.DatasetRefresher == nil {
		return nil, fmt.Errorf("serviços obrigatórios não informados")
	}
	if services.Exporter == nil {
		services.Exporter = exporting.NewService()
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}
