package main

import (
	"context"
	"time"

	"github.com/pymer/churninsight-api/infrastructure/cache"
	"github.com/pymer/churninsight-api/infrastructure/database/postgres"
	"github.com/pymer/churninsight-api/infrastructure/repository"
	"github.com/pymer/churninsight-api/infrastructure/synthetic"
	"github.com/pymer/churninsight-api/internal/api"
	"github.com/pymer/churninsight-api/internal/api/handler"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/scheduler"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.LogLevel, cfg.App.Env); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		_ = log.Setup("info", cfg.App.Env)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]handler.ReadinessCheck{}

	var companyRepo repository.CompanyRepository
	switch cfg.Dataset.Source {
	case config.CompanySourcePostgres:
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		companyRepo = repository.NewCompanyRepository(pgConn)
		checks["database"] = pgConn.Ping
	default:
		records := synthetic.Generate(cfg.Dataset.Seed, cfg.Dataset.Size, time.Now())
		companyRepo = repository.NewMemoryCompanyRepository(records)

		logrus.WithFields(logrus.Fields{
			"seed":    cfg.Dataset.Seed,
			"records": len(records),
		}).Info("Dataset sintético de empresas gerado")
	}

	checks["dataset"] = func(ctx context.Context) error {
		_, err := companyRepo.Count(ctx)
		return err
	}

	assessmentCache := cache.New(cfg.Cache)
	if redisCache, ok := assessmentCache.(*cache.RedisCache); ok {
		defer redisCache.Close()
		checks["cache"] = redisCache.Ping
	}

	predictor, err := predicting.NewService(cfg.Prediction, assessmentCache)
	if err != nil {
		logrus.Fatal(err)
	}

	refreshService := scheduler.NewDatasetRefreshService(companyRepo, cfg)
	if err := refreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualização do dataset")
	} else {
		logrus.Info("Agendador de atualização do dataset iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Predictor:        predictor,
		Exporter:         exporting.NewService(),
		Statistics:       statistics.NewService(companyRepo),
		DatasetRefresher: refreshService,
		ReadinessChecks:  checks,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
