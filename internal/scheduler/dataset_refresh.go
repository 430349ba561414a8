package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pymer/churninsight-api/infrastructure/repository"
	"github.com/pymer/churninsight-api/infrastructure/synthetic"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrRefreshRunning indica que já existe uma atualização do dataset em andamento
var ErrRefreshRunning = errors.New("dataset refresh already running")

// DatasetRefresher é o contrato usado pelas rotas administrativas
type DatasetRefresher interface {
	TriggerManualSync() error
	GetStatus() domain.DatasetSyncStatus
}

// DatasetRefreshService regenera o dataset sintético de empresas periodicamente
type DatasetRefreshService struct {
	scheduler           *gocron.Scheduler
	config              config.DatasetRefresh
	repo                repository.CompanyRepository
	seed                int64
	size                int
	now                 func() time.Time
	runs                int64
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSeed            int64
	records             int
}

func NewDatasetRefreshService(repo repository.CompanyRepository, appConfig *config.Config) *DatasetRefreshService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.DatasetRefresh.CronSchedule,
		"sync_enabled":  appConfig.DatasetRefresh.Enabled,
		"dataset_seed":  appConfig.Dataset.Seed,
		"dataset_size":  appConfig.Dataset.Size,
	}).Info("Configuração do agendador de atualização do dataset carregada")

	return &DatasetRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    appConfig.DatasetRefresh,
		repo:      repo,
		seed:      appConfig.Dataset.Seed,
		size:      appConfig.Dataset.Size,
		now:       time.Now,
		lastSeed:  appConfig.Dataset.Seed,
		records:   appConfig.Dataset.Size,
	}
}

// Start inicia o agendador
func (s *DatasetRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização do dataset desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de atualização do dataset")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.refresh(ctx); err != nil && !errors.Is(err, ErrRefreshRunning) {
			logrus.WithError(err).Error("Erro na atualização agendada do dataset")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do dataset: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualização do dataset")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh gera um novo dataset e substitui o atual no repositório.
// Cada execução usa a semente base somada ao número da execução.
func (s *DatasetRefreshService) refresh(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do dataset já em andamento, ignorando")
		return ErrRefreshRunning
	}
	s.syncRunning = true
	s.runs++
	seed := s.seed + s.runs
	startTime := s.now()
	s.lastSyncStartedAt = startTime
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	records := synthetic.Generate(seed, s.size, startTime)
	if err := s.repo.Replace(ctx, records); err != nil {
		return fmt.Errorf("erro ao substituir dataset: %w", err)
	}

	s.syncMutex.Lock()
	s.lastSyncCompletedAt = s.now()
	s.lastSeed = seed
	s.records = len(records)
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"duration": s.now().Sub(startTime).String(),
		"seed":     seed,
		"records":  len(records),
	}).Info("Atualização do dataset concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma atualização em segundo plano
func (s *DatasetRefreshService) TriggerManualSync() error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do dataset já em andamento, ignorando solicitação manual")
		return ErrRefreshRunning
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do dataset")
	go func() {
		if err := s.refresh(context.Background()); err != nil && !errors.Is(err, ErrRefreshRunning) {
			logrus.WithError(err).Error("Erro na atualização manual do dataset")
		}
	}()

	return nil
}

// GetStatus retorna o status atual da atualização
func (s *DatasetRefreshService) GetStatus() domain.DatasetSyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return domain.DatasetSyncStatus{
		Enabled:             s.config.Enabled,
		CronSchedule:        s.config.CronSchedule,
		Running:             s.syncRunning,
		LastSyncStartedAt:   s.lastSyncStartedAt,
		LastSyncCompletedAt: s.lastSyncCompletedAt,
		LastSeed:            s.lastSeed,
		Records:             s.records,
	}
}
