// Package predicting orquestra o score, as recomendações e os dados auxiliares de uma predição
package predicting

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pymer/churninsight-api/infrastructure/cache"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/internal/usecases/scoring"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/pymer/churninsight-api/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const instrumentationName = "github.com/pymer/churninsight-api/internal/usecases/predicting"

// RecommendRetry é a única recomendação de uma resposta degradada
const RecommendRetry = "prediction error, please retry"

const (
	degradedProbability = 0.5
	minConfidence       = 0.6
	confidenceSpread    = 0.4
)

type Predictor interface {
	Predict(ctx context.Context, req *domain.PredictionRequest) *domain.PredictionResponse
	PredictBatch(ctx context.Context, reqs []*domain.PredictionRequest) (*domain.BatchPredictionResponse, error)
	ModelInfo() domain.ModelInfo
}

type Service struct {
	cache          cache.AssessmentCache
	mode           scoring.ProbabilityMode
	delay          time.Duration
	maxConcurrency int
	maxItems       int

	rngMu sync.Mutex
	rng   *rand.Rand

	now        func() time.Time
	generateID func() (string, error)

	tracer      trace.Tracer
	bandCounter metric.Int64Counter
}

// NewService cria o orquestrador. assessmentCache pode ser nil.
func NewService(cfg config.Prediction, assessmentCache cache.AssessmentCache) (Predictor, error) {
	return newService(cfg, assessmentCache)
}

func newService(cfg config.Prediction, assessmentCache cache.AssessmentCache) (*Service, error) {
	mode, err := scoring.ParseProbabilityMode(cfg.ProbabilityMode)
	if err != nil {
		return nil, NewPredictionError(ErrInvalidProbabilityMode, apiErrors.ErrInternalServer, err.Error())
	}

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	maxConcurrency := cfg.BatchMaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}

	bandCounter, err := otel.Meter(instrumentationName).Int64Counter(
		"churn.predictions",
		metric.WithDescription("Predições emitidas por faixa de risco"),
	)
	if err != nil {
		log.L.WithError(err).Warn("Não foi possível criar o contador de predições, métricas desabilitadas")
		bandCounter, _ = noop.NewMeterProvider().Meter(instrumentationName).Int64Counter("churn.predictions")
	}

	return &Service{
		cache:          assessmentCache,
		mode:           mode,
		delay:          cfg.Delay,
		maxConcurrency: maxConcurrency,
		maxItems:       cfg.BatchMaxItems,
		rng:            rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:            time.Now,
		generateID:     utils.GenerateID,
		tracer:         otel.Tracer(instrumentationName),
		bandCounter:    bandCounter,
	}, nil
}

// Predict nunca falha: entrada incompleta resulta numa resposta degradada
func (s *Service) Predict(ctx context.Context, req *domain.PredictionRequest) *domain.PredictionResponse {
	ctx, span := s.tracer.Start(ctx, "predicting.Predict")
	defer span.End()

	logger := log.ForContext(ctx)

	if !req.IsComplete() {
		logger.WithField("error", ErrIncompleteRequest.Error()).Warn("Dados incompletos para predição, retornando resposta degradada")
		span.SetStatus(codes.Error, ErrIncompleteRequest.Error())

		response := s.degraded()
		s.record(ctx, span, response)
		return response
	}

	metrics := req.Metrics()
	assessment := s.assess(ctx, metrics)

	probability := assessment.Probability
	if s.mode == scoring.ProbabilityModeBandRandom {
		probability = scoring.BandRandomProbability(assessment.Band, s.draw())
	}

	s.wait(ctx)

	response := &domain.PredictionResponse{
		ID:              s.newID(ctx),
		Prevision:       assessment.Band,
		Probabilidad:    probability,
		Confidence:      minConfidence + s.draw()*confidenceSpread,
		Recomendaciones: append([]string(nil), assessment.Recommendations...),
		Score:           utils.RoundWithTwoDecimalPlace(assessment.Score),
		Factores:        assessment.Factors,
		Timestamp:       s.now(),
	}

	logger.WithFields(log.Fields{
		"prediction_id": response.ID,
		"band":          response.Prevision,
		"score":         response.Score,
	}).Debug("Predição calculada")

	s.record(ctx, span, response)
	return response
}

// PredictBatch prediz todas as empresas em paralelo, preservando a ordem de entrada
func (s *Service) PredictBatch(ctx context.Context, reqs []*domain.PredictionRequest) (*domain.BatchPredictionResponse, error) {
	if len(reqs) == 0 {
		return nil, NewPredictionError(ErrEmptyBatch, apiErrors.ErrMissingRequiredData, "Informe ao menos uma empresa")
	}
	if s.maxItems > 0 && len(reqs) > s.maxItems {
		return nil, NewPredictionError(ErrBatchTooLarge, apiErrors.ErrInvalidRequest,
			fmt.Sprintf("Máximo de %d empresas por lote, recebido %d", s.maxItems, len(reqs)))
	}

	ctx, span := s.tracer.Start(ctx, "predicting.PredictBatch",
		trace.WithAttributes(attribute.Int("churn.batch_size", len(reqs))))
	defer span.End()

	predictions := make([]*domain.PredictionResponse, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)

	for i, req := range reqs {
		g.Go(func() error {
			predictions[i] = s.Predict(gctx, req)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	response := &domain.BatchPredictionResponse{
		TotalProcessed: len(predictions),
		Predictions:    predictions,
		Timestamp:      s.now(),
	}

	for _, p := range predictions {
		if p.Degradado {
			response.TotalDegraded++
			continue
		}
		switch p.Prevision {
		case domain.RiskBandHigh:
			response.TotalHighRisk++
		case domain.RiskBandMedium:
			response.TotalMediumRisk++
		default:
			response.TotalLowRisk++
		}
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"total":    response.TotalProcessed,
		"alto":     response.TotalHighRisk,
		"medio":    response.TotalMediumRisk,
		"bajo":     response.TotalLowRisk,
		"degraded": response.TotalDegraded,
	}).Info("Lote de predições processado")

	return response, nil
}

func (s *Service) ModelInfo() domain.ModelInfo {
	return scoring.Info(s.mode)
}

// assess consulta o cache antes de calcular a parte determinística da predição
func (s *Service) assess(ctx context.Context, metrics domain.QuarterlyMetrics) *domain.RiskAssessment {
	if s.cache == nil {
		return scoring.Assess(metrics)
	}

	logger := log.ForContext(ctx)

	key, err := cache.KeyFor(metrics, string(s.mode))
	if err != nil {
		logger.WithError(err).Warn("Falha ao gerar chave de cache")
		return scoring.Assess(metrics)
	}

	if cached, ok := s.cache.Get(ctx, key); ok {
		trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("churn.cache_hit", true))
		return cached
	}

	assessment := scoring.Assess(metrics)
	if err := s.cache.Set(ctx, key, assessment); err != nil {
		logger.WithError(err).Warn("Falha ao gravar avaliação no cache")
	}

	return assessment
}

// wait aplica o atraso configurado. O cancelamento do contexto encerra a espera, mas a predição é entregue.
func (s *Service) wait(ctx context.Context) {
	if s.delay <= 0 {
		return
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (s *Service) degraded() *domain.PredictionResponse {
	return &domain.PredictionResponse{
		Prevision:       domain.RiskBandMedium,
		Probabilidad:    degradedProbability,
		Recomendaciones: []string{RecommendRetry},
		Degradado:       true,
		Timestamp:       s.now(),
	}
}

func (s *Service) newID(ctx context.Context) string {
	id, err := s.generateID()
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Falha ao gerar ID da predição")
		return ""
	}
	return id
}

func (s *Service) draw() float64 {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Float64()
}

func (s *Service) record(ctx context.Context, span trace.Span, response *domain.PredictionResponse) {
	attrs := []attribute.KeyValue{
		attribute.String("churn.band", string(response.Prevision)),
		attribute.Bool("churn.degraded", response.Degradado),
	}
	span.SetAttributes(append(attrs, attribute.Float64("churn.probability", response.Probabilidad))...)
	s.bandCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
