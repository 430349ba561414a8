package handler

import (
	"net/http"

	"github.com/pymer/churninsight-api/internal/api/handler/router"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/internal/scheduler"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/pymer/churninsight-api/pkg/middleware"
)

func Healthcheck(predictor predicting.Predictor, checks map[string]ReadinessCheck) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/v1/health/live",
			Method:  http.MethodGet,
			Handler: Live(),
		},
		{
			Path:    "/v1/health/ready",
			Method:  http.MethodGet,
			Handler: Ready(checks),
		},
		{
			Path:    "/v1/health/model-info",
			Method:  http.MethodGet,
			Handler: ModelInfo(predictor),
		},
	}
}

func Predictions(predictor predicting.Predictor, exporter exporting.Exporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/predictions/predict",
			Method:  http.MethodPost,
			Handler: Predict(predictor),
		},
		{
			Path:    "/v1/predictions/batch",
			Method:  http.MethodPost,
			Handler: PredictBatch(predictor),
		},
		{
			Path:    "/v1/predictions/export",
			Method:  http.MethodPost,
			Handler: ExportPrediction(predictor, exporter),
		},
	}
}

func Companies(service statistics.StatisticsService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: Dashboard(service),
		},
		{
			Path:    "/v1/dashboard/segments",
			Method:  http.MethodGet,
			Handler: Segments(service),
		},
		{
			Path:    "/v1/dashboard/sectors/:sector",
			Method:  http.MethodGet,
			Handler: SectorStatistics(service),
		},
		{
			Path:    "/v1/dashboard/high-risk",
			Method:  http.MethodGet,
			Handler: HighRiskCompanies(service),
		},
		{
			Path:    "/v1/companies",
			Method:  http.MethodGet,
			Handler: ListCompanies(service),
		},
		{
			Path:    "/v1/companies/:cuit",
			Method:  http.MethodGet,
			Handler: GetCompany(service),
		},
	}
}

// Dataset registra as rotas administrativas, protegidas por token de operador
func Dataset(refresher scheduler.DatasetRefresher, authSecret string) []router.Route {
	operatorOnly := []func(http.Handler) http.Handler{
		middleware.AuthMiddleware(authSecret),
		middleware.RoleMiddleware(domain.RoleOperator),
	}

	return []router.Route{
		{
			Path:        "/v1/admin/dataset/refresh",
			Method:      http.MethodPost,
			Handler:     RefreshDataset(refresher),
			Middlewares: operatorOnly,
		},
		{
			Path:        "/v1/admin/dataset/status",
			Method:      http.MethodGet,
			Handler:     DatasetStatus(refresher),
			Middlewares: operatorOnly,
		},
	}
}
