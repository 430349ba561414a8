package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Tamanho máximo aceito no corpo das requisições
const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao codificar resposta")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", err.Error())
		return false
	}
	return true
}

// writeServiceError traduz os erros tipados dos casos de uso para a resposta da API
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log.ForContext(r.Context()).WithError(err).Error(fallback)

	var (
		predictionErr *predicting.PredictionError
		statisticsErr *statistics.StatisticsError
		exportErr     *exporting.ExportError
	)

	switch {
	case errors.As(err, &predictionErr):
		apiErrors.WriteError(w, predictionErr.Code, predictionErr.Error(), nil)
	case errors.As(err, &statisticsErr):
		apiErrors.WriteError(w, statisticsErr.Code, statisticsErr.Error(), nil)
	case errors.As(err, &exportErr):
		apiErrors.WriteError(w, exportErr.Code, exportErr.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
