package handler

import (
	"net/http"
	"strconv"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
)

// Predict calcula o risco de churn de uma empresa.
// Entrada incompleta retorna 200 com a resposta degradada.
func Predict(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.PredictionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if errs := req.Validate(""); len(errs) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dados da empresa inválidos", errs)
			return
		}

		writeJSON(w, r, http.StatusOK, service.Predict(r.Context(), &req))
	})
}

func PredictBatch(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req domain.BatchPredictionRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if errs := domain.ValidateBatch(req.Companies); len(errs) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dados do lote inválidos", errs)
			return
		}

		resp, err := service.PredictBatch(r.Context(), req.Companies)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao processar lote de predições")
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}

// ExportPrediction gera o relatório no formato pedido em ?format=csv|json|xlsx|text|summary.
// Sem resultado no payload, a predição é calculada antes da exportação.
func ExportPrediction(predictor predicting.Predictor, exporter exporting.Exporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format, err := exporting.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeServiceError(w, r, err, "Formato de exportação inválido")
			return
		}

		var req domain.ExportRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if errs := req.PredictionRequest.Validate(""); len(errs) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dados da empresa inválidos", errs)
			return
		}

		result := req.Prediction
		if result == nil {
			result = predictor.Predict(r.Context(), &req.PredictionRequest)
		}

		file, err := exporter.Export(format, exporting.NewReport(&req.PredictionRequest, result))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao exportar relatório")
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"prediction_id":     result.ID,
			"prediction_format": string(format),
		}).Info("Relatório exportado")

		w.Header().Set("Content-Type", file.ContentType)
		w.Header().Set("Content-Disposition", file.ContentDisposition())
		w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar relatório")
		}
	})
}

func ModelInfo(service predicting.Predictor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.ModelInfo())
	})
}
