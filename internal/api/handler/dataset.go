package handler

import (
	"errors"
	"net/http"

	"github.com/pymer/churninsight-api/internal/scheduler"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/pymer/churninsight-api/pkg/middleware"
)

// RefreshDataset dispara manualmente a regeneração do dataset de empresas
func RefreshDataset(refresher scheduler.DatasetRefresher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			logger = logger.WithField("dataset_requested_by", claims.Subject)
		}

		if err := refresher.TriggerManualSync(); err != nil {
			if errors.Is(err, scheduler.ErrRefreshRunning) {
				apiErrors.WriteError(w, apiErrors.ErrSyncInProgress, "Atualização do dataset já em andamento", nil)
				return
			}
			writeServiceError(w, r, err, "Erro ao iniciar atualização do dataset")
			return
		}

		logger.Info("Atualização manual do dataset iniciada")

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Atualização do dataset iniciada com sucesso",
			"status":  refresher.GetStatus(),
		})
	})
}

func DatasetStatus(refresher scheduler.DatasetRefresher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, refresher.GetStatus())
	})
}
