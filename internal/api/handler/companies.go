package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
)

func Dashboard(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Dashboard(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular indicadores do dashboard")
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	})
}

// ListCompanies aceita os filtros sector, provincia, period, churn, limit e offset
func ListCompanies(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		filter, errs := parseCompanyFilter(r.URL.Query())
		if len(errs) > 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Filtros inválidos", errs)
			return
		}

		resp, err := service.ListCompanies(r.Context(), filter)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar empresas")
			return
		}

		writeJSON(w, r, http.StatusOK, resp)
	})
}

func GetCompany(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cuit := httprouter.ParamsFromContext(r.Context()).ByName("cuit")

		company, err := service.GetCompany(r.Context(), cuit)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao consultar empresa")
			return
		}

		writeJSON(w, r, http.StatusOK, company)
	})
}

func Segments(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		segments, err := service.Segments(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar segmentos")
			return
		}

		writeJSON(w, r, http.StatusOK, segments)
	})
}

func SectorStatistics(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sector := httprouter.ParamsFromContext(r.Context()).ByName("sector")

		stats, err := service.SectorStatistics(r.Context(), sector)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao calcular estatísticas do setor")
			return
		}

		writeJSON(w, r, http.StatusOK, stats)
	})
}

// HighRiskCompanies usa ?period=; sem período, considera o mais recente
func HighRiskCompanies(service statistics.StatisticsService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		companies, err := service.HighRiskCompanies(r.Context(), r.URL.Query().Get("period"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar empresas de alto risco")
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]any{
			"companies": companies,
			"total":     len(companies),
		})
	})
}

func parseCompanyFilter(query url.Values) (domain.CompanyFilter, domain.ValidationErrors) {
	errs := domain.ValidationErrors{}
	filter := domain.CompanyFilter{
		Sector:        query.Get("sector"),
		Provincia:     query.Get("provincia"),
		PeriodoFiscal: query.Get("period"),
	}

	if raw := query.Get("churn"); raw != "" {
		churn, err := strconv.ParseBool(raw)
		if err != nil {
			errs["churn"] = "deve ser true ou false"
		} else {
			filter.Churn = &churn
		}
	}

	for name, dst := range map[string]*int{"limit": &filter.Limit, "offset": &filter.Offset} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			errs[name] = "deve ser um inteiro não negativo"
			continue
		}
		*dst = value
	}

	for name, dst := range map[string]**time.Time{"churn_from": &filter.ChurnFrom, "churn_to": &filter.ChurnTo} {
		raw := query.Get(name)
		if raw == "" {
			continue
		}
		value, err := parseChurnDate(raw, name == "churn_to")
		if err != nil {
			errs[name] = "deve ser uma data RFC3339 ou AAAA-MM-DD"
			continue
		}
		*dst = &value
	}

	if filter.ChurnFrom != nil && filter.ChurnTo != nil && filter.ChurnFrom.After(*filter.ChurnTo) {
		errs["churn_from"] = "deve ser anterior ou igual a churn_to"
	}

	return filter, errs
}

// parseChurnDate aceita RFC3339 ou só a data. Como limite final, a data simples cobre o dia inteiro.
func parseChurnDate(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
