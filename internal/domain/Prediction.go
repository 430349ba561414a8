package domain

import "time"

// RiskBand é a faixa de risco de churn
type RiskBand string

const (
	RiskBandHigh   RiskBand = "alto"
	RiskBandMedium RiskBand = "medio"
	RiskBandLow    RiskBand = "bajo"
)

// RiskBands lista as faixas na ordem de exibição do dashboard
var RiskBands = []RiskBand{RiskBandLow, RiskBandMedium, RiskBandHigh}

func (b RiskBand) IsValid() bool {
	switch b {
	case RiskBandHigh, RiskBandMedium, RiskBandLow:
		return true
	}
	return false
}

// PredictionRequest é o payload recebido para predição.
// Os sub-registros são opcionais para permitir detectar entrada incompleta.
type PredictionRequest struct {
	CompanyProfile *StaticProfile  `json:"company_profile,omitempty"`
	PeriodoFiscal  string          `json:"Periodo_Fiscal,omitempty"`
	Financials     *Financials     `json:"financials"`
	CreditBehavior *CreditBehavior `json:"credit_behavior"`
	AppEngagement  *AppEngagement  `json:"app_engagement"`
	ServicesFlags  *ServicesFlags  `json:"services_flags"`
}

// IsComplete indica se os sub-registros obrigatórios (financeiro e engajamento) estão presentes
func (r *PredictionRequest) IsComplete() bool {
	return r != nil && r.Financials != nil && r.AppEngagement != nil
}

// Metrics converte o request em métricas normalizadas.
// Sub-registros de crédito e serviços ausentes viram valores zero.
func (r *PredictionRequest) Metrics() QuarterlyMetrics {
	metrics := QuarterlyMetrics{PeriodoFiscal: r.PeriodoFiscal}
	if r.Financials != nil {
		metrics.Financials = *r.Financials
	}
	if r.CreditBehavior != nil {
		metrics.CreditBehavior = *r.CreditBehavior
	}
	if r.AppEngagement != nil {
		metrics.AppEngagement = *r.AppEngagement
	}
	if r.ServicesFlags != nil {
		metrics.ServicesFlags = *r.ServicesFlags
	}
	metrics.Normalize()
	return metrics
}

// RiskAssessment é a parte determinística de uma predição
type RiskAssessment struct {
	Score           float64            `json:"score"`
	Band            RiskBand           `json:"band"`
	Probability     float64            `json:"probability"`
	Factors         map[string]float64 `json:"factors"`
	Recommendations []string           `json:"recommendations"`
}

// PredictionResponse é o contrato de resposta da predição de churn
type PredictionResponse struct {
	ID              string             `json:"id,omitempty"`
	Prevision       RiskBand           `json:"prevision"`
	Probabilidad    float64            `json:"probabilidad"`
	Confidence      float64            `json:"confidence,omitempty"`
	Recomendaciones []string           `json:"recomendaciones"`
	Score           float64            `json:"score"`
	Factores        map[string]float64 `json:"factores,omitempty"`
	Degradado       bool               `json:"degradado"`
	Timestamp       time.Time          `json:"timestamp"`
}

type BatchPredictionRequest struct {
	Companies []*PredictionRequest `json:"companies"`
}

type BatchPredictionResponse struct {
	TotalProcessed  int                   `json:"total_processed"`
	TotalHighRisk   int                   `json:"total_high_risk"`
	TotalMediumRisk int                   `json:"total_medium_risk"`
	TotalLowRisk    int                   `json:"total_low_risk"`
	TotalDegraded   int                   `json:"total_degraded"`
	Predictions     []*PredictionResponse `json:"predictions"`
	Timestamp       time.Time             `json:"timestamp"`
}

// ModelInfo descreve o modelo heurístico em uso
type ModelInfo struct {
	ModelType       string             `json:"model_type"`
	Version         string             `json:"version"`
	ProbabilityMode string             `json:"probability_mode"`
	Thresholds      map[string]float64 `json:"thresholds"`
	FactorWeights   map[string]float64 `json:"factor_weights"`
	Features        []string           `json:"features"`
}

// ExportRequest é o payload de exportação: os dados da predição e, opcionalmente, o resultado já calculado
type ExportRequest struct {
	PredictionRequest
	Prediction *PredictionResponse `json:"prediction,omitempty"`
}
