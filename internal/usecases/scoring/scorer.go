// Package scoring implementa o score heurístico de risco de churn e a geração de recomendações.
//
// Todas as funções são puras: leem apenas o argumento recebido e podem ser
// chamadas em paralelo sem sincronização.
package scoring

import (
	"math"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/pkg/utils"
)

// Nomes dos fatores do modelo aditivo
const (
	FactorEngagement = "engagement"
	FactorMargin     = "margin"
	FactorDebt       = "debt"
	FactorCredit     = "credit"
	FactorServices   = "services"
)

// FactorNames lista os fatores na ordem em que são somados
var FactorNames = []string{FactorEngagement, FactorMargin, FactorDebt, FactorCredit, FactorServices}

const (
	activityWindowDays = 90.0

	lowActivityRatio    = 0.3
	mediumActivityRatio = 0.6
	lowMarginRatio      = 0.1
	highDebtRatio       = 0.5
	lowApprovalRate     = 0.3
	minServicesUsed     = 2

	weightLowActivity    = 0.3
	weightMediumActivity = 0.15
	weightNegativeMargin = 0.3
	weightLowMargin      = 0.15
	weightHighDebt       = 0.2
	weightCredit         = 0.15
	weightFewServices    = 0.1

	// Limites das faixas de risco
	HighRiskThreshold   = 0.7
	MediumRiskThreshold = 0.4

	maxScore = 1.0
)

// Breakdown é a contribuição de cada fator para o score
type Breakdown struct {
	Engagement float64
	Margin     float64
	Debt       float64
	Credit     float64
	Services   float64
}

// Sum soma os fatores sempre na mesma ordem, sem aplicar o teto
func (b Breakdown) Sum() float64 {
	return b.Engagement + b.Margin + b.Debt + b.Credit + b.Services
}

// Map retorna os fatores indexados pelo nome
func (b Breakdown) Map() map[string]float64 {
	return map[string]float64{
		FactorEngagement: b.Engagement,
		FactorMargin:     b.Margin,
		FactorDebt:       b.Debt,
		FactorCredit:     b.Credit,
		FactorServices:   b.Services,
	}
}

// Factors calcula a contribuição de cada fator de risco
func Factors(m domain.QuarterlyMetrics) Breakdown {
	return Breakdown{
		Engagement: engagementFactor(m.AppEngagement),
		Margin:     marginFactor(m.Financials),
		Debt:       debtFactor(m.Financials),
		Credit:     creditFactor(m.CreditBehavior),
		Services:   servicesFactor(m.ServicesFlags),
	}
}

// Score retorna o score de risco em [0,1]. O teto é aplicado apenas sobre a soma final.
func Score(m domain.QuarterlyMetrics) float64 {
	return math.Min(Factors(m).Sum(), maxScore)
}

// BandFor converte o score na faixa de risco
func BandFor(score float64) domain.RiskBand {
	switch {
	case score > HighRiskThreshold:
		return domain.RiskBandHigh
	case score > MediumRiskThreshold:
		return domain.RiskBandMedium
	default:
		return domain.RiskBandLow
	}
}

func engagementFactor(e domain.AppEngagement) float64 {
	activityRatio := float64(e.TrimestreDiasActividad) / activityWindowDays
	if activityRatio < lowActivityRatio {
		return weightLowActivity
	}
	if activityRatio < mediumActivityRatio {
		return weightMediumActivity
	}
	return 0
}

func marginFactor(f domain.Financials) float64 {
	if f.Margen < 0 {
		return weightNegativeMargin
	}
	if f.Margen < f.Ingresos*lowMarginRatio {
		return weightLowMargin
	}
	return 0
}

func debtFactor(f domain.Financials) float64 {
	if f.Deuda <= 0 || f.Activos <= 0 {
		return 0
	}
	if f.Deuda/f.Activos > highDebtRatio {
		return weightHighDebt
	}
	return 0
}

func creditFactor(c domain.CreditBehavior) float64 {
	if c.PrestamosSolicitados == 0 {
		return weightCredit
	}
	approvalRate := float64(c.PrestamosAprobados) / float64(c.PrestamosSolicitados)
	if approvalRate < lowApprovalRate {
		return weightCredit
	}
	return 0
}

func servicesFactor(s domain.ServicesFlags) float64 {
	if s.Count() < minServicesUsed {
		return weightFewServices
	}
	return 0
}

// Assess calcula score, faixa, fatores e recomendações.
// A probabilidade é derivada do score (ver ProbabilityFromScore).
func Assess(m domain.QuarterlyMetrics) *domain.RiskAssessment {
	factors := Factors(m)
	score := math.Min(factors.Sum(), maxScore)
	band := BandFor(score)

	return &domain.RiskAssessment{
		Score:           score,
		Band:            band,
		Probability:     ProbabilityFromScore(score),
		Factors:         factors.Map(),
		Recommendations: Recommend(m, band),
	}
}

// Info descreve os parâmetros do modelo heurístico
func Info(mode ProbabilityMode) domain.ModelInfo {
	return domain.ModelInfo{
		ModelType:       "heuristic-additive",
		Version:         "1.0.0",
		ProbabilityMode: string(mode),
		Thresholds: map[string]float64{
			string(domain.RiskBandHigh):   HighRiskThreshold,
			string(domain.RiskBandMedium): MediumRiskThreshold,
		},
		FactorWeights: map[string]float64{
			FactorEngagement: weightLowActivity,
			FactorMargin:     weightNegativeMargin,
			FactorDebt:       weightHighDebt,
			FactorCredit:     weightCredit,
			FactorServices:   weightFewServices,
		},
		Features: []string{
			"Trimestre_Dias_Actividad",
			"Margen",
			"Ingresos",
			"Deuda",
			"Activos",
			"Prestamos_Solicitados",
			"Prestamos_Aprobados",
			"Prestamos_Vigentes",
			"Servicios_Utilizados",
		},
	}
}

func round(f float64) float64 {
	return utils.RoundWithTwoDecimalPlace(f)
}
