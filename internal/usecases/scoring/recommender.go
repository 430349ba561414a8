package scoring

import "github.com/pymer/churninsight-api/internal/domain"

// Textos das recomendações, na ordem de prioridade
const (
	RecommendPriorityContact    = "priority account-manager contact"
	RecommendReactivateUsage    = "reactivate platform usage via webinar/training"
	RecommendProfitability      = "profitability analysis and service adjustment"
	RecommendCreditLine         = "offer credit line with preferential rate"
	RecommendServicesOnboarding = "onboarding for investment/transfer services"
	RecommendRegularMonitoring  = "continue regular monitoring"
)

const (
	reactivationActivityDays = 30
	onboardingServicesUsed   = 3
)

// Recommend gera a lista ordenada de recomendações. A ordem é a prioridade exibida ao usuário.
func Recommend(m domain.QuarterlyMetrics, band domain.RiskBand) []string {
	recommendations := make([]string, 0, 5)

	if band == domain.RiskBandHigh {
		recommendations = append(recommendations, RecommendPriorityContact)
		if m.AppEngagement.TrimestreDiasActividad < reactivationActivityDays {
			recommendations = append(recommendations, RecommendReactivateUsage)
		}
		if m.Financials.Margen < 0 {
			recommendations = append(recommendations, RecommendProfitability)
		}
	}

	if m.CreditBehavior.PrestamosVigentes == 0 {
		recommendations = append(recommendations, RecommendCreditLine)
	}

	if m.ServicesFlags.Count() < onboardingServicesUsed {
		recommendations = append(recommendations, RecommendServicesOnboarding)
	}

	if len(recommendations) == 0 {
		return []string{RecommendRegularMonitoring}
	}
	return recommendations
}
