package scoring

import (
	"testing"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// healthyMetrics retorna métricas que não disparam nenhum fator de risco
func healthyMetrics() domain.QuarterlyMetrics {
	return domain.QuarterlyMetrics{
		PeriodoFiscal: "2025-Q4",
		Financials: domain.Financials{
			Ingresos: 100000,
			Gastos:   50000,
			Margen:   50000,
			Deuda:    10000,
			Activos:  100000,
		},
		CreditBehavior: domain.CreditBehavior{
			PrestamosSolicitados: 5,
			PrestamosAprobados:   5,
			PrestamosVigentes:    2,
		},
		AppEngagement: domain.AppEngagement{
			TrimestreDiasActividad: 90,
			PromedioLoginDia:       3,
		},
		ServicesFlags: domain.ServicesFlags{
			Transferencias:      true,
			Pagos:               true,
			Creditos:            true,
			Inversiones:         true,
			ServiciosUtilizados: 4,
		},
	}
}

func TestScore_ExemploCompleto(t *testing.T) {
	m := domain.QuarterlyMetrics{
		Financials: domain.Financials{
			Ingresos: 100000,
			Gastos:   120000,
			Margen:   -20000,
			Deuda:    60000,
			Activos:  100000,
		},
		CreditBehavior: domain.CreditBehavior{PrestamosSolicitados: 0},
		AppEngagement:  domain.AppEngagement{TrimestreDiasActividad: 10},
		ServicesFlags:  domain.ServicesFlags{Transferencias: true, ServiciosUtilizados: 1},
	}

	factors := Factors(m)
	assert.Equal(t, 0.3, factors.Engagement)
	assert.Equal(t, 0.3, factors.Margin)
	assert.Equal(t, 0.2, factors.Debt)
	assert.Equal(t, 0.15, factors.Credit)
	assert.Equal(t, 0.1, factors.Services)
	assert.InDelta(t, 1.05, factors.Sum(), 1e-9)

	score := Score(m)
	assert.Equal(t, 1.0, score)
	assert.Equal(t, domain.RiskBandHigh, BandFor(score))
}

func TestScore_MetricasSaudaveis(t *testing.T) {
	m := healthyMetrics()

	assert.Equal(t, 0.0, Score(m))
	assert.Equal(t, domain.RiskBandLow, BandFor(Score(m)))
}

func TestScore_SemPrestamosSolicitados(t *testing.T) {
	m := healthyMetrics()
	m.CreditBehavior.PrestamosSolicitados = 0
	m.CreditBehavior.PrestamosAprobados = 0

	require.NotPanics(t, func() { Score(m) })
	assert.Equal(t, 0.15, Factors(m).Credit)
	assert.InDelta(t, 0.15, Score(m), 1e-9)
}

func TestScore_SemActivos(t *testing.T) {
	m := healthyMetrics()
	m.Financials.Activos = 0
	m.Financials.Deuda = 500000

	require.NotPanics(t, func() { Score(m) })
	assert.Equal(t, 0.0, Factors(m).Debt)
}

func TestFactors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *domain.QuarterlyMetrics)
		factor string
		want   float64
	}{
		{
			name:   "Atividade abaixo de 30% soma 0.3",
			mutate: func(m *domain.QuarterlyMetrics) { m.AppEngagement.TrimestreDiasActividad = 26 },
			factor: FactorEngagement,
			want:   0.3,
		},
		{
			name:   "Atividade exatamente 30% soma 0.15",
			mutate: func(m *domain.QuarterlyMetrics) { m.AppEngagement.TrimestreDiasActividad = 27 },
			factor: FactorEngagement,
			want:   0.15,
		},
		{
			name:   "Atividade abaixo de 60% soma 0.15",
			mutate: func(m *domain.QuarterlyMetrics) { m.AppEngagement.TrimestreDiasActividad = 53 },
			factor: FactorEngagement,
			want:   0.15,
		},
		{
			name:   "Atividade exatamente 60% não soma",
			mutate: func(m *domain.QuarterlyMetrics) { m.AppEngagement.TrimestreDiasActividad = 54 },
			factor: FactorEngagement,
			want:   0,
		},
		{
			name:   "Margem negativa soma 0.3",
			mutate: func(m *domain.QuarterlyMetrics) { m.Financials.Margen = -1 },
			factor: FactorMargin,
			want:   0.3,
		},
		{
			name:   "Margem abaixo de 10% das receitas soma 0.15",
			mutate: func(m *domain.QuarterlyMetrics) { m.Financials.Margen = 9999 },
			factor: FactorMargin,
			want:   0.15,
		},
		{
			name:   "Margem de 10% das receitas não soma",
			mutate: func(m *domain.QuarterlyMetrics) { m.Financials.Margen = 10000 },
			factor: FactorMargin,
			want:   0,
		},
		{
			name:   "Dívida acima de 50% dos ativos soma 0.2",
			mutate: func(m *domain.QuarterlyMetrics) { m.Financials.Deuda = 50001 },
			factor: FactorDebt,
			want:   0.2,
		},
		{
			name:   "Dívida de exatamente 50% dos ativos não soma",
			mutate: func(m *domain.QuarterlyMetrics) { m.Financials.Deuda = 50000 },
			factor: FactorDebt,
			want:   0,
		},
		{
			name: "Taxa de aprovação abaixo de 30% soma 0.15",
			mutate: func(m *domain.QuarterlyMetrics) {
				m.CreditBehavior.PrestamosSolicitados = 10
				m.CreditBehavior.PrestamosAprobados = 2
			},
			factor: FactorCredit,
			want:   0.15,
		},
		{
			name: "Taxa de aprovação de 30% não soma",
			mutate: func(m *domain.QuarterlyMetrics) {
				m.CreditBehavior.PrestamosSolicitados = 10
				m.CreditBehavior.PrestamosAprobados = 3
			},
			factor: FactorCredit,
			want:   0,
		},
		{
			name: "Um serviço utilizado soma 0.1",
			mutate: func(m *domain.QuarterlyMetrics) {
				m.ServicesFlags = domain.ServicesFlags{Pagos: true}
			},
			factor: FactorServices,
			want:   0.1,
		},
		{
			name: "Dois serviços utilizados não soma",
			mutate: func(m *domain.QuarterlyMetrics) {
				m.ServicesFlags = domain.ServicesFlags{Pagos: true, Creditos: true}
			},
			factor: FactorServices,
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthyMetrics()
			tt.mutate(&m)

			factors := Factors(m).Map()
			assert.Equal(t, tt.want, factors[tt.factor])
		})
	}
}

func TestScore_ContadorDeServicosIgnoraValorInformado(t *testing.T) {
	m := healthyMetrics()
	m.ServicesFlags = domain.ServicesFlags{ServiciosUtilizados: 4}

	assert.Equal(t, 0.1, Factors(m).Services)
}

func TestScore_SempreEntreZeroEUm(t *testing.T) {
	days := []int{0, 10, 27, 45, 54, 90}
	margins := []float64{-100000, 0, 5000, 50000}
	debts := []float64{0, 40000, 90000}
	requested := []int{0, 1, 10}

	for _, d := range days {
		for _, margin := range margins {
			for _, debt := range debts {
				for _, req := range requested {
					m := healthyMetrics()
					m.AppEngagement.TrimestreDiasActividad = d
					m.Financials.Margen = margin
					m.Financials.Deuda = debt
					m.CreditBehavior.PrestamosSolicitados = req
					m.CreditBehavior.PrestamosAprobados = 0
					m.ServicesFlags = domain.ServicesFlags{}

					score := Score(m)
					assert.GreaterOrEqual(t, score, 0.0)
					assert.LessOrEqual(t, score, 1.0)
				}
			}
		}
	}
}

func TestScore_MonotonicoNaAtividade(t *testing.T) {
	m := healthyMetrics()
	m.Financials.Margen = -1

	previous := -1.0
	for d := 90; d >= 0; d-- {
		m.AppEngagement.TrimestreDiasActividad = d
		score := Score(m)
		assert.GreaterOrEqualf(t, score, previous, "score diminuiu com %d dias de atividade", d)
		previous = score
	}
}

func TestBandFor(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.RiskBand
	}{
		{score: 1.0, want: domain.RiskBandHigh},
		{score: 0.71, want: domain.RiskBandHigh},
		{score: 0.70, want: domain.RiskBandMedium},
		{score: 0.41, want: domain.RiskBandMedium},
		{score: 0.40, want: domain.RiskBandLow},
		{score: 0, want: domain.RiskBandLow},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, BandFor(tt.score), "score %.2f", tt.score)
	}
}

func TestAssess_Idempotente(t *testing.T) {
	m := healthyMetrics()
	m.AppEngagement.TrimestreDiasActividad = 12
	m.CreditBehavior.PrestamosVigentes = 0

	first := Assess(m)
	second := Assess(m)

	assert.Equal(t, first, second)
	assert.Equal(t, Score(m), first.Score)
	assert.Equal(t, ProbabilityFromScore(first.Score), first.Probability)
	assert.Len(t, first.Factors, len(FactorNames))
}

func TestInfo(t *testing.T) {
	info := Info(ProbabilityModeScore)

	assert.Equal(t, "score", info.ProbabilityMode)
	assert.Equal(t, 0.7, info.Thresholds["alto"])
	assert.Equal(t, 0.4, info.Thresholds["medio"])
	assert.Len(t, info.FactorWeights, len(FactorNames))
}
