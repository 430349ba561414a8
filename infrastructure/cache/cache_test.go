package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() domain.QuarterlyMetrics {
	m := domain.QuarterlyMetrics{
		PeriodoFiscal:  "2025-Q4",
		Financials:     domain.Financials{Ingresos: 1000, Gastos: 800},
		AppEngagement:  domain.AppEngagement{TrimestreDiasActividad: 40},
		CreditBehavior: domain.CreditBehavior{PrestamosSolicitados: 2, PrestamosAprobados: 1},
		ServicesFlags:  domain.ServicesFlags{Pagos: true},
	}
	m.Normalize()
	return m
}

func TestKeyFor(t *testing.T) {
	m := sampleMetrics()

	key, err := KeyFor(m, "score")
	require.NoError(t, err)
	assert.Contains(t, key, keyPrefix)

	again, err := KeyFor(m, "score")
	require.NoError(t, err)
	assert.Equal(t, key, again)

	otherPeriod := m
	otherPeriod.PeriodoFiscal = "2024-Q1"
	samePeriodKey, err := KeyFor(otherPeriod, "score")
	require.NoError(t, err)
	assert.Equal(t, key, samePeriodKey, "o período fiscal não deve alterar a chave")

	otherMode, err := KeyFor(m, "band-random")
	require.NoError(t, err)
	assert.NotEqual(t, key, otherMode)

	changed := m
	changed.AppEngagement.TrimestreDiasActividad = 41
	changedKey, err := KeyFor(changed, "score")
	require.NoError(t, err)
	assert.NotEqual(t, key, changedKey)
}

func TestMemoryCache_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0, 0)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	assessment := &domain.RiskAssessment{
		Score:           0.55,
		Band:            domain.RiskBandMedium,
		Probability:     0.55,
		Factors:         map[string]float64{"engagement": 0.15},
		Recommendations: []string{"x"},
	}
	require.NoError(t, c.Set(ctx, "k", assessment))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, assessment, got)
	assert.NotSame(t, assessment, got)
	assert.Equal(t, 1, c.Len())
}

func TestMemoryCache_Expiracao(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(ctx, "k", &domain.RiskAssessment{Band: domain.RiskBandLow}))

	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestMemoryCache_VarreExpiradas(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Minute, 0)

	current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	for i := range 1000 {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), &domain.RiskAssessment{Band: domain.RiskBandLow}))
	}
	assert.Equal(t, 1000, c.Len())

	current = current.Add(2 * time.Minute)
	require.NoError(t, c.Set(ctx, "novo", &domain.RiskAssessment{Band: domain.RiskBandHigh}))

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get(ctx, "novo")
	assert.True(t, ok)
}

func TestMemoryCache_LimiteDeEntradas(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "Com TTL remove a que expira primeiro", ttl: time.Hour},
		{name: "Sem TTL mantém o limite", ttl: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewMemoryCache(tt.ttl, 3)

			current := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
			c.now = func() time.Time { return current }

			for i := range 10 {
				current = current.Add(time.Second)
				require.NoError(t, c.Set(ctx, fmt.Sprintf("k%d", i), &domain.RiskAssessment{Band: domain.RiskBandLow}))
				assert.LessOrEqual(t, c.Len(), 3)
			}

			assert.Equal(t, 3, c.Len())
			_, ok := c.Get(ctx, "k9")
			assert.True(t, ok)

			if tt.ttl > 0 {
				_, ok = c.Get(ctx, "k0")
				assert.False(t, ok)
			}

			// sobrescrever uma chave existente não remove outra
			require.NoError(t, c.Set(ctx, "k9", &domain.RiskAssessment{Band: domain.RiskBandHigh}))
			assert.Equal(t, 3, c.Len())
		})
	}
}
