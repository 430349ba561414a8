package synthetic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

func TestGenerate_MesmaSementeMesmoDataset(t *testing.T) {
	first := Generate(42, 50, generatedAt)
	second := Generate(42, 50, generatedAt)

	require.Len(t, first, 50)
	assert.Equal(t, first, second)

	other := Generate(43, 50, generatedAt)
	assert.NotEqual(t, first, other)
}

func TestGenerate_Invariantes(t *testing.T) {
	companies := Generate(7, 200, generatedAt)

	churned := 0
	for i, c := range companies {
		assert.Len(t, c.CUIT, 11)
		assert.Contains(t, Sectors, c.Sector)
		assert.Contains(t, Provinces, c.Provincia)
		assert.Equal(t, Period, c.PeriodoFiscal)

		assert.GreaterOrEqual(t, c.Financials.Ingresos, 100000.0)
		assert.LessOrEqual(t, c.Financials.Ingresos, 5000000.0)
		assert.InDelta(t, c.Financials.Ingresos-c.Financials.Gastos, c.Financials.Margen, 1e-6)
		assert.Greater(t, c.Financials.Margen, 0.0)

		assert.LessOrEqual(t, c.CreditBehavior.PrestamosAprobados, c.CreditBehavior.PrestamosSolicitados)
		assert.Equal(t, 90, c.AppEngagement.TrimestreDiasActividad+c.AppEngagement.TrimestreDiasInactividad)
		assert.Equal(t, c.ServicesFlags.Count(), c.ServicesFlags.ServiciosUtilizados)

		if c.Churn {
			churned++
			require.NotNil(t, c.ChurnDate)
			assert.Equal(t, generatedAt, *c.ChurnDate)
		} else {
			assert.Nil(t, c.ChurnDate)
		}

		if i == 0 {
			assert.Equal(t, "Company 1", c.NombreEmpresa)
		}
	}

	// p = 0.3 com 200 amostras
	assert.Greater(t, churned, 20)
	assert.Less(t, churned, 100)
}

func TestGenerate_Vazio(t *testing.T) {
	assert.Empty(t, Generate(1, 0, generatedAt))
}
