package exporting

import (
	"strings"
	"testing"
	"time"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

var generatedAt = time.Date(2025, 12, 1, 15, 4, 5, 0, time.UTC)

func sampleReport() *Report {
	req := &domain.PredictionRequest{
		CompanyProfile: &domain.StaticProfile{
			CUIT:          "30712345678",
			NombreEmpresa: "Acme SA",
			Sector:        "Retail",
			Provincia:     "Mendoza",
		},
		Financials: &domain.Financials{
			Ingresos: 100000,
			Gastos:   120000,
			Deuda:    60000,
			Activos:  1500000,
		},
		CreditBehavior: &domain.CreditBehavior{
			PrestamosSolicitados: 3,
			PrestamosAprobados:   1,
			MontoSolicitado:      250000,
		},
		AppEngagement: &domain.AppEngagement{TrimestreDiasActividad: 10, TrimestreDiasInactividad: 80},
		ServicesFlags: &domain.ServicesFlags{Transferencias: true},
	}

	result := &domain.PredictionResponse{
		Prevision:       domain.RiskBandHigh,
		Probabilidad:    0.456,
		Confidence:      0.85,
		Recomendaciones: []string{"priority account-manager contact", "offer credit line with preferential rate"},
	}

	report := NewReport(req, result)
	report.GeneratedAt = generatedAt
	return report
}

func exportString(t *testing.T, format Format, report *Report) (*File, string) {
	t.Helper()

	file, err := NewService().Export(format, report)
	require.NoError(t, err)
	return file, string(file.Content)
}

func TestExport_CSV(t *testing.T) {
	file, content := exportString(t, FormatCSV, sampleReport())

	assert.Equal(t, "churn_prediction.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	lines := strings.Split(content, "\n")
	for _, expected := range []string{
		"ChurnInsight - Reporte de Predicción",
		"Generado: 2025-12-01T15:04:05Z",
		"CUIT,30712345678",
		"Nombre,Acme SA",
		"Ingresos,100.000",
		"Margen,-20.000",
		"Activos,1.500.000",
		"Préstamos Solicitados,3",
		"Monto Solicitado,250.000",
		"Monto Aprobado,0",
		"Días Activos,10",
		"Transferencias,Sí",
		"Pagos,No",
		"Total Servicios,1/4",
		"Nivel de Riesgo,ALTO",
		"Probabilidad de Churn,45.60%",
		"Confianza del Modelo,85%",
		"1. priority account-manager contact",
		"2. offer credit line with preferential rate",
	} {
		assert.Contains(t, lines, expected)
	}
}

func TestExport_CSVComDadosAusentes(t *testing.T) {
	report := NewReport(&domain.PredictionRequest{}, &domain.PredictionResponse{
		Prevision:    domain.RiskBandLow,
		Probabilidad: 0.1,
	})
	report.GeneratedAt = generatedAt

	_, content := exportString(t, FormatCSV, report)
	lines := strings.Split(content, "\n")

	assert.Contains(t, lines, "CUIT,N/A")
	assert.Contains(t, lines, "Ingresos,N/A")
	assert.Contains(t, lines, "Monto Solicitado,N/A")
	assert.Contains(t, lines, "Préstamos Vigentes,0")
	assert.Contains(t, lines, "Total Servicios,0/4")
	assert.Contains(t, lines, "Confianza del Modelo,0%")
	assert.Contains(t, lines, "Continuar monitoreo regular")
}

func TestExport_JSON(t *testing.T) {
	file, _ := exportString(t, FormatJSON, sampleReport())

	assert.Equal(t, "application/json; charset=utf-8", file.ContentType)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(file.Content, &payload))

	assert.Equal(t, "2025-12-01T15:04:05Z", payload["timestamp"])
	assert.Equal(t, "30712345678", payload["company"].(map[string]any)["CUIT"])
	assert.Equal(t, "alto", payload["prediction"].(map[string]any)["prevision"])

	metrics := payload["metrics"].(map[string]any)
	assert.NotContains(t, metrics, "company_profile")
	assert.Contains(t, metrics, "financials")
}

func TestExport_XLSX(t *testing.T) {
	file, err := NewService().Export(FormatXLSX, sampleReport())
	require.NoError(t, err)

	workbook, err := xlsx.OpenBinary(file.Content)
	require.NoError(t, err)

	sheet, ok := workbook.Sheet[sheetName]
	require.True(t, ok)

	cuit := sheet.Rows[4]
	require.Len(t, cuit.Cells, 2)
	assert.Equal(t, "CUIT", cuit.Cells[0].String())
	assert.Equal(t, "30712345678", cuit.Cells[1].String())
}

func TestExport_TextoParaCompartilhar(t *testing.T) {
	_, content := exportString(t, FormatClipboard, sampleReport())

	assert.Contains(t, content, "Empresa: Acme SA")
	assert.Contains(t, content, "Nivel de Riesgo: ALTO")
	assert.Contains(t, content, "Probabilidad de Churn: 45.6%")
	assert.Contains(t, content, "Confianza: 85%")
	assert.Contains(t, content, "• priority account-manager contact")
}

func TestExport_Resumo(t *testing.T) {
	_, content := exportString(t, FormatSummary, sampleReport())

	assert.Contains(t, content, "La empresa Acme SA (CUIT: 30712345678) presenta un RIESGO Alto de abandono con una probabilidad estimada del 45.6%.")
	assert.Contains(t, content, "Acciones recomendadas:\n- priority account-manager contact")

	report := sampleReport()
	report.Result.Recomendaciones = nil
	_, content = exportString(t, FormatSummary, report)
	assert.Contains(t, content, "Se recomienda continuar con el monitoreo regular de métricas.")
}

func TestExport_Erros(t *testing.T) {
	_, err := NewService().Export(FormatCSV, NewReport(nil, nil))
	assert.ErrorIs(t, err, ErrMissingPrediction)

	_, err = NewService().Export("pdf", sampleReport())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	_, err = ParseFormat("pdf")
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "VAL_003", exportErr.Code)
}

func TestFile_ContentDisposition(t *testing.T) {
	file := &File{Filename: "churn_prediction.csv"}
	assert.Equal(t, `attachment; filename="churn_prediction.csv"`, file.ContentDisposition())
}
