package exporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/pymer/churninsight-api/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	notAvailable          = "N/A"
	regularMonitoringText = "Continuar monitoreo regular"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Report reúne os dados exportados de uma predição
type Report struct {
	Profile     *domain.StaticProfile
	Request     *domain.PredictionRequest
	Result      *domain.PredictionResponse
	GeneratedAt time.Time
}

// formatAmount formata valores monetários no padrão es-AR, sem casas decimais
func formatAmount(v float64) string {
	return printer.Sprintf("%.0f", v)
}

func profileValue(p *domain.StaticProfile, field func(*domain.StaticProfile) string) string {
	if p == nil {
		return notAvailable
	}
	if value := field(p); value != "" {
		return value
	}
	return notAvailable
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func riskLevel(r *domain.PredictionResponse) string {
	if r == nil || r.Prevision == "" {
		return notAvailable
	}
	return strings.ToUpper(string(r.Prevision))
}

func percent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v*100)
}

// rows monta as linhas do relatório, compartilhadas entre CSV e XLSX.
// Linhas vazias separam as seções.
func (r *Report) rows() [][]string {
	financials := r.Request.Financials
	credit := r.Request.CreditBehavior
	engagement := r.Request.AppEngagement

	amount := func(present bool, v float64) string {
		if !present {
			return notAvailable
		}
		return formatAmount(v)
	}

	var f domain.Financials
	if financials != nil {
		f = *financials
		f.Normalize()
	}

	var c domain.CreditBehavior
	if credit != nil {
		c = *credit
	}

	var e domain.AppEngagement
	if engagement != nil {
		e = *engagement
	}

	var s domain.ServicesFlags
	if r.Request.ServicesFlags != nil {
		s = *r.Request.ServicesFlags
	}
	s.Normalize()

	rows := [][]string{
		{"ChurnInsight - Reporte de Predicción"},
		{"Generado: " + r.GeneratedAt.UTC().Format(time.RFC3339)},
		{""},
		{"PERFIL DE EMPRESA"},
		{"CUIT", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.CUIT })},
		{"Nombre", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.NombreEmpresa })},
		{"Sector", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.Sector })},
		{"Provincia", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.Provincia })},
		{""},
		{"DATOS FINANCIEROS (ARS)"},
		{"Ingresos", amount(financials != nil, f.Ingresos)},
		{"Gastos", amount(financials != nil, f.Gastos)},
		{"Margen", amount(financials != nil, f.Margen)},
		{"Deuda", amount(financials != nil, f.Deuda)},
		{"Activos", amount(financials != nil, f.Activos)},
		{""},
		{"COMPORTAMIENTO DE CRÉDITO"},
		{"Préstamos Solicitados", fmt.Sprint(c.PrestamosSolicitados)},
		{"Préstamos Aprobados", fmt.Sprint(c.PrestamosAprobados)},
		{"Préstamos Vigentes", fmt.Sprint(c.PrestamosVigentes)},
		{"Monto Solicitado", amount(credit != nil, c.MontoSolicitado)},
		{"Monto Aprobado", amount(credit != nil, c.MontoAprobado)},
		{""},
		{"ENGAGEMENT EN PLATAFORMA"},
		{"Días Activos", fmt.Sprint(e.TrimestreDiasActividad)},
		{"Días Inactivos", fmt.Sprint(e.TrimestreDiasInactividad)},
		{"Promedio de Logins/Día", fmt.Sprint(e.PromedioLoginDia)},
		{"Total de Logins", fmt.Sprint(e.TotalLoginDia)},
		{""},
		{"SERVICIOS UTILIZADOS"},
		{"Transferencias", yesNo(s.Transferencias)},
		{"Pagos", yesNo(s.Pagos)},
		{"Créditos", yesNo(s.Creditos)},
		{"Inversiones", yesNo(s.Inversiones)},
		{"Total Servicios", fmt.Sprintf("%d/4", s.ServiciosUtilizados)},
		{""},
		{"RESULTADO DE PREDICCIÓN"},
		{"Nivel de Riesgo", riskLevel(r.Result)},
		{"Probabilidad de Churn", percent(r.Result.Probabilidad, 2)},
		{"Confianza del Modelo", percent(r.Result.Confidence, 0)},
		{""},
		{"RECOMENDACIONES"},
	}

	if len(r.Result.Recomendaciones) == 0 {
		return append(rows, []string{regularMonitoringText})
	}

	for i, rec := range r.Result.Recomendaciones {
		rows = append(rows, []string{fmt.Sprintf("%d. %s", i+1, rec)})
	}
	return rows
}

// ClipboardText é o texto curto usado para compartilhar o resultado
func (r *Report) ClipboardText() string {
	var b strings.Builder

	b.WriteString("ChurnInsight - Resultado de Predicción\n")
	fmt.Fprintf(&b, "Empresa: %s\n", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.NombreEmpresa }))
	fmt.Fprintf(&b, "CUIT: %s\n\n", profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.CUIT }))
	fmt.Fprintf(&b, "Nivel de Riesgo: %s\n", riskLevel(r.Result))
	fmt.Fprintf(&b, "Probabilidad de Churn: %s\n", percent(r.Result.Probabilidad, 1))
	fmt.Fprintf(&b, "Confianza: %s\n\n", percent(r.Result.Confidence, 0))
	b.WriteString("Recomendaciones:\n")

	if len(r.Result.Recomendaciones) == 0 {
		b.WriteString("Sin recomendaciones adicionales\n")
		return b.String()
	}

	for _, rec := range r.Result.Recomendaciones {
		fmt.Fprintf(&b, "• %s\n", rec)
	}
	return b.String()
}

// Summary é o resumo em texto corrido para apresentações
func (r *Report) Summary() string {
	var b strings.Builder

	band := string(r.Result.Prevision)
	if band != "" {
		band = strings.ToUpper(band[:1]) + band[1:]
	}

	fmt.Fprintf(&b, "La empresa %s (CUIT: %s) presenta un RIESGO %s de abandono con una probabilidad estimada del %s.\n\n",
		profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.NombreEmpresa }),
		profileValue(r.Profile, func(p *domain.StaticProfile) string { return p.CUIT }),
		band,
		percent(r.Result.Probabilidad, 1),
	)

	if len(r.Result.Recomendaciones) == 0 {
		b.WriteString("Se recomienda continuar con el monitoreo regular de métricas.\n")
		return b.String()
	}

	b.WriteString("Acciones recomendadas:\n")
	for _, rec := range r.Result.Recomendaciones {
		fmt.Fprintf(&b, "- %s\n", rec)
	}
	return b.String()
}
