package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// QuarterDays é o limite de dias de um trimestre
const QuarterDays = 90

var cuitPattern = regexp.MustCompile(`^\d{11}$`)

// ValidCUIT indica se o CUIT tem exatamente 11 dígitos
func ValidCUIT(cuit string) bool {
	return cuitPattern.MatchString(cuit)
}

// ValidationErrors acumula os problemas por campo, no formato devolvido em details
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "dados inválidos: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) nonNegative(field string, value float64) {
	if value < 0 {
		v[field] = "deve ser maior ou igual a zero"
	}
}

func (v ValidationErrors) days(field string, value int) {
	if value < 0 || value > QuarterDays {
		v[field] = fmt.Sprintf("deve estar entre 0 e %d", QuarterDays)
	}
}

// Validate checa os limites de formulário, prefixando os campos com prefix.
// Sub-registros ausentes não são erro: o orquestrador devolve a resposta degradada.
func (r *PredictionRequest) Validate(prefix string) ValidationErrors {
	errs := ValidationErrors{}
	if r == nil {
		return errs
	}

	if p := r.CompanyProfile; p != nil && p.CUIT != "" && !ValidCUIT(p.CUIT) {
		errs[prefix+"company_profile.CUIT"] = "deve ter exatamente 11 dígitos"
	}

	if f := r.Financials; f != nil {
		errs.nonNegative(prefix+"financials.Ingresos", f.Ingresos)
		errs.nonNegative(prefix+"financials.Gastos", f.Gastos)
		errs.nonNegative(prefix+"financials.Deuda", f.Deuda)
		errs.nonNegative(prefix+"financials.Activos", f.Activos)
	}

	if c := r.CreditBehavior; c != nil {
		errs.nonNegative(prefix+"credit_behavior.Prestamos_Solicitados", float64(c.PrestamosSolicitados))
		errs.nonNegative(prefix+"credit_behavior.Prestamos_Aprobados", float64(c.PrestamosAprobados))
		errs.nonNegative(prefix+"credit_behavior.Prestamos_Cancelados", float64(c.PrestamosCancelados))
		errs.nonNegative(prefix+"credit_behavior.Prestamos_Vigentes", float64(c.PrestamosVigentes))
		errs.nonNegative(prefix+"credit_behavior.Ticket_Promedio_Solicitado", c.TicketPromedioSolicitado)
		errs.nonNegative(prefix+"credit_behavior.Ticket_Promedio_Aprobado", c.TicketPromedioAprobado)
		errs.nonNegative(prefix+"credit_behavior.Monto_Solicitado", c.MontoSolicitado)
		errs.nonNegative(prefix+"credit_behavior.Monto_Aprobado", c.MontoAprobado)
		errs.nonNegative(prefix+"credit_behavior.Tiempo_Cancelacion_Prestamo", float64(c.TiempoCancelacionPrestamo))
	}

	if e := r.AppEngagement; e != nil {
		errs.days(prefix+"app_engagement.Trimestre_Dias_Actividad", e.TrimestreDiasActividad)
		errs.days(prefix+"app_engagement.Trimestre_Dias_Inactividad", e.TrimestreDiasInactividad)
		errs.nonNegative(prefix+"app_engagement.Promedio_Login_Dia", e.PromedioLoginDia)
		errs.nonNegative(prefix+"app_engagement.Total_Login_Dia", float64(e.TotalLoginDia))
	}

	return errs
}

// ValidateBatch valida cada item, prefixando o campo com a posição no lote
func ValidateBatch(reqs []*PredictionRequest) ValidationErrors {
	errs := ValidationErrors{}
	for i, req := range reqs {
		for field, msg := range req.Validate(fmt.Sprintf("companies[%d].", i)) {
			errs[field] = msg
		}
	}
	return errs
}
