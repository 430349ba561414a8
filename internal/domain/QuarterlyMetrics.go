// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// Financials agrupa os dados financeiros de um trimestre
type Financials struct {
	Ingresos float64 `json:"Ingresos"`
	Gastos   float64 `json:"Gastos"`
	Margen   float64 `json:"Margen"` // Ingresos - Gastos, pode ser negativo
	Deuda    float64 `json:"Deuda"`
	Activos  float64 `json:"Activos"`
}

// Normalize recalcula a margem a partir das receitas e despesas
func (f *Financials) Normalize() {
	f.Margen = f.Ingresos - f.Gastos
}

type CreditBehavior struct {
	PrestamosSolicitados      int     `json:"Prestamos_Solicitados"`
	PrestamosAprobados        int     `json:"Prestamos_Aprobados"`
	PrestamosCancelados       int     `json:"Prestamos_Cancelados"`
	PrestamosVigentes         int     `json:"Prestamos_Vigentes"`
	TicketPromedioSolicitado  float64 `json:"Ticket_Promedio_Solicitado"`
	TicketPromedioAprobado    float64 `json:"Ticket_Promedio_Aprobado"`
	MontoSolicitado           float64 `json:"Monto_Solicitado"`
	MontoAprobado             float64 `json:"Monto_Aprobado"`
	TiempoCancelacionPrestamo int     `json:"Tiempo_Cancelacion_Prestamo"` // Dias médios para cancelar
}

type AppEngagement struct {
	TrimestreDiasActividad   int     `json:"Trimestre_Dias_Actividad"`   // 0-90
	TrimestreDiasInactividad int     `json:"Trimestre_Dias_Inactividad"` // 0-90
	PromedioLoginDia         float64 `json:"Promedio_Login_Dia"`
	TotalLoginDia            int     `json:"Total_Login_Dia"`
}

// ServicesFlags indica quais serviços a empresa utiliza.
// ServiciosUtilizados é derivado das flags: use Count() ou Normalize().
type ServicesFlags struct {
	Transferencias      bool `json:"Transferencias"`
	Pagos               bool `json:"Pagos"`
	Creditos            bool `json:"Creditos"`
	Inversiones         bool `json:"Inversiones"`
	ServiciosUtilizados int  `json:"Servicios_Utilizados"`
}

// Count retorna a quantidade de serviços ativos
func (s ServicesFlags) Count() int {
	count := 0
	for _, enabled := range []bool{s.Transferencias, s.Pagos, s.Creditos, s.Inversiones} {
		if enabled {
			count++
		}
	}
	return count
}

// Normalize sobrescreve o contador com o valor derivado das flags
func (s *ServicesFlags) Normalize() {
	s.ServiciosUtilizados = s.Count()
}

// QuarterlyMetrics são as métricas de um trimestre de uma empresa
type QuarterlyMetrics struct {
	PeriodoFiscal  string         `json:"Periodo_Fiscal,omitempty"` // Ex: "2022-Q1"
	Financials     Financials     `json:"financials"`
	CreditBehavior CreditBehavior `json:"credit_behavior"`
	AppEngagement  AppEngagement  `json:"app_engagement"`
	ServicesFlags  ServicesFlags  `json:"services_flags"`
}

// Normalize recalcula os campos derivados (margem e contador de serviços)
func (m *QuarterlyMetrics) Normalize() {
	m.Financials.Normalize()
	m.ServicesFlags.Normalize()
}
