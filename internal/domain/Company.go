package domain

import "time"

// StaticProfile é o perfil fixo da empresa, não muda entre trimestres
type StaticProfile struct {
	CUIT          string `json:"CUIT"` // 11 dígitos
	NombreEmpresa string `json:"Nombre_Empresa"`
	TipoSociedad  string `json:"Tipo_Sociedad,omitempty"`
	Sector        string `json:"Sector"`
	Provincia     string `json:"Provincia"`
	AnoFundacion  int    `json:"Año_Fundación,omitempty"`
	Empleados     int    `json:"Empleados,omitempty"`
	Telefono      string `json:"Telefono,omitempty"`
	Direccion     string `json:"Direccion,omitempty"`
}

type ChurnStatus struct {
	Churn     bool       `json:"Churn"`
	ChurnDate *time.Time `json:"Churn_Date"`
}

// CompanyRecord é a visão plana do dataset: um trimestre de uma empresa
type CompanyRecord struct {
	StaticProfile
	QuarterlyMetrics
	ChurnStatus
}

// DebtRatio retorna deuda/activos, ou 0 quando não há ativos
func (c *CompanyRecord) DebtRatio() float64 {
	if c.Financials.Activos <= 0 {
		return 0
	}
	return c.Financials.Deuda / c.Financials.Activos
}

// CompanyFilter define os filtros de listagem de empresas
type CompanyFilter struct {
	Sector        string `json:"sector,omitempty"`
	Provincia     string `json:"provincia,omitempty"`
	PeriodoFiscal string `json:"periodo_fiscal,omitempty"`
	Churn         *bool  `json:"churn,omitempty"`
	// ChurnFrom e ChurnTo limitam Churn_Date (inclusive); empresas sem data de churn ficam de fora
	ChurnFrom *time.Time `json:"churn_from,omitempty"`
	ChurnTo   *time.Time `json:"churn_to,omitempty"`
	Limit     int        `json:"limit,omitempty"`
	Offset    int        `json:"offset,omitempty"`
}

// HasChurnDateRange indica se algum limite de Churn_Date foi informado
func (f CompanyFilter) HasChurnDateRange() bool {
	return f.ChurnFrom != nil || f.ChurnTo != nil
}

// Matches indica se o registro atende aos filtros (paginação não incluída)
func (f CompanyFilter) Matches(c *CompanyRecord) bool {
	if f.Sector != "" && c.Sector != f.Sector {
		return false
	}
	if f.Provincia != "" && c.Provincia != f.Provincia {
		return false
	}
	if f.PeriodoFiscal != "" && c.PeriodoFiscal != f.PeriodoFiscal {
		return false
	}
	if f.Churn != nil && c.Churn != *f.Churn {
		return false
	}
	if f.HasChurnDateRange() {
		if c.ChurnDate == nil {
			return false
		}
		if f.ChurnFrom != nil && c.ChurnDate.Before(*f.ChurnFrom) {
			return false
		}
		if f.ChurnTo != nil && c.ChurnDate.After(*f.ChurnTo) {
			return false
		}
	}
	return true
}

type CompanyListResponse struct {
	Companies []*CompanyRecord `json:"companies"`
	Total     int              `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}
