package statistics

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de estatísticas
var (
	// Erros de validação
	ErrInvalidCUIT     = errors.New("CUIT must have exactly 11 digits")
	ErrCompanyNotFound = errors.New("company not found")
	ErrSectorNotFound  = errors.New("sector not found")
	ErrInvalidPaging   = errors.New("limit and offset must not be negative")

	// Erros de banco de dados
	ErrFetchCompanies = errors.New("error fetching companies")
)

// StatisticsError é um erro com contexto adicional para estatísticas
type StatisticsError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *StatisticsError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *StatisticsError) Unwrap() error {
	return e.Err
}

// NewStatisticsError cria um novo StatisticsError
func NewStatisticsError(err error, code string, details string) *StatisticsError {
	return &StatisticsError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
