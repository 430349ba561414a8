package predicting

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de predições
var (
	// Erros de validação
	ErrIncompleteRequest = errors.New("financial and engagement data are required")
	ErrEmptyBatch        = errors.New("batch must contain at least one company")
	ErrBatchTooLarge     = errors.New("batch exceeds the maximum number of companies")

	// Erros de configuração
	ErrInvalidProbabilityMode = errors.New("invalid probability mode")
)

// PredictionError é um erro com contexto adicional para predições
type PredictionError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *PredictionError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *PredictionError) Unwrap() error {
	return e.Err
}

// NewPredictionError cria um novo PredictionError
func NewPredictionError(err error, code string, details string) *PredictionError {
	return &PredictionError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
