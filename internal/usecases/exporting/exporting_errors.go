package exporting

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrMissingPrediction = errors.New("prediction result is required")
	ErrRenderReport      = errors.New("error rendering report")
)

// ExportError é um erro com contexto adicional para exportações
type ExportError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

func (e *ExportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

func NewExportError(err error, code string, details string) *ExportError {
	return &ExportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
