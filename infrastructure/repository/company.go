package repository

import (
	"context"
	"errors"

	"github.com/pymer/churninsight-api/internal/domain"
)

//go:generate mockgen -source=company.go -destination=mocks/company.go -package=mocks

var ErrDatasetNotLoaded = errors.New("company dataset not loaded")

// CompanyRepository é a fonte de empresas usada pelo dashboard e pelas estatísticas
type CompanyRepository interface {
	// ListCompanies retorna a página pedida e o total de registros que atendem ao filtro.
	// Limit 0 retorna todos os registros.
	ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]*domain.CompanyRecord, int, error)
	// GetByCUIT retorna o registro mais recente da empresa, ou nil se não existir
	GetByCUIT(ctx context.Context, cuit string) (*domain.CompanyRecord, error)
	ListSectors(ctx context.Context) ([]string, error)
	ListProvinces(ctx context.Context) ([]string, error)
	LatestPeriod(ctx context.Context) (string, error)
	Count(ctx context.Context) (int, error)
	// Replace substitui todo o dataset
	Replace(ctx context.Context, records []*domain.CompanyRecord) error
}

// paginate aplica offset/limit sobre uma lista já filtrada
func paginate(records []*domain.CompanyRecord, limit, offset int) []*domain.CompanyRecord {
	if offset >= len(records) {
		return []*domain.CompanyRecord{}
	}
	records = records[offset:]

	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	return records
}
