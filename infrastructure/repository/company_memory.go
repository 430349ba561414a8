package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/pymer/churninsight-api/internal/domain"
)

// memoryCompanyRepository guarda o dataset em memória; Replace troca o slice inteiro
type memoryCompanyRepository struct {
	mu      sync.RWMutex
	records []*domain.CompanyRecord
	loaded  bool
}

func NewMemoryCompanyRepository(records []*domain.CompanyRecord) CompanyRepository {
	repo := &memoryCompanyRepository{}
	if records != nil {
		repo.records = records
		repo.loaded = true
	}
	return repo
}

func (r *memoryCompanyRepository) snapshot() ([]*domain.CompanyRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.loaded {
		return nil, ErrDatasetNotLoaded
	}
	return r.records, nil
}

func (r *memoryCompanyRepository) ListCompanies(_ context.Context, filter domain.CompanyFilter) ([]*domain.CompanyRecord, int, error) {
	records, err := r.snapshot()
	if err != nil {
		return nil, 0, err
	}

	matched := make([]*domain.CompanyRecord, 0, len(records))
	for _, record := range records {
		if filter.Matches(record) {
			matched = append(matched, record)
		}
	}

	return paginate(matched, filter.Limit, filter.Offset), len(matched), nil
}

func (r *memoryCompanyRepository) GetByCUIT(_ context.Context, cuit string) (*domain.CompanyRecord, error) {
	records, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	var found *domain.CompanyRecord
	for _, record := range records {
		if record.CUIT != cuit {
			continue
		}
		if found == nil || record.PeriodoFiscal > found.PeriodoFiscal {
			found = record
		}
	}

	return found, nil
}

func (r *memoryCompanyRepository) ListSectors(_ context.Context) ([]string, error) {
	return r.distinct(func(c *domain.CompanyRecord) string { return c.Sector })
}

func (r *memoryCompanyRepository) ListProvinces(_ context.Context) ([]string, error) {
	return r.distinct(func(c *domain.CompanyRecord) string { return c.Provincia })
}

// LatestPeriod compara os períodos como texto: o formato AAAA-Qn ordena cronologicamente
func (r *memoryCompanyRepository) LatestPeriod(_ context.Context) (string, error) {
	records, err := r.snapshot()
	if err != nil {
		return "", err
	}

	latest := ""
	for _, record := range records {
		if record.PeriodoFiscal > latest {
			latest = record.PeriodoFiscal
		}
	}
	return latest, nil
}

func (r *memoryCompanyRepository) Count(_ context.Context) (int, error) {
	records, err := r.snapshot()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *memoryCompanyRepository) Replace(_ context.Context, records []*domain.CompanyRecord) error {
	if records == nil {
		records = []*domain.CompanyRecord{}
	}

	r.mu.Lock()
	r.records = records
	r.loaded = true
	r.mu.Unlock()

	return nil
}

func (r *memoryCompanyRepository) distinct(field func(*domain.CompanyRecord) string) ([]string, error) {
	records, err := r.snapshot()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, record := range records {
		value := field(record)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		values = append(values, value)
	}

	slices.Sort(values)
	return values, nil
}
