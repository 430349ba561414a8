// Package statistics calcula os indicadores do dashboard a partir do dataset de empresas
package statistics

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/pymer/churninsight-api/infrastructure/repository"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/pymer/churninsight-api/pkg/utils"
)

const (
	// Critério de alto risco: endividamento acima de 30% e menos de 30 dias de atividade
	highRiskDebtRatio    = 0.30
	highRiskActivityDays = 30

	// Fração das empresas ativas exibida como risco médio no gráfico de distribuição
	mediumRiskShare = 0.4

	DefaultPageSize = 50
	MaxPageSize     = 500
)

type StatisticsService interface {
	Dashboard(ctx context.Context) (*domain.DashboardStats, error)
	SectorStatistics(ctx context.Context, sector string) (*domain.SectorStatistics, error)
	HighRiskCompanies(ctx context.Context, period string) ([]*domain.CompanyRecord, error)
	Segments(ctx context.Context) (*domain.Segments, error)
	ListCompanies(ctx context.Context, filter domain.CompanyFilter) (*domain.CompanyListResponse, error)
	GetCompany(ctx context.Context, cuit string) (*domain.CompanyRecord, error)
}

type Service struct {
	companyRepository repository.CompanyRepository
	now               func() time.Time
}

func NewService(companyRepository repository.CompanyRepository) StatisticsService {
	return &Service{
		companyRepository: companyRepository,
		now:               time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	companies, err := s.allCompanies(ctx, domain.CompanyFilter{})
	if err != nil {
		return nil, err
	}

	latest, err := s.companyRepository.LatestPeriod(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao obter o período fiscal mais recente")
	}

	total, churned := countChurn(companies)
	active := total - churned

	medium := int(math.Floor(float64(active) * mediumRiskShare))

	return &domain.DashboardStats{
		TotalCompanies:  total,
		ChurnRate:       churnRate(churned, total),
		HighRiskCount:   churned,
		ActiveCompanies: active,
		RiskDistribution: domain.RiskDistribution{
			Low:    active - medium,
			Medium: medium,
			High:   churned,
		},
		LatestPeriod: latest,
		GeneratedAt:  s.now(),
	}, nil
}

func (s *Service) SectorStatistics(ctx context.Context, sector string) (*domain.SectorStatistics, error) {
	companies, err := s.allCompanies(ctx, domain.CompanyFilter{Sector: sector})
	if err != nil {
		return nil, err
	}

	if len(companies) == 0 {
		return nil, NewStatisticsError(ErrSectorNotFound, apiErrors.ErrResourceNotFound, "Nenhuma empresa encontrada para o setor "+sector)
	}

	total, churned := countChurn(companies)

	return &domain.SectorStatistics{
		Sector:           sector,
		TotalCompanies:   total,
		ChurnedCompanies: churned,
		ActiveCompanies:  total - churned,
		ChurnRate:        churnRate(churned, total),
	}, nil
}

// HighRiskCompanies lista as empresas endividadas e pouco ativas, da maior para a menor dívida relativa.
// Período vazio usa o período mais recente.
func (s *Service) HighRiskCompanies(ctx context.Context, period string) ([]*domain.CompanyRecord, error) {
	if period == "" {
		latest, err := s.companyRepository.LatestPeriod(ctx)
		if err != nil {
			return nil, s.fetchError(ctx, err, "Falha ao obter o período fiscal mais recente")
		}
		period = latest
	}

	companies, err := s.allCompanies(ctx, domain.CompanyFilter{PeriodoFiscal: period})
	if err != nil {
		return nil, err
	}

	highRisk := make([]*domain.CompanyRecord, 0)
	for _, c := range companies {
		if c.DebtRatio() > highRiskDebtRatio && c.AppEngagement.TrimestreDiasActividad < highRiskActivityDays {
			highRisk = append(highRisk, c)
		}
	}

	sort.SliceStable(highRisk, func(i, j int) bool {
		return highRisk[i].DebtRatio() > highRisk[j].DebtRatio()
	})

	return highRisk, nil
}

func (s *Service) Segments(ctx context.Context) (*domain.Segments, error) {
	sectors, err := s.companyRepository.ListSectors(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao listar setores")
	}

	provinces, err := s.companyRepository.ListProvinces(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao listar províncias")
	}

	latest, err := s.companyRepository.LatestPeriod(ctx)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao obter o período fiscal mais recente")
	}

	return &domain.Segments{
		Sectors:      sectors,
		Provinces:    provinces,
		LatestPeriod: latest,
	}, nil
}

func (s *Service) ListCompanies(ctx context.Context, filter domain.CompanyFilter) (*domain.CompanyListResponse, error) {
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, NewStatisticsError(ErrInvalidPaging, apiErrors.ErrInvalidRequest, "")
	}

	if filter.Limit == 0 {
		filter.Limit = DefaultPageSize
	}
	filter.Limit = min(filter.Limit, MaxPageSize)

	companies, total, err := s.companyRepository.ListCompanies(ctx, filter)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao listar empresas")
	}

	return &domain.CompanyListResponse{
		Companies: companies,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

func (s *Service) GetCompany(ctx context.Context, cuit string) (*domain.CompanyRecord, error) {
	if !domain.ValidCUIT(cuit) {
		return nil, NewStatisticsError(ErrInvalidCUIT, apiErrors.ErrInvalidFormat, cuit)
	}

	company, err := s.companyRepository.GetByCUIT(ctx, cuit)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao consultar empresa")
	}

	if company == nil {
		return nil, NewStatisticsError(ErrCompanyNotFound, apiErrors.ErrResourceNotFound, cuit)
	}

	return company, nil
}

func (s *Service) allCompanies(ctx context.Context, filter domain.CompanyFilter) ([]*domain.CompanyRecord, error) {
	filter.Limit, filter.Offset = 0, 0

	companies, _, err := s.companyRepository.ListCompanies(ctx, filter)
	if err != nil {
		return nil, s.fetchError(ctx, err, "Falha ao listar empresas")
	}
	return companies, nil
}

func (s *Service) fetchError(ctx context.Context, err error, details string) error {
	log.ForContext(ctx).WithField("error", err.Error()).Error(details)

	if errors.Is(err, repository.ErrDatasetNotLoaded) {
		return NewStatisticsError(err, apiErrors.ErrCommunication, "Dataset de empresas ainda não carregado")
	}
	return NewStatisticsError(ErrFetchCompanies, apiErrors.ErrDatabaseOperation, details)
}

func countChurn(companies []*domain.CompanyRecord) (total, churned int) {
	for _, c := range companies {
		if c.Churn {
			churned++
		}
	}
	return len(companies), churned
}

// churnRate retorna o percentual de churn (0-100) com duas casas
func churnRate(churned, total int) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(churned) / float64(total) * 100)
}
