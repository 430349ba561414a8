// Package synthetic gera o dataset de empresas usado pelo dashboard quando não há banco configurado
package synthetic

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/pkg/utils"
)

// Período fiscal atribuído a todos os registros gerados
const Period = "2025-Q4"

const (
	churnProbability = 0.3
	activityLimit    = 90
)

var (
	Sectors      = []string{"Technology", "Retail", "Healthcare", "Finance", "Manufacturing"}
	Provinces    = []string{"Buenos Aires", "Cordoba", "Santa Fe", "Mendoza", "Tucuman"}
	companyTypes = []string{"S.A.", "S.R.L.", "S.A.S."}
)

type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator cria um gerador determinístico: a mesma semente gera o mesmo dataset
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{
		rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)),
		now: now,
	}
}

// Generate é um atalho para NewGenerator(seed, now).Companies(count)
func Generate(seed int64, count int, now time.Time) []*domain.CompanyRecord {
	return NewGenerator(seed, now).Companies(count)
}

func (g *Generator) Companies(count int) []*domain.CompanyRecord {
	companies := make([]*domain.CompanyRecord, 0, count)
	for i := range count {
		companies = append(companies, g.company(i+1))
	}
	return companies
}

func (g *Generator) company(n int) *domain.CompanyRecord {
	ingresos := float64(g.intBetween(100000, 5000000))
	gastos := utils.RoundWithTwoDecimalPlace(ingresos * float64(g.intBetween(50, 95)) / 100)

	solicitados := g.intBetween(0, 20)
	diasActividad := g.intBetween(0, activityLimit)

	record := &domain.CompanyRecord{
		StaticProfile: domain.StaticProfile{
			CUIT:          strconv.FormatInt(g.int64Between(20000000000, 39999999999), 10),
			NombreEmpresa: fmt.Sprintf("Company %d", n),
			TipoSociedad:  pick(g, companyTypes),
			Sector:        pick(g, Sectors),
			Provincia:     pick(g, Provinces),
			AnoFundacion:  g.intBetween(2000, 2022),
			Empleados:     g.intBetween(5, 200),
		},
		QuarterlyMetrics: domain.QuarterlyMetrics{
			PeriodoFiscal: Period,
			Financials: domain.Financials{
				Ingresos: ingresos,
				Gastos:   gastos,
				Deuda:    float64(g.intBetween(0, 1000000)),
				Activos:  float64(g.intBetween(500000, 10000000)),
			},
			CreditBehavior: domain.CreditBehavior{
				PrestamosSolicitados:      solicitados,
				PrestamosAprobados:        g.intBetween(0, solicitados),
				PrestamosCancelados:       g.intBetween(0, 5),
				PrestamosVigentes:         g.intBetween(0, 10),
				TicketPromedioSolicitado:  float64(g.intBetween(10000, 500000)),
				TicketPromedioAprobado:    float64(g.intBetween(10000, 500000)),
				MontoSolicitado:           float64(g.intBetween(100000, 10000000)),
				MontoAprobado:             float64(g.intBetween(100000, 10000000)),
				TiempoCancelacionPrestamo: g.intBetween(30, 365),
			},
			AppEngagement: domain.AppEngagement{
				TrimestreDiasActividad:   diasActividad,
				TrimestreDiasInactividad: activityLimit - diasActividad,
				PromedioLoginDia:         utils.RoundWithTwoDecimalPlace(g.rng.Float64() * 10),
				TotalLoginDia:            g.intBetween(0, 1000),
			},
			ServicesFlags: domain.ServicesFlags{
				Transferencias: g.rng.Float64() < 0.5,
				Pagos:          g.rng.Float64() < 0.5,
				Creditos:       g.rng.Float64() < 0.5,
				Inversiones:    g.rng.Float64() < 0.5,
			},
		},
	}

	record.Normalize()

	if g.rng.Float64() < churnProbability {
		churnDate := g.now
		record.Churn = true
		record.ChurnDate = &churnDate
	}

	return record
}

// intBetween sorteia um inteiro em [min, max]
func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) int64Between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func pick(g *Generator, values []string) string {
	return values[g.rng.IntN(len(values))]
}
