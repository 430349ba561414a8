package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pymer/churninsight-api/infrastructure/database/postgres"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/sirupsen/logrus"
)

const companiesTable = "empresas"

// Colunas na ordem lida por scanCompany e escrita por Replace
var companyColumns = []string{
	"cuit",
	"nombre_empresa",
	"tipo_sociedad",
	"sector",
	"provincia",
	"ano_fundacion",
	"empleados",
	"telefono",
	"direccion",
	"periodo_fiscal",
	"ingresos",
	"gastos",
	"deuda",
	"activos",
	"prestamos_solicitados",
	"prestamos_aprobados",
	"prestamos_cancelados",
	"prestamos_vigentes",
	"ticket_promedio_solicitado",
	"ticket_promedio_aprobado",
	"monto_solicitado",
	"monto_aprobado",
	"tiempo_cancelacion_prestamo",
	"trimestre_dias_actividad",
	"trimestre_dias_inactividad",
	"promedio_login_dia",
	"total_login_dia",
	"transferencias",
	"pagos",
	"creditos",
	"inversiones",
	"churn",
	"churn_date",
}

// Tamanho de cada INSERT em lote no Replace
const insertBatchSize = 200

type companyRepository struct {
	conn postgres.Conn
}

func NewCompanyRepository(conn postgres.Conn) CompanyRepository {
	return &companyRepository{
		conn: conn,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func filterWhere(filter domain.CompanyFilter) squirrel.Sqlizer {
	where := squirrel.Eq{}
	if filter.Sector != "" {
		where["sector"] = filter.Sector
	}
	if filter.Provincia != "" {
		where["provincia"] = filter.Provincia
	}
	if filter.PeriodoFiscal != "" {
		where["periodo_fiscal"] = filter.PeriodoFiscal
	}
	if filter.Churn != nil {
		where["churn"] = *filter.Churn
	}

	if !filter.HasChurnDateRange() {
		return where
	}

	and := squirrel.And{}
	if len(where) > 0 {
		and = append(and, where)
	}
	if filter.ChurnFrom != nil {
		and = append(and, squirrel.GtOrEq{"churn_date": *filter.ChurnFrom})
	}
	if filter.ChurnTo != nil {
		and = append(and, squirrel.LtOrEq{"churn_date": *filter.ChurnTo})
	}
	return and
}

func buildListQuery(filter domain.CompanyFilter) (string, []any, error) {
	query := squirrel.
		Select(companyColumns...).
		From(companiesTable).
		Where(filterWhere(filter)).
		OrderBy("cuit ASC", "periodo_fiscal ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query.ToSql()
}

func buildCountQuery(filter domain.CompanyFilter) (string, []any, error) {
	return squirrel.
		Select("COUNT(*)").
		From(companiesTable).
		Where(filterWhere(filter)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *companyRepository) ListCompanies(ctx context.Context, filter domain.CompanyFilter) ([]*domain.CompanyRecord, int, error) {
	countSQL, countArgs, err := buildCountQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	listSQL, listArgs, err := buildListQuery(filter)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	companies := make([]*domain.CompanyRecord, 0)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, company)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return companies, total, nil
}

func (r *companyRepository) GetByCUIT(ctx context.Context, cuit string) (*domain.CompanyRecord, error) {
	query, args, err := squirrel.
		Select(companyColumns...).
		From(companiesTable).
		Where(squirrel.Eq{"cuit": cuit}).
		OrderBy("periodo_fiscal DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	company, err := scanCompany(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return company, nil
}

func (r *companyRepository) ListSectors(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "sector")
}

func (r *companyRepository) ListProvinces(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "provincia")
}

func (r *companyRepository) LatestPeriod(ctx context.Context) (string, error) {
	query, args, err := squirrel.
		Select("COALESCE(MAX(periodo_fiscal), '')").
		From(companiesTable).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", err
	}

	var period string
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&period); err != nil {
		return "", err
	}
	return period, nil
}

func (r *companyRepository) Count(ctx context.Context) (int, error) {
	query, args, err := buildCountQuery(domain.CompanyFilter{})
	if err != nil {
		return 0, err
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Replace apaga a tabela e insere os registros numa única transação
func (r *companyRepository) Replace(ctx context.Context, records []*domain.CompanyRecord) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+companiesTable); err != nil {
			return fmt.Errorf("failed to clear companies: %w", err)
		}

		for start := 0; start < len(records); start += insertBatchSize {
			end := min(start+insertBatchSize, len(records))

			query, args, err := buildInsertQuery(records[start:end])
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) {
					return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("failed to execute query: %w", err)
			}
		}

		logrus.WithField("records", len(records)).Info("Dataset de empresas substituído no banco")
		return nil
	})
}

func buildInsertQuery(records []*domain.CompanyRecord) (string, []any, error) {
	query := squirrel.
		Insert(companiesTable).
		Columns(companyColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, c := range records {
		query = query.Values(
			c.CUIT,
			c.NombreEmpresa,
			nullString(c.TipoSociedad),
			c.Sector,
			c.Provincia,
			c.AnoFundacion,
			c.Empleados,
			nullString(c.Telefono),
			nullString(c.Direccion),
			c.PeriodoFiscal,
			c.Financials.Ingresos,
			c.Financials.Gastos,
			c.Financials.Deuda,
			c.Financials.Activos,
			c.CreditBehavior.PrestamosSolicitados,
			c.CreditBehavior.PrestamosAprobados,
			c.CreditBehavior.PrestamosCancelados,
			c.CreditBehavior.PrestamosVigentes,
			c.CreditBehavior.TicketPromedioSolicitado,
			c.CreditBehavior.TicketPromedioAprobado,
			c.CreditBehavior.MontoSolicitado,
			c.CreditBehavior.MontoAprobado,
			c.CreditBehavior.TiempoCancelacionPrestamo,
			c.AppEngagement.TrimestreDiasActividad,
			c.AppEngagement.TrimestreDiasInactividad,
			c.AppEngagement.PromedioLoginDia,
			c.AppEngagement.TotalLoginDia,
			c.ServicesFlags.Transferencias,
			c.ServicesFlags.Pagos,
			c.ServicesFlags.Creditos,
			c.ServicesFlags.Inversiones,
			c.Churn,
			c.ChurnDate,
		)
	}

	return query.ToSql()
}

// scanCompany lê as colunas de companyColumns. Margem e contador de serviços são recalculados.
func scanCompany(row rowScanner) (*domain.CompanyRecord, error) {
	c := &domain.CompanyRecord{}

	var tipoSociedad, telefono, direccion sql.NullString
	var churnDate pq.NullTime

	if err := row.Scan(
		&c.CUIT,
		&c.NombreEmpresa,
		&tipoSociedad,
		&c.Sector,
		&c.Provincia,
		&c.AnoFundacion,
		&c.Empleados,
		&telefono,
		&direccion,
		&c.PeriodoFiscal,
		&c.Financials.Ingresos,
		&c.Financials.Gastos,
		&c.Financials.Deuda,
		&c.Financials.Activos,
		&c.CreditBehavior.PrestamosSolicitados,
		&c.CreditBehavior.PrestamosAprobados,
		&c.CreditBehavior.PrestamosCancelados,
		&c.CreditBehavior.PrestamosVigentes,
		&c.CreditBehavior.TicketPromedioSolicitado,
		&c.CreditBehavior.TicketPromedioAprobado,
		&c.CreditBehavior.MontoSolicitado,
		&c.CreditBehavior.MontoAprobado,
		&c.CreditBehavior.TiempoCancelacionPrestamo,
		&c.AppEngagement.TrimestreDiasActividad,
		&c.AppEngagement.TrimestreDiasInactividad,
		&c.AppEngagement.PromedioLoginDia,
		&c.AppEngagement.TotalLoginDia,
		&c.ServicesFlags.Transferencias,
		&c.ServicesFlags.Pagos,
		&c.ServicesFlags.Creditos,
		&c.ServicesFlags.Inversiones,
		&c.Churn,
		&churnDate,
	); err != nil {
		return nil, err
	}

	c.TipoSociedad = tipoSociedad.String
	c.Telefono = telefono.String
	c.Direccion = direccion.String
	if churnDate.Valid {
		date := churnDate.Time
		c.ChurnDate = &date
	}

	c.Normalize()
	return c, nil
}

func (r *companyRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query, args, err := squirrel.
		Select(column).
		Distinct().
		From(companiesTable).
		Where(squirrel.NotEq{column: ""}).
		OrderBy(column + " ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return values, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
