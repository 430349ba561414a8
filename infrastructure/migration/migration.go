// Package migration cria o schema usado pelo repositório PostgreSQL de empresas
package migration

import (
	"context"
	"fmt"
	"time"

	"github.com/pymer/churninsight-api/infrastructure/database/postgres"
	"github.com/sirupsen/logrus"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS empresas (
		cuit                        CHAR(11)       NOT NULL,
		nombre_empresa              TEXT           NOT NULL,
		tipo_sociedad               TEXT,
		sector                      TEXT           NOT NULL,
		provincia                   TEXT           NOT NULL,
		ano_fundacion               INTEGER        NOT NULL DEFAULT 0,
		empleados                   INTEGER        NOT NULL DEFAULT 0,
		telefono                    TEXT,
		direccion                   TEXT,
		periodo_fiscal              VARCHAR(7)     NOT NULL,
		ingresos                    NUMERIC(16, 2) NOT NULL DEFAULT 0,
		gastos                      NUMERIC(16, 2) NOT NULL DEFAULT 0,
		deuda                       NUMERIC(16, 2) NOT NULL DEFAULT 0,
		activos                     NUMERIC(16, 2) NOT NULL DEFAULT 0,
		prestamos_solicitados       INTEGER        NOT NULL DEFAULT 0,
		prestamos_aprobados         INTEGER        NOT NULL DEFAULT 0,
		prestamos_cancelados        INTEGER        NOT NULL DEFAULT 0,
		prestamos_vigentes          INTEGER        NOT NULL DEFAULT 0,
		ticket_promedio_solicitado  NUMERIC(16, 2) NOT NULL DEFAULT 0,
		ticket_promedio_aprobado    NUMERIC(16, 2) NOT NULL DEFAULT 0,
		monto_solicitado            NUMERIC(16, 2) NOT NULL DEFAULT 0,
		monto_aprobado              NUMERIC(16, 2) NOT NULL DEFAULT 0,
		tiempo_cancelacion_prestamo INTEGER        NOT NULL DEFAULT 0,
		trimestre_dias_actividad    INTEGER        NOT NULL DEFAULT 0 CHECK (trimestre_dias_actividad BETWEEN 0 AND 90),
		trimestre_dias_inactividad  INTEGER        NOT NULL DEFAULT 0 CHECK (trimestre_dias_inactividad BETWEEN 0 AND 90),
		promedio_login_dia          NUMERIC(8, 2)  NOT NULL DEFAULT 0,
		total_login_dia             INTEGER        NOT NULL DEFAULT 0,
		transferencias              BOOLEAN        NOT NULL DEFAULT FALSE,
		pagos                       BOOLEAN        NOT NULL DEFAULT FALSE,
		creditos                    BOOLEAN        NOT NULL DEFAULT FALSE,
		inversiones                 BOOLEAN        NOT NULL DEFAULT FALSE,
		churn                       BOOLEAN        NOT NULL DEFAULT FALSE,
		churn_date                  TIMESTAMPTZ,
		PRIMARY KEY (cuit, periodo_fiscal)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_empresas_sector ON empresas (sector)`,
	`CREATE INDEX IF NOT EXISTS idx_empresas_periodo ON empresas (periodo_fiscal)`,
}

// Migrate aplica o schema. Pode ser executado mais de uma vez.
func Migrate(ctx context.Context, conn postgres.Queryer) error {
	logrus.Info("Iniciando migração do schema de empresas...")
	startTime := time.Now()

	for i, stmt := range statements {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d/%d failed: %w", i+1, len(statements), err)
		}
	}

	logrus.Infof("Migração concluída em %v", time.Since(startTime))
	return nil
}
