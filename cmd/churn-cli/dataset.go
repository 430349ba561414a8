package main

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/pymer/churninsight-api/infrastructure/database/postgres"
	"github.com/pymer/churninsight-api/infrastructure/migration"
	"github.com/pymer/churninsight-api/infrastructure/repository"
	"github.com/pymer/churninsight-api/infrastructure/synthetic"
	"github.com/pymer/churninsight-api/internal/usecases/statistics"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// -- dataset --

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Gera o dataset sintético de empresas",
	Long:  "Imprime o dataset gerado com a semente informada (--format json, yaml ou table) ou, com --stats, os indicadores do dashboard.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		format, _ := cmd.Flags().GetString("format")
		stats, _ := cmd.Flags().GetBool("stats")
		seed, count := datasetFlags(cmd)

		records := synthetic.Generate(seed, count, time.Now())

		if stats {
			service := statistics.NewService(repository.NewMemoryCompanyRepository(records))
			dashboard, err := service.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), format, dashboard)
		}

		if format == formatTable {
			return formatCompanyTable(cmd.OutOrStdout(), records)
		}
		return writeOutput(cmd.OutOrStdout(), format, records)
	},
}

// -- dataset seed --

var datasetSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carrega o dataset sintético no PostgreSQL",
	Long:  "Aplica o schema da tabela empresas e substitui seu conteúdo por um dataset gerado com a semente informada.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		seed, count := datasetFlags(cmd)

		conn, err := postgres.NewConnection(ctx, cfg.Database)
		if err != nil {
			return errors.Wrap(err, "connect postgres")
		}
		defer conn.Close() //nolint:errcheck

		if err := migration.Migrate(ctx, conn); err != nil {
			return errors.Wrap(err, "migrate schema")
		}

		records := synthetic.Generate(seed, count, time.Now())
		if err := repository.NewCompanyRepository(conn).Replace(ctx, records); err != nil {
			return errors.Wrap(err, "replace companies")
		}

		logrus.WithFields(logrus.Fields{
			"seed":    seed,
			"records": len(records),
		}).Info("Dataset carregado no PostgreSQL")

		fmt.Fprintf(cmd.OutOrStdout(), "%d empresas carregadas (seed %d)\n", len(records), seed)
		return nil
	},
}

func init() {
	datasetCmd.PersistentFlags().Int64("seed", 0, "semente do gerador (padrão: DATASET_SEED)")
	datasetCmd.PersistentFlags().Int("count", 0, "quantidade de empresas (padrão: DATASET_SIZE)")
	datasetCmd.Flags().Bool("stats", false, "imprime os indicadores do dashboard em vez das empresas")

	datasetCmd.AddCommand(datasetSeedCmd)
}

// datasetFlags usa os valores da configuração quando as flags não foram informadas
func datasetFlags(cmd *cobra.Command) (int64, int) {
	seed, count := cfg.Dataset.Seed, cfg.Dataset.Size

	if cmd.Flags().Changed("seed") {
		seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("count") {
		count, _ = cmd.Flags().GetInt("count")
	}

	return seed, max(count, 0)
}
