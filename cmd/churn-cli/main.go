package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/pymer/churninsight-api/internal/config"
	"github.com/pymer/churninsight-api/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "churn-cli",
	Short: "Predição de risco de churn pela linha de comando",
	Long:  "Calcula o risco de churn de empresas a partir de arquivos JSON e gerencia o dataset de empresas do dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.NewConfig()
		if err != nil {
			return errors.Wrap(err, "load config")
		}
		cfg = c

		if err := log.Setup(cfg.App.LogLevel, cfg.App.Env); err != nil {
			return errors.Wrap(err, "init logger")
		}
		// Logs vão para stderr para não misturar com a saída do comando
		logrus.SetOutput(os.Stderr)

		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("format", "f", formatJSON, "formato de saída (json, yaml; dataset aceita table)")

	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(datasetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
