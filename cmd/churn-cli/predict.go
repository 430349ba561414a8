package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/pymer/churninsight-api/infrastructure/cache"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/internal/usecases/exporting"
	"github.com/pymer/churninsight-api/internal/usecases/predicting"
	"github.com/spf13/cobra"
)

// -- predict --

var predictCmd = &cobra.Command{
	Use:   "predict [arquivo]",
	Short: "Prediz o risco de churn de uma empresa",
	Long:  "Lê um PredictionRequest em JSON ou YAML (arquivo ou stdin) e imprime a predição. Com --export grava também o relatório.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		exportFormat, _ := cmd.Flags().GetString("export")
		outputPath, _ := cmd.Flags().GetString("output")

		var req domain.PredictionRequest
		if err := loadRequest(cmd, args, &req); err != nil {
			return err
		}
		if errs := req.Validate(""); len(errs) > 0 {
			return errs
		}

		predictor, err := newPredictor()
		if err != nil {
			return err
		}

		resp := predictor.Predict(cmd.Context(), &req)

		if exportFormat != "" {
			if err := exportReport(&req, resp, exportFormat, outputPath); err != nil {
				return err
			}
		}

		return writeOutput(cmd.OutOrStdout(), format, resp)
	},
}

// -- batch --

var batchCmd = &cobra.Command{
	Use:   "batch [arquivo]",
	Short: "Prediz o risco de churn de várias empresas",
	Long:  `Lê uma lista de PredictionRequest (ou {"companies": [...]}) e imprime os totais por faixa e as predições.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		reqs, err := loadBatch(cmd, args)
		if err != nil {
			return err
		}
		if errs := domain.ValidateBatch(reqs); len(errs) > 0 {
			return errs
		}

		predictor, err := newPredictor()
		if err != nil {
			return err
		}

		resp, err := predictor.PredictBatch(cmd.Context(), reqs)
		if err != nil {
			return err
		}

		return writeOutput(cmd.OutOrStdout(), format, resp)
	},
}

func init() {
	predictCmd.Flags().String("export", "", "gera relatório (csv, json, xlsx, text, summary)")
	predictCmd.Flags().StringP("output", "o", "", "arquivo do relatório (padrão: nome sugerido pelo formato)")
}

func newPredictor() (predicting.Predictor, error) {
	return predicting.NewService(cfg.Prediction, cache.New(cfg.Cache))
}

func loadRequest(cmd *cobra.Command, args []string, dst any) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return errors.Wrap(err, "read input")
	}

	return decodeInput(data, dst)
}

// loadBatch aceita tanto uma lista simples quanto o payload da API
func loadBatch(cmd *cobra.Command, args []string) ([]*domain.PredictionRequest, error) {
	var raw any
	if err := loadRequest(cmd, args, &raw); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	if _, isList := raw.([]any); isList {
		var reqs []*domain.PredictionRequest
		if err := json.Unmarshal(payload, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	}

	var batch domain.BatchPredictionRequest
	if err := json.Unmarshal(payload, &batch); err != nil {
		return nil, err
	}
	return batch.Companies, nil
}

func exportReport(req *domain.PredictionRequest, resp *domain.PredictionResponse, rawFormat, outputPath string) error {
	format, err := exporting.ParseFormat(rawFormat)
	if err != nil {
		return err
	}

	file, err := exporting.NewService().Export(format, exporting.NewReport(req, resp))
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = file.Filename
	}

	if err := os.WriteFile(outputPath, file.Content, 0o644); err != nil {
		return errors.Wrap(err, "write report")
	}

	fmt.Fprintf(os.Stderr, "Relatório gravado em %s\n", outputPath)
	return nil
}
