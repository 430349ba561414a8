// Package exporting gera os relatórios de uma predição em CSV, JSON, XLSX e texto
package exporting

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pymer/churninsight-api/internal/domain"
	"github.com/pymer/churninsight-api/pkg/apiErrors"
	"github.com/tealeg/xlsx/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Format string

const (
	FormatCSV       Format = "csv"
	FormatJSON      Format = "json"
	FormatXLSX      Format = "xlsx"
	FormatClipboard Format = "text"
	FormatSummary   Format = "summary"
)

const sheetName = "Reporte"

// ParseFormat converte o parâmetro da requisição; vazio equivale a CSV
func ParseFormat(raw string) (Format, error) {
	switch f := Format(raw); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatXLSX, FormatClipboard, FormatSummary:
		return f, nil
	}
	return "", NewExportError(ErrUnsupportedFormat, apiErrors.ErrInvalidFormat, raw)
}

// File é um relatório pronto para download
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

type Exporter interface {
	Export(format Format, report *Report) (*File, error)
}

type Service struct {
	now func() time.Time
}

func NewService() Exporter {
	return &Service{now: time.Now}
}

// NewReport monta o relatório a partir da requisição de predição e do resultado
func NewReport(req *domain.PredictionRequest, result *domain.PredictionResponse) *Report {
	if req == nil {
		req = &domain.PredictionRequest{}
	}
	return &Report{
		Profile: req.CompanyProfile,
		Request: req,
		Result:  result,
	}
}

func (s *Service) Export(format Format, report *Report) (*File, error) {
	if report == nil || report.Result == nil {
		return nil, NewExportError(ErrMissingPrediction, apiErrors.ErrMissingRequiredData, "")
	}
	if report.Request == nil {
		report.Request = &domain.PredictionRequest{}
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = s.now()
	}

	switch format {
	case FormatCSV:
		return s.writeCSV(report)
	case FormatJSON:
		return s.writeJSON(report)
	case FormatXLSX:
		return s.writeXLSX(report)
	case FormatClipboard:
		return &File{
			Filename:    "churn_prediction.txt",
			ContentType: "text/plain; charset=utf-8",
			Content:     []byte(report.ClipboardText()),
		}, nil
	case FormatSummary:
		return &File{
			Filename:    "churn_summary.txt",
			ContentType: "text/plain; charset=utf-8",
			Content:     []byte(report.Summary()),
		}, nil
	}

	return nil, NewExportError(ErrUnsupportedFormat, apiErrors.ErrInvalidFormat, string(format))
}

func (s *Service) writeCSV(report *Report) (*File, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(report.rows()); err != nil {
		return nil, NewExportError(ErrRenderReport, apiErrors.ErrInternalServer, "Falha ao gerar CSV: "+err.Error())
	}

	return &File{
		Filename:    "churn_prediction.csv",
		ContentType: "text/csv; charset=utf-8",
		Content:     buf.Bytes(),
	}, nil
}

type jsonPayload struct {
	Timestamp  time.Time                  `json:"timestamp"`
	Company    *domain.StaticProfile      `json:"company"`
	Metrics    *domain.PredictionRequest  `json:"metrics"`
	Prediction *domain.PredictionResponse `json:"prediction"`
}

func (s *Service) writeJSON(report *Report) (*File, error) {
	metrics := *report.Request
	metrics.CompanyProfile = nil

	content, err := json.MarshalIndent(jsonPayload{
		Timestamp:  report.GeneratedAt,
		Company:    report.Profile,
		Metrics:    &metrics,
		Prediction: report.Result,
	}, "", "  ")
	if err != nil {
		return nil, NewExportError(ErrRenderReport, apiErrors.ErrInternalServer, "Falha ao gerar JSON: "+err.Error())
	}

	return &File{
		Filename:    "churn_prediction.json",
		ContentType: "application/json; charset=utf-8",
		Content:     content,
	}, nil
}

func (s *Service) writeXLSX(report *Report) (*File, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return nil, NewExportError(ErrRenderReport, apiErrors.ErrInternalServer, "Falha ao criar planilha: "+err.Error())
	}

	for _, values := range report.rows() {
		row := sheet.AddRow()
		for _, value := range values {
			row.AddCell().SetString(value)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, NewExportError(ErrRenderReport, apiErrors.ErrInternalServer, "Falha ao gerar XLSX: "+err.Error())
	}

	return &File{
		Filename:    "churn_prediction.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     buf.Bytes(),
	}, nil
}

// ContentDisposition retorna o cabeçalho de download do arquivo
func (f *File) ContentDisposition() string {
	return fmt.Sprintf("attachment; filename=%q", f.Filename)
}
