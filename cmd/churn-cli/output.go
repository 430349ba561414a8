package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/pymer/churninsight-api/internal/domain"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

// writeOutput serializa v no formato pedido. O YAML passa pelo JSON para manter os nomes dos campos da API.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)

	case formatYAML:
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}

		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}

	return errors.Errorf("formato de saída desconhecido: %q", format)
}

// readInput lê o arquivo informado, ou stdin quando o caminho é vazio ou "-"
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decodeInput aceita JSON ou YAML; YAML é convertido para JSON antes de decodificar
func decodeInput(data []byte, dst any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("entrada vazia")
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		return json.Unmarshal(trimmed, dst)
	}

	var generic any
	if err := yaml.Unmarshal(trimmed, &generic); err != nil {
		return errors.Wrap(err, "entrada não é JSON nem YAML válido")
	}

	raw, err := json.Marshal(generic)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func formatCompanyTable(w io.Writer, companies []*domain.CompanyRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CUIT\tEMPRESA\tSECTOR\tPROVINCIA\tPERIODO\tDIAS ACT.\tDEUDA/ACTIVOS\tCHURN")

	for _, c := range companies {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%t\n",
			c.CUIT,
			c.NombreEmpresa,
			c.Sector,
			c.Provincia,
			c.PeriodoFiscal,
			c.AppEngagement.TrimestreDiasActividad,
			c.DebtRatio(),
			c.Churn,
		)
	}

	return tw.Flush()
}
