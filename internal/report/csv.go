package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
)

// utf8BOM makes spreadsheet programs detect the encoding; without it
// accented place names open as mojibake.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV renders the filtered records as a spreadsheet file: one row per record
// plus a trailing summary block. A nil filtro exports the dashboard's
// current cut. Returns the file contents and the download filename.
func (s *Service) CSV(ctx context.Context, filtro *stats.Filtro) ([]byte, string, error) {
	vista, err := s.snapshot(ctx, filtro)
	if err != nil {
		return nil, "", err
	}

	tipos := s.exportTipos(vista.Operativos)
	headers := v1.FlatHeaders(tipos)

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	row := make([]string, len(headers))
	for _, op := range vista.Operativos {
		for i, col := range headers {
			row[i] = op.FlatValue(col)
		}
		if err := w.Write(row); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	// Summary block, separated by a blank row. Exports round the rate to
	// two places.
	resumen := vista.Resumen
	summary := [][]string{
		{},
		{"total_operativos", strconv.Itoa(resumen.TotalOperativos)},
		{"total_vehiculos", strconv.Itoa(resumen.TotalVehiculos)},
		{"total_alcoholemia", strconv.Itoa(resumen.TotalAlcoholemia)},
		{"total_actas_simples", strconv.Itoa(resumen.TotalActasSimples)},
		{"total_retenciones", strconv.Itoa(resumen.TotalRetenciones)},
		{"total_ruidos", strconv.Itoa(resumen.TotalRuidos)},
	}
	for _, tipo := range resumen.Tipos() {
		summary = append(summary, []string{"total_faltas_" + tipo, strconv.Itoa(resumen.FaltasPorTipo[tipo])})
	}
	summary = append(summary,
		[]string{"total_faltas", strconv.Itoa(resumen.TotalFaltas)},
		[]string{"tasa_positividad", resumen.TasaRedondeada(2).String()},
	)
	for _, rec := range summary {
		if err := w.Write(rec); err != nil {
			return nil, "", fmt.Errorf("failed to write csv summary: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("operativos_%s.csv", s.clock().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
