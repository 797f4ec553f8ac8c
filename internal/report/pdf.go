package report

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
	"github.com/fraymodernizacion/control-transito/internal/core/stats"
	"github.com/fraymodernizacion/control-transito/internal/dashboard"
)

// pageBreakY is the cursor height after which the detail section starts a
// fresh page.
const pageBreakY = 260.0

// PDF renders the filtered records as a printable report: header, summary
// table, per-type infraction breakdown, and a detail section for the most
// recent records. A nil filtro exports the dashboard's current cut. Returns
// the document bytes and the download filename.
func (s *Service) PDF(ctx context.Context, filtro *stats.Filtro) ([]byte, string, error) {
	vista, err := s.snapshot(ctx, filtro)
	if err != nil {
		return nil, "", err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(tr("Informe de operativos de tránsito"), true)
	doc.AddPage()

	s.pdfHeader(doc, tr, vista.Filtro)
	s.pdfResumen(doc, tr, vista)
	s.pdfDesglose(doc, tr, vista)
	s.pdfDetalle(doc, tr, vista.Operativos)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render pdf: %w", err)
	}

	filename := fmt.Sprintf("informe_transito_%s.pdf", s.clock().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *Service) pdfHeader(doc *fpdf.Fpdf, tr func(string) string, filtro dashboard.FiltroVista) {
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 10, tr("Informe de operativos de tránsito"), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	if s.cfg.Organizacion != "" {
		linea := s.cfg.Organizacion
		if s.cfg.Dependencia != "" {
			linea += " - " + s.cfg.Dependencia
		}
		doc.CellFormat(0, 6, tr(linea), "", 1, "C", false, 0, "")
	}

	periodo := "Período: completo"
	if filtro.Desde != "" || filtro.Hasta != "" {
		periodo = fmt.Sprintf("Período: %s a %s", orDash(filtro.Desde), orDash(filtro.Hasta))
	}
	if filtro.Vehiculo != "" && filtro.Vehiculo != "all" {
		periodo += fmt.Sprintf("  |  Vehículo: %s", s.cat.Etiqueta(filtro.Vehiculo))
	}
	doc.CellFormat(0, 6, tr(periodo), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 6, tr("Generado: "+s.clock().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	doc.Ln(4)
}

func (s *Service) pdfResumen(doc *fpdf.Fpdf, tr func(string) string, vista *dashboard.Vista) {
	r := vista.Resumen

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Resumen"), "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	rows := []struct {
		label string
		value string
	}{
		{"Operativos", strconv.Itoa(r.TotalOperativos)},
		{"Vehículos controlados", strconv.Itoa(r.TotalVehiculos)},
		{"Alcoholemias positivas", strconv.Itoa(r.TotalAlcoholemia)},
		{"Actas simples", strconv.Itoa(r.TotalActasSimples)},
		{"Retenciones de documentación", strconv.Itoa(r.TotalRetenciones)},
		{"Actas por ruidos", strconv.Itoa(r.TotalRuidos)},
		{"Total de faltas", strconv.Itoa(r.TotalFaltas)},
		{"Tasa de positividad", r.TasaRedondeada(2).String() + " %"},
	}
	for _, row := range rows {
		doc.CellFormat(90, 7, tr(row.label), "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 7, row.value, "1", 1, "R", false, 0, "")
	}
	doc.Ln(4)
}

// pdfDesglose draws the infraction kinds against the vehicle types, one row
// per kind plus a totals row.
func (s *Service) pdfDesglose(doc *fpdf.Fpdf, tr func(string) string, vista *dashboard.Vista) {
	tipos := s.exportTipos(vista.Operativos)

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Desglose por tipo de vehículo"), "", 1, "L", false, 0, "")

	colWidth := 120.0 / float64(len(tipos)+1)

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(60, 7, "", "1", 0, "L", false, 0, "")
	for _, tipo := range tipos {
		doc.CellFormat(colWidth, 7, tr(s.cat.Etiqueta(tipo)), "1", 0, "C", false, 0, "")
	}
	doc.CellFormat(colWidth, 7, "Total", "1", 1, "C", false, 0, "")

	kinds := []struct {
		label string
		get   func(v1.Conteo) int
	}{
		{"Actas simples", func(c v1.Conteo) int { return int(c.ActasSimples) }},
		{"Retención de documentación", func(c v1.Conteo) int { return int(c.RetencionDoc) }},
		{"Alcoholemias positivas", func(c v1.Conteo) int { return int(c.AlcoholemiaPositiva) }},
		{"Actas por ruidos", func(c v1.Conteo) int { return int(c.ActasRuido) }},
	}

	sums := make(map[string]v1.Conteo, len(tipos))
	for _, op := range vista.Operativos {
		for _, tipo := range tipos {
			c := op.Conteo(tipo)
			acc := sums[tipo]
			acc.ActasSimples += c.ActasSimples
			acc.RetencionDoc += c.RetencionDoc
			acc.AlcoholemiaPositiva += c.AlcoholemiaPositiva
			acc.ActasRuido += c.ActasRuido
			sums[tipo] = acc
		}
	}

	doc.SetFont("Helvetica", "", 9)
	for _, kind := range kinds {
		doc.CellFormat(60, 7, tr(kind.label), "1", 0, "L", false, 0, "")
		rowTotal := 0
		for _, tipo := range tipos {
			n := kind.get(sums[tipo])
			rowTotal += n
			doc.CellFormat(colWidth, 7, strconv.Itoa(n), "1", 0, "C", false, 0, "")
		}
		doc.CellFormat(colWidth, 7, strconv.Itoa(rowTotal), "1", 1, "C", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(60, 7, "Total", "1", 0, "L", false, 0, "")
	grand := 0
	for _, tipo := range tipos {
		n := sums[tipo].Total()
		grand += n
		doc.CellFormat(colWidth, 7, strconv.Itoa(n), "1", 0, "C", false, 0, "")
	}
	doc.CellFormat(colWidth, 7, strconv.Itoa(grand), "1", 1, "C", false, 0, "")
	doc.Ln(4)
}

// pdfDetalle prints the most recent records, bounded by MaxDetalle, breaking
// the page when the cursor runs off the printable area.
func (s *Service) pdfDetalle(doc *fpdf.Fpdf, tr func(string) string, ops []*v1.Operativo) {
	if len(ops) == 0 {
		return
	}
	if len(ops) > s.cfg.MaxDetalle {
		ops = ops[:s.cfg.MaxDetalle]
	}

	doc.SetFont("Helvetica", "B", 12)
	doc.CellFormat(0, 8, tr("Últimos operativos"), "", 1, "L", false, 0, "")

	for _, op := range ops {
		if doc.GetY() > pageBreakY {
			doc.AddPage()
		}

		doc.SetFont("Helvetica", "B", 10)
		titulo := op.Fecha
		if op.Lugar != "" {
			titulo += " - " + op.Lugar
		}
		doc.CellFormat(0, 6, tr(titulo), "", 1, "L", false, 0, "")

		doc.SetFont("Helvetica", "", 9)
		linea := fmt.Sprintf("Vehículos: %d  |  Faltas: %d  |  Alcoholemias: %d",
			int(op.VehiculosControladosTotal), op.TotalFaltas(), op.TotalAlcoholemia())
		if op.MaximaGraduacionGL > 0 {
			linea += fmt.Sprintf("  |  Máx. graduación: %.2f g/L", float64(op.MaximaGraduacionGL))
		}
		doc.CellFormat(0, 5, tr(linea), "", 1, "L", false, 0, "")
		doc.Ln(2)
	}
}
