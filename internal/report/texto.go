package report

import (
	"fmt"
	"strings"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
)

// Texto renders one record as the shareable plain-text summary the office
// pastes into messages. Sections with no data are left out entirely.
func (s *Service) Texto(op *v1.Operativo) string {
	var b strings.Builder

	b.WriteString("REPORTE DE OPERATIVO DE TRÁNSITO\n")
	if s.cfg.Organizacion != "" {
		b.WriteString(s.cfg.Organizacion)
		if s.cfg.Dependencia != "" {
			b.WriteString(" - " + s.cfg.Dependencia)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	fmt.Fprintf(&b, "Fecha: %s\n", op.Fecha)
	if op.Lugar != "" {
		fmt.Fprintf(&b, "Lugar: %s\n", op.Lugar)
	}
	if op.HoraInicio != "" || op.HoraFin != "" {
		fmt.Fprintf(&b, "Horario: %s a %s\n", orDash(op.HoraInicio), orDash(op.HoraFin))
	}
	if areas := op.Areas(); len(areas) > 0 {
		fmt.Fprintf(&b, "Áreas involucradas: %s\n", strings.Join(areas, ", "))
	}
	b.WriteString(personalLine(op))
	fmt.Fprintf(&b, "\nVehículos controlados: %d\n", int(op.VehiculosControladosTotal))

	for _, tipo := range s.exportTipos([]*v1.Operativo{op}) {
		c := op.Conteo(tipo)
		if c.IsZero() {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(s.cat.Etiqueta(tipo)))
		fmt.Fprintf(&b, "  - Actas simples: %d\n", int(c.ActasSimples))
		fmt.Fprintf(&b, "  - Retención de documentación: %d\n", int(c.RetencionDoc))
		fmt.Fprintf(&b, "  - Alcoholemias positivas: %d\n", int(c.AlcoholemiaPositiva))
		fmt.Fprintf(&b, "  - Actas por ruidos: %d\n", int(c.ActasRuido))
	}

	if op.MaximaGraduacionGL > 0 {
		fmt.Fprintf(&b, "\nMáxima graduación: %.2f g/L\n", float64(op.MaximaGraduacionGL))
	}

	b.WriteString("\nTOTALES:\n")
	fmt.Fprintf(&b, "  Faltas: %d\n", op.TotalFaltas())
	fmt.Fprintf(&b, "  Alcoholemias positivas: %d\n", op.TotalAlcoholemia())

	return b.String()
}

// personalLine prefers the structured headcounts; the legacy free-text field
// only shows when no counts were loaded. The line always renders, so a
// record with no personnel data still says so explicitly.
func personalLine(op *v1.Operativo) string {
	total := op.PersonalTotal()
	if total == 0 {
		if op.Personal != "" {
			return fmt.Sprintf("Personal: %s\n", op.Personal)
		}
		return "Personal: No especificado\n"
	}

	var parts []string
	if op.PersonalGuardiaUrbana > 0 {
		parts = append(parts, fmt.Sprintf("Guardia Urbana: %d", int(op.PersonalGuardiaUrbana)))
	}
	if op.PersonalTransito > 0 {
		parts = append(parts, fmt.Sprintf("Tránsito: %d", int(op.PersonalTransito)))
	}
	if op.PersonalBromatologia > 0 {
		parts = append(parts, fmt.Sprintf("Bromatología: %d", int(op.PersonalBromatologia)))
	}
	return fmt.Sprintf("Personal afectado: %d (%s)\n", total, strings.Join(parts, ", "))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
