package stats

import (
	"sort"

	v1 "github.com/fraymodernizacion/control-transito/internal/api/v1"
)

// SortFechaDesc orders records newest first by parsed fecha, breaking ties
// by creation time. Records with an unparseable fecha sort last.
func SortFechaDesc(records []*v1.Operativo) {
	sort.SliceStable(records, func(i, j int) bool {
		fi, fj := ParseFecha(records[i].Fecha), ParseFecha(records[j].Fecha)
		if fi.IsZero() != fj.IsZero() {
			return !fi.IsZero()
		}
		if !fi.Equal(fj) {
			return fi.After(fj)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
