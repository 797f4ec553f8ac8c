package sqlite

// SQL statements for the operativos table. Placeholders are positional; the
// column order matches the migration and the scan helper.

const (
	// queryInsertOperativo inserts a record. The table uses INTEGER PRIMARY
	// KEY AUTOINCREMENT, so RETURNING id yields the max(id)+1 assignment the
	// legacy store promised.
	queryInsertOperativo = `
		INSERT INTO operativos (
			fecha, lugar, hora_inicio, hora_fin, areas_involucradas,
			personal_guardia_urbana, personal_transito, personal_bromatologia, personal,
			vehiculos_controlados_total, conteos, maxima_graduacion_gl, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	queryListOperativos = `
		SELECT
			id, fecha, lugar, hora_inicio, hora_fin, areas_involucradas,
			personal_guardia_urbana, personal_transito, personal_bromatologia, personal,
			vehiculos_controlados_total, conteos, maxima_graduacion_gl, created_at
		FROM operativos
	`

	queryGetOperativo = `
		SELECT
			id, fecha, lugar, hora_inicio, hora_fin, areas_involucradas,
			personal_guardia_urbana, personal_transito, personal_bromatologia, personal,
			vehiculos_controlados_total, conteos, maxima_graduacion_gl, created_at
		FROM operativos
		WHERE id = ?
	`

	// queryUpdateOperativo rewrites every editable column; the partial-merge
	// happens in Go before this runs. id and created_at never change.
	queryUpdateOperativo = `
		UPDATE operativos SET
			fecha = ?, lugar = ?, hora_inicio = ?, hora_fin = ?, areas_involucradas = ?,
			personal_guardia_urbana = ?, personal_transito = ?, personal_bromatologia = ?, personal = ?,
			vehiculos_controlados_total = ?, conteos = ?, maxima_graduacion_gl = ?
		WHERE id = ?
	`

	queryDeleteOperativo = `DELETE FROM operativos WHERE id = ?`

	queryDeleteAllOperativos = `DELETE FROM operativos`
)
