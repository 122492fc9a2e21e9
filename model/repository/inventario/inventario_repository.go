package inventario

import (
	"database/sql"

	"gorm.io/gorm"

	"administracion.GO/core/updates"
	inventarioEntity "administracion.GO/model/entity/inventario"
)

type InventarioRepository struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

func NewInventarioRepository(db *gorm.DB) (*InventarioRepository, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	return &InventarioRepository{db: db, sqlDB: sqlDB}, nil
}

func (r *InventarioRepository) Crear(inv *inventarioEntity.Inventario) error {
	return r.db.Create(inv).Error
}

// Listar returns inventory rows with optional exact-match filters, newest
// update first. Filters arrive as raw query-param strings; empty means absent.
func (r *InventarioRepository) Listar(idProducto, idUbicacion, idLote string) ([]inventarioEntity.Inventario, error) {
	query := `
		SELECT
			i.ID_INVENTARIO,
			i.ID_PRODUCTO,
			i.ID_LOTE,
			i.ID_UBICACION,
			i.CANTIDAD_ACTUAL,
			i.FECHA_ACTUALIZACION
		FROM MD_INVENTARIO i
		WHERE 1=1`

	var args []interface{}
	if idProducto != "" {
		query += " AND i.ID_PRODUCTO = ?"
		args = append(args, idProducto)
	}
	if idUbicacion != "" {
		query += " AND i.ID_UBICACION = ?"
		args = append(args, idUbicacion)
	}
	if idLote != "" {
		query += " AND i.ID_LOTE = ?"
		args = append(args, idLote)
	}
	query += " ORDER BY i.FECHA_ACTUALIZACION DESC"

	var filas []inventarioEntity.Inventario
	err := r.db.Raw(query, args...).Scan(&filas).Error
	return filas, err
}

// ListarDetallado joins product code, name and type onto each row.
func (r *InventarioRepository) ListarDetallado(idProducto, idUbicacion string) ([]inventarioEntity.InventarioDetallado, error) {
	query := `
		SELECT
			i.ID_INVENTARIO,
			i.ID_PRODUCTO,
			p.CODIGO as CODIGO_PRODUCTO,
			p.NOMBRE as NOMBRE_PRODUCTO,
			p.TIPO_PRODUCTO,
			i.ID_LOTE,
			i.ID_UBICACION,
			i.CANTIDAD_ACTUAL,
			i.FECHA_ACTUALIZACION
		FROM MD_INVENTARIO i
		INNER JOIN MD_PRODUCTOS p ON i.ID_PRODUCTO = p.ID_PRODUCTO
		WHERE 1=1`

	var args []interface{}
	if idProducto != "" {
		query += " AND i.ID_PRODUCTO = ?"
		args = append(args, idProducto)
	}
	if idUbicacion != "" {
		query += " AND i.ID_UBICACION = ?"
		args = append(args, idUbicacion)
	}
	query += " ORDER BY i.FECHA_ACTUALIZACION DESC"

	var filas []inventarioEntity.InventarioDetallado
	err := r.db.Raw(query, args...).Scan(&filas).Error
	return filas, err
}

// DetallePorID returns one joined row or gorm.ErrRecordNotFound.
func (r *InventarioRepository) DetallePorID(id uint64) (*inventarioEntity.InventarioDetallado, error) {
	const query = `
		SELECT
			i.ID_INVENTARIO,
			i.ID_PRODUCTO,
			p.CODIGO as CODIGO_PRODUCTO,
			p.NOMBRE as NOMBRE_PRODUCTO,
			p.TIPO_PRODUCTO,
			i.ID_LOTE,
			i.ID_UBICACION,
			i.CANTIDAD_ACTUAL,
			i.FECHA_ACTUALIZACION
		FROM MD_INVENTARIO i
		INNER JOIN MD_PRODUCTOS p ON i.ID_PRODUCTO = p.ID_PRODUCTO
		WHERE i.ID_INVENTARIO = ?`

	var filas []inventarioEntity.InventarioDetallado
	if err := r.db.Raw(query, id).Scan(&filas).Error; err != nil {
		return nil, err
	}
	if len(filas) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &filas[0], nil
}

func (r *InventarioRepository) Existe(id uint64) (bool, error) {
	var n int64
	err := r.db.Model(&inventarioEntity.Inventario{}).Where("ID_INVENTARIO = ?", id).Count(&n).Error
	return n > 0, err
}

// Actualizar executes the rendered partial update. Callers append the
// FECHA_ACTUALIZACION refresh before calling.
func (r *InventarioRepository) Actualizar(id uint64, campos *updates.Builder) error {
	query, args, err := campos.Render("MD_INVENTARIO", "ID_INVENTARIO", id)
	if err != nil {
		return err
	}
	return r.db.Exec(query, args...).Error
}

// CantidadActual reads the on-hand quantity with raw SQL for minimal overhead.
// Returns gorm.ErrRecordNotFound when the row is absent.
func (r *InventarioRepository) CantidadActual(id uint64) (int64, error) {
	const query = `SELECT CANTIDAD_ACTUAL FROM MD_INVENTARIO WHERE ID_INVENTARIO = ? LIMIT 1`
	var cantidad sql.NullInt64
	err := r.sqlDB.QueryRow(query, id).Scan(&cantidad)
	if err == sql.ErrNoRows {
		return 0, gorm.ErrRecordNotFound
	}
	if err != nil {
		return 0, err
	}
	return cantidad.Int64, nil
}

// ActualizarCantidad overwrites the quantity and refreshes the timestamp in
// one statement.
func (r *InventarioRepository) ActualizarCantidad(id uint64, cantidad int64) error {
	return r.db.Exec(
		"UPDATE MD_INVENTARIO SET CANTIDAD_ACTUAL = ?, FECHA_ACTUALIZACION = CURRENT_TIMESTAMP WHERE ID_INVENTARIO = ?",
		cantidad, id,
	).Error
}

// Eliminar hard-deletes the row; gorm.ErrRecordNotFound when nothing matched.
func (r *InventarioRepository) Eliminar(id uint64) error {
	tx := r.db.Exec("DELETE FROM MD_INVENTARIO WHERE ID_INVENTARIO = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResumenPorProducto aggregates quantities per active product, keeping only
// products with stock on hand.
func (r *InventarioRepository) ResumenPorProducto() ([]inventarioEntity.ResumenProducto, error) {
	const query = `
		SELECT
			p.ID_PRODUCTO,
			p.CODIGO,
			p.NOMBRE,
			p.TIPO_PRODUCTO,
			SUM(i.CANTIDAD_ACTUAL) as CANTIDAD_TOTAL,
			COUNT(i.ID_INVENTARIO) as TOTAL_REGISTROS
		FROM MD_PRODUCTOS p
		LEFT JOIN MD_INVENTARIO i ON p.ID_PRODUCTO = i.ID_PRODUCTO
		WHERE p.ESTADO = 1
		GROUP BY p.ID_PRODUCTO, p.CODIGO, p.NOMBRE, p.TIPO_PRODUCTO
		HAVING CANTIDAD_TOTAL > 0
		ORDER BY p.NOMBRE ASC`

	var resumen []inventarioEntity.ResumenProducto
	err := r.db.Raw(query).Scan(&resumen).Error
	return resumen, err
}
