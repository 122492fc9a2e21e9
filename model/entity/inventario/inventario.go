package inventario

import "time"

// Inventario represents the MD_INVENTARIO table.
type Inventario struct {
	IDInventario       uint64    `gorm:"column:ID_INVENTARIO;primaryKey;autoIncrement" json:"ID_INVENTARIO"`
	IDProducto         uint64    `gorm:"column:ID_PRODUCTO;not null;index" json:"ID_PRODUCTO"`
	IDLote             uint64    `gorm:"column:ID_LOTE;not null" json:"ID_LOTE"`
	IDUbicacion        uint64    `gorm:"column:ID_UBICACION;not null" json:"ID_UBICACION"`
	CantidadActual     int64     `gorm:"column:CANTIDAD_ACTUAL;not null" json:"CANTIDAD_ACTUAL"`
	FechaActualizacion time.Time `gorm:"column:FECHA_ACTUALIZACION;autoCreateTime" json:"FECHA_ACTUALIZACION"`
}

func (Inventario) TableName() string {
	return "MD_INVENTARIO"
}

// InventarioDetallado is the joined row shape of /api/inventario/detallado
// and the single-record lookup. Not a table.
type InventarioDetallado struct {
	IDInventario       uint64    `gorm:"column:ID_INVENTARIO" json:"ID_INVENTARIO"`
	IDProducto         uint64    `gorm:"column:ID_PRODUCTO" json:"ID_PRODUCTO"`
	CodigoProducto     string    `gorm:"column:CODIGO_PRODUCTO" json:"CODIGO_PRODUCTO"`
	NombreProducto     string    `gorm:"column:NOMBRE_PRODUCTO" json:"NOMBRE_PRODUCTO"`
	TipoProducto       string    `gorm:"column:TIPO_PRODUCTO" json:"TIPO_PRODUCTO"`
	IDLote             uint64    `gorm:"column:ID_LOTE" json:"ID_LOTE"`
	IDUbicacion        uint64    `gorm:"column:ID_UBICACION" json:"ID_UBICACION"`
	CantidadActual     int64     `gorm:"column:CANTIDAD_ACTUAL" json:"CANTIDAD_ACTUAL"`
	FechaActualizacion time.Time `gorm:"column:FECHA_ACTUALIZACION" json:"FECHA_ACTUALIZACION"`
}

// ResumenProducto is one aggregated row of /api/inventario/resumen/productos.
type ResumenProducto struct {
	IDProducto     uint64 `gorm:"column:ID_PRODUCTO" json:"ID_PRODUCTO"`
	Codigo         string `gorm:"column:CODIGO" json:"CODIGO"`
	Nombre         string `gorm:"column:NOMBRE" json:"NOMBRE"`
	TipoProducto   string `gorm:"column:TIPO_PRODUCTO" json:"TIPO_PRODUCTO"`
	CantidadTotal  int64  `gorm:"column:CANTIDAD_TOTAL" json:"CANTIDAD_TOTAL"`
	TotalRegistros int64  `gorm:"column:TOTAL_REGISTROS" json:"TOTAL_REGISTROS"`
}
