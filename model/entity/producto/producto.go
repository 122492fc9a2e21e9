package producto

import "time"

// Valid TIPO_PRODUCTO variants.
const (
	TipoAlimento = "ALIMENTO"
	TipoTangible = "TANGIBLE"
)

// TipoValido reports whether t is one of the two product type variants.
func TipoValido(t string) bool {
	return t == TipoAlimento || t == TipoTangible
}

// Producto represents the MD_PRODUCTOS table.
type Producto struct {
	IDProducto        uint64    `gorm:"column:ID_PRODUCTO;primaryKey;autoIncrement" json:"ID_PRODUCTO"`
	Codigo            string    `gorm:"column:CODIGO;type:varchar(50);not null;uniqueIndex" json:"CODIGO"`
	Nombre            string    `gorm:"column:NOMBRE;type:varchar(150);not null" json:"NOMBRE"`
	TipoProducto      string    `gorm:"column:TIPO_PRODUCTO;type:varchar(20);not null" json:"TIPO_PRODUCTO"`
	ManejaVencimiento bool      `gorm:"column:MANEJA_VENCIMIENTO;not null" json:"MANEJA_VENCIMIENTO"`
	Estado            bool      `gorm:"column:ESTADO;not null" json:"ESTADO"`
	FechaCreacion     time.Time `gorm:"column:FECHA_CREACION;autoCreateTime" json:"FECHA_CREACION"`
}

func (Producto) TableName() string {
	return "MD_PRODUCTOS"
}
