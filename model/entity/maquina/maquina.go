package maquina

import "time"

// Valid ESTADO variants.
const (
	EstadoActiva        = "ACTIVA"
	EstadoInactiva      = "INACTIVA"
	EstadoMantenimiento = "MANTENIMIENTO"
)

// EstadoValido reports whether e is one of the three machine states.
func EstadoValido(e string) bool {
	return e == EstadoActiva || e == EstadoInactiva || e == EstadoMantenimiento
}

// Maquina represents the MD_MAQUINA table.
type Maquina struct {
	IDMaquina            uint64     `gorm:"column:ID_MAQUINA;primaryKey;autoIncrement" json:"ID_MAQUINA"`
	Codigo               string     `gorm:"column:CODIGO;type:varchar(50);not null;uniqueIndex" json:"CODIGO"`
	Nombre               string     `gorm:"column:NOMBRE;type:varchar(100);not null" json:"NOMBRE"`
	Estado               string     `gorm:"column:ESTADO;type:varchar(20);not null" json:"ESTADO"`
	FechaCompra          *time.Time `gorm:"column:FECHA_COMPRA;type:date" json:"FECHA_COMPRA"`
	FechaInicioOperacion *time.Time `gorm:"column:FECHA_INICIO_OPERACION;type:date" json:"FECHA_INICIO_OPERACION"`
	Ubicacion            *string    `gorm:"column:UBICACION;type:varchar(150)" json:"UBICACION"`
	Observaciones        *string    `gorm:"column:OBSERVACIONES;type:text" json:"OBSERVACIONES"`
	FechaCreacion        time.Time  `gorm:"column:FECHA_CREACION;autoCreateTime" json:"FECHA_CREACION"`
}

func (Maquina) TableName() string {
	return "MD_MAQUINA"
}
