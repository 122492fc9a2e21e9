package imagen

import "time"

// Valid TIPO_ENTIDAD variants.
const (
	EntidadInventario = "INVENTARIO"
	EntidadArqueo     = "ARQUEO"
)

// EntidadValida reports whether t is one of the two entity discriminators.
func EntidadValida(t string) bool {
	return t == EntidadInventario || t == EntidadArqueo
}

// Imagen represents the MD_IMAGENES metadata table. The blob itself lives in
// object storage under RutaImagen.
type Imagen struct {
	IDImagen      uint64    `gorm:"column:ID_IMAGEN;primaryKey;autoIncrement" json:"ID_IMAGEN"`
	TipoEntidad   string    `gorm:"column:TIPO_ENTIDAD;type:varchar(20);not null;index:idx_imagen_entidad" json:"TIPO_ENTIDAD"`
	IDEntidad     uint64    `gorm:"column:ID_ENTIDAD;not null;index:idx_imagen_entidad" json:"ID_ENTIDAD"`
	RutaImagen    string    `gorm:"column:RUTA_IMAGEN;type:varchar(255);not null" json:"RUTA_IMAGEN"`
	NombreArchivo string    `gorm:"column:NOMBRE_ARCHIVO;type:varchar(150)" json:"NOMBRE_ARCHIVO"`
	TipoArchivo   string    `gorm:"column:TIPO_ARCHIVO;type:varchar(50)" json:"TIPO_ARCHIVO"`
	TamanoBytes   int64     `gorm:"column:TAMANO_BYTES" json:"TAMANO_BYTES"`
	FechaCarga    time.Time `gorm:"column:FECHA_CARGA;autoCreateTime" json:"FECHA_CARGA"`
	LoginRegistro string    `gorm:"column:LOGINREGISTRO;type:varchar(100)" json:"LOGINREGISTRO"`
}

func (Imagen) TableName() string {
	return "MD_IMAGENES"
}
