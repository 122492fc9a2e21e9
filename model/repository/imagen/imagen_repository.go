package imagen

import (
	"strings"

	"gorm.io/gorm"

	imagenEntity "administracion.GO/model/entity/imagen"
)

type ImagenRepository struct {
	db *gorm.DB
}

func NewImagenRepository(db *gorm.DB) *ImagenRepository {
	return &ImagenRepository{db: db}
}

func (r *ImagenRepository) Crear(img *imagenEntity.Imagen) error {
	return r.db.Create(img).Error
}

// ListarPorEntidad returns every metadata row for one entity, newest first.
func (r *ImagenRepository) ListarPorEntidad(tipoEntidad string, idEntidad uint64) ([]imagenEntity.Imagen, error) {
	var imagenes []imagenEntity.Imagen
	err := r.db.
		Where("TIPO_ENTIDAD = ? AND ID_ENTIDAD = ?", strings.ToUpper(tipoEntidad), idEntidad).
		Order("FECHA_CARGA DESC").
		Find(&imagenes).Error
	return imagenes, err
}

func (r *ImagenRepository) BuscarPorID(id uint64) (*imagenEntity.Imagen, error) {
	var img imagenEntity.Imagen
	if err := r.db.Where("ID_IMAGEN = ?", id).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImagenRepository) Eliminar(id uint64) error {
	return r.db.Exec("DELETE FROM MD_IMAGENES WHERE ID_IMAGEN = ?", id).Error
}

// EliminarPorEntidad removes every metadata row for one entity in a single
// statement.
func (r *ImagenRepository) EliminarPorEntidad(tipoEntidad string, idEntidad uint64) error {
	return r.db.Exec(
		"DELETE FROM MD_IMAGENES WHERE TIPO_ENTIDAD = ? AND ID_ENTIDAD = ?",
		strings.ToUpper(tipoEntidad), idEntidad,
	).Error
}
