package producto

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"administracion.GO/core/updates"
	productoEntity "administracion.GO/model/entity/producto"
)

// ErrCodigoDuplicado is returned when CODIGO collides with an existing row.
var ErrCodigoDuplicado = errors.New("el código del producto ya existe")

type ProductoRepository struct {
	db *gorm.DB
}

func NewProductoRepository(db *gorm.DB) *ProductoRepository {
	return &ProductoRepository{db: db}
}

func esDuplicado(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// MySQL 1062 / sqlite constraint message, for paths gorm does not translate
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}

// Crear inserts a product, mapping a CODIGO collision to ErrCodigoDuplicado.
func (r *ProductoRepository) Crear(p *productoEntity.Producto) error {
	if err := r.db.Create(p).Error; err != nil {
		if esDuplicado(err) {
			return ErrCodigoDuplicado
		}
		return err
	}
	return nil
}

// Listar returns products, optionally filtered by exact ESTADO and
// TIPO_PRODUCTO, ordered by name.
func (r *ProductoRepository) Listar(estado *bool, tipo string) ([]productoEntity.Producto, error) {
	q := r.db.Model(&productoEntity.Producto{})
	if estado != nil {
		q = q.Where("ESTADO = ?", *estado)
	}
	if tipo != "" {
		q = q.Where("TIPO_PRODUCTO = ?", strings.ToUpper(tipo))
	}
	var productos []productoEntity.Producto
	err := q.Order("NOMBRE ASC").Find(&productos).Error
	return productos, err
}

// BuscarPorID returns one product or gorm.ErrRecordNotFound.
func (r *ProductoRepository) BuscarPorID(id uint64) (*productoEntity.Producto, error) {
	var p productoEntity.Producto
	if err := r.db.Where("ID_PRODUCTO = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// Buscar matches NOMBRE or CODIGO by substring among active products,
// capped at 50 rows ordered by name.
func (r *ProductoRepository) Buscar(q string) ([]productoEntity.Producto, error) {
	patron := "%" + q + "%"
	var productos []productoEntity.Producto
	err := r.db.
		Where("(NOMBRE LIKE ? OR CODIGO LIKE ?) AND ESTADO = ?", patron, patron, true).
		Order("NOMBRE ASC").
		Limit(50).
		Find(&productos).Error
	return productos, err
}

// Existe reports whether the product row is present.
func (r *ProductoRepository) Existe(id uint64) (bool, error) {
	var n int64
	err := r.db.Model(&productoEntity.Producto{}).Where("ID_PRODUCTO = ?", id).Count(&n).Error
	return n > 0, err
}

// Actualizar executes the rendered partial update. The caller validates
// enum fields and checks existence first.
func (r *ProductoRepository) Actualizar(id uint64, campos *updates.Builder) error {
	query, args, err := campos.Render("MD_PRODUCTOS", "ID_PRODUCTO", id)
	if err != nil {
		return err
	}
	if err := r.db.Exec(query, args...).Error; err != nil {
		if esDuplicado(err) {
			return ErrCodigoDuplicado
		}
		return err
	}
	return nil
}

// Desactivar is the soft delete: ESTADO flips to 0, the row stays.
func (r *ProductoRepository) Desactivar(id uint64) error {
	return r.db.Exec("UPDATE MD_PRODUCTOS SET ESTADO = 0 WHERE ID_PRODUCTO = ?", id).Error
}
