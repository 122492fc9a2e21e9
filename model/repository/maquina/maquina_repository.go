package maquina

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"administracion.GO/core/updates"
	maquinaEntity "administracion.GO/model/entity/maquina"
)

// ErrCodigoDuplicado is returned when CODIGO collides with an existing row.
var ErrCodigoDuplicado = errors.New("el código de la máquina ya existe")

type MaquinaRepository struct {
	db *gorm.DB
}

func NewMaquinaRepository(db *gorm.DB) *MaquinaRepository {
	return &MaquinaRepository{db: db}
}

func esDuplicado(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint")
}

func (r *MaquinaRepository) Crear(m *maquinaEntity.Maquina) error {
	if err := r.db.Create(m).Error; err != nil {
		if esDuplicado(err) {
			return ErrCodigoDuplicado
		}
		return err
	}
	return nil
}

// Listar returns machines, optionally filtered by exact ESTADO, ordered by name.
func (r *MaquinaRepository) Listar(estado string) ([]maquinaEntity.Maquina, error) {
	q := r.db.Model(&maquinaEntity.Maquina{})
	if estado != "" {
		q = q.Where("ESTADO = ?", strings.ToUpper(estado))
	}
	var maquinas []maquinaEntity.Maquina
	err := q.Order("NOMBRE ASC").Find(&maquinas).Error
	return maquinas, err
}

func (r *MaquinaRepository) BuscarPorID(id uint64) (*maquinaEntity.Maquina, error) {
	var m maquinaEntity.Maquina
	if err := r.db.Where("ID_MAQUINA = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Buscar matches NOMBRE or CODIGO by substring, capped at 50 rows ordered by
// name. Unlike productos, inactive machines are included.
func (r *MaquinaRepository) Buscar(q string) ([]maquinaEntity.Maquina, error) {
	patron := "%" + q + "%"
	var maquinas []maquinaEntity.Maquina
	err := r.db.
		Where("NOMBRE LIKE ? OR CODIGO LIKE ?", patron, patron).
		Order("NOMBRE ASC").
		Limit(50).
		Find(&maquinas).Error
	return maquinas, err
}

func (r *MaquinaRepository) Existe(id uint64) (bool, error) {
	var n int64
	err := r.db.Model(&maquinaEntity.Maquina{}).Where("ID_MAQUINA = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *MaquinaRepository) Actualizar(id uint64, campos *updates.Builder) error {
	query, args, err := campos.Render("MD_MAQUINA", "ID_MAQUINA", id)
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

// CambiarEstado sets ESTADO directly. Returns gorm.ErrRecordNotFound when no
// row was touched.
func (r *MaquinaRepository) CambiarEstado(id uint64, estado string) error {
	tx := r.db.Exec("UPDATE MD_MAQUINA SET ESTADO = ? WHERE ID_MAQUINA = ?", estado, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Desactivar is the soft delete: the machine goes INACTIVA, the row stays.
func (r *MaquinaRepository) Desactivar(id uint64) error {
	return r.db.Exec("UPDATE MD_MAQUINA SET ESTADO = ? WHERE ID_MAQUINA = ?", maquinaEntity.EstadoInactiva, id).Error
}
