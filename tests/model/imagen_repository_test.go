package modeltest

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	imagenEntity "administracion.GO/model/entity/imagen"
	imagenRepo "administracion.GO/model/repository/imagen"
)

func TestImagenRepository_CrearYListar(t *testing.T) {
	repo := imagenRepo.NewImagenRepository(testDB(t))

	for _, ruta := range []string{"inventario/1-a.png", "inventario/2-b.png"} {
		img := &imagenEntity.Imagen{
			TipoEntidad: imagenEntity.EntidadInventario,
			IDEntidad:   7,
			RutaImagen:  ruta,
		}
		if err := repo.Crear(img); err != nil {
			t.Fatalf("Crear: %v", err)
		}
	}
	otra := &imagenEntity.Imagen{TipoEntidad: imagenEntity.EntidadArqueo, IDEntidad: 7, RutaImagen: "arqueo/3-c.png"}
	if err := repo.Crear(otra); err != nil {
		t.Fatalf("Crear: %v", err)
	}

	imagenes, err := repo.ListarPorEntidad("inventario", 7)
	if err != nil {
		t.Fatalf("ListarPorEntidad: %v", err)
	}
	if len(imagenes) != 2 {
		t.Errorf("total = %d, want 2 (tipoEntidad is matched uppercased)", len(imagenes))
	}
}

func TestImagenRepository_BuscarPorID_NoEncontrada(t *testing.T) {
	repo := imagenRepo.NewImagenRepository(testDB(t))

	_, err := repo.BuscarPorID(999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestImagenRepository_EliminarPorEntidad(t *testing.T) {
	repo := imagenRepo.NewImagenRepository(testDB(t))

	for i := 0; i < 3; i++ {
		img := &imagenEntity.Imagen{TipoEntidad: imagenEntity.EntidadInventario, IDEntidad: 9, RutaImagen: "inventario/x"}
		if err := repo.Crear(img); err != nil {
			t.Fatalf("Crear: %v", err)
		}
	}

	if err := repo.EliminarPorEntidad("inventario", 9); err != nil {
		t.Fatalf("EliminarPorEntidad: %v", err)
	}
	imagenes, err := repo.ListarPorEntidad("INVENTARIO", 9)
	if err != nil {
		t.Fatalf("ListarPorEntidad: %v", err)
	}
	if len(imagenes) != 0 {
		t.Errorf("total = %d, want 0", len(imagenes))
	}
}
