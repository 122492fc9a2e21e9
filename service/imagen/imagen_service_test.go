package imagen

import (
	"strings"
	"testing"
)

func TestNombreObjeto_Prefix(t *testing.T) {
	nombre := NombreObjeto("INVENTARIO", "foto.png")
	if !strings.HasPrefix(nombre, "inventario/") {
		t.Errorf("nombre = %q, want prefix inventario/", nombre)
	}
	if !strings.HasSuffix(nombre, ".png") {
		t.Errorf("nombre = %q, want suffix .png", nombre)
	}
}

func TestNombreObjeto_Unique(t *testing.T) {
	a := NombreObjeto("ARQUEO", "a.jpg")
	b := NombreObjeto("ARQUEO", "a.jpg")
	if a == b {
		t.Errorf("two generated names collided: %q", a)
	}
}

func TestNombreObjeto_KeepsLastExtension(t *testing.T) {
	nombre := NombreObjeto("INVENTARIO", "informe.final.jpeg")
	if !strings.HasSuffix(nombre, ".jpeg") {
		t.Errorf("nombre = %q, want suffix .jpeg", nombre)
	}
}
