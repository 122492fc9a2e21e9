package apitest

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func crearMaquina(t *testing.T, e *echo.Echo, codigo, nombre, estado string) uint64 {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/maquinas", map[string]interface{}{
		"codigo": codigo,
		"nombre": nombre,
		"estado": estado,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("crear máquina %s: status = %d, body = %s", codigo, rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	data := body["data"].(map[string]interface{})
	return uint64(data["idMaquina"].(float64))
}

func TestMaquinaCrear(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)

	rec := doJSON(e, http.MethodPost, "/api/maquinas", map[string]interface{}{
		"codigo":      "MAQ-001",
		"nombre":      "Expendedora norte",
		"estado":      "ACTIVA",
		"fechaCompra": "2024-03-15",
		"ubicacion":   "Piso 2",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Máquina creada exitosamente" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestMaquinaCrearValidaciones(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)

	rec := doJSON(e, http.MethodPost, "/api/maquinas", map[string]interface{}{
		"codigo": "MAQ-001",
		"nombre": "Expendedora",
		"estado": "APAGADA",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("estado inválido: status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "estado debe ser ACTIVA, INACTIVA o MANTENIMIENTO" {
		t.Errorf("error = %v", body["error"])
	}

	rec = doJSON(e, http.MethodPost, "/api/maquinas", map[string]interface{}{
		"codigo":      "MAQ-001",
		"nombre":      "Expendedora",
		"estado":      "ACTIVA",
		"fechaCompra": "15/03/2024",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("fecha inválida: status = %d", rec.Code)
	}
}

func TestMaquinaCodigoDuplicado(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)
	crearMaquina(t, e, "MAQ-001", "Expendedora", "ACTIVA")

	rec := doJSON(e, http.MethodPost, "/api/maquinas", map[string]interface{}{
		"codigo": "MAQ-001",
		"nombre": "Otra",
		"estado": "ACTIVA",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["error"] != "El código de la máquina ya existe" {
		t.Error("mensaje de duplicado inesperado")
	}
}

func TestMaquinaListarYBuscar(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)
	crearMaquina(t, e, "MAQ-001", "Expendedora norte", "ACTIVA")
	crearMaquina(t, e, "MAQ-002", "Expendedora sur", "MANTENIMIENTO")

	rec := doJSON(e, http.MethodGet, "/api/maquinas?estado=mantenimiento", nil)
	body := decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Errorf("estado=mantenimiento: total = %v", body["total"])
	}

	rec = doJSON(e, http.MethodGet, "/api/maquinas/buscar?q=sur", nil)
	body = decodeBody(t, rec)
	if body["total"].(float64) != 1 {
		t.Fatalf("buscar: total = %v", body["total"])
	}
	fila := body["data"].([]interface{})[0].(map[string]interface{})
	if fila["CODIGO"] != "MAQ-002" {
		t.Errorf("CODIGO = %v", fila["CODIGO"])
	}
}

func TestMaquinaCambiarEstado(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)
	id := crearMaquina(t, e, "MAQ-001", "Expendedora", "ACTIVA")

	rec := doJSON(e, http.MethodPatch, fmt.Sprintf("/api/maquinas/%d/estado", id), map[string]interface{}{
		"estado": "MANTENIMIENTO",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["message"] != "Estado de máquina cambiado a MANTENIMIENTO" {
		t.Error("mensaje inesperado")
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/maquinas/%d", id), nil)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	if data["ESTADO"] != "MANTENIMIENTO" {
		t.Errorf("ESTADO = %v", data["ESTADO"])
	}

	rec = doJSON(e, http.MethodPatch, "/api/maquinas/9999/estado", map[string]interface{}{
		"estado": "ACTIVA",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("inexistente: status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPatch, fmt.Sprintf("/api/maquinas/%d/estado", id), map[string]interface{}{
		"estado": "ROTA",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("estado inválido: status = %d", rec.Code)
	}
}

func TestMaquinaActualizarParcial(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)
	id := crearMaquina(t, e, "MAQ-001", "Expendedora", "ACTIVA")

	rec := doJSON(e, http.MethodPut, fmt.Sprintf("/api/maquinas/%d", id), map[string]interface{}{
		"ubicacion":     "Bodega central",
		"observaciones": "Reubicada",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/maquinas/%d", id), nil)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	if data["UBICACION"] != "Bodega central" {
		t.Errorf("UBICACION = %v", data["UBICACION"])
	}
	if data["NOMBRE"] != "Expendedora" {
		t.Errorf("NOMBRE cambió: %v", data["NOMBRE"])
	}
}

func TestMaquinaEliminarPasaAInactiva(t *testing.T) {
	e := apiTestServer(t, apiTestDB(t), nil)
	id := crearMaquina(t, e, "MAQ-001", "Expendedora", "ACTIVA")

	rec := doJSON(e, http.MethodDelete, fmt.Sprintf("/api/maquinas/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/maquinas/%d", id), nil)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	if data["ESTADO"] != "INACTIVA" {
		t.Errorf("ESTADO = %v", data["ESTADO"])
	}
}
