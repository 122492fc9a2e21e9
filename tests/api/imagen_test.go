package apitest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"administracion.GO/config"
)

// fakeBlobStore records calls so tests can assert the order between object
// storage and metadata writes.
type fakeBlobStore struct {
	puts       []string
	removes    []string
	removeAlls [][]string
	failPut    bool
}

func (f *fakeBlobStore) Put(ctx context.Context, ruta string, r io.Reader, size int64, contentType, nombreOriginal string) error {
	if f.failPut {
		return fmt.Errorf("almacenamiento caído")
	}
	f.puts = append(f.puts, ruta)
	return nil
}

func (f *fakeBlobStore) Remove(ctx context.Context, ruta string) error {
	f.removes = append(f.removes, ruta)
	return nil
}

func (f *fakeBlobStore) RemoveAll(ctx context.Context, rutas []string) error {
	f.removeAlls = append(f.removeAlls, rutas)
	return nil
}

func (f *fakeBlobStore) llamadas() int {
	return len(f.puts) + len(f.removes) + len(f.removeAlls)
}

// subirImagen builds the multipart body by hand so the file part carries a
// real Content-Type header instead of application/octet-stream.
func subirImagen(t *testing.T, e *echo.Echo, nombreArchivo, contentType, tipoEntidad, idEntidad string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imagen"; filename="%s"`, nombreArchivo))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatalf("crear parte: %v", err)
	}
	part.Write([]byte("contenido-de-prueba"))

	if tipoEntidad != "" {
		w.WriteField("tipoEntidad", tipoEntidad)
	}
	if idEntidad != "" {
		w.WriteField("idEntidad", idEntidad)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/imagenes/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func minioTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MINIO_ENDPOINT", "minio.local")
	t.Setenv("MINIO_PORT", "9000")
	bucketAnterior := config.MinioBucket
	config.MinioBucket = "imagenes"
	t.Cleanup(func() { config.MinioBucket = bucketAnterior })
}

func TestImagenSubir(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	rec := subirImagen(t, e, "foto.png", "image/png", "INVENTARIO", "42")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Imagen subida exitosamente" {
		t.Errorf("message = %v", body["message"])
	}
	data := body["data"].(map[string]interface{})
	ruta := data["rutaImagen"].(string)
	if !strings.HasPrefix(ruta, "inventario/") || !strings.HasSuffix(ruta, ".png") {
		t.Errorf("rutaImagen = %q", ruta)
	}
	if data["url"] != "http://minio.local:9000/imagenes/"+ruta {
		t.Errorf("url = %v", data["url"])
	}
	if len(blobs.puts) != 1 || blobs.puts[0] != ruta {
		t.Errorf("puts = %v", blobs.puts)
	}
}

func TestImagenSubirValidaciones(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	// Sin archivo
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("tipoEntidad", "INVENTARIO")
	w.WriteField("idEntidad", "42")
	w.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/imagenes/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("sin archivo: status = %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "No se proporcionó ninguna imagen" {
		t.Error("mensaje sin archivo inesperado")
	}

	rec = subirImagen(t, e, "foto.png", "image/png", "", "42")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("sin tipoEntidad: status = %d", rec.Code)
	}

	rec = subirImagen(t, e, "foto.png", "image/png", "FACTURA", "42")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("tipoEntidad inválido: status = %d", rec.Code)
	}

	rec = subirImagen(t, e, "reporte.pdf", "application/pdf", "INVENTARIO", "42")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no imagen: status = %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "Solo se permiten archivos de imagen" {
		t.Error("mensaje de tipo de archivo inesperado")
	}

	// Ninguna validación fallida debe haber tocado el almacenamiento
	if blobs.llamadas() != 0 {
		t.Errorf("llamadas a almacenamiento = %d", blobs.llamadas())
	}
}

func TestImagenSubirFallaAlmacenamiento(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{failPut: true}
	e := apiTestServer(t, apiTestDB(t), blobs)

	rec := subirImagen(t, e, "foto.png", "image/png", "INVENTARIO", "42")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Sin blob no hay fila de metadatos
	rec = doJSON(e, http.MethodGet, "/api/imagenes/entidad/INVENTARIO/42", nil)
	if decodeBody(t, rec)["total"].(float64) != 0 {
		t.Error("se registraron metadatos pese al fallo de almacenamiento")
	}
}

func TestImagenListarPorEntidad(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	subirImagen(t, e, "a.png", "image/png", "INVENTARIO", "42")
	subirImagen(t, e, "b.jpg", "image/jpeg", "INVENTARIO", "42")
	subirImagen(t, e, "c.png", "image/png", "ARQUEO", "42")

	// El discriminador en minúsculas se normaliza
	rec := doJSON(e, http.MethodGet, "/api/imagenes/entidad/inventario/42", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["total"].(float64) != 2 {
		t.Fatalf("total = %v", body["total"])
	}
	fila := body["data"].([]interface{})[0].(map[string]interface{})
	ruta := fila["RUTA_IMAGEN"].(string)
	if fila["url"] != "http://minio.local:9000/imagenes/"+ruta {
		t.Errorf("url = %v", fila["url"])
	}

	rec = doJSON(e, http.MethodGet, "/api/imagenes/entidad/FACTURA/42", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("tipoEntidad inválido: status = %d", rec.Code)
	}
}

func TestImagenEliminarPorID(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	rec := subirImagen(t, e, "foto.png", "image/png", "INVENTARIO", "42")
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	id := uint64(data["idImagen"].(float64))
	ruta := data["rutaImagen"].(string)

	rec = doJSON(e, http.MethodDelete, fmt.Sprintf("/api/imagenes/%d", id), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(blobs.removes) != 1 || blobs.removes[0] != ruta {
		t.Errorf("removes = %v", blobs.removes)
	}

	rec = doJSON(e, http.MethodGet, fmt.Sprintf("/api/imagenes/%d", id), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("tras eliminar: status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/imagenes/9999", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("inexistente: status = %d", rec.Code)
	}
}

func TestImagenEliminarPorEntidad(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	subirImagen(t, e, "a.png", "image/png", "INVENTARIO", "42")
	subirImagen(t, e, "b.png", "image/png", "INVENTARIO", "42")
	subirImagen(t, e, "c.png", "image/png", "INVENTARIO", "7")

	rec := doJSON(e, http.MethodDelete, "/api/imagenes/entidad/INVENTARIO/42", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["eliminadas"].(float64) != 2 {
		t.Errorf("eliminadas = %v", body["eliminadas"])
	}
	if len(blobs.removeAlls) != 1 || len(blobs.removeAlls[0]) != 2 {
		t.Errorf("removeAlls = %v", blobs.removeAlls)
	}

	// La otra entidad queda intacta
	rec = doJSON(e, http.MethodGet, "/api/imagenes/entidad/INVENTARIO/7", nil)
	if decodeBody(t, rec)["total"].(float64) != 1 {
		t.Error("se eliminaron imágenes de otra entidad")
	}
}

func TestImagenEliminarPorEntidadSinFilas(t *testing.T) {
	minioTestEnv(t)
	blobs := &fakeBlobStore{}
	e := apiTestServer(t, apiTestDB(t), blobs)

	rec := doJSON(e, http.MethodDelete, "/api/imagenes/entidad/ARQUEO/99", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["eliminadas"].(float64) != 0 {
		t.Errorf("eliminadas = %v", body["eliminadas"])
	}
	if body["message"] != "No hay imágenes para eliminar" {
		t.Errorf("message = %v", body["message"])
	}
	if blobs.llamadas() != 0 {
		t.Errorf("llamadas a almacenamiento = %d", blobs.llamadas())
	}
}
