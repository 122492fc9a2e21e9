package apitest

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	imagenApi "administracion.GO/api/imagen"
	inventarioApi "administracion.GO/api/inventario"
	maquinaApi "administracion.GO/api/maquina"
	productoApi "administracion.GO/api/producto"
	"administracion.GO/core/cache"
	imagenEntity "administracion.GO/model/entity/imagen"
	inventarioEntity "administracion.GO/model/entity/inventario"
	maquinaEntity "administracion.GO/model/entity/maquina"
	productoEntity "administracion.GO/model/entity/producto"
	imagenService "administracion.GO/service/imagen"
)

func apiTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&productoEntity.Producto{},
		&maquinaEntity.Maquina{},
		&inventarioEntity.Inventario{},
		&imagenEntity.Imagen{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func apiTestServer(t *testing.T, db *gorm.DB, blobs imagenService.BlobStore) *echo.Echo {
	t.Helper()
	// The search cache is a process-wide singleton; start each test clean
	cache.GetInstance().InvalidateTags("productos", "maquinas")

	e := echo.New()
	apiGroup := e.Group("/api")
	productoApi.RegisterProductoRoutes(apiGroup, db)
	maquinaApi.RegisterMaquinaRoutes(apiGroup, db)
	inventarioApi.RegisterInventarioRoutes(apiGroup, db)
	if blobs != nil {
		imagenApi.RegisterImagenRoutes(apiGroup, db, blobs)
	}
	return e
}

func doJSON(e *echo.Echo, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}
