package maquina

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"administracion.GO/core/cache"
	"administracion.GO/core/updates"
	maquinaEntity "administracion.GO/model/entity/maquina"
	maquinaRepo "administracion.GO/model/repository/maquina"
)

const cacheTag = "maquinas"

type maquinaInput struct {
	Codigo               *string `json:"codigo"`
	Nombre               *string `json:"nombre"`
	Estado               *string `json:"estado"`
	FechaCompra          *string `json:"fechaCompra"`
	FechaInicioOperacion *string `json:"fechaInicioOperacion"`
	Ubicacion            *string `json:"ubicacion"`
	Observaciones        *string `json:"observaciones"`
}

// parseFecha accepts the plain dates the clients send and RFC 3339 as a
// fallback.
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func RegisterMaquinaRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := maquinaRepo.NewMaquinaRepository(db)
	g := apiGroup.Group("/maquinas")

	// POST /api/maquinas
	g.POST("", func(c echo.Context) error {
		var body maquinaInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}
		if body.Codigo == nil || *body.Codigo == "" || body.Nombre == nil || *body.Nombre == "" ||
			body.Estado == nil || *body.Estado == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos: codigo, nombre, estado"})
		}
		if !maquinaEntity.EstadoValido(*body.Estado) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado debe ser ACTIVA, INACTIVA o MANTENIMIENTO"})
		}

		m := maquinaEntity.Maquina{
			Codigo:        *body.Codigo,
			Nombre:        *body.Nombre,
			Estado:        *body.Estado,
			Ubicacion:     body.Ubicacion,
			Observaciones: body.Observaciones,
		}
		if body.FechaCompra != nil {
			t, err := parseFecha(*body.FechaCompra)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "fechaCompra inválida", "detalle": err.Error()})
			}
			m.FechaCompra = &t
		}
		if body.FechaInicioOperacion != nil {
			t, err := parseFecha(*body.FechaInicioOperacion)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "fechaInicioOperacion inválida", "detalle": err.Error()})
			}
			m.FechaInicioOperacion = &t
		}

		if err := repo.Crear(&m); err != nil {
			if errors.Is(err, maquinaRepo.ErrCodigoDuplicado) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "El código de la máquina ya existe"})
			}
			log.Printf("Error al crear máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al crear máquina", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Máquina creada exitosamente",
			"data": echo.Map{
				"idMaquina": m.IDMaquina,
				"codigo":    m.Codigo,
				"nombre":    m.Nombre,
				"estado":    m.Estado,
			},
		})
	})

	// GET /api/maquinas?estado=ACTIVA
	g.GET("", func(c echo.Context) error {
		maquinas, err := repo.Listar(c.QueryParam("estado"))
		if err != nil {
			log.Printf("Error al obtener máquinas: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener máquinas", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(maquinas), "data": maquinas})
	})

	// GET /api/maquinas/buscar?q=texto
	g.GET("/buscar", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": `Se requiere el parámetro de búsqueda "q"`})
		}

		if v, ok := cache.GetInstance().Get("maquinas:buscar:" + q); ok {
			maquinas := v.([]maquinaEntity.Maquina)
			return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(maquinas), "data": maquinas})
		}

		maquinas, err := repo.Buscar(q)
		if err != nil {
			log.Printf("Error al buscar máquinas: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al buscar máquinas", "detalle": err.Error()})
		}
		cache.GetInstance().Set("maquinas:buscar:"+q, maquinas, 60, []string{cacheTag})
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(maquinas), "data": maquinas})
	})

	// GET /api/maquinas/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		m, err := repo.BuscarPorID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Máquina no encontrada"})
		}
		if err != nil {
			log.Printf("Error al obtener máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener máquina", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": m})
	})

	// PUT /api/maquinas/:id
	g.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		var body maquinaInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}

		existe, err := repo.Existe(id)
		if err != nil {
			log.Printf("Error al actualizar máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar máquina", "detalle": err.Error()})
		}
		if !existe {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Máquina no encontrada"})
		}

		var campos updates.Builder
		if body.Codigo != nil {
			campos.Set("CODIGO", *body.Codigo)
		}
		if body.Nombre != nil {
			campos.Set("NOMBRE", *body.Nombre)
		}
		if body.Estado != nil {
			if !maquinaEntity.EstadoValido(*body.Estado) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado debe ser ACTIVA, INACTIVA o MANTENIMIENTO"})
			}
			campos.Set("ESTADO", *body.Estado)
		}
		if body.FechaCompra != nil {
			t, err := parseFecha(*body.FechaCompra)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "fechaCompra inválida", "detalle": err.Error()})
			}
			campos.Set("FECHA_COMPRA", t)
		}
		if body.FechaInicioOperacion != nil {
			t, err := parseFecha(*body.FechaInicioOperacion)
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "fechaInicioOperacion inválida", "detalle": err.Error()})
			}
			campos.Set("FECHA_INICIO_OPERACION", t)
		}
		if body.Ubicacion != nil {
			campos.Set("UBICACION", *body.Ubicacion)
		}
		if body.Observaciones != nil {
			campos.Set("OBSERVACIONES", *body.Observaciones)
		}

		if err := repo.Actualizar(id, &campos); err != nil {
			if errors.Is(err, updates.ErrSinCampos) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "No se proporcionaron campos para actualizar"})
			}
			if errors.Is(err, maquinaRepo.ErrCodigoDuplicado) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "El código de la máquina ya existe"})
			}
			log.Printf("Error al actualizar máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar máquina", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Máquina actualizada exitosamente"})
	})

	// PATCH /api/maquinas/:id/estado
	g.PATCH("/:id/estado", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		var body maquinaInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}
		if body.Estado == nil || !maquinaEntity.EstadoValido(*body.Estado) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "estado debe ser ACTIVA, INACTIVA o MANTENIMIENTO"})
		}

		if err := repo.CambiarEstado(id, *body.Estado); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Máquina no encontrada"})
			}
			log.Printf("Error al cambiar estado: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al cambiar estado", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": fmt.Sprintf("Estado de máquina cambiado a %s", *body.Estado),
		})
	})

	// DELETE /api/maquinas/:id — soft delete
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}

		existe, err := repo.Existe(id)
		if err != nil {
			log.Printf("Error al eliminar máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar máquina", "detalle": err.Error()})
		}
		if !existe {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Máquina no encontrada"})
		}

		if err := repo.Desactivar(id); err != nil {
			log.Printf("Error al eliminar máquina: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar máquina", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Máquina desactivada exitosamente"})
	})
}
