package inventario

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"administracion.GO/config"
	"administracion.GO/core/updates"
	inventarioEntity "administracion.GO/model/entity/inventario"
	inventarioRepo "administracion.GO/model/repository/inventario"
	inventarioService "administracion.GO/service/inventario"
)

const (
	resumenCacheKey = "inventario:resumen:productos"
	resumenTTL      = 60 * time.Second
)

type inventarioInput struct {
	IDProducto     *uint64 `json:"idProducto"`
	IDLote         *uint64 `json:"idLote"`
	IDUbicacion    *uint64 `json:"idUbicacion"`
	CantidadActual *int64  `json:"cantidadActual"`
}

type ajusteInput struct {
	Cantidad *int64  `json:"cantidad"`
	Tipo     *string `json:"tipo"`
}

// invalidarResumen drops the cached summary after any inventory mutation.
func invalidarResumen() {
	if config.RedisClient != nil {
		config.RedisClient.Del(config.RedisCtx(), resumenCacheKey)
	}
}

func RegisterInventarioRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo, err := inventarioRepo.NewInventarioRepository(db)
	if err != nil {
		log.Panicf("api/inventario: %v", err)
	}
	g := apiGroup.Group("/inventario")

	// POST /api/inventario
	g.POST("", func(c echo.Context) error {
		var body inventarioInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}
		if body.IDProducto == nil || body.IDLote == nil || body.IDUbicacion == nil || body.CantidadActual == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Faltan campos requeridos: idProducto, idLote, idUbicacion, cantidadActual",
			})
		}
		if *body.CantidadActual < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "La cantidad actual no puede ser negativa"})
		}

		inv := inventarioEntity.Inventario{
			IDProducto:     *body.IDProducto,
			IDLote:         *body.IDLote,
			IDUbicacion:    *body.IDUbicacion,
			CantidadActual: *body.CantidadActual,
		}
		if err := repo.Crear(&inv); err != nil {
			log.Printf("Error al crear inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al crear inventario", "detalle": err.Error()})
		}
		invalidarResumen()

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Inventario creado exitosamente",
			"data": echo.Map{
				"idInventario":   inv.IDInventario,
				"idProducto":     inv.IDProducto,
				"idLote":         inv.IDLote,
				"idUbicacion":    inv.IDUbicacion,
				"cantidadActual": inv.CantidadActual,
			},
		})
	})

	// GET /api/inventario?idProducto=1&idUbicacion=5&idLote=2
	g.GET("", func(c echo.Context) error {
		filas, err := repo.Listar(c.QueryParam("idProducto"), c.QueryParam("idUbicacion"), c.QueryParam("idLote"))
		if err != nil {
			log.Printf("Error al obtener inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener inventario", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(filas), "data": filas})
	})

	// GET /api/inventario/detallado
	g.GET("/detallado", func(c echo.Context) error {
		filas, err := repo.ListarDetallado(c.QueryParam("idProducto"), c.QueryParam("idUbicacion"))
		if err != nil {
			log.Printf("Error al obtener inventario detallado: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener inventario detallado", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(filas), "data": filas})
	})

	// GET /api/inventario/resumen/productos
	g.GET("/resumen/productos", func(c echo.Context) error {
		if config.RedisClient != nil {
			if cached, err := config.RedisClient.Get(config.RedisCtx(), resumenCacheKey).Result(); err == nil {
				return c.JSONBlob(http.StatusOK, []byte(cached))
			}
		}

		resumen, err := repo.ResumenPorProducto()
		if err != nil {
			log.Printf("Error al obtener resumen: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener resumen", "detalle": err.Error()})
		}

		respuesta := echo.Map{"success": true, "total": len(resumen), "data": resumen}
		if config.RedisClient != nil {
			if raw, err := json.Marshal(respuesta); err == nil {
				config.RedisClient.Set(config.RedisCtx(), resumenCacheKey, raw, resumenTTL)
			}
		}
		return c.JSON(http.StatusOK, respuesta)
	})

	// GET /api/inventario/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		fila, err := repo.DetallePorID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro de inventario no encontrado"})
		}
		if err != nil {
			log.Printf("Error al obtener inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener inventario", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": fila})
	})

	// PUT /api/inventario/:id
	g.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		var body inventarioInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}

		existe, err := repo.Existe(id)
		if err != nil {
			log.Printf("Error al actualizar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar inventario", "detalle": err.Error()})
		}
		if !existe {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro de inventario no encontrado"})
		}

		var campos updates.Builder
		if body.CantidadActual != nil {
			if *body.CantidadActual < 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "La cantidad actual no puede ser negativa"})
			}
			campos.Set("CANTIDAD_ACTUAL", *body.CantidadActual)
		}
		if body.IDLote != nil {
			campos.Set("ID_LOTE", *body.IDLote)
		}
		if body.IDUbicacion != nil {
			campos.Set("ID_UBICACION", *body.IDUbicacion)
		}
		if campos.Empty() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No se proporcionaron campos para actualizar"})
		}
		// Timestamp refresh rides along on every update
		campos.SetExpr("FECHA_ACTUALIZACION = CURRENT_TIMESTAMP")

		if err := repo.Actualizar(id, &campos); err != nil {
			log.Printf("Error al actualizar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar inventario", "detalle": err.Error()})
		}
		invalidarResumen()

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Inventario actualizado exitosamente"})
	})

	// PATCH /api/inventario/:id/ajustar
	g.PATCH("/:id/ajustar", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		var body ajusteInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}
		if body.Cantidad == nil || *body.Cantidad == 0 || body.Tipo == nil || *body.Tipo == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos: cantidad, tipo"})
		}
		if !inventarioService.TipoAjusteValido(*body.Tipo) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipo debe ser ENTRADA o SALIDA"})
		}

		anterior, err := repo.CantidadActual(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro de inventario no encontrado"})
		}
		if err != nil {
			log.Printf("Error al ajustar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al ajustar inventario", "detalle": err.Error()})
		}

		nueva, err := inventarioService.Ajustar(anterior, *body.Cantidad, *body.Tipo)
		if err != nil {
			var insuf *inventarioService.ErrStockInsuficiente
			if errors.As(err, &insuf) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":              "No hay suficiente inventario para realizar la salida",
					"cantidadActual":     insuf.CantidadActual,
					"cantidadSolicitada": insuf.CantidadSolicitada,
				})
			}
			log.Printf("Error al ajustar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al ajustar inventario", "detalle": err.Error()})
		}

		if err := repo.ActualizarCantidad(id, nueva); err != nil {
			log.Printf("Error al ajustar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al ajustar inventario", "detalle": err.Error()})
		}
		invalidarResumen()

		return c.JSON(http.StatusOK, echo.Map{
			"success": true,
			"message": fmt.Sprintf("%s registrada exitosamente", *body.Tipo),
			"data": echo.Map{
				"cantidadAnterior": anterior,
				"cantidadAjustada": *body.Cantidad,
				"cantidadNueva":    nueva,
			},
		})
	})

	// DELETE /api/inventario/:id — hard delete
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}

		if err := repo.Eliminar(id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Registro de inventario no encontrado"})
			}
			log.Printf("Error al eliminar inventario: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar inventario", "detalle": err.Error()})
		}
		invalidarResumen()

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Registro de inventario eliminado exitosamente"})
	})
}
