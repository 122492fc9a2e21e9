package producto

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"administracion.GO/core/cache"
	"administracion.GO/core/updates"
	productoEntity "administracion.GO/model/entity/producto"
	productoRepo "administracion.GO/model/repository/producto"
)

const cacheTag = "productos"

type productoInput struct {
	Codigo            *string `json:"codigo"`
	Nombre            *string `json:"nombre"`
	TipoProducto      *string `json:"tipoProducto"`
	ManejaVencimiento *bool   `json:"manejaVencimiento"`
	Estado            *bool   `json:"estado"`
}

func RegisterProductoRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := productoRepo.NewProductoRepository(db)
	g := apiGroup.Group("/productos")

	// POST /api/productos
	g.POST("", func(c echo.Context) error {
		var body productoInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}
		if body.Codigo == nil || *body.Codigo == "" || body.Nombre == nil || *body.Nombre == "" ||
			body.TipoProducto == nil || *body.TipoProducto == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos: codigo, nombre, tipoProducto"})
		}
		if !productoEntity.TipoValido(*body.TipoProducto) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipoProducto debe ser ALIMENTO o TANGIBLE"})
		}

		p := productoEntity.Producto{
			Codigo:            *body.Codigo,
			Nombre:            *body.Nombre,
			TipoProducto:      *body.TipoProducto,
			ManejaVencimiento: true,
			Estado:            true,
		}
		if body.ManejaVencimiento != nil {
			p.ManejaVencimiento = *body.ManejaVencimiento
		}
		if body.Estado != nil {
			p.Estado = *body.Estado
		}

		if err := repo.Crear(&p); err != nil {
			if errors.Is(err, productoRepo.ErrCodigoDuplicado) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "El código del producto ya existe"})
			}
			log.Printf("Error al crear producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al crear producto", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Producto creado exitosamente",
			"data": echo.Map{
				"idProducto":   p.IDProducto,
				"codigo":       p.Codigo,
				"nombre":       p.Nombre,
				"tipoProducto": p.TipoProducto,
			},
		})
	})

	// GET /api/productos?estado=1&tipo=ALIMENTO
	g.GET("", func(c echo.Context) error {
		var estado *bool
		if v := c.QueryParam("estado"); v != "" {
			b := v == "true" || v == "1"
			estado = &b
		}

		productos, err := repo.Listar(estado, c.QueryParam("tipo"))
		if err != nil {
			log.Printf("Error al obtener productos: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener productos", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(productos), "data": productos})
	})

	// GET /api/productos/buscar?q=texto
	g.GET("/buscar", func(c echo.Context) error {
		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": `Se requiere el parámetro de búsqueda "q"`})
		}

		if v, ok := cache.GetInstance().Get("productos:buscar:" + q); ok {
			productos := v.([]productoEntity.Producto)
			return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(productos), "data": productos})
		}

		productos, err := repo.Buscar(q)
		if err != nil {
			log.Printf("Error al buscar productos: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al buscar productos", "detalle": err.Error()})
		}
		cache.GetInstance().Set("productos:buscar:"+q, productos, 60, []string{cacheTag})
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(productos), "data": productos})
	})

	// GET /api/productos/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		p, err := repo.BuscarPorID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Producto no encontrado"})
		}
		if err != nil {
			log.Printf("Error al obtener producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener producto", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": p})
	})

	// PUT /api/productos/:id
	g.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		var body productoInput
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "JSON inválido", "detalle": err.Error()})
		}

		existe, err := repo.Existe(id)
		if err != nil {
			log.Printf("Error al actualizar producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar producto", "detalle": err.Error()})
		}
		if !existe {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Producto no encontrado"})
		}

		var campos updates.Builder
		if body.Codigo != nil {
			campos.Set("CODIGO", *body.Codigo)
		}
		if body.Nombre != nil {
			campos.Set("NOMBRE", *body.Nombre)
		}
		if body.TipoProducto != nil {
			if !productoEntity.TipoValido(*body.TipoProducto) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipoProducto debe ser ALIMENTO o TANGIBLE"})
			}
			campos.Set("TIPO_PRODUCTO", *body.TipoProducto)
		}
		if body.ManejaVencimiento != nil {
			campos.Set("MANEJA_VENCIMIENTO", *body.ManejaVencimiento)
		}
		if body.Estado != nil {
			campos.Set("ESTADO", *body.Estado)
		}

		if err := repo.Actualizar(id, &campos); err != nil {
			if errors.Is(err, updates.ErrSinCampos) {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "No se proporcionaron campos para actualizar"})
			}
			if errors.Is(err, productoRepo.ErrCodigoDuplicado) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "El código del producto ya existe"})
			}
			log.Printf("Error al actualizar producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al actualizar producto", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Producto actualizado exitosamente"})
	})

	// DELETE /api/productos/:id — soft delete
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}

		existe, err := repo.Existe(id)
		if err != nil {
			log.Printf("Error al eliminar producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar producto", "detalle": err.Error()})
		}
		if !existe {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Producto no encontrado"})
		}

		if err := repo.Desactivar(id); err != nil {
			log.Printf("Error al eliminar producto: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar producto", "detalle": err.Error()})
		}
		cache.GetInstance().InvalidateTags(cacheTag)

		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Producto desactivado exitosamente"})
	})
}
