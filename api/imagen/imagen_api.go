package imagen

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	imagenEntity "administracion.GO/model/entity/imagen"
	imagenRepo "administracion.GO/model/repository/imagen"
	imagenService "administracion.GO/service/imagen"
)

// conURL is an image row annotated with its computed retrieval URL.
type conURL struct {
	imagenEntity.Imagen
	URL string `json:"url"`
}

func anotar(img imagenEntity.Imagen) conURL {
	return conURL{Imagen: img, URL: imagenService.URLPublica(img.RutaImagen)}
}

func RegisterImagenRoutes(apiGroup *echo.Group, db *gorm.DB, blobs imagenService.BlobStore) {
	svc := imagenService.NewService(imagenRepo.NewImagenRepository(db), blobs)
	g := apiGroup.Group("/imagenes")

	// POST /api/imagenes/upload — multipart: imagen + tipoEntidad + idEntidad + loginRegistro?
	g.POST("/upload", func(c echo.Context) error {
		archivo, err := c.FormFile("imagen")
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No se proporcionó ninguna imagen"})
		}

		tipoEntidad := c.FormValue("tipoEntidad")
		idEntidadStr := c.FormValue("idEntidad")
		if tipoEntidad == "" || idEntidadStr == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Faltan campos requeridos: tipoEntidad, idEntidad"})
		}
		if !imagenEntity.EntidadValida(tipoEntidad) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipoEntidad debe ser INVENTARIO o ARQUEO"})
		}
		idEntidad, err := strconv.ParseUint(idEntidadStr, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "idEntidad inválido"})
		}

		// Bound and sniff before any storage call
		if archivo.Size > imagenService.TamanoMaximo {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "La imagen supera el tamaño máximo de 10MB"})
		}
		tipoArchivo := archivo.Header.Get("Content-Type")
		if !strings.HasPrefix(tipoArchivo, "image/") {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Solo se permiten archivos de imagen"})
		}

		contenido, err := archivo.Open()
		if err != nil {
			log.Printf("Error al subir imagen: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al subir imagen", "detalle": err.Error()})
		}
		defer contenido.Close()

		img, err := svc.Subir(c.Request().Context(), imagenService.SubirInput{
			TipoEntidad:   tipoEntidad,
			IDEntidad:     idEntidad,
			NombreArchivo: archivo.Filename,
			TipoArchivo:   tipoArchivo,
			Tamano:        archivo.Size,
			LoginRegistro: c.FormValue("loginRegistro"),
			Contenido:     contenido,
		})
		if err != nil {
			log.Printf("Error al subir imagen: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al subir imagen", "detalle": err.Error()})
		}

		return c.JSON(http.StatusCreated, echo.Map{
			"success": true,
			"message": "Imagen subida exitosamente",
			"data": echo.Map{
				"idImagen":      img.IDImagen,
				"url":           imagenService.URLPublica(img.RutaImagen),
				"rutaImagen":    img.RutaImagen,
				"nombreArchivo": img.NombreArchivo,
				"tamano":        img.TamanoBytes,
			},
		})
	})

	// GET /api/imagenes/entidad/:tipoEntidad/:idEntidad
	g.GET("/entidad/:tipoEntidad/:idEntidad", func(c echo.Context) error {
		tipoEntidad := strings.ToUpper(c.Param("tipoEntidad"))
		if !imagenEntity.EntidadValida(tipoEntidad) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tipoEntidad inválido"})
		}
		idEntidad, err := strconv.ParseUint(c.Param("idEntidad"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "idEntidad inválido"})
		}

		imagenes, err := svc.ListarPorEntidad(tipoEntidad, idEntidad)
		if err != nil {
			log.Printf("Error al obtener imágenes: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener imágenes", "detalle": err.Error()})
		}

		anotadas := make([]conURL, len(imagenes))
		for i, img := range imagenes {
			anotadas[i] = anotar(img)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "total": len(anotadas), "data": anotadas})
	})

	// DELETE /api/imagenes/entidad/:tipoEntidad/:idEntidad — bulk delete
	g.DELETE("/entidad/:tipoEntidad/:idEntidad", func(c echo.Context) error {
		tipoEntidad := strings.ToUpper(c.Param("tipoEntidad"))
		idEntidad, err := strconv.ParseUint(c.Param("idEntidad"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "idEntidad inválido"})
		}

		eliminadas, err := svc.EliminarPorEntidad(c.Request().Context(), tipoEntidad, idEntidad)
		if err != nil {
			log.Printf("Error al eliminar imágenes: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar imágenes", "detalle": err.Error()})
		}
		if eliminadas == 0 {
			return c.JSON(http.StatusOK, echo.Map{
				"success":    true,
				"message":    "No hay imágenes para eliminar",
				"eliminadas": 0,
			})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"success":    true,
			"message":    fmt.Sprintf("%d imagen(es) eliminada(s) exitosamente", eliminadas),
			"eliminadas": eliminadas,
		})
	})

	// GET /api/imagenes/:id
	g.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		img, err := svc.BuscarPorID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Imagen no encontrada"})
		}
		if err != nil {
			log.Printf("Error al obtener imagen: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al obtener imagen", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "data": anotar(*img)})
	})

	// DELETE /api/imagenes/:id
	g.DELETE("/:id", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "id inválido"})
		}
		if err := svc.EliminarPorID(c.Request().Context(), id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Imagen no encontrada"})
			}
			log.Printf("Error al eliminar imagen: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Error al eliminar imagen", "detalle": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Imagen eliminada exitosamente"})
	})
}
