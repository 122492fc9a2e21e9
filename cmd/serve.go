package cmd

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	imagenApi "administracion.GO/api/imagen"
	inventarioApi "administracion.GO/api/inventario"
	maquinaApi "administracion.GO/api/maquina"
	productoApi "administracion.GO/api/producto"
	"administracion.GO/config"
	"administracion.GO/cron"
	imagenService "administracion.GO/service/imagen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServer() {
	config.LoadAppConfig()

	config.InitRedis()
	redisStatus := "Redis not configured, caching disabled."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	if err := config.InitMinio(); err != nil {
		log.Fatalf("failed to configure object storage: %v", err)
	}
	if err := config.CheckMinioBucket(context.Background()); err != nil {
		log.Fatalf("object storage check failed: %v", err)
	}
	log.Println("Object storage connection successful.")

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	e := newServer(db)

	heartbeat := cron.StartHeartbeat(db)
	defer heartbeat.Stop()

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}

// newServer assembles the echo instance with middlewares and every route.
func newServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	productoApi.RegisterProductoRoutes(apiGroup, db)
	maquinaApi.RegisterMaquinaRoutes(apiGroup, db)
	inventarioApi.RegisterInventarioRoutes(apiGroup, db)
	imagenApi.RegisterImagenRoutes(apiGroup, db, imagenService.NewMinioStore())

	// Docker healthcheck
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "API Administración - Sistema Completo",
			"version": "1.0.0",
			"endpoints": echo.Map{
				"imagenes": echo.Map{
					"upload":         "POST /api/imagenes/upload",
					"getByEntity":    "GET /api/imagenes/entidad/:tipoEntidad/:idEntidad",
					"deleteByEntity": "DELETE /api/imagenes/entidad/:tipoEntidad/:idEntidad",
					"getById":        "GET /api/imagenes/:id",
					"delete":         "DELETE /api/imagenes/:id",
				},
				"productos": echo.Map{
					"crear":      "POST /api/productos",
					"listar":     "GET /api/productos",
					"buscar":     "GET /api/productos/buscar?q=texto",
					"obtener":    "GET /api/productos/:id",
					"actualizar": "PUT /api/productos/:id",
					"eliminar":   "DELETE /api/productos/:id",
				},
				"maquinas": echo.Map{
					"crear":         "POST /api/maquinas",
					"listar":        "GET /api/maquinas",
					"buscar":        "GET /api/maquinas/buscar?q=texto",
					"obtener":       "GET /api/maquinas/:id",
					"actualizar":    "PUT /api/maquinas/:id",
					"cambiarEstado": "PATCH /api/maquinas/:id/estado",
					"eliminar":      "DELETE /api/maquinas/:id",
				},
				"inventario": echo.Map{
					"crear":      "POST /api/inventario",
					"listar":     "GET /api/inventario",
					"detallado":  "GET /api/inventario/detallado",
					"resumen":    "GET /api/inventario/resumen/productos",
					"obtener":    "GET /api/inventario/:id",
					"actualizar": "PUT /api/inventario/:id",
					"ajustar":    "PATCH /api/inventario/:id/ajustar",
					"eliminar":   "DELETE /api/inventario/:id",
				},
			},
		})
	})

	return e
}
