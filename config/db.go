package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens the administración schema. Credentials have no defaults:
// DB_ADMIN_USER, DB_ADMIN_PASS, DB_ADMIN_HOST and DB_ADMIN_BASENAME must be
// set, only DB_PORT falls back to 3306.
func NewDB() (*gorm.DB, error) {
	user := os.Getenv("DB_ADMIN_USER")
	pass := os.Getenv("DB_ADMIN_PASS")
	host := os.Getenv("DB_ADMIN_HOST")
	base := os.Getenv("DB_ADMIN_BASENAME")
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "3306"
	}
	if user == "" || pass == "" || host == "" || base == "" {
		return nil, fmt.Errorf("config/db: DB_ADMIN_USER, DB_ADMIN_PASS, DB_ADMIN_HOST y DB_ADMIN_BASENAME son requeridos")
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=Local", user, pass, host, port, base)

	logMode := logger.Info
	if os.Getenv("GORM_LOG") == "off" {
		logMode = logger.Silent
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logMode,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}
