package cron

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"administracion.GO/config"
)

// StartHeartbeat schedules a periodic storage probe: DB ping, bucket check
// and Redis ping. Failures are logged, never fatal.
func StartHeartbeat(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@every 5m", func() {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			log.Printf("heartbeat: base de datos no responde: %v", err)
		}

		if config.MinioClient != nil {
			if err := config.CheckMinioBucket(context.Background()); err != nil {
				log.Printf("heartbeat: almacenamiento de objetos no responde: %v", err)
			}
		}

		if config.RedisClient != nil {
			if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err != nil {
				log.Printf("heartbeat: redis no responde: %v", err)
			}
		}
	})
	if err != nil {
		log.Fatalf("cron/heartbeat: %v", err)
	}

	c.Start()
	return c
}
