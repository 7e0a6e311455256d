package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers reports liveness of the store and the session backend.
type Handlers struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	dbStatus := "not configured"
	if h.DB != nil {
		dbStatus = "ok"
		if sqlDB, err := h.DB.DB(); err != nil {
			dbStatus = err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = err.Error()
		}
	}

	redisStatus := "not configured"
	if h.Rdb != nil {
		redisStatus = "ok"
		if err := h.Rdb.Ping(ctx).Err(); err != nil {
			redisStatus = err.Error()
		}
	}

	status := fiber.StatusOK
	if dbStatus != "ok" && dbStatus != "not configured" {
		status = fiber.StatusServiceUnavailable
	}
	if redisStatus != "ok" && redisStatus != "not configured" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}
