package controllers

import (
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/inkwell/inkwell-server/api-service/config"
	"github.com/inkwell/inkwell-server/utils-go"
	"github.com/uptrace/bun"
	"go.uber.org/fx"
)

type HealthController struct {
	fx.In

	Db    *bun.DB
	Redis *redis.Client
}

const healthKey = "health:status"

var healthCacheTtl time.Duration

func RegisterHealthController(r *utils.Router, config *config.Config, c HealthController) {
	healthCacheTtl = time.Second * time.Duration(config.HealthCacheTtl)

	r.Get("/health", c.health)
}

// health reports database reachability. The result is cached in redis for a
// few seconds so health probes do not hammer postgres.
func (r *HealthController) health(c *fiber.Ctx) error {
	cached, err := r.Redis.Get(c.Context(), healthKey).Result()
	if err == nil {
		return healthResponse(c, cached, true)
	}

	status := "up"
	if err := r.Db.PingContext(c.Context()); err != nil {
		status = "down"
	}

	r.Redis.Set(c.Context(), healthKey, status, healthCacheTtl)

	return healthResponse(c, status, false)
}

func healthResponse(c *fiber.Ctx, database string, cached bool) error {
	if database != "up" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":   "degraded",
			"database": database,
			"cached":   cached,
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "ok",
		"database": database,
		"cached":   cached,
	})
}
