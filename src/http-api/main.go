package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jack-barr3tt/stk-engine/src/common/utils"
	"github.com/jack-barr3tt/stk-engine/src/http-api/api"
)

func main() {
	utils.LoadEnv()
	utils.InitLogger()
	defer utils.SyncLogger()
	log := utils.GetLogger()

	app := fiber.New(fiber.Config{
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Use(recover.New())

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()

		path := c.Path()
		if path != "/health" && path != "/metrics" {
			log.Infow("request", "method", c.Method(), "path", path, "status", c.Response().StatusCode())
		}

		return err
	})

	app.Use(cors.New(cors.Config{
		ExposeHeaders: "X-Chart-Id",
	}))

	server, err := api.NewServer(context.Background())
	if err != nil {
		log.Fatalw("failed to start http api server", "error", err)
		return
	}

	api.RegisterHandlers(app, server)

	addr := utils.GetEnv("HTTP_ADDR", ":3000")
	if err := app.Listen(addr); err != nil {
		log.Fatalw("fiber listen failed", "error", err)
	}
}
