package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tutorhive/booking_gateway/booking"
	"github.com/tutorhive/booking_gateway/cache"
	"github.com/tutorhive/booking_gateway/client"
	config "github.com/tutorhive/booking_gateway/configs"
	"github.com/tutorhive/booking_gateway/handlers"
	"github.com/tutorhive/booking_gateway/jobs"
	"github.com/tutorhive/booking_gateway/middleware"
	"github.com/tutorhive/booking_gateway/routes"
	"github.com/tutorhive/booking_gateway/utils"
)

func main() {
	log := utils.GetLogger()
	defer log.Sync()

	backend := client.New(config.Config("BACKEND_BASE_URL"), config.Config("BACKEND_SERVICE_TOKEN"), log)
	flow := booking.New(backend, log)

	cacheTTL := config.ConfigDuration("AVAILABILITY_CACHE_TTL", 5*time.Minute)
	lookahead := time.Duration(config.ConfigInt("AVAILABILITY_LOOKAHEAD_DAYS", 28)) * 24 * time.Hour
	slots := cache.NewAvailabilityStore(cacheTTL)

	h := handlers.New(backend, flow, slots, lookahead, log)

	c := cron.New()
	c.AddFunc("*/5 * * * *", func() { jobs.RefreshAvailability(backend, slots, lookahead, log) })
	go c.Start()
	log.Info("✅ Cron job for availability refresh scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "Tutor Booking Gateway",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Error("unhandled request error",
				zap.Error(err),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(middleware.RateLimiter())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Tutor Booking Gateway",
		})
	})

	routes.BookingRoutes(app, h)
	routes.AvailabilityRoutes(app, h)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	port := config.Config("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info("✅ Server is running", zap.String("port", port))
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("🔥 Server failed to start", zap.Error(err))
	}
}
