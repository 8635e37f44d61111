package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/mindmesh/internship_enrollment/database"
	"github.com/mindmesh/internship_enrollment/handlers"
	"github.com/mindmesh/internship_enrollment/jobs"
	"github.com/mindmesh/internship_enrollment/notifications"
	"github.com/mindmesh/internship_enrollment/payments"
	"github.com/mindmesh/internship_enrollment/repository"
	"github.com/mindmesh/internship_enrollment/routes"
	"github.com/mindmesh/internship_enrollment/services"
	"github.com/mindmesh/internship_enrollment/storage"
	"github.com/mindmesh/internship_enrollment/websocket"
	"github.com/mindmesh/internship_enrollment/wizard"
	"github.com/robfig/cron/v3"
)

const sessionTTL = time.Hour

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	enrollmentRepo := repository.NewEnrollmentRepository(database.DB)

	resumeStore, err := storage.NewCloudinaryStore()
	if err != nil {
		log.Fatalf("🔥 Failed to initialize resume storage: %v", err)
	}

	razorpay := payments.NewRazorpayService()

	enrollmentService := services.NewEnrollmentService(
		enrollmentRepo,
		resumeStore,
		services.NewFunnelNotifier(),
		websocket.FeedPublisher{},
	)

	sessions := wizard.NewStore(sessionTTL)

	wizardHandler := handlers.NewWizardHandler(sessions, enrollmentService, razorpay)
	adminHandler := handlers.NewAdminHandler(enrollmentRepo, razorpay)

	go websocket.RunHub()

	c := cron.New()
	c.AddFunc("*/15 * * * *", func() { jobs.SweepSessions(sessions) })
	c.AddFunc("0 * * * *", func() { jobs.ReconcilePayments(enrollmentRepo, razorpay) })
	go c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Internship Enrollment",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		BodyLimit:     8 * 1024 * 1024, // resume uploads top out at 5MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Kolkata",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.PublicRoutes(app)
	routes.AuthRoutes(app)
	routes.EnrollmentRoutes(app, wizardHandler)
	routes.AdminRoutes(app, adminHandler)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
