package main

import (
	"log"
	"sdesk/config"
	"sdesk/database"
	authRoutes "sdesk/routers/authRoutes"
	categoryRoutes "sdesk/routers/categoryRoutes"
	faqRoutes "sdesk/routers/faqRoutes"
	suggestionRoutes "sdesk/routers/suggestionRoutes"
	ticketRoutes "sdesk/routers/ticketRoutes"
	userRoutes "sdesk/routers/userRoutes"
	"sdesk/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	faqRoutes.SetupFAQRoutes(app)
	suggestionRoutes.SetupSuggestionRoutes(app)
	ticketRoutes.SetupTicketRoutes(app)
	userRoutes.SetupUserRoutes(app)

	// SLA breach sweep and daily digest
	scheduler := utils.InitializeSLASchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		scheduler.Stop()
		log.Fatal(err)
	}
}
