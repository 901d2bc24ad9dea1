package main

import (
	"log"

	"gymadmin/config"
	"gymadmin/database"
	authRoutes "gymadmin/routers/authRoutes"
	memberRoutes "gymadmin/routers/memberRoutes"
	planRoutes "gymadmin/routers/planRoutes"
	"gymadmin/utils"

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
		AllowMethods: "GET,POST,PATCH,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve uploaded profile pictures and other static assets
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	memberRoutes.SetupMemberRoutes(app)
	planRoutes.SetupPlanRoutes(app)

	utils.InitializeRenewalScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
