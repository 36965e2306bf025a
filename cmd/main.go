package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/projetoso/showcase-api/internal/db"
	"github.com/projetoso/showcase-api/internal/handlers"
	"github.com/projetoso/showcase-api/internal/middleware"
	"github.com/projetoso/showcase-api/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}

	// Initialize Fiber; the body limit must fit a full project draft
	// (10 images + 1 video, each up to the per-file cap).
	app := fiber.New(fiber.Config{
		BodyLimit: storage.MaxRequestBody,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Get MongoDB settings from environment
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/showcase" // Default fallback
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "showcase"
	}

	// Connect to MongoDB
	db.ConnectMongoDB(mongoURI, mongoDB)

	// Initialize upload storage (local disk or MinIO)
	storage.Init()

	// Uploaded files are served read-only
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	app.Static("/uploads", uploadDir)

	api := app.Group("/api")

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterHandler)
	auth.Post("/login", handlers.LoginHandler)
	auth.Post("/create-admin", handlers.CreateAdminHandler)
	auth.Get("/me", middleware.AuthRequired, handlers.MeHandler)

	// Project Routes — reads are public, creation needs any
	// authenticated user, edits need admin (see middleware policy)
	projects := api.Group("/projects")
	projects.Get("/", handlers.ListProjects)
	projects.Post("/", middleware.AuthRequired, middleware.Authorize("projects", "create"), handlers.CreateProject)
	projects.Put("/:id", middleware.AuthRequired, middleware.Authorize("projects", "update"), handlers.UpdateProject)
	projects.Delete("/:id", middleware.AuthRequired, middleware.Authorize("projects", "delete"), handlers.DeleteProject)

	// Event Routes
	events := api.Group("/events")
	events.Get("/", handlers.ListEvents)
	events.Post("/", middleware.AuthRequired, middleware.Authorize("events", "create"), handlers.CreateEvent)
	events.Put("/:id", middleware.AuthRequired, middleware.Authorize("events", "update"), handlers.UpdateEvent)
	events.Delete("/:id", middleware.AuthRequired, middleware.Authorize("events", "delete"), handlers.DeleteEvent)

	// User management Routes
	users := api.Group("/users", middleware.AuthRequired)
	users.Get("/", middleware.Authorize("users", "list"), handlers.ListUsers)
	users.Get("/:id", middleware.Authorize("users", "read"), handlers.GetUserByID)
	users.Put("/:id", middleware.Authorize("users", "update"), handlers.UpdateUser)
	users.Delete("/:id", middleware.Authorize("users", "delete"), handlers.DeleteUser)

	// Get port from environment
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000" // Default port
	}

	// Start server
	log.Fatal(app.Listen(":" + port))
}
