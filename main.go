package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rdvpro/booking-api/config"
	"github.com/rdvpro/booking-api/handlers"
	"github.com/rdvpro/booking-api/middleware"
	"github.com/rdvpro/booking-api/repository"
	"github.com/rdvpro/booking-api/services"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.DatabaseName)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	utilisateurs := repository.NewUtilisateurRepository(db)
	categories := repository.NewCategorieRepository(db)
	disponibilites := repository.NewDisponibiliteRepository(db)
	rendezvous := repository.NewRendezVousRepository(db)
	notifications := repository.NewNotificationRepository(db)

	notifier := services.NewNotifier(notifications)
	authService := services.NewAuthService(utilisateurs, cfg.JWTSecret)

	h := handlers.NewHandler(
		authService,
		services.NewUtilisateurService(utilisateurs, categories),
		services.NewCategorieService(categories),
		services.NewDisponibiliteService(disponibilites, rendezvous),
		services.NewRendezVousService(rendezvous, disponibilites, utilisateurs, notifier),
		services.NewNotificationService(notifications),
		services.NewAdminService(utilisateurs, rendezvous, categories),
		services.NewChatbot(),
		cfg.UploadDir,
	)

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CorsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true,
	}))
	app.Static("/uploads", cfg.UploadDir)

	h.Routes(app, middleware.Auth(authService))

	log.Fatal(app.Listen(":" + cfg.Port))
}
