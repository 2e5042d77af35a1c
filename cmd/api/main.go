package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/config"
	"github.com/ksarmiento/blog-backend/internal/database/pg"
	"github.com/ksarmiento/blog-backend/internal/http/router"
	"github.com/ksarmiento/blog-backend/internal/logging"
	"github.com/ksarmiento/blog-backend/internal/mail"
)

func main() {
	// load environment variables
	cfg := config.GetConfig()
	log.Println("Loaded environment", cfg.Environment)

	logging.SetupLogger("logs/api.log")

	switch cfg.Environment {
	case "development":
		gin.SetMode(gin.DebugMode)
	case "production":
		gin.SetMode(gin.ReleaseMode)
	}
	log.Printf("Gin mode set to: %s", gin.Mode())

	// initialize database connection
	db, err := pg.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB: ", err)
	}
	defer sqlDB.Close()

	mailer, err := mail.NewMailer(cfg)
	if err != nil {
		log.Fatal("Failed to configure mailer: ", err)
	}

	r := router.NewRouter(cfg, db, mailer)
	log.Println("Starting server on port " + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
