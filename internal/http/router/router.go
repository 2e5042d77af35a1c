package router

import (
	"log"
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ksarmiento/blog-backend/internal/config"
	"github.com/ksarmiento/blog-backend/internal/database/store"
	"github.com/ksarmiento/blog-backend/internal/http/handlers"
	"github.com/ksarmiento/blog-backend/internal/http/middleware"
	"github.com/ksarmiento/blog-backend/internal/token"
	"github.com/ksarmiento/blog-backend/internal/upload"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, mailer handlers.ResetMailer) *gin.Engine {
	r := gin.New()
	r.Use(middleware.SlogLoggerMiddleware())
	r.Use(gin.Recovery())

	err := r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	if err != nil {
		log.Fatalf("Failed to set trusted proxies: %v", err)
	}

	slog.Info("Allowing origin", "origin", cfg.ClientOrigin)
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.ClientOrigin},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS", "DELETE"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"X-RateLimit-Limit",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}))

	maker := token.NewJWTMaker(cfg.SecretKey)
	uploads, err := upload.NewStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalf("Failed to prepare uploads directory: %v", err)
	}

	authHandler := handlers.NewAuthHandler(store.NewUsers(db), maker, mailer, cfg)
	postHandler := handlers.NewPostHandler(store.NewPosts(db), uploads)

	// Uploaded cover images are served as plain static files.
	r.Static("/uploads", cfg.UploadsDir)

	{
		auth := r.Group("/auth")
		auth.Use(middleware.RateLimit())

		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgotPassword", authHandler.ForgotPassword)
		auth.POST("/resetPassword/:id/:token", authHandler.ResetPassword)
		auth.GET("/profile", middleware.SessionAuth(maker), authHandler.Profile)
		auth.POST("/logout", authHandler.Logout)
	}

	{
		api := r.Group("/api")
		api.Use(middleware.RateLimit())

		api.POST("/createPost", middleware.SessionAuth(maker), postHandler.Create)
		// The index feed kept the creation path so existing clients
		// keep working.
		api.GET("/createPost", postHandler.List)
		api.GET("/blogPost/:id", postHandler.Get)
		api.PUT("/blogPost/:id", middleware.SessionAuth(maker), postHandler.Update)
		api.DELETE("/blogPost/:id", postHandler.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"message": "Not Found: " + c.Request.URL.Path})
	})

	return r
}
