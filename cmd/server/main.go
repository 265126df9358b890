package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	chargerAPI "github.com/evoltsoft/station-api/internal/charger/api"
	chargerRepo "github.com/evoltsoft/station-api/internal/charger/repository"
	chargerService "github.com/evoltsoft/station-api/internal/charger/service"
	"github.com/evoltsoft/station-api/internal/platform/config"
	"github.com/evoltsoft/station-api/internal/platform/database"
	"github.com/evoltsoft/station-api/internal/platform/logger"
	"github.com/evoltsoft/station-api/internal/platform/middleware"
	"github.com/evoltsoft/station-api/internal/platform/token"
	userAPI "github.com/evoltsoft/station-api/internal/user/api"
	userRepo "github.com/evoltsoft/station-api/internal/user/repository"
	userService "github.com/evoltsoft/station-api/internal/user/service"
)

func main() {
	// Load Config (.env is optional)
	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, relying on environment")
	}
	dbCfg := config.LoadDBConfig()
	serverCfg := config.LoadServerConfig("3000")
	authCfg := config.LoadAuthConfig()

	logger.Info("Starting Station API...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database", err)
		return
	}
	defer db.Close()

	// Setup Dependencies
	tokenManager := token.NewManager(authCfg.JWTSecret)
	authRequired := middleware.AuthRequired(tokenManager)

	userRepository := userRepo.NewPostgresUserRepository(db)
	usrService := userService.NewUserService(userRepository, tokenManager)
	userHandler := userAPI.NewUserHandler(usrService)

	chargerRepository := chargerRepo.NewPostgresChargerRepository(db)
	chgService := chargerService.NewChargerService(chargerRepository)
	chargerHandler := chargerAPI.NewChargerHandler(chgService)

	// Setup Gin Router
	router := gin.Default() // Default with Logger and Recovery middleware
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Evoltsoft API"})
	})

	api := router.Group("/api")
	userHandler.RegisterRoutes(api)
	chargerHandler.RegisterRoutes(api, authRequired)

	logger.Info("Station API running on port " + serverCfg.Port)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run server", err)
	}
}
