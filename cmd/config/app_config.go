package config

import (
	"EcoBite-Backend/internal/api/handlers"
	"EcoBite-Backend/internal/api/routes"
	"EcoBite-Backend/internal/middleware"
	"EcoBite-Backend/internal/utils"
	"EcoBite-Backend/internal/utils/mailing"
	"EcoBite-Backend/internal/utils/storage"
	"EcoBite-Backend/pkg/claim"
	"EcoBite-Backend/pkg/jwt"
	"EcoBite-Backend/pkg/post"
	"EcoBite-Backend/pkg/stats"
	"EcoBite-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	postRepository := post.NewPostRepository(db)
	claimRepository := claim.NewClaimRepository(db)
	statsRepository := stats.NewStatsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	postService := post.NewPostService(postRepository, s3)
	claimService := claim.NewClaimService(
		claimRepository,
		postRepository,
		mailing.SendMail,
		utils.GetBoolConfig("SINGLE_CLAIM_PER_POST"),
	)
	statsService := stats.NewStatsService(statsRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	postHandler := handlers.NewPostHandler(postService, validator)
	claimHandler := handlers.NewClaimHandler(claimService, validator)
	statsHandler := handlers.NewStatsHandler(statsService)

	// routes
	routesConfig := routes.Config{
		App:          app,
		UserHandler:  userHandler,
		PostHandler:  postHandler,
		ClaimHandler: claimHandler,
		StatsHandler: statsHandler,
		Middleware:   middlewares,
		JWTService:   jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
