package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"library-service/internal/application/services"
	"library-service/internal/application/validation"
	"library-service/internal/config"
	delivery "library-service/internal/delivery/http"
	"library-service/internal/infrastructure"
	"library-service/internal/infrastructure/db/postgres"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on the environment")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	db, err := postgres.Connect(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect to postgres: ", err)
	}

	userRepo := postgres.NewUserRepository(db)
	resourceRepo := postgres.NewResourceRepository(db)
	tagRepo := postgres.NewTagRepository(db)

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret, time.Duration(cfg.TokenValidityMinutes)*time.Minute)
	redisService := infrastructure.NewRedisService(cfg)
	emailService := infrastructure.NewEmailService(cfg)
	s3Service, err := infrastructure.NewS3Service(cfg)
	if err != nil {
		log.Fatal("failed to configure s3: ", err)
	}

	validator := validation.New()
	guard := services.NewOwnershipGuard(resourceRepo)

	userService := services.NewUserService(userRepo, jwtService, redisService, emailService, validator)
	resourceService := services.NewResourceService(resourceRepo, guard, s3Service, validator)
	tagService := services.NewTagService(tagRepo, resourceRepo, guard, validator)
	attachmentService := services.NewAttachmentService(resourceRepo, guard, s3Service)
	statsService := services.NewStatisticsService(userRepo, resourceRepo, tagRepo, redisService)

	handlers := delivery.Handlers{
		Users:     delivery.NewUserHandler(userService, cfg.TokenValidityMinutes),
		Resources: delivery.NewResourceHandler(resourceService, tagService),
		Tags:      delivery.NewTagHandler(tagService),
		Files:     delivery.NewFileHandler(attachmentService),
		Stats:     delivery.NewStatsHandler(statsService),
	}

	auth := delivery.NewAuthMiddleware(jwtService, redisService)
	limiter := delivery.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	e := delivery.NewRouter(handlers, auth, limiter)
	log.Fatal(e.Start(cfg.ServerAddress))
}
