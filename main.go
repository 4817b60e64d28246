package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gearbook/config"
	"gearbook/database"
	bookingRepoPkg "gearbook/database/repository/booking"
	categoryRepoPkg "gearbook/database/repository/category"
	machineRepoPkg "gearbook/database/repository/machine"
	recordRepoPkg "gearbook/database/repository/record"
	reviewRepoPkg "gearbook/database/repository/review"
	userRepoPkg "gearbook/database/repository/user"
	"gearbook/handlers"
	"gearbook/middleware"
	"gearbook/routes"
	"gearbook/services/booking"
	"gearbook/services/machine"
	"gearbook/services/record"
	"gearbook/services/review"
	"gearbook/services/user"
	"gearbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	cloudinaryStorage, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	machineRepo := machineRepoPkg.NewMongoMachineRepo()
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	recordRepo := recordRepoPkg.NewMongoRecordRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:    userRepo,
		Storage: cloudinaryStorage,
	}
	machineService := &machine.DefaultMachineService{
		Repo:         machineRepo,
		CategoryRepo: categoryRepo,
		UserRepo:     userRepo,
		Storage:      cloudinaryStorage,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		MachineRepo:  machineRepo,
		CategoryRepo: categoryRepo,
	}
	reviewService := &review.DefaultReviewService{
		Repo:        reviewRepo,
		BookingRepo: bookingRepo,
	}
	recordService := &record.DefaultRecordService{
		Repo:        recordRepo,
		MachineRepo: machineRepo,
	}

	verifier := user.NewTokenVerifier(userRepo, utils.GetAuthCacheClient())
	responseCache := gocache.New(5*time.Minute, 10*time.Minute)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Verifier:   verifier,
		CacheStore: responseCache,

		Auth:     &handlers.AuthHandler{UserService: userService},
		User:     &handlers.UserHandler{UserService: userService},
		Admin:    &handlers.AdminHandler{UserService: userService, RecordService: recordService},
		Machine:  &handlers.MachineHandler{MachineService: machineService},
		Category: &handlers.CategoryHandler{Repo: categoryRepo, Cache: responseCache},
		Booking:  &handlers.BookingHandler{BookingService: bookingService},
		Review:   &handlers.ReviewHandler{ReviewService: reviewService},
		Record:   &handlers.RecordHandler{RecordService: recordService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background booking cleanup.
	sweeper := booking.NewSweeper(bookingService, bookingRepo)
	sweeper.Start()
	defer sweeper.Stop()

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
