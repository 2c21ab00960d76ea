package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rhyspreston2/go-student-rentals/internal/api"
	"github.com/rhyspreston2/go-student-rentals/internal/api/handler"
	custommiddleware "github.com/rhyspreston2/go-student-rentals/internal/api/middleware"
	"github.com/rhyspreston2/go-student-rentals/internal/application"
	"github.com/rhyspreston2/go-student-rentals/internal/config"
	"github.com/rhyspreston2/go-student-rentals/internal/infrastructure/postgres"
	redisinfra "github.com/rhyspreston2/go-student-rentals/internal/infrastructure/redis"
	"github.com/rhyspreston2/go-student-rentals/internal/pkg/logger"
	"github.com/rhyspreston2/go-student-rentals/internal/pkg/metrics"
	"github.com/rhyspreston2/go-student-rentals/internal/worker"
)

func main() {
	cfg := config.Load()

	logger.Set(logger.NewLogger(os.Getenv("APP_ENV")))
	defer logger.Sync()

	// データベース接続
	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}
	if err := postgres.RunMigrations(db.DB, migrationsPath); err != nil {
		logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// Redis接続（分散ロックと評価キャッシュ用）
	// 接続できない場合はプロセス内ロックのみで動作する
	var (
		lockManager *redisinfra.LockManager
		ratingCache *redisinfra.RatingCache
	)
	redisClient, err := redisinfra.NewClient(&redisinfra.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis接続に失敗したため、分散ロックなしで起動します", zap.Error(err))
	} else {
		defer redisClient.Close()
		lockManager = redisinfra.NewLockManager(redisClient)
		ratingCache = redisinfra.NewRatingCache(redisClient)
	}

	m := metrics.Init()

	// リポジトリ
	userRepo := postgres.NewUserRepository(db)
	propertyRepo := postgres.NewPropertyRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	txManager := postgres.NewTxManager(db)

	// サービス
	userService := application.NewUserService(userRepo)
	listingService := application.NewListingService(propertyRepo, roomRepo, userRepo)
	bookingService := application.NewBookingService(txManager, bookingRepo, roomRepo, propertyRepo, userRepo, lockManager, m)
	reviewService := application.NewReviewService(reviewRepo, bookingRepo, roomRepo, propertyRepo, ratingCache)

	// ハンドラー
	healthHandler := handler.NewHealthHandler()
	userHandler := handler.NewUserHandler(userService)
	roomHandler := handler.NewRoomHandler(listingService)
	bookingHandler := handler.NewBookingHandler(bookingService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.CustomHTTPErrorHandler
	custommiddleware.SetupMiddleware(e)
	e.Use(custommiddleware.PrometheusMiddleware(m))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), custommiddleware.MetricsBasicAuth())

	v1 := e.Group("/api/v1")
	v1.GET("/health", healthHandler.Check)

	v1.POST("/users/students", userHandler.RegisterStudent)
	v1.POST("/users/homeowners", userHandler.RegisterHomeowner)
	v1.GET("/users", userHandler.List)
	v1.GET("/users/:id", userHandler.GetByID)
	v1.POST("/users/:id/deactivate", userHandler.Deactivate)

	v1.POST("/properties", roomHandler.CreateProperty)
	v1.GET("/properties", roomHandler.GetOwnerProperties)
	v1.GET("/properties/:id", roomHandler.GetProperty)
	v1.DELETE("/properties/:id", roomHandler.DeleteProperty)
	v1.POST("/properties/:property_id/rooms", roomHandler.CreateRoom)
	v1.GET("/properties/:property_id/rooms", roomHandler.GetPropertyRooms)
	v1.GET("/properties/:property_id/reviews", reviewHandler.GetPropertyReviews)
	v1.GET("/properties/:property_id/rating", reviewHandler.GetPropertyRating)

	v1.GET("/rooms/search", roomHandler.Search)
	v1.GET("/rooms/:id", roomHandler.GetRoom)
	v1.PATCH("/rooms/:id", roomHandler.UpdateRoom)
	v1.DELETE("/rooms/:id", roomHandler.DeleteRoom)
	v1.GET("/rooms/:id/availability", bookingHandler.CheckAvailability)

	v1.POST("/bookings", bookingHandler.Create)
	v1.GET("/bookings", bookingHandler.GetStudentBookings)
	v1.GET("/bookings/received", bookingHandler.GetHomeownerBookings)
	v1.GET("/bookings/:id", bookingHandler.GetByID)
	v1.POST("/bookings/:id/accept", bookingHandler.Accept)
	v1.POST("/bookings/:id/reject", bookingHandler.Reject)
	v1.POST("/bookings/:id/cancel", bookingHandler.Cancel)

	v1.POST("/reviews", reviewHandler.Create)

	// 開始日を過ぎた承認待ちリクエストを定期的に掃除する
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	sweeper := worker.NewStaleRequestSweeper(bookingService, cfg.Worker.SweepInterval)
	go sweeper.Start(sweepCtx)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー起動エラー", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	cancelSweep()
	sweeper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("サーバーシャットダウンエラー", zap.Error(err))
	}

	logger.Info("サーバーが正常にシャットダウンしました")
}
