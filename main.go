package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymflow/config"
	"gymflow/cron"
	"gymflow/database"
	"gymflow/database/repository"
	"gymflow/handlers"
	"gymflow/routes"
	"gymflow/services/booking"
	"gymflow/services/class"
	"gymflow/services/member"
	"gymflow/services/report"
	"gymflow/services/tasks"
	"gymflow/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	db := database.DB()

	// repositories.
	memberRepo := repository.NewMongoMemberRepo(db)
	classRepo := repository.NewMongoClassRepo(db)
	sessionRepo := repository.NewMongoSessionRepo(db)
	bookingRepo := repository.NewMongoBookingRepo(db)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	for name, ensure := range map[string]func(context.Context) error{
		"members":  memberRepo.EnsureIndexes,
		"classes":  classRepo.EnsureIndexes,
		"sessions": sessionRepo.EnsureIndexes,
		"bookings": bookingRepo.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Fatal("main: failed to ensure indexes", zap.String("collection", name), zap.Error(err))
		}
	}
	cancelIndexes()

	uow := database.NewMongoUnitOfWork(database.MongoClient)

	// services.
	limiter, err := booking.NewLimiter(config.AppConfig.PlanQuotas)
	if err != nil {
		logger.Fatal("main: invalid plan quotas", zap.Error(err))
	}
	ledger, err := booking.NewLedger(uow, memberRepo, classRepo, sessionRepo, bookingRepo, limiter, logger.Named("booking"))
	if err != nil {
		logger.Fatal("main: failed to build booking ledger", zap.Error(err))
	}
	classService, err := class.NewService(uow, classRepo, sessionRepo, bookingRepo, logger.Named("class"))
	if err != nil {
		logger.Fatal("main: failed to build class service", zap.Error(err))
	}
	memberService, err := member.NewService(uow, memberRepo, bookingRepo, logger.Named("member"))
	if err != nil {
		logger.Fatal("main: failed to build member service", zap.Error(err))
	}
	aggregator, err := report.NewAggregator(memberRepo, bookingRepo, logger.Named("report"))
	if err != nil {
		logger.Fatal("main: failed to build report aggregator", zap.Error(err))
	}

	// Report caching and background refresh run only when Redis is reachable.
	var (
		redisClients []*redis.Client
		queueClient  *asynq.Client
		worker       *asynq.Server
	)
	if config.AppConfig.ReportCacheEnabled {
		if err := utils.InitCache(); err != nil {
			logger.Warn("main: report cache disabled", zap.Error(err))
		} else {
			redisClients = append(redisClients, utils.GetCacheClient())
			aggregator.SetCache(report.NewRedisCache(utils.GetCacheClient(), config.AppConfig.ReportCacheTTL))

			queueClient = asynq.NewClient(cron.QueueRedisOpt())
			aggregator.SetRefreshQueue(tasks.NewRefreshQueue(queueClient))
			worker = cron.InitReportWorker(aggregator)
		}
	}
	ledger.SetChangeListener(aggregator)
	memberService.SetChangeListener(aggregator)
	classService.SetChangeListener(aggregator)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, 30*time.Second, redisClients, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Classes:  handlers.NewClassHandler(classService),
		Members:  handlers.NewMemberHandler(memberService),
		Bookings: handlers.NewBookingHandler(ledger),
		Reports:  handlers.NewReportHandler(aggregator),
	})

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	timeout := config.AppConfig.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopHealth()
	if worker != nil {
		worker.Shutdown()
	}
	if queueClient != nil {
		if err := queueClient.Close(); err != nil {
			logger.Warn("main: failed to close task queue client", zap.Error(err))
		}
	}
	if err := utils.CloseCache(); err != nil {
		logger.Warn("main: failed to close cache client", zap.Error(err))
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
