package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfinance "github.com/retailpos/backend/internal/application/finance"
	appinvestment "github.com/retailpos/backend/internal/application/investment"
	appnotification "github.com/retailpos/backend/internal/application/notification"
	apptrade "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/infrastructure/auth"
	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/retailpos/backend/internal/infrastructure/logger"
	"github.com/retailpos/backend/internal/infrastructure/notify"
	"github.com/retailpos/backend/internal/infrastructure/persistence"
	"github.com/retailpos/backend/internal/infrastructure/persistence/ownerscope"
	"github.com/retailpos/backend/internal/infrastructure/scheduler"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
	"github.com/retailpos/backend/internal/interfaces/http/handler"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
	"github.com/retailpos/backend/internal/interfaces/http/router"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RetailPOS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	gormLogLevel := gormlogger.Warn
	if cfg.Log.Level == "debug" {
		gormLogLevel = gormlogger.Info
	}
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// A GORM callback keeps owner, outlet and creator immutable on update;
	// stamping on create happens in the repositories.
	if err := ownerscope.RegisterCallbacks(db.DB); err != nil {
		log.Fatal("Failed to register owner scope callbacks", zap.Error(err))
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.EnableTracing(cfg.Database.DBName, false); err != nil {
			log.Fatal("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	investmentRepo := persistence.NewGormInvestmentRepository(db.DB)
	returnRepo := persistence.NewGormInvestmentReturnRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Initialize application services
	paymentService := appfinance.NewPaymentApplicationService(
		installmentRepo, saleRepo, purchaseRepo, accountRepo, paymentRepo, txManager,
	)
	accountService := appfinance.NewAccountService(accountRepo, paymentRepo)
	queryService := apptrade.NewQueryService(saleRepo, purchaseRepo, installmentRepo)
	accrualService := appinvestment.NewAccrualService(investmentRepo, returnRepo, txManager)
	investmentService := appinvestment.NewInvestmentService(investmentRepo, returnRepo)
	reminderSender := notify.NewLogSender(log)
	reminderService := appnotification.NewReminderService(installmentRepo, notificationRepo, reminderSender)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Background jobs run on every instance; the Redis lock ensures only
	// one instance executes a given job per day.
	if cfg.Jobs.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		jobLock := scheduler.NewRedisJobLock(redisClient)

		accrualTrigger := scheduler.NewAccrualTrigger(cfg.Jobs, accrualService, jobLock, log)
		if err := accrualTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start accrual trigger", zap.Error(err))
		}
		defer func() {
			if err := accrualTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping accrual trigger", zap.Error(err))
			}
		}()

		reminderTrigger := scheduler.NewReminderTrigger(cfg.Jobs, reminderService, jobLock, log)
		if err := reminderTrigger.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reminder trigger", zap.Error(err))
		}
		defer func() {
			if err := reminderTrigger.Stop(context.Background()); err != nil {
				log.Error("Error stopping reminder trigger", zap.Error(err))
			}
		}()

		log.Info("Background job triggers started",
			zap.String("timezone", cfg.Jobs.Timezone),
			zap.Duration("lock_ttl", cfg.Jobs.LockTTL),
		)
	}

	// Initialize HTTP handlers
	paymentHandler := handler.NewPaymentHandler(paymentService, accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	tradeHandler := handler.NewTradeHandler(queryService)
	investmentHandler := handler.NewInvestmentHandler(investmentService, accrualService)
	notificationHandler := handler.NewNotificationHandler(reminderService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	engine.Use(middleware.Logging(log))
	engine.Use(middleware.Auth(middleware.DefaultAuthConfig(jwtService)))

	systemHandler.RegisterRoutes(engine)

	router.NewRouter(engine).
		Register(paymentHandler).
		Register(accountHandler).
		Register(tradeHandler).
		Register(investmentHandler).
		Register(notificationHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
