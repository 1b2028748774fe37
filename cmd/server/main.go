package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Srinu-likitha/store-management-mvp/internal/config"
	"github.com/Srinu-likitha/store-management-mvp/internal/middleware"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/handler"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/numbering"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting store-management service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.MaterialInvoice{},
		&entity.InvoiceMaterialItem{},
		&entity.DcEntry{},
		&entity.DocumentCounter{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	repos := repository.NewRepositories(db)

	if err := seedCounters(repos, zapLogger); err != nil {
		zapLogger.Fatal("Failed to seed document counters", zap.Error(err))
	}
	if err := seedUsers(repos, zapLogger); err != nil {
		zapLogger.Fatal("Failed to seed users", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		zapLogger.Warn("Redis unavailable, refresh tokens and stats cache disabled", zap.Error(err))
		rdb = nil
	}

	services := service.NewServices(db, repos, rdb, cfg, zapLogger)
	handlers := handler.NewHandlers(services, zapLogger)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	handler.RegisterRoutes(router, handlers, repos, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// seedCounters backfills each document counter from the highest reference
// already present, so sequences continue instead of restarting after the
// counter table is introduced on an existing database.
func seedCounters(repos *repository.Repositories, zapLogger *zap.Logger) error {
	ctx := context.Background()
	for _, kind := range numbering.Kinds() {
		max, err := repos.Invoice.MaxNumericSuffix(ctx, string(kind), numbering.NumericSuffix)
		if err != nil {
			return fmt.Errorf("scan %s references: %w", kind, err)
		}
		if err := repos.Counter.Seed(ctx, kind, max); err != nil {
			return fmt.Errorf("seed counter %s: %w", kind, err)
		}
		zapLogger.Info("Document counter ready",
			zap.String("kind", string(kind)),
			zap.Int64("value", max),
		)
	}
	return nil
}

// seedUsers creates the four built-in accounts if they do not exist yet.
// The password comes from SEED_USER_PASSWORD and is never overwritten for
// accounts that already exist.
func seedUsers(repos *repository.Repositories, zapLogger *zap.Logger) error {
	password := os.Getenv("SEED_USER_PASSWORD")
	if password == "" {
		zapLogger.Info("SEED_USER_PASSWORD not set, skipping user seeding")
		return nil
	}
	hash, err := service.HashPassword(password)
	if err != nil {
		return err
	}

	seeds := []entity.User{
		{Email: "storeincharge@gtbuild.in", Role: entity.RoleStoreIncharge},
		{Email: "procurement@gtbuild.in", Role: entity.RoleProcurementManager},
		{Email: "accounts@gtbuild.in", Role: entity.RoleAccountsManager},
		{Email: "admin@gtbuild.in", Role: entity.RoleAdmin},
	}

	ctx := context.Background()
	for i := range seeds {
		seeds[i].PasswordHash = hash
		if err := repos.User.UpsertSeed(ctx, &seeds[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", seeds[i].Email, err)
		}
	}
	zapLogger.Info("Seed users ready", zap.Int("count", len(seeds)))
	return nil
}
