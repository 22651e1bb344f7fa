package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "Bizonii-Backend/docs"
	"Bizonii-Backend/src/config"
	"Bizonii-Backend/src/controllers"
	"Bizonii-Backend/src/database"
	"Bizonii-Backend/src/jobs"
	"Bizonii-Backend/src/logger"
	"Bizonii-Backend/src/metrics"
	"Bizonii-Backend/src/middleware"
	"Bizonii-Backend/src/qrcode"
	"Bizonii-Backend/src/routes"
	"Bizonii-Backend/src/seeder"
	"Bizonii-Backend/src/services/forms"
	"Bizonii-Backend/src/services/retention"
	"Bizonii-Backend/src/services/submissions"
	"Bizonii-Backend/src/services/users"
	"Bizonii-Backend/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// @title        Bizonii API
// @version      1.0
// @description  Form definitions, submissions and data retention.
// @host         localhost:8888
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("❌ server stopped")
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// เชื่อมต่อกับ MongoDB
	mongoClient, err := database.ConnectMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	db := mongoClient.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	// Redis is optional: without it logout is a no-op and sweeps run in-process
	var redisClient *redis.Client
	var asynqClient *asynq.Client
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURI, cfg.RedisPassword)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		asynqClient = database.NewAsynqClient(cfg.RedisURI, cfg.RedisPassword)
		defer asynqClient.Close()
		log.Info().Msg("✅ Redis connected successfully")
	} else {
		log.Warn().Msg("⚠️ REDIS_URI not set. Token blacklist and asynq worker are disabled.")
	}

	m := metrics.New(nil)
	formStore := database.NewFormStore(db)
	submissionStore := database.NewSubmissionStore(db)
	userStore := database.NewUserStore(db)
	tokens := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	blacklist := utils.NewTokenBlacklist(redisClient)

	formService := forms.NewService(forms.Deps{
		Store:       formStore,
		Submissions: submissionStore,
		QR:          qrcode.NewGenerator(256),
		BaseURL:     cfg.AppBaseURL,
	})
	submissionService := submissions.NewService(submissions.Deps{
		Store:   submissionStore,
		Forms:   formStore,
		Metrics: m,
	})
	userService := users.NewService(userStore, tokens, blacklist)
	sweeper := retention.NewSweeper(submissionStore, m)

	if cfg.SeedDemo {
		if err := seeder.SeedDemo(ctx, userService, formService, submissionService); err != nil {
			return err
		}
	}

	stopWorker, err := startRetention(ctx, cfg, sweeper)
	if err != nil {
		return err
	}
	defer stopWorker()

	app := fiber.New(fiber.Config{
		AppName:      "Bizonii",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger(m))

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", m.Handler())

	routes.InitRoutes(app, routes.Handlers{
		Auth:        middleware.AuthJWT(tokens, blacklist),
		Forms:       controllers.NewFormController(formService),
		Submissions: controllers.NewSubmissionController(submissionService),
		Users:       controllers.NewUserController(userService),
		Jobs:        controllers.NewJobsController(asynqClient, sweeper, nil),
	})

	listenErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.AppPort).Msg("Server is running")
		listenErr <- app.Listen(fmt.Sprintf(":%s", cfg.AppPort))
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

// startRetention schedules sweeps on asynq when Redis is available, otherwise
// runs them in a goroutine until ctx ends.
func startRetention(ctx context.Context, cfg config.Config, sweeper *retention.Sweeper) (func(), error) {
	if cfg.RedisEnabled() {
		return jobs.StartWorker(jobs.WorkerConfig{
			Redis:    database.RedisConnOpt(cfg.RedisURI, cfg.RedisPassword),
			Cron:     cfg.SweepCron,
			Location: time.Local,
		}, sweeper, nil)
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	runner := &retention.Runner{Sweeper: sweeper, Interval: cfg.SweepInterval}
	go func() {
		defer close(done)
		if err := runner.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("❌ retention runner stopped")
		}
	}()
	log.Info().Dur("interval", cfg.SweepInterval).Msg("✅ in-process retention runner started")
	return func() {
		cancel()
		<-done
	}, nil
}
