package app

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/internal/controller"
	"bible_trivia_backend/internal/middleware"
	"bible_trivia_backend/internal/repository"
	"bible_trivia_backend/internal/service"
	"bible_trivia_backend/pkg/database"
	"bible_trivia_backend/pkg/logger"
	"bible_trivia_backend/pkg/monitoring"
	"bible_trivia_backend/pkg/security"
	"bible_trivia_backend/pkg/tracing"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Services *Services

	tracer *sdktrace.TracerProvider
}

type repositories struct {
	user             *repository.UserRepository
	section          *repository.SectionRepository
	question         *repository.QuestionRepository
	score            *repository.ScoreRepository
	progress         *repository.ProgressRepository
	completion       *repository.SectionCompletionRepository
	bibleVerse       *repository.BibleVerseRepository
	leaderboard      *repository.LeaderboardRepository
	leaderboardCache *repository.LeaderboardCacheRepository
}

// Services is exported so the CLI can reuse the same wiring as the server.
type Services struct {
	Auth        *service.AuthService
	Content     *service.ContentService
	Attempt     *service.AttemptService
	Progress    *service.ProgressService
	Leaderboard *service.LeaderboardService
	Bible       *service.BibleService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	section     *controller.SectionController
	question    *controller.QuestionController
	progress    *controller.ProgressController
	score       *controller.ScoreController
	leaderboard *controller.LeaderboardController
	bible       *controller.BibleController
	health      *controller.HealthController
}

func initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	repos := &repositories{
		user:        repository.NewUserRepository(db),
		section:     repository.NewSectionRepository(db),
		question:    repository.NewQuestionRepository(db),
		score:       repository.NewScoreRepository(db),
		progress:    repository.NewProgressRepository(db),
		completion:  repository.NewSectionCompletionRepository(db),
		bibleVerse:  repository.NewBibleVerseRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
	}
	if rdb != nil {
		repos.leaderboardCache = repository.NewLeaderboardCacheRepository(rdb, cfg.Redis.LeaderboardTTL)
	}
	return repos
}

func initServices(repos *repositories, cfg *config.Config) *Services {
	s := &Services{}

	// a nil *LeaderboardCacheRepository must not become a non-nil interface
	var cache service.LeaderboardCache
	if repos.leaderboardCache != nil {
		cache = repos.leaderboardCache
	}

	s.Auth = service.NewAuthService(repos.user, cfg.JWT)
	s.Content = service.NewContentService(repos.section, repos.question)
	s.Leaderboard = service.NewLeaderboardService(repos.leaderboard, cache)
	s.Attempt = service.NewAttemptService(
		repos.section,
		repos.question,
		repos.progress,
		repos.score,
		repos.completion,
		s.Leaderboard,
	)
	s.Progress = service.NewProgressService(repos.progress, repos.question)
	s.Bible = service.NewBibleService(repos.bibleVerse)

	return s
}

func initControllers(s *Services, db *gorm.DB, cfg *config.Config) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.Auth, cfg.Server.Mode == gin.ReleaseMode),
		user:        controller.NewUserController(s.Auth),
		section:     controller.NewSectionController(s.Content, s.Attempt),
		question:    controller.NewQuestionController(s.Content),
		progress:    controller.NewProgressController(s.Attempt, s.Progress),
		score:       controller.NewScoreController(s.Attempt),
		leaderboard: controller.NewLeaderboardController(s.Leaderboard),
		bible:       controller.NewBibleController(s.Bible),
		health:      controller.NewHealthController(db),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(security.Limit{
		Scope:       "global",
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window(),
	}))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
	router.Use(middleware.StoreTimeout(cfg.Server.StoreTimeout))
}

// Build wires repositories, services and routes over already-open stores.
// rdb may be nil, in which case leaderboards are always computed from the database.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	repos := initRepositories(db, rdb, cfg)
	services := initServices(repos, cfg)
	controllers := initControllers(services, db, cfg)

	monitoring.Init()

	router := gin.New()
	setupMiddlewares(router, cfg)
	registerRoutes(router, controllers, services, cfg)

	return &App{
		Config:   cfg,
		Router:   router,
		DB:       db,
		Redis:    rdb,
		Services: services,
	}
}

// OpenStores connects to the database and, when enabled, redis.
func OpenStores(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	if !cfg.Redis.Enabled {
		return db, nil, nil
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// the cache is optional; rankings fall back to direct queries
		logger.Log.Warn("redis unavailable, leaderboard cache disabled", zap.Error(err))
		return db, nil, nil
	}
	return db, rdb, nil
}

func NewApp(cfg *config.Config, migrate bool) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, rdb, err := OpenStores(cfg)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	app := Build(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("bible-trivia", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("initialize tracing: %w", err)
		}
		app.tracer = tp
	}

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	a.Close(ctx)

	log.Println("Server exiting")
}

// Close releases the stores and flushes pending spans.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
