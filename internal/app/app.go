package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"online_course_backend/internal/config"
	"online_course_backend/internal/controller"
	"online_course_backend/internal/repository"
	"online_course_backend/internal/service"
	"online_course_backend/pkg/configwatcher"
	"online_course_backend/pkg/database"
	"online_course_backend/pkg/logger"
	"online_course_backend/pkg/monitoring"
	"online_course_backend/pkg/security"
	"online_course_backend/pkg/tracing"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Repos    *Repositories
	Services *Services

	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type Repositories struct {
	User       *repository.UserRepository
	People     *repository.PeopleRepository
	Course     *repository.CourseRepository
	Lesson     *repository.LessonRepository
	Question   *repository.QuestionRepository
	Enrollment *repository.EnrollmentRepository
	Submission *repository.SubmissionRepository
}

type Services struct {
	People     *service.PeopleService
	Course     *service.CourseService
	Enrollment *service.EnrollmentService
	Exam       *service.ExamService
}

type controllers struct {
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) applyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       repository.NewUserRepository(db),
		People:     repository.NewPeopleRepository(db),
		Course:     repository.NewCourseRepository(db),
		Lesson:     repository.NewLessonRepository(db),
		Question:   repository.NewQuestionRepository(db),
		Enrollment: repository.NewEnrollmentRepository(db),
		Submission: repository.NewSubmissionRepository(db),
	}
}

func initServices(repos *Repositories, cfg *config.Config, db *gorm.DB) *Services {
	return &Services{
		People:     service.NewPeopleService(repos.User, repos.People),
		Course:     service.NewCourseService(repos.Course, repos.Lesson, repos.Question, repos.People, repos.Enrollment),
		Enrollment: service.NewEnrollmentService(db, repos.User, repos.Course, repos.Enrollment),
		Exam: service.NewExamService(
			repos.Course,
			repos.Enrollment,
			repos.Question,
			repos.Submission,
			cfg.Exam.PassPercentage,
		),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// shouldMigrate release 模式下只有显式要求才迁移
func shouldMigrate(cfg *config.Config) bool {
	return cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode
}

// NewApp 初始化数据库、仓储、服务与运维路由。
// MigrateOnly 时迁移完成即返回，不构建路由。
func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.Open(&cfg.Database)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	if shouldMigrate(cfg) {
		if err := database.Migrate(db); err != nil {
			logger.Log.Error("Database migration failed", zap.Error(err))
			return nil, err
		}
		logger.Log.Info("Database migration completed")
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	app.Repos = initRepositories(db)
	app.Services = initServices(app.Repos, cfg, db)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		app.Services.Exam.SetPassPercentage(newCfg.Exam.PassPercentage)
		logger.Log.Info("Exam pass percentage updated", zap.Float64("passPercentage", newCfg.Exam.PassPercentage))
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			return nil, err
		}
		app.tracerProvider = tp
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, &controllers{
		health: controller.NewHealthController(db),
	})

	return app, nil
}

// WatchConfig 在后台监听配置文件，变更后依次执行已注册的回调
func (a *App) WatchConfig(ctx context.Context, configDir string) {
	file := filepath.Join(configDir, "config.yaml")
	go func() {
		if err := configwatcher.WatchConfig(ctx, file, configwatcher.DefaultDebounce, a.applyConfig); err != nil {
			logger.Log.Error("Config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) Close() {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	a.WatchConfig(ctx, "configs")

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	log.Println("Server exiting")
}
