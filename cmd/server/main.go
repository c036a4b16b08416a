package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/kampus/orari/api/swagger"
	"github.com/kampus/orari/internal/console"
	"github.com/kampus/orari/internal/handler"
	"github.com/kampus/orari/internal/middleware"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/repository"
	"github.com/kampus/orari/internal/service"
	"github.com/kampus/orari/internal/web"
	"github.com/kampus/orari/migrations"
	"github.com/kampus/orari/pkg/cache"
	"github.com/kampus/orari/pkg/config"
	"github.com/kampus/orari/pkg/database"
	"github.com/kampus/orari/pkg/logger"
	corsmiddleware "github.com/kampus/orari/pkg/middleware/cors"
	reqidmiddleware "github.com/kampus/orari/pkg/middleware/requestid"
)

// @title Orari API
// @version 1.0.0
// @description Class schedule administration: public timetable, dashboard and record management.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type handlers struct {
	pages         *handler.PageHandler
	auth          *handler.AuthHandler
	views         *handler.ViewHandler
	metrics       *handler.MetricsHandler
	programs      *handler.ProgramHandler
	courses       *handler.CourseHandler
	instructors   *handler.InstructorHandler
	rooms         *handler.RoomHandler
	schedules     *handler.ScheduleHandler
	notifications *handler.NotificationHandler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, migrations.Files, logr); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, login throttle disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	validate := service.NewValidator()
	metrics := service.NewMetricsService()

	programRepo := repository.NewProgramRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	authCfg := service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		MaxLoginAttempts:   cfg.Login.MaxAttempts,
		LoginLockout:       cfg.Login.Lockout,
	}
	var authSvc *service.AuthService
	if redisClient != nil {
		authSvc = service.NewAuthService(userRepo, repository.NewLoginAttemptRepository(redisClient), validate, metrics, logr, authCfg)
	} else {
		authSvc = service.NewAuthService(userRepo, nil, validate, metrics, logr, authCfg)
	}

	programSvc := service.NewProgramService(programRepo, validate, metrics, logr)
	courseSvc := service.NewCourseService(courseRepo, validate, metrics, logr)
	instructorSvc := service.NewInstructorService(instructorRepo, validate, metrics, logr)
	roomSvc := service.NewRoomService(roomRepo, validate, metrics, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, validate, metrics, logr)
	notificationSvc := service.NewNotificationService(notificationRepo, validate, metrics, logr)
	viewSvc := service.NewViewService(service.ViewServiceParams{
		Programs:      programRepo,
		Courses:       courseRepo,
		Instructors:   instructorRepo,
		Rooms:         roomRepo,
		Schedules:     scheduleRepo,
		Notifications: notificationRepo,
		Metrics:       metrics,
		Logger:        logr,
	})
	exportSvc := service.NewExportService(scheduleRepo, logr)

	loc := cfg.Location()
	consoleSvc := console.New(console.Params{
		Programs:      programSvc,
		Courses:       courseSvc,
		Instructors:   instructorSvc,
		Rooms:         roomSvc,
		Schedules:     scheduleSvc,
		Notifications: notificationSvc,
		Location:      loc,
		Logger:        logr,
	})

	h := handlers{
		pages: handler.NewPageHandler(handler.PageHandlerParams{
			Views:          viewSvc,
			Exports:        exportSvc,
			Console:        consoleSvc,
			AnalyticsTagID: cfg.Analytics.TagID,
			Location:       loc,
			Logger:         logr,
		}),
		auth:          handler.NewAuthHandler(authSvc, cfg.Analytics.TagID, logr),
		views:         handler.NewViewHandler(viewSvc, loc),
		metrics:       handler.NewMetricsHandler(metrics, db),
		programs:      handler.NewProgramHandler(programSvc),
		courses:       handler.NewCourseHandler(courseSvc),
		instructors:   handler.NewInstructorHandler(instructorSvc),
		rooms:         handler.NewRoomHandler(roomSvc),
		schedules:     handler.NewScheduleHandler(scheduleSvc),
		notifications: handler.NewNotificationHandler(notificationSvc),
	}

	tmpl, err := web.Templates(loc)
	if err != nil {
		logr.Fatal("failed to load templates", zap.Error(err))
	}

	sessionOpts := sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Session.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessionOpts)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(sessions.Sessions(cfg.Session.Name, store))
	r.Use(middleware.Gate(authSvc, sessionOpts, logr))

	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	registerPages(r, h)
	registerAPI(r.Group(cfg.APIPrefix), h, authSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "throttle", redisClient != nil)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerPages(r *gin.Engine, h handlers) {
	r.GET("/", h.pages.Home)
	r.GET(middleware.SchedulesPath, h.pages.Schedules)
	r.GET(middleware.SchedulesPath+"/export", h.pages.Export)
	r.GET(middleware.DashboardPath, h.pages.Dashboard)

	manage := r.Group(middleware.ManagePath)
	manage.GET("", h.pages.Manage)
	manage.POST("/:entity", h.pages.ManageCreate)
	manage.POST("/:entity/:id", h.pages.ManageEdit)
	manage.POST("/:entity/:id/delete", h.pages.ManageDelete)
	manage.POST("/:entity/:id/toggle", h.pages.ManageToggle)

	r.GET("/login", h.auth.LoginPage)
	r.GET(middleware.LoginPath, h.auth.LoginPage)
	r.POST(middleware.LoginPath, h.auth.SessionLogin)
	r.POST("/api/petrit/logout", h.auth.SessionLogout)
}

func registerAPI(api *gin.RouterGroup, h handlers, auth *service.AuthService) {
	api.POST("/auth/login", h.auth.Login)
	api.POST("/auth/refresh", h.auth.Refresh)
	api.GET("/schedules/public", h.views.PublicSchedule)
	api.GET("/notifications/active", h.notifications.Active)

	api.GET("/programs", h.programs.List)
	api.GET("/programs/:id", h.programs.Get)
	api.GET("/courses", h.courses.List)
	api.GET("/courses/:id", h.courses.Get)
	api.GET("/instructors", h.instructors.List)
	api.GET("/instructors/:id", h.instructors.Get)
	api.GET("/rooms", h.rooms.List)
	api.GET("/rooms/:id", h.rooms.Get)
	api.GET("/schedules", h.schedules.List)
	api.GET("/schedules/:id", h.schedules.Get)

	protected := api.Group("", middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin, models.RoleEditor))
	protected.POST("/auth/logout", h.auth.Logout)
	protected.GET("/dashboard", h.views.Dashboard)

	protected.POST("/programs", h.programs.Create)
	protected.PUT("/programs/:id", h.programs.Update)
	protected.DELETE("/programs/:id", h.programs.Delete)

	protected.POST("/courses", h.courses.Create)
	protected.PUT("/courses/:id", h.courses.Update)
	protected.DELETE("/courses/:id", h.courses.Delete)

	protected.POST("/instructors", h.instructors.Create)
	protected.PUT("/instructors/:id", h.instructors.Update)
	protected.DELETE("/instructors/:id", h.instructors.Delete)

	protected.POST("/rooms", h.rooms.Create)
	protected.PUT("/rooms/:id", h.rooms.Update)
	protected.DELETE("/rooms/:id", h.rooms.Delete)

	protected.POST("/schedules", h.schedules.Create)
	protected.PUT("/schedules/:id", h.schedules.Update)
	protected.DELETE("/schedules/:id", h.schedules.Delete)

	protected.GET("/notifications", h.notifications.List)
	protected.GET("/notifications/:id", h.notifications.Get)
	protected.POST("/notifications", h.notifications.Create)
	protected.PUT("/notifications/:id", h.notifications.Update)
	protected.PATCH("/notifications/:id/active", h.notifications.SetActive)
	protected.DELETE("/notifications/:id", h.notifications.Delete)
}
