package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fairway_backend/internal/auth"
	"fairway_backend/internal/config"
	"fairway_backend/internal/email"
	"fairway_backend/internal/handlers"
	"fairway_backend/internal/logger"
	"fairway_backend/internal/middleware"
	"fairway_backend/internal/models"
	"fairway_backend/internal/push"
	"fairway_backend/internal/realtime"
	"fairway_backend/internal/repositories"
	"fairway_backend/internal/routes"
	"fairway_backend/internal/services"
	"fairway_backend/internal/storage"
	"fairway_backend/internal/validator"
	"fairway_backend/internal/workers"
	"fairway_backend/ws"
)

func Run() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}
	if err := seedDefaultCourse(gormDB); err != nil {
		logger.Fatal("course seed failed", "error", err)
	}

	engine, background := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	for _, w := range background {
		w.Start(ctx)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := engine.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

type backgroundWorker interface {
	Start(ctx context.Context)
}

// SetupRouter builds the full dependency graph and returns the engine
// plus the background workers for the caller to start.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, []backgroundWorker) {
	store, err := storage.New(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("storage init failed", "error", err)
	}

	emailSender := email.NewSender(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
	})

	vapidKeys := push.VAPIDKeys{
		PublicKey:  cfg.Push.VAPIDPublicKey,
		PrivateKey: cfg.Push.VAPIDPrivateKey,
		Subscriber: cfg.Push.Subscriber,
	}
	if !vapidKeys.Configured() {
		logger.Warn("VAPID keys not configured; web push runs in degraded mode")
	}

	tokens := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	hub := realtime.NewHub()

	// Repositories
	userRepo := repositories.NewUserRepository(gormDB)
	tournamentRepo := repositories.NewTournamentRepository(gormDB)
	courseRepo := repositories.NewCourseRepository(gormDB)
	roundRepo := repositories.NewRoundRepository(gormDB)
	messageRepo := repositories.NewMessageRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	pushSubRepo := repositories.NewPushSubscriptionRepository(gormDB)
	postRepo := repositories.NewPostRepository(gormDB)
	uploadRepo := repositories.NewUploadRepository(gormDB)

	// Services
	authService := services.NewAuthService(userRepo, tokens)
	pushService := services.NewPushService(pushSubRepo, push.NewWebPushTransport(vapidKeys), vapidKeys)
	notificationService := services.NewNotificationService(notificationRepo, tournamentRepo, pushService, hub)
	achievementService := services.NewAchievementService(postRepo, notificationService, hub)
	tournamentService := services.NewTournamentService(tournamentRepo, userRepo, emailSender, hub)
	roundService := services.NewRoundService(roundRepo, courseRepo, tournamentRepo, userRepo, achievementService, hub)
	chatService := services.NewChatService(messageRepo, tournamentRepo, notificationService, hub)
	postService := services.NewPostService(postRepo, tournamentRepo, hub)
	uploadService := services.NewUploadService(uploadRepo, userRepo, store, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes)
	configService := services.NewConfigService(services.StaticConfigResolver(cfg.Server.PublicURL, cfg.Server.AnonKey))

	// Handlers
	v := validator.New()
	base := handlers.NewBaseHandler(v)
	appHandlers := &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(base, authService),
		TournamentHandler:   handlers.NewTournamentHandler(base, tournamentService),
		RoundHandler:        handlers.NewRoundHandler(base, roundService),
		ChatHandler:         handlers.NewChatHandler(base, chatService),
		PostHandler:         handlers.NewPostHandler(base, postService),
		NotificationHandler: handlers.NewNotificationHandler(base, notificationService),
		PushHandler:         handlers.NewPushHandler(base, pushService),
		UploadHandler:       handlers.NewUploadHandler(base, uploadService),
		ConfigHandler:       handlers.NewConfigHandler(base, configService),
	}

	manager := ws.NewWebSocketManager(hub)
	go manager.Run()
	wsHandler := ws.NewWebSocketHandler(manager, tokens)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(engine, appHandlers, wsHandler, middleware.AuthMiddleware(tokens))

	background := []backgroundWorker{
		workers.NewCleanupWorker(notificationRepo),
		workers.NewRefreshWorker(hub),
	}
	return engine, background
}

func migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Tournament{},
		&models.TournamentPlayer{},
		&models.Course{},
		&models.CourseHole{},
		&models.Round{},
		&models.HoleResult{},
		&models.Message{},
		&models.Notification{},
		&models.PushSubscription{},
		&models.Post{},
		&models.Upload{},
	)
}

// seedDefaultCourse installs a standard par-72 course so a fresh install
// can score rounds immediately.
func seedDefaultCourse(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	course := models.Course{Name: "Default Course", Location: ""}
	if err := db.Create(&course).Error; err != nil {
		return err
	}

	pars := []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 4, 5}
	holes := make([]models.CourseHole, 0, len(pars))
	for i, par := range pars {
		holes = append(holes, models.CourseHole{
			CourseID:   course.ID,
			HoleNumber: i + 1,
			Par:        par,
		})
	}
	if err := db.Create(&holes).Error; err != nil {
		return err
	}
	logger.Info("seeded default course", "holes", len(holes))
	return nil
}
