package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/filedrive/filedrive/internal/config"
	"github.com/filedrive/filedrive/internal/db"
	"github.com/filedrive/filedrive/internal/repository"
	"github.com/filedrive/filedrive/internal/service"
	"github.com/filedrive/filedrive/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	UserService     *service.UserService
	FileService     *service.FileService
	FavoriteService *service.FavoriteService
	PurgeService    *service.PurgeService
	EmailService    *service.EmailService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	fileRepository := repository.NewFileRepository(database)
	favoriteRepository := repository.NewFavoriteRepository(database)

	// Storage
	blobStorage, err := storage.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AdminEmail,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	userService := service.NewUserService(userRepository)
	fileService := service.NewFileService(fileRepository, favoriteRepository, userRepository, blobStorage)
	favoriteService := service.NewFavoriteService(favoriteRepository, fileRepository, userRepository)
	purgeService := service.NewPurgeService(fileRepository, blobStorage, emailService, cfg.Retention)

	return &App{
		Cfg:             cfg,
		DB:              database,
		UserService:     userService,
		FileService:     fileService,
		FavoriteService: favoriteService,
		PurgeService:    purgeService,
		EmailService:    emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
