package initialize

import (
	"context"
	"fmt"
	"net/http"

	"ponto/backend/app/controllers"
	"ponto/backend/app/db"
	jwtutil "ponto/backend/app/jwt"
	"ponto/backend/app/middleware"
	"ponto/backend/app/models"
	"ponto/backend/app/repo"
	"ponto/backend/app/services"
	"ponto/backend/config"
	"ponto/backend/global"
	"ponto/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Redis   *redis.Client
	Router  http.Handler
	Signer  *jwtutil.Signer
	Users   *services.UserService
	Punches *services.PunchService
	Reports *services.ReportService
}

func Build(cfg *config.Config) (*App, error) {
	// Connect DB
	gdb, err := db.Connect(db.Config{
		Driver: cfg.DB.Driver, Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User,
		Password: cfg.DB.Pass, DBName: cfg.DB.Name, Path: cfg.DB.Path, DSN: cfg.DB.DSN,
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	// Migrate
	if err := gdb.AutoMigrate(&models.User{}, &models.PunchRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	// Redis is optional; without it punches rely on the database check alone.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	// Services
	userRepo := repo.NewUserRepository(gdb)
	punchRepo := repo.NewPunchRepository(gdb)
	userSvc := services.NewUserService(userRepo)
	punchSvc := services.NewPunchService(punchRepo, userSvc, services.NewPunchLock(rdb), cfg.Location())
	reportSvc := services.NewReportService(punchSvc, userSvc)
	if err := SeedAdmins(userSvc, cfg); err != nil {
		return nil, err
	}

	// Controllers
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer}
	h := router.NewRouter(router.Controllers{
		Health:  controllers.NewHealthController(),
		Auth:    controllers.NewAuthController(userSvc, signer),
		Me:      controllers.NewMeController(punchSvc),
		Punch:   controllers.NewPunchController(punchSvc),
		Users:   controllers.NewAdminUserController(userSvc),
		Records: controllers.NewAdminRecordController(punchSvc),
		Report:  controllers.NewReportController(reportSvc),
	}, mw)
	// Wrap with logging middleware
	h = middleware.Logging(middleware.Recover(h))

	return &App{Cfg: cfg, DB: gdb, Redis: rdb, Router: h, Signer: signer, Users: userSvc, Punches: punchSvc, Reports: reportSvc}, nil
}

// SeedAdmins creates the bootstrap admin and every configured admin whose username is free.
func SeedAdmins(users *services.UserService, cfg *config.Config) error {
	admins := cfg.Admins
	if cfg.BootstrapAdmin.Username != "" && cfg.BootstrapAdmin.Password != "" {
		admins = append([]config.Admin{cfg.BootstrapAdmin}, admins...)
	}
	for _, a := range admins {
		if a.Username == "" || a.Password == "" {
			global.Logger.Warn().Str("username", a.Username).Msg("skipping admin without username or password")
			continue
		}
		created, err := users.EnsureAdmin(a.NomeCompleto, a.Username, a.Password)
		if err != nil {
			return fmt.Errorf("seed admin %s: %w", a.Username, err)
		}
		if created {
			global.Logger.Info().Str("username", a.Username).Msg("admin created")
		} else {
			global.Logger.Debug().Str("username", a.Username).Msg("admin already exists, skipping")
		}
	}
	return nil
}

func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
