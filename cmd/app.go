package main

import (
	"context"

	"prtracker/internal/authz"
	"prtracker/internal/config"
	"prtracker/internal/hasher"
	"prtracker/internal/logger"
	"prtracker/internal/models"
	"prtracker/internal/repository"
	"prtracker/internal/repository/db"
	"prtracker/internal/service"

	"github.com/jmoiron/sqlx"
)

// operatorSession is used by the offline commands. Whoever can run the binary
// against the database file already has full access to it.
var operatorSession = authz.Session{UserID: 0, Role: models.RoleAdmin}

// app is the wired dependency graph shared by every command.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *sqlx.DB
	services *service.Service
}

func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	conn, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		return nil, err
	}

	services := service.NewService(service.Deps{
		Repos:  repository.NewRepository(conn),
		Hasher: hasher.NewBcrypt(cfg.Auth.BcryptCost),
		Token: service.TokenConfig{
			SigningKey: cfg.Auth.SigningKey,
			TTL:        cfg.Auth.TokenTTL,
		},
		Bootstrap: service.BootstrapAccount{
			Username: cfg.Bootstrap.AdminUsername,
			Password: cfg.Bootstrap.AdminPassword,
		},
	})

	created, err := services.EnsureDefaultAdmin(ctx)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if created {
		log.Warnw("created default admin account; change its password",
			"username", cfg.Bootstrap.AdminUsername)
	}

	return &app{cfg: cfg, log: log, db: conn, services: services}, nil
}

func (a *app) Close() error {
	_ = a.log.Sync()
	return a.db.Close()
}
