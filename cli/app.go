package cli

import (
	"fmt"

	"github.com/andrewpaige1/thoughtcatcher-api/config"
	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what every command needs: settings, a logger and the store.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	close  func()
}

func bootstrap(port string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.Port = port
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Dir:         cfg.LogDir,
		MaxFiles:    cfg.LogMaxFiles,
		Development: cfg.IsDevelopment(),
		Service:     "thoughtcatcher",
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.UsingDevSecret() {
		logger.Warn("JWT_SECRET not found in env; using development default")
	}

	db, err := config.Connect(cfg)
	if err != nil {
		closeLog()
		return nil, err
	}
	logger.Info("database connected", zap.String("driver", cfg.DBDriver))

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		close: func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
			closeLog()
		},
	}, nil
}
