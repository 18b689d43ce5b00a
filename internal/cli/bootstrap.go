package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
)

const connectTimeout = 10 * time.Second

// env holds what every subcommand needs: the loaded config and an open
// database handle.
type env struct {
	cfg    config.Config
	client *mongo.Client
	db     *mongo.Database
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := database.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database(cfg.DBName)
	logrus.WithFields(logrus.Fields{"area": "DB", "db": db.Name()}).Info("MongoDB connected")

	return &env{cfg: cfg, client: client, db: db}, nil
}

func (e *env) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Warn("mongo disconnect failed")
	}
}
