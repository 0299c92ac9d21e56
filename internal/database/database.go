package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soxutil/internal/config"
	"soxutil/internal/models"
)

// ConnectPostgres opens the relational store and migrates the users table.
// The echo toggle controls GORM's SQL statement logging.
func ConnectPostgres(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.DBEchoLog {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}
	return db, nil
}

// ConnectMongo opens the document store and verifies the connection with
// a ping before handing back the named database.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client.Database(cfg.MongoDBName), nil
}

// PingPostgres reports live connectivity of the relational store.
func PingPostgres(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("not connected")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// PingMongo reports live connectivity of the document store.
func PingMongo(ctx context.Context, db *mongo.Database) error {
	if db == nil {
		return fmt.Errorf("not connected")
	}
	return db.Client().Ping(ctx, readpref.Primary())
}
