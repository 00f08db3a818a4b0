// ShuttleHub - Badminton Retail Catalog and Recommendation Backend
// Copyright 2026 Nguyen Hoang Kha (nguyenhoangkha03)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/nguyenhoangkha03/shuttlehub

// Package database opens the catalog database and implements the
// read-only query surface the recommendation engine depends on.
package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nguyenhoangkha03/shuttlehub/internal/catalog"
	"github.com/nguyenhoangkha03/shuttlehub/internal/config"
	"github.com/nguyenhoangkha03/shuttlehub/internal/logging"
)

// DB wraps the GORM connection.
type DB struct {
	conn *gorm.DB
	cfg  *config.DatabaseConfig
}

// New opens a database connection per the configured driver and
// migrates the catalog schema. Postgres is the production driver;
// sqlite serves development and tests.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, cfg: cfg}
	if err := db.migrate(); err != nil {
		return nil, err
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Msg("Database connection established")

	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = ":memory:"
		}
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// migrate creates or updates the catalog schema.
func (db *DB) migrate() error {
	if err := db.conn.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.Variant{},
		&catalog.Specification{},
		&catalog.Review{},
		&catalog.Order{},
		&catalog.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Conn exposes the underlying GORM handle for the store and for seeding.
func (db *DB) Conn() *gorm.DB {
	return db.conn
}

// Close closes the connection pool.
func (db *DB) Close() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping verifies the connection is alive.
func (db *DB) Ping() error {
	sqlDB, err := db.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
