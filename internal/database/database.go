// Package database opens the ORM and provides the unit of work used by
// every request.
//
// It handles:
//   - building the connection from config (Postgres through pgx, or SQLite)
//   - wiring query tracing/logging (pgx tracelog, New Relic, gorm logger)
//   - creating missing tables from the mapped models
//   - Session, the per-request unit of work
package database

import (
	"context"
	"fmt"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite" // registers the pure Go "sqlite" driver

	"github.com/JoeWHoward/DockerPlayground/internal/config"
	loggerPkg "github.com/JoeWHoward/DockerPlayground/internal/logger"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
)

// DatabasePingTimeout is how long startup waits for the first ping.
const DatabasePingTimeout = 10 * time.Second

// Database holds the ORM handle and, for Postgres, the pgx pool under it.
type Database struct {
	ORM  *gorm.DB
	Pool *pgxpool.Pool
	log  *zerolog.Logger
}

// multiTracer fans pgx query events out to several tracers, since
// ConnConfig has a single Tracer slot.
type multiTracer struct {
	tracers []pgx.QueryTracer
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, t := range mt.tracers {
		ctx = t.TraceQueryStart(ctx, conn, data)
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, t := range mt.tracers {
		t.TraceQueryEnd(ctx, conn, data)
	}
}

// New connects to the configured database and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Database, error) {
	var (
		dialector gorm.Dialector
		pool      *pgxpool.Pool
		err       error
	)

	gormLog := loggerPkg.NewGormLogger(*logger, cfg.Observability.Logging.SlowQueryThreshold)

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Dialector{DriverName: "sqlite", DSN: cfg.Database.DSN()}

	case config.DriverPostgres:
		pool, err = newPool(cfg, logger, loggerService)
		if err != nil {
			return nil, err
		}
		dialector = postgres.New(postgres.Config{Conn: stdlib.OpenDBFromPool(pool)})

		// pgx tracelog already prints statements in local; keep gorm to slow queries and errors.
		if cfg.Primary.Env == "local" {
			gormLog = gormLog.LogMode(gormlogger.Warn).(*loggerPkg.GormLogger)
		}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	orm, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, fmt.Errorf("failed to open orm: %w", err)
	}

	database := &Database{ORM: orm, Pool: pool, log: logger}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", cfg.Database.Driver).Msg("connected to the database")

	return database, nil
}

// newPool builds the pgx pool with New Relic and, in local, SQL logging tracers.
func newPool(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*pgxpool.Pool, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	var tracers []pgx.QueryTracer

	if loggerService.GetApplication() != nil {
		tracers = append(tracers, nrpgx5.NewTracer())
	}

	// Statement logging is noisy, so it is only on in local.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerPkg.NewPgxLogger(globalLevel)
		tracers = append(tracers, &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: loggerPkg.GetPgxTraceLogLevel(globalLevel),
		})
	}

	switch len(tracers) {
	case 0:
	case 1:
		pgxPoolConfig.ConnConfig.Tracer = tracers[0]
	default:
		pgxPoolConfig.ConnConfig.Tracer = &multiTracer{tracers: tracers}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	return pool, nil
}

// Ping checks that the database answers.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.ORM.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateAll creates every table of model.Models() that does not exist yet.
// Existing tables are left untouched.
func (db *Database) CreateAll(ctx context.Context) error {
	migrator := db.ORM.WithContext(ctx).Migrator()

	for _, m := range model.Models() {
		if migrator.HasTable(m) {
			continue
		}
		if err := migrator.CreateTable(m); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
		db.log.Info().Str("model", fmt.Sprintf("%T", m)).Msg("created table")
	}

	return nil
}

// Close releases the ORM connections and the pgx pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	sqlDB, err := db.ORM.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
	return nil
}
