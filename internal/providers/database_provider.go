package providers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"credd/internal/structures"
)

const slowQueryThreshold = 200 * time.Millisecond

// NewDatabaseProvider opens the configured SQL database. SQLite is limited to a single
// connection so in-memory databases stay shared and file databases never hit SQLITE_BUSY.
func NewDatabaseProvider(conf *structures.Config, logger Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case "sqlite":
		dialector = sqlite.Open(conf.Database.DSN)
	case "postgres":
		dialector = postgres.Open(conf.Database.DSN)
	case "mysql":
		dialector = mysql.Open(conf.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      NewGormLogger(logger, slowQueryThreshold),
		PrepareStmt: conf.Database.Driver != "sqlite",
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", conf.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if conf.Database.Driver == "sqlite" {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	logger.Infof(TypeApp, "Database connected: driver=%s", conf.Database.Driver)
	return db, nil
}

// GormLogger routes gorm's log output into the application log. SQL statements are logged
// at debug level; slow queries and failures at warn.
type GormLogger struct {
	logger        Logger
	slowThreshold time.Duration
}

func NewGormLogger(logger Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{logger: logger, slowThreshold: slowThreshold}
}

// LogMode is a no-op; verbosity follows logger.level.
func (g *GormLogger) LogMode(_ gormlogger.LogLevel) gormlogger.Interface {
	return g
}

func (g *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	g.logger.Debugf(TypeApp, msg, data...)
}

func (g *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	g.logger.Warnf(TypeApp, msg, data...)
}

func (g *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	g.logger.Errorf(TypeApp, msg, data...)
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		g.logger.Warnf(TypeApp, "query error: %v [%dms, rows=%d] %s", err, elapsed.Milliseconds(), rows, sql)
	case g.slowThreshold > 0 && elapsed > g.slowThreshold:
		g.logger.Warnf(TypeApp, "slow query [%dms > %s, rows=%d] %s", elapsed.Milliseconds(), g.slowThreshold, rows, sql)
	default:
		g.logger.Debugf(TypeApp, "sql [%dms, rows=%d] %s", elapsed.Milliseconds(), rows, sql)
	}
}
