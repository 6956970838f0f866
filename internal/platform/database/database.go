package database

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xxz807/watertaxi/internal/platform/config"
)

// Open 初始化数据库连接
// DSN 以 postgres:// 开头时连 Postgres，否则视为 SQLite 文件（本地开发 / 测试）
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormLog := NewGormLogger(log, GormLoggerConfig{
		Level:                gormlogger.Warn,
		SlowThreshold:        cfg.SlowThreshold,
		IgnoreRecordNotFound: true,
	})

	dialector, driver := dialectorFor(cfg.DSN)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	// 连接池配置
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established", zap.String("driver", driver))
	return db, nil
}

func dialectorFor(dsn string) (gorm.Dialector, string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgres.Open(dsn), "postgres"
	}
	return NewSQLiteDialector(dsn), "sqlite"
}
