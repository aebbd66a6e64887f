package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"quotepanel/internal/feature/quotes/adapters"
)

const (
	// DriverSQLite は既定のドライバーです。
	DriverSQLite = "sqlite"
	// DriverPostgres は DB_DSN に PostgreSQL の接続文字列を指定する場合に使用します。
	DriverPostgres = "postgres"

	// MemoryDSN はプロセス終了とともに消えるインメモリ sqlite です。
	MemoryDSN = ":memory:"
)

// retryInterval は接続リトライの待機時間です。テストから短縮できるよう変数にしています。
var retryInterval = 3 * time.Second

// Config はフェッチ履歴を保存するデータベースの設定です。
type Config struct {
	Driver      string
	DSN         string
	ConnTimeout time.Duration
}

// LoadConfigFromEnv は環境変数 DB_DRIVER, DB_DSN からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	return Config{
		Driver: os.Getenv("DB_DRIVER"),
		DSN:    os.Getenv("DB_DSN"),
	}
}

// Opener は DSN から *gorm.DB を生成する関数です。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は timeout に達するまで opener を繰り返し呼び出します。
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "interval", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定に従ってデータベースへ接続し、フェッチ履歴テーブルをマイグレーションします。
func Open(cfg Config) (*gorm.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}
	dsn := cfg.DSN
	if dsn == "" && driver == DriverSQLite {
		dsn = MemoryDSN
	}
	if cfg.ConnTimeout <= 0 {
		cfg.ConnTimeout = 30 * time.Second
	}

	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	var opener Opener
	switch driver {
	case DriverSQLite:
		opener = func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }
	case DriverPostgres:
		opener = func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	db, err := ConnectWithRetry(dsn, cfg.ConnTimeout, opener)
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite && strings.Contains(dsn, MemoryDSN) {
		// インメモリ sqlite は接続ごとに別のDBになるため1接続に固定
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&adapters.FetchRecordModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	slog.Info("fetch journal database ready", "driver", driver)
	return db, nil
}
