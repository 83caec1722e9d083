package main

import (
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dinefinder/internal/auth"
	"dinefinder/internal/db"
	"dinefinder/internal/domain/storage"
	"dinefinder/internal/ratelimiter"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// NewLogger creates a new zap logger with color.
func NewLogger(env string) (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if env == "development" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), level)

	return zap.New(core).Sugar(), nil
}

// loadConfig reads .env when present and parses the environment into config.
func loadConfig() (config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config{}, fmt.Errorf("load .env file: %w", err)
	}

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// openStorage connects the configured backend and returns the container, a
// stats func for expvar and a close func.
func openStorage(cfg dbConfig) (*storage.Container, func() any, func(), error) {
	switch cfg.Driver {
	case driverPostgres:
		pool, err := db.New(cfg.Addr, cfg.MaxOpenConns, cfg.MaxIdleTime)
		if err != nil {
			return nil, nil, nil, err
		}
		stats := func() any { return poolStats(pool) }
		return storage.NewPostgres(pool), stats, pool.Close, nil
	case driverSQLite:
		sqlDB, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		stats := func() any { return sqlDB.Stats() }
		return storage.NewSQLite(sqlDB), stats, func() { _ = sqlDB.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func poolStats(pool *pgxpool.Pool) map[string]any {
	s := pool.Stat()
	return map[string]any{
		"total_conns":    s.TotalConns(),
		"idle_conns":     s.IdleConns(),
		"acquired_conns": s.AcquiredConns(),
		"max_conns":      s.MaxConns(),
	}
}

var version = "0.3.0"

//	@title			Dine Finder API
//	@description	Reviews, favorites and owner claims for the Dine Finder restaurant directory.

//	@contact.name	API Support
//	@contact.email	support@dinefinder.dev

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization
//	@description

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	store, dbStats, closeDB, err := openStorage(cfg.DB)
	if err != nil {
		logger.Fatal(err)
	}
	defer closeDB()
	logger.Infow("database ready", "driver", cfg.DB.Driver)

	var limiter ratelimiter.Limiter
	if cfg.RateLimiter.Enabled {
		fw := ratelimiter.NewFixedWindowLimiter(
			cfg.RateLimiter.RequestsPerTimeFrame,
			cfg.RateLimiter.TimeFrame,
		)
		defer fw.Stop()
		limiter = fw
	}

	jwtAuthenticator := auth.NewJWTAuthenticator(
		cfg.Auth.Token.Secret,
		cfg.Auth.Token.Iss,
		cfg.Auth.Token.Iss,
		cfg.Auth.Token.Exp,
	)

	app := newApplication(cfg, store, logger, jwtAuthenticator, limiter)

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(dbStats))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.NewString("started_at").Set(time.Now().UTC().Format(time.RFC3339))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
