package config

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// Pool serves raw aggregate queries (dashboard stats, readiness).
	Pool *pgxpool.Pool
	// DB is the gorm handle used by every CRUD path.
	DB *gorm.DB
)

// InitDB opens both handles against the same database and exits on failure.
func InitDB(cfg *Config) {
	pool, err := OpenPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Unable to connect to database (pgx): %v", err)
	}
	Pool = pool
	log.Println("✅ Database connected (pgx)")

	db, err := OpenGorm(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		log.Fatalf("❌ Failed to connect to database with GORM: %v", err)
	}
	DB = db
	log.Println("✅ Database connected (GORM)")
}

// OpenPool connects a pgx pool and pings it.
func OpenPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// OpenGorm opens a gorm handle with unique-violation translation enabled so
// callers can match gorm.ErrDuplicatedKey.
func OpenGorm(dsn string, production bool) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Info)
	if production {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}
	return db, nil
}

func CloseDB() {
	if Pool != nil {
		Pool.Close()
		log.Println("✅ Database connection closed (pgx)")
	}
	if DB != nil {
		if sqlDB, _ := DB.DB(); sqlDB != nil {
			sqlDB.Close()
			log.Println("✅ Database connection closed (GORM)")
		}
	}
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// WithRequestTimeout bounds parent (normally the request context) to 10s so a
// disconnecting client also cancels the query.
func WithRequestTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}
