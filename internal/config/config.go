package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/mvolkova/kids_shop/internal/models"
)

type Config struct {
	Port          int
	DBPath        string
	DatabaseURL   string
	JWTSecret     []byte
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
	ESURL         string
	ESUser        string
	ESPassword    string
	KafkaBrokers  []string
	LogLevel      string
	RateLimitRPS  int
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		Port:          EnvIntDefault("PORT", 8080),
		DBPath:        EnvDefault("DB_PATH", "shop.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:      time.Duration(EnvIntDefault("TOKEN_TTL_HOURS", 168)) * time.Hour,
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		ESURL:         os.Getenv("ES_URL"),
		ESUser:        os.Getenv("ES_USER"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		KafkaBrokers:  CSV(os.Getenv("KAFKA_BROKERS")),
		LogLevel:      EnvDefault("LOG_LEVEL", "info"),
		RateLimitRPS:  EnvIntDefault("RATE_LIMIT_RPS", 20),
	}
}

// InitDB opens the embedded single-file store, or Postgres when
// DATABASE_URL is set, and migrates the schema. A migration failure
// is fatal to the caller: the service is unusable without its schema.
func InitDB(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	embedded := cfg.DatabaseURL == ""
	dialector := sqlite.Open(cfg.DBPath)
	if !embedded {
		dialector = postgres.Open(cfg.DatabaseURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if embedded {
		// The embedded store serializes writes on a single connection.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.WishlistItem{}); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return db, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}
