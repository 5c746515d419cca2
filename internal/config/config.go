package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	TargetLocal     = "local"
	TargetContainer = "container"
)

type Config struct {
	Env  string
	Port int

	// STORE_DRIVER picks the document store backend.
	StoreDriver  string
	StoreTimeout time.Duration

	// Mongo connection; STORE_TARGET fills both when MONGO_URI/MONGO_DB are unset.
	StoreTarget     string
	MongoURI        string
	MongoDB         string
	MongoCollection string

	DBURL string

	BcryptCost         int
	MaxBodyBytes       int64
	CORSAllowedOrigins []string

	OTELEndpoint string
	ServiceName  string
}

// mongo targets for running on a workstation vs. inside the compose network
var mongoTargets = map[string]struct{ uri, db string }{
	TargetLocal:     {uri: "mongodb://localhost:27017", db: "ProjectDatabase"},
	TargetContainer: {uri: "mongodb://mongo:27017", db: "local"},
}

func Load() Config {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	target := getEnv("STORE_TARGET", TargetContainer)
	defaults, ok := mongoTargets[target]
	if !ok {
		slog.Warn("unknown STORE_TARGET, falling back", "target", target, "fallback", TargetContainer)
		target = TargetContainer
		defaults = mongoTargets[TargetContainer]
	}

	return Config{
		Env:  getEnv("APP_ENV", "dev"),
		Port: getEnvInt("PORT", 8002),

		StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 3*time.Second),

		StoreTarget:     target,
		MongoURI:        getEnv("MONGO_URI", defaults.uri),
		MongoDB:         getEnv("MONGO_DB", defaults.db),
		MongoCollection: getEnv("MONGO_COLLECTION", "Users"),

		DBURL: buildDBURL(),

		BcryptCost:         getEnvInt("BCRYPT_COST", 10),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),

		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "userhub"),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "userhub")
	pass := getEnv("DB_PASSWORD", "userhub")
	name := getEnv("DB_NAME", "userhub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			slog.Warn("invalid integer env value, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)

		if err != nil || d <= 0 {
			slog.Warn("invalid duration env value, using default", "key", key, "value", v, "default", fallback)
			return fallback
		}

		return d
	}
	return fallback
}

func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}

	return out
}
