package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type (
	Container struct {
		App     *App
		Token   *Token
		DB      *DB
		HTTP    *HTTP
		Redis   *Redis
		Storage *Storage
	}

	App struct {
		Name     string
		Env      string
		LogLevel string
	}

	Token struct {
		Secret   string
		Duration string
	}

	DB struct {
		Host          string
		Port          string
		User          string
		Password      string
		Name          string
		SSLMode       string
		MigrationsDir string
	}

	HTTP struct {
		Env            string
		Port           string
		AllowedOrigins string
		URL            string
		MaxUploadBytes int64
	}

	Redis struct {
		Address  string
		Password string
	}

	Storage struct {
		// Driver is "local" (files under MediaRoot) or "minio".
		Driver         string
		MediaRoot      string
		MinioEndpoint  string
		MinioAccessKey string
		MinioSecretKey string
		MinioBucket    string
		MinioUseSSL    bool
	}
)

func New() (*Container, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	app := &App{
		Name:     getenv("APP_NAME", "motoshop"),
		Env:      getenv("APP_ENV", "development"),
		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	token := &Token{
		Secret:   os.Getenv("TOKEN_SECRET"),
		Duration: getenv("TOKEN_DURATION", "24h"),
	}

	db := &DB{
		Host:          getenv("DB_HOST", "localhost"),
		Port:          getenv("DB_PORT", "5432"),
		User:          os.Getenv("DB_USER"),
		Password:      os.Getenv("DB_PASSWORD"),
		Name:          os.Getenv("DB_NAME"),
		SSLMode:       getenv("DB_SSLMODE", "disable"),
		MigrationsDir: getenv("DB_MIGRATIONS_DIR", "./internal/adapter/postgres/migrations"),
	}

	http := &HTTP{
		Port:           getenv("HTTP_PORT", "8080"),
		AllowedOrigins: getenv("ALLOWED_ORIGINS", "*"),
		URL:            os.Getenv("HTTP_URL"),
		Env:            app.Env,
		MaxUploadBytes: getenvInt64("HTTP_MAX_UPLOAD_BYTES", 10<<20),
	}

	redis := &Redis{
		Address:  getenv("REDIS_ADDRESS", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}

	storage := &Storage{
		Driver:         getenv("STORAGE_DRIVER", "local"),
		MediaRoot:      getenv("MEDIA_ROOT", "./media"),
		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getenv("MINIO_BUCKET", "media"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	}

	if token.Secret == "" && app.Env != "development" {
		return nil, errors.New("TOKEN_SECRET must be set outside development")
	}
	if http.URL != "" {
		if _, _, err := net.SplitHostPort(http.URL); err == nil {
			return nil, fmt.Errorf("HTTP_URL %q must be a host without a port, use HTTP_PORT", http.URL)
		}
	}

	return &Container{
		App:     app,
		Token:   token,
		DB:      db,
		HTTP:    http,
		Redis:   redis,
		Storage: storage,
	}, nil
}

// Addr is the listen address; an empty URL listens on all interfaces.
func (h *HTTP) Addr() string {
	return net.JoinHostPort(h.URL, h.Port)
}

// TokenTTL parses Token.Duration, falling back to 24h.
func (t *Token) TokenTTL() time.Duration {
	d, err := time.ParseDuration(t.Duration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt64(key string, fallback int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
