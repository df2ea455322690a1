package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCORSOrigins 前端開發環境
var DefaultCORSOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8080",
	"http://localhost:4200",
}

// Config 啟動時載入一次，之後唯讀
type Config struct {
	Port             int
	DatabaseURL      string
	JWTSecret        string
	JWTTTL           time.Duration
	BcryptCost       int
	AllowAdminSignup bool
	CORSOrigins      []string
	LogLevel         slog.Level
	LogFormat        string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CacheTTL         time.Duration
	DBWaitRetries    uint64
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CacheEnabled REDIS_ADDR 未設定時不使用 Redis
func (c Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// 測試可替換
var dotenvLoad = godotenv.Load

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", 8080)
	v.SetDefault("JWT_TTL", time.Hour)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("ALLOW_ADMIN_SIGNUP", true)
	v.SetDefault("CORS_ORIGINS", strings.Join(DefaultCORSOrigins, ","))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 30*time.Second)
	v.SetDefault("DB_WAIT_RETRIES", 5)
	return v
}

// Load 讀取 .env (若存在) 與環境變數
func Load() (Config, error) {
	if err := dotenvLoad(); err != nil {
		slog.Debug(".env not loaded", slog.Any("error", err))
	}
	return fromViper(newViper())
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:             v.GetInt("PORT"),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		AllowAdminSignup: v.GetBool("ALLOW_ADMIN_SIGNUP"),
		CORSOrigins:      splitList(v.GetString("CORS_ORIGINS")),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		CacheTTL:         v.GetDuration("CACHE_TTL"),
		DBWaitRetries:    v.GetUint64("DB_WAIT_RETRIES"),
	}

	var errs []error
	if cfg.DatabaseURL == "" {
		errs = append(errs, errors.New("環境變數 DATABASE_URL 未設定"))
	}
	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("環境變數 JWT_SECRET 未設定"))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("無效的 PORT: %d", cfg.Port))
	}
	if cfg.JWTTTL <= 0 {
		errs = append(errs, fmt.Errorf("無效的 JWT_TTL: %s", v.GetString("JWT_TTL")))
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		errs = append(errs, fmt.Errorf("無效的 LOG_LEVEL: %w", err))
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("無效的 LOG_FORMAT: %q", cfg.LogFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// LoadDatabaseURL 只讀取 DATABASE_URL，供 migrate 指令使用
func LoadDatabaseURL() (string, error) {
	if err := dotenvLoad(); err != nil {
		slog.Debug(".env not loaded", slog.Any("error", err))
	}
	url := newViper().GetString("DATABASE_URL")
	if url == "" {
		return "", errors.New("環境變數 DATABASE_URL 未設定")
	}
	return url, nil
}
