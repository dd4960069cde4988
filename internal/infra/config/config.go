package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string
	HTTPAddress string
	GRPCAddress string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	Issuer             string

	EncryptionKey  string
	BcryptCost     int
	PasswordHasher string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	LoginMaxAttempts int
	LoginLockout     time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	AllowedOrigins   []string
	AllowCredentials bool

	HTTPSCertFile string
	HTTPSKeyFile  string

	FirstAdminEmail    string
	FirstAdminPassword string

	LogLevel  string
	LogFormat string
}

var required = []string{
	"DATABASE_URL",
	"JWT_ACCESS_SECRET",
	"JWT_REFRESH_SECRET",
	"ENCRYPTION_KEY",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("GRPC_ADDRESS", ":9090")
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")
	v.SetDefault("JWT_REFRESH_EXPIRY", "7d")
	v.SetDefault("JWT_ISSUER", "bankr")
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("PASSWORD_HASHER", "bcrypt")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIN_MAX_ATTEMPTS", 5)
	v.SetDefault("LOGIN_LOCKOUT", "15m")
	v.SetDefault("RATE_LIMIT_RPS", 50)
	v.SetDefault("RATE_LIMIT_BURST", 100)
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("ALLOW_CREDENTIALS", true)

	v.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL", "JWT_ACCESS_SECRET", "JWT_REFRESH_SECRET", "ENCRYPTION_KEY",
		"REDIS_ADDRESS", "REDIS_PASSWORD", "HTTPS_CERT_FILE", "HTTPS_KEY_FILE",
		"FIRST_ADMIN_EMAIL", "FIRST_ADMIN_PASSWORD", "LOG_LEVEL", "LOG_FORMAT",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var missing []string
	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	accessTTL, err := parseDuration(v.GetString("JWT_ACCESS_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_EXPIRY: %w", err)
	}
	refreshTTL, err := parseDuration(v.GetString("JWT_REFRESH_EXPIRY"))
	if err != nil {
		return nil, fmt.Errorf("JWT_REFRESH_EXPIRY: %w", err)
	}
	lockout, err := parseDuration(v.GetString("LOGIN_LOCKOUT"))
	if err != nil {
		return nil, fmt.Errorf("LOGIN_LOCKOUT: %w", err)
	}

	cfg := &Config{
		DatabaseURL:        v.GetString("DATABASE_URL"),
		HTTPAddress:        v.GetString("HTTP_ADDRESS"),
		GRPCAddress:        v.GetString("GRPC_ADDRESS"),
		AccessTokenSecret:  v.GetString("JWT_ACCESS_SECRET"),
		RefreshTokenSecret: v.GetString("JWT_REFRESH_SECRET"),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
		Issuer:             v.GetString("JWT_ISSUER"),
		EncryptionKey:      v.GetString("ENCRYPTION_KEY"),
		BcryptCost:         v.GetInt("BCRYPT_COST"),
		PasswordHasher:     strings.ToLower(v.GetString("PASSWORD_HASHER")),
		RedisAddress:       v.GetString("REDIS_ADDRESS"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		LoginMaxAttempts:   v.GetInt("LOGIN_MAX_ATTEMPTS"),
		LoginLockout:       lockout,
		RateLimitRPS:       v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
		AllowedOrigins:     splitList(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials:   v.GetBool("ALLOW_CREDENTIALS"),
		HTTPSCertFile:      v.GetString("HTTPS_CERT_FILE"),
		HTTPSKeyFile:       v.GetString("HTTPS_KEY_FILE"),
		FirstAdminEmail:    v.GetString("FIRST_ADMIN_EMAIL"),
		FirstAdminPassword: v.GetString("FIRST_ADMIN_PASSWORD"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessTokenSecret == c.RefreshTokenSecret {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	switch c.PasswordHasher {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("unknown PASSWORD_HASHER %q", c.PasswordHasher)
	}
	if (c.HTTPSCertFile == "") != (c.HTTPSKeyFile == "") {
		return errors.New("HTTPS_CERT_FILE and HTTPS_KEY_FILE must be set together")
	}
	if (c.FirstAdminEmail == "") != (c.FirstAdminPassword == "") {
		return errors.New("FIRST_ADMIN_EMAIL and FIRST_ADMIN_PASSWORD must be set together")
	}
	return nil
}

// TLSEnabled reports whether the HTTP and gRPC listeners should serve TLS.
func (c *Config) TLSEnabled() bool {
	return c.HTTPSCertFile != "" && c.HTTPSKeyFile != ""
}

// parseDuration понимает всё, что умеет time.ParseDuration, плюс суффикс "d" (дни).
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("bad duration %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
