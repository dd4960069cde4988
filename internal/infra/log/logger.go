package log

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New собирает zap-логгер. format "json" включает production-энкодер.
func New(levelEnv, format string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel) // default DEBUG

	if levelEnv != "" {
		if err := cfg.Level.UnmarshalText([]byte(levelEnv)); err != nil {
			fmt.Printf("bad LOG_LEVEL=%s, fallback to debug\n", levelEnv)
		}
	}
	return cfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

func Must(levelEnv, format string) *zap.Logger {
	l, err := New(levelEnv, format)
	if err != nil {
		panic(err)
	}
	return l
}

// Email логирует только хэш адреса.
func Email(email string) zap.Field {
	return zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(strings.ToLower(email)))))
}
