package middleware

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var sensitiveHeaders = []string{"authorization", "cookie"}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqHeaders, _ := json.Marshal(scrub(c.Request.Header))
		log.Debug("↘︎ incoming request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("origin", c.GetHeader("Origin")),
			zap.ByteString("hdr", reqHeaders),
		)

		ts := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(ts)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}
		if p, ok := PrincipalFrom(c); ok {
			fields = append(fields, zap.String("user_id", p.ID.String()))
		}

		// Ошибки, которые handler сохранил в c.Errors: настоящая причина 401/500 видна только здесь
		for _, e := range c.Errors {
			log.Error("handler error",
				zap.Int("status", c.Writer.Status()),
				zap.Error(e.Err),
				zap.String("path", c.Request.URL.Path),
			)
		}

		// Если CORS, лимитер или auth прервали цепочку
		if c.IsAborted() {
			log.Warn("↗︎ aborted", fields...)
			return
		}
		log.Info("↗︎ completed", fields...)
	}
}

// scrub копирует заголовки без токенов и cookie.
func scrub(h http.Header) http.Header {
	clone := h.Clone()
	for k := range clone {
		lk := strings.ToLower(k)
		for _, s := range sensitiveHeaders {
			if strings.Contains(lk, s) {
				clone[k] = []string{"[redacted]"}
			}
		}
	}
	return clone
}
