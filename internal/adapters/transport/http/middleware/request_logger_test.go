package middleware

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(200) })
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db is down"))
		c.AbortWithStatus(500)
	})

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("Cookie", "sid=secret")
	r.ServeHTTP(httptest.NewRecorder(), req)

	incoming := logs.FilterMessage("↘︎ incoming request").All()
	require.Len(t, incoming, 1)
	hdr := incoming[0].ContextMap()["hdr"].(string)
	require.False(t, strings.Contains(hdr, "secret"), hdr)
	require.Contains(t, hdr, "[redacted]")
	require.Equal(t, 1, logs.FilterMessage("↗︎ completed").Len())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/boom", nil))
	require.Equal(t, 1, logs.FilterMessage("handler error").Len())
	require.Equal(t, 1, logs.FilterMessage("↗︎ aborted").Len())
}
