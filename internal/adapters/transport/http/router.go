package http

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/handler"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/middleware"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/response"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/model"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterOptions struct {
	AllowedOrigins   []string
	AllowCredentials bool
	RateLimitRPS     int
	RateLimitBurst   int
	// Registerer получает HTTP-метрики, Gatherer отдаётся на /metrics.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter собирает gin.Engine. ctx ограничивает фоновые горутины middleware.
func NewRouter(
	ctx context.Context,
	h *handler.Handler,
	auth middleware.Authenticator,
	opts RouterOptions,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.NewMetrics(opts.Registerer).Handler())

	corsCfg := cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: opts.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		// без списка cors.New паникует; открываем всем, но без cookie
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(middleware.NewHTTPRateLimitPerIP(ctx, opts.RateLimitRPS, opts.RateLimitBurst, 10_000, time.Hour))

	authn := middleware.Authenticate(auth)

	a := api.Group("/auth")
	{
		a.POST("/register", h.Register)
		a.POST("/login", h.Login)
		a.POST("/refresh", h.Refresh)
		a.POST("/logout", authn, h.Logout)
		a.GET("/me", authn, h.Me)
	}

	u := api.Group("/users", authn)
	{
		u.GET("", middleware.RequireRole(model.RoleAdmin), h.ListUsers)
		u.PATCH("/:id", middleware.RequireRole(model.RoleAdmin), h.AdminUpdateUser)
		u.PUT("/me", h.UpdateProfile)
		u.DELETE("/me", h.DeleteAccount)
	}

	api.GET("/activity-logs", authn, h.ListActivity)

	t := api.Group("/transactions", authn)
	{
		t.GET("", h.ListTransactions)
		t.POST("", h.CreateTransaction)
		t.GET("/stats/summary", h.TransactionSummary)
		t.GET("/export", middleware.RequirePremium(), h.ExportTransactions)
		t.GET("/:id", h.GetTransaction)
		t.PUT("/:id", h.UpdateTransaction)
		t.DELETE("/:id", h.DeleteTransaction)
	}

	mount(api.Group("/budgets", authn), h.Budgets)
	mount(api.Group("/goals", authn), h.Goals)
	mount(api.Group("/scheduled-payments", authn), h.ScheduledPayments)
	mount(api.Group("/loans", authn), h.Loans)
	mount(api.Group("/subscriptions", authn), h.Subscriptions)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, 404, response.CodeNotFound, "Route not found")
	})
	return r
}

func mount(g *gin.RouterGroup, res handler.Resource) {
	g.GET("", res.List)
	g.POST("", res.Create)
	g.GET("/:id", res.Get)
	g.PUT("/:id", res.Update)
	g.DELETE("/:id", res.Delete)
}
