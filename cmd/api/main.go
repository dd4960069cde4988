package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pgrepo "github.com/Miraines/bankr/api-service/internal/adapters/db/postgres"
	redisrepo "github.com/Miraines/bankr/api-service/internal/adapters/db/redis"
	"github.com/Miraines/bankr/api-service/internal/adapters/db/memory"
	mygrpc "github.com/Miraines/bankr/api-service/internal/adapters/transport/grpc"
	myhttp "github.com/Miraines/bankr/api-service/internal/adapters/transport/http"
	"github.com/Miraines/bankr/api-service/internal/adapters/transport/http/handler"
	activitysvc "github.com/Miraines/bankr/api-service/internal/app/activity/service"
	"github.com/Miraines/bankr/api-service/internal/app/auth/jwt"
	"github.com/Miraines/bankr/api-service/internal/app/auth/password"
	authsvc "github.com/Miraines/bankr/api-service/internal/app/auth/service"
	"github.com/Miraines/bankr/api-service/internal/app/crypto/fieldcrypt"
	planningsvc "github.com/Miraines/bankr/api-service/internal/app/planning/service"
	txsvc "github.com/Miraines/bankr/api-service/internal/app/transaction/service"
	usersvc "github.com/Miraines/bankr/api-service/internal/app/user/service"
	"github.com/Miraines/bankr/api-service/internal/app/validation"
	"github.com/Miraines/bankr/api-service/internal/domain/auth/repo"
	"github.com/Miraines/bankr/api-service/internal/domain/planning"
	"github.com/Miraines/bankr/api-service/internal/infra/config"
	"github.com/Miraines/bankr/api-service/internal/infra/health"
	lg "github.com/Miraines/bankr/api-service/internal/infra/log"
	"github.com/Miraines/bankr/api-service/internal/infra/migrate"
	"github.com/Miraines/bankr/api-service/internal/infra/server"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}

	// без ключа шифрования не стартуем: заметки транзакций нельзя ни записать, ни прочитать
	cipher, err := fieldcrypt.New(cfg.EncryptionKey)
	if err != nil {
		zapLog.Fatal("field encryption unavailable", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	probe := health.New(3*time.Second).Add("database", health.DB(db))

	limiterOpts := repo.LimiterOptions{MaxAttempts: cfg.LoginMaxAttempts, Window: cfg.LoginLockout}
	var limiter repo.LoginLimiter
	if cfg.RedisAddress != "" {
		redisCli := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisCli.Close()
		limiter = redisrepo.NewRedisLoginLimiter(redisCli, limiterOpts)
		probe.Add("redis", health.Redis(redisCli))
	} else {
		zapLog.Info("REDIS_ADDRESS not set, login throttling is per-process")
		limiter = memory.NewLoginLimiter(limiterOpts, 100_000)
	}

	jwtUtil, err := jwt.NewJWTUtil(cfg)
	if err != nil {
		zapLog.Fatal("failed to init JWT util", zap.Error(err))
	}
	hasher := password.New(password.Options{Algorithm: cfg.PasswordHasher, Cost: cfg.BcryptCost})
	validate := validation.New()

	userRepo := pgrepo.NewPostgresUserRepo(db)
	activity := activitysvc.New(pgrepo.NewPostgresActivityRepo(db), zapLog)
	auth := authsvc.New(userRepo, limiter, jwtUtil, hasher, activity, validate, zapLog)
	users := usersvc.New(userRepo, hasher, activity, validate, zapLog)
	transactions := txsvc.New(pgrepo.NewPostgresTransactionRepo(db), cipher, activity, validate, zapLog)
	services := handler.Services{
		Auth:         auth,
		Users:        users,
		Activity:     activity,
		Transactions: transactions,
		Budgets: planningsvc.New(planningsvc.Budgets,
			pgrepo.NewPostgresPlanningRepo[planning.Budget](db), activity, validate, zapLog),
		Goals: planningsvc.New(planningsvc.Goals,
			pgrepo.NewPostgresPlanningRepo[planning.Goal](db), activity, validate, zapLog),
		ScheduledPayments: planningsvc.New(planningsvc.ScheduledPayments,
			pgrepo.NewPostgresPlanningRepo[planning.ScheduledPayment](db), activity, validate, zapLog),
		Loans: planningsvc.New(planningsvc.Loans,
			pgrepo.NewPostgresPlanningRepo[planning.Loan](db), activity, validate, zapLog),
		Subscriptions: planningsvc.New(planningsvc.Subscriptions,
			pgrepo.NewPostgresPlanningRepo[planning.Subscription](db), activity, validate, zapLog),
	}

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := users.EnsureAdmin(rootCtx, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		zapLog.Fatal("seed first admin", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	h := handler.New(services, probe, zapLog)
	router := myhttp.NewRouter(rootCtx, h, auth, myhttp.RouterOptions{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: cfg.AllowCredentials,
		RateLimitRPS:     cfg.RateLimitRPS,
		RateLimitBurst:   cfg.RateLimitBurst,
		Registerer:       prometheus.DefaultRegisterer,
		Gatherer:         prometheus.DefaultGatherer,
	}, zapLog)

	srv := &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	reporter := mygrpc.NewHealthReporter(probe, 15*time.Second, zapLog)

	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		reporter.Run(ctx)
		return nil
	})

	g.Go(func() error {
		return server.StartGRPCServer(ctx, cfg, reporter.Server(), zapLog)
	})

	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddress), zap.Bool("tls", cfg.TLSEnabled()))
		var err error
		if cfg.TLSEnabled() {
			err = srv.ListenAndServeTLS(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
		zapLog.Error("server failed, shutting down")
	}
	cancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
