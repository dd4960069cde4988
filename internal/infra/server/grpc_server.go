package server

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/Miraines/bankr/api-service/internal/adapters/transport/grpc/middleware"
	"github.com/Miraines/bankr/api-service/internal/infra/config"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// StartGRPCServer поднимает gRPC-сервер с middleware и graceful shutdown.
// Блокируется до отмены ctx.
func StartGRPCServer(ctx context.Context, cfg *config.Config, hs healthpb.HealthServer, logger *zap.Logger) error {
	// 1. Открыть порт
	lis, err := net.Listen("tcp", cfg.GRPCAddress)
	if err != nil {
		return err
	}

	// 2. Составить цепочку interceptor-ов
	opts := []grpc.ServerOption{
		grpc.UnaryInterceptor(middleware.ChainUnaryServer(ctx, logger, cfg.RateLimitRPS, cfg.RateLimitBurst)),
		grpc.StreamInterceptor(middleware.ChainStreamServer(logger)),
	}

	// TLS только если заданы оба файла
	if cfg.TLSEnabled() {
		creds, err := credentials.NewServerTLSFromFile(cfg.HTTPSCertFile, cfg.HTTPSKeyFile)
		if err != nil {
			_ = lis.Close()
			return err
		}
		opts = append(opts, grpc.Creds(creds))
	}

	// 3. Создать сам gRPC‐сервер
	grpcServer := grpc.NewServer(opts...)

	// 4. Зарегистрировать сервисы и метрики
	healthpb.RegisterHealthServer(grpcServer, hs)
	grpc_prometheus.Register(grpcServer)
	grpc_prometheus.EnableHandlingTimeHistogram()
	reflection.Register(grpcServer)

	// 5. Запустить в горутине
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddress))
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// 6. Ждём сигнала на остановку или падения Serve
	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("ctx cancelled, stopping gRPC server…")

	// 7. Graceful stop с 5-секундным таймаутом
	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-stopCtx.Done():
		grpcServer.Stop()
	case <-done:
	}
	logger.Info("gRPC server stopped")
	return nil
}
