// Package grpc exposes the internal gRPC endpoint: standard health service plus reflection.
package grpc

import (
	"context"
	"time"

	"github.com/Miraines/bankr/api-service/internal/infra/health"
	"go.uber.org/zap"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "bankr.api"

type Prober interface {
	Check(ctx context.Context) health.Report
}

// HealthReporter переносит результат общего health-probe в grpc.health.v1.
type HealthReporter struct {
	server   *grpchealth.Server
	probe    Prober
	interval time.Duration
	log      *zap.Logger
}

func NewHealthReporter(probe Prober, interval time.Duration, log *zap.Logger) *HealthReporter {
	srv := grpchealth.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &HealthReporter{server: srv, probe: probe, interval: interval, log: log}
}

func (r *HealthReporter) Server() healthpb.HealthServer { return r.server }

// Run polls until ctx is done, then marks everything NOT_SERVING for the drain.
func (r *HealthReporter) Run(ctx context.Context) {
	r.update(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
			r.update(ctx)
		}
	}
}

func (r *HealthReporter) update(ctx context.Context) {
	rep := r.probe.Check(ctx)
	st := healthpb.HealthCheckResponse_SERVING
	if !rep.Healthy() {
		st = healthpb.HealthCheckResponse_NOT_SERVING
		r.log.Warn("health probe degraded", zap.Any("checks", rep.Checks))
	}
	r.server.SetServingStatus("", st)
	r.server.SetServingStatus(ServiceName, st)
}
