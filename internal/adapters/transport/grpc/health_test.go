package grpc

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Miraines/bankr/api-service/internal/infra/health"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func status(r *HealthReporter, service string) healthpb.HealthCheckResponse_ServingStatus {
	resp, err := r.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func TestHealthReporter_FollowsProbe(t *testing.T) {
	var down atomic.Bool
	probe := health.New(time.Second).Add("database", func(context.Context) error {
		if down.Load() {
			return errors.New("connection refused")
		}
		return nil
	})
	r := NewHealthReporter(probe, 10*time.Millisecond, zap.NewNop())
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(r, ""))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { r.Run(ctx); close(done) }()

	require.Eventually(t, func() bool {
		return status(r, ServiceName) == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	down.Store(true)
	require.Eventually(t, func() bool {
		return status(r, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, time.Second, 5*time.Millisecond)

	down.Store(false)
	require.Eventually(t, func() bool {
		return status(r, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
	require.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(r, ""))
}
