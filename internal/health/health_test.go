package health_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"meeting-dashboard/internal/health"
)

type flakyPinger struct{ down atomic.Bool }

func (p *flakyPinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("storage unreachable")
	}
	return nil
}

func check(t *testing.T, client grpc_health_v1.HealthClient, service string) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		t.Fatalf("check %q: %v", service, err)
	}
	return resp.Status
}

func TestHealthFollowsStorage(t *testing.T) {
	p := &flakyPinger{}
	srv, err := health.New("127.0.0.1:0", p, zerolog.Nop())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, time.Hour) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	conn, err := grpc.NewClient(srv.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	client := grpc_health_v1.NewHealthClient(conn)

	if st := check(t, client, ""); st != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("overall: %v", st)
	}
	if st := check(t, client, health.ServiceName); st != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("ledger: %v", st)
	}

	p.down.Store(true)
	if srv.Probe(context.Background()) {
		t.Error("probe reported healthy storage")
	}
	if st := check(t, client, health.ServiceName); st != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("after outage: %v", st)
	}
}
