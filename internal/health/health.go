package health

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is reported alongside the overall ("") status.
const ServiceName = "dashboard.Ledger"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is a gRPC health endpoint whose status follows the ledger storage.
type Server struct {
	lis    net.Listener
	grpc   *grpc.Server
	health *grpchealth.Server
	pinger Pinger
	log    zerolog.Logger
}

func New(addr string, p Pinger, log zerolog.Logger) (*Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("health listen: %w", err)
	}
	srv := grpc.NewServer()
	hs := grpchealth.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, hs)
	return &Server{lis: lis, grpc: srv, health: hs, pinger: p, log: log}, nil
}

func (s *Server) Addr() string { return s.lis.Addr().String() }

// Probe pings storage once and publishes the result.
func (s *Server) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	st := grpc_health_v1.HealthCheckResponse_SERVING
	err := s.pinger.Ping(ctx)
	if err != nil {
		st = grpc_health_v1.HealthCheckResponse_NOT_SERVING
		s.log.Warn().Err(err).Msg("storage ping failed")
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
	return err == nil
}

// Serve blocks until ctx is done or the listener fails, probing storage
// every interval.
func (s *Server) Serve(ctx context.Context, every time.Duration) error {
	s.Probe(ctx)
	go func() {
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Probe(ctx)
			}
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- s.grpc.Serve(s.lis) }()
	s.log.Info().Str("addr", s.Addr()).Msg("grpc health listening")

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpc.GracefulStop()
		return nil
	case err := <-errc:
		return err
	}
}
