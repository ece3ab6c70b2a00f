package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/avigny/taskforge/api/plan"
	"github.com/avigny/taskforge/config"
	"github.com/avigny/taskforge/core/extract"
	coremetrics "github.com/avigny/taskforge/core/metrics"
	"github.com/avigny/taskforge/infra/ai"
	"github.com/avigny/taskforge/infra/fetch"
	"github.com/avigny/taskforge/infra/logger"
	"github.com/avigny/taskforge/infra/metrics"
)

// Service wires the planning API, the extraction collaborator and the
// metrics sinks.
type Service struct {
	cfg         *config.Config
	handler     *plan.Handler
	log         logger.Logger
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	// A service-level AI configuration is optional; requests may carry
	// their own credentials.
	var source extract.TaskSource
	if cfg.AI.APIKey != "" {
		s, err := ai.New(cfg.AI)
		if err != nil {
			return nil, fmt.Errorf("ai source: %w", err)
		}
		source = s
	}
	factory := func(c ai.Config) (extract.TaskSource, error) { return ai.New(c) }

	fetcher := fetch.New(time.Duration(cfg.Fetch.TimeoutSeconds) * time.Second)
	handler := plan.NewHandler(source, factory, fetcher, cfg.Planner, sink, logg)

	return &Service{
		cfg:         cfg,
		handler:     handler,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	s.handler.Register(mux)
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: mux}

	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
