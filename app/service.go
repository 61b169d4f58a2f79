package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/prodplan/api/productionplan"
	"github.com/kilianp07/prodplan/config"
	coremetrics "github.com/kilianp07/prodplan/core/metrics"
	coremon "github.com/kilianp07/prodplan/core/monitoring"
	coremqtt "github.com/kilianp07/prodplan/core/mqtt"
	"github.com/kilianp07/prodplan/core/planlog"
	"github.com/kilianp07/prodplan/core/production"
	"github.com/kilianp07/prodplan/infra/logger"
	"github.com/kilianp07/prodplan/infra/metrics"
	"github.com/kilianp07/prodplan/infra/monitoring"
	"github.com/kilianp07/prodplan/infra/mqtt"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

// Service wires the planner, its HTTP API and the plan consumers.
type Service struct {
	cfg       *config.Config
	Planner   *production.Planner
	bus       *eventbus.Bus[any]
	sink      coremetrics.MetricsSink
	store     planlog.LogStore
	publisher coremqtt.PlanPublisher
	log       logger.Logger
	workers   []<-chan struct{}
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	logg := logger.New("service")

	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)

	sink, err := coremetrics.NewPlanSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	store, err := planlog.Open(cfg.PlanLog)
	if err != nil {
		return nil, err
	}
	var pub coremqtt.PlanPublisher = coremqtt.NopPublisher{}
	if cfg.MQTT.Enabled {
		p, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		pub = p
	}
	planner := production.NewPlanner(logger.New("planner"), production.WithStrictLoad(cfg.Planner.StrictLoad))
	return &Service{
		cfg:       cfg,
		Planner:   planner,
		bus:       eventbus.New[any](eventbus.DefaultBuffer),
		sink:      sink,
		store:     store,
		publisher: pub,
		log:       logg,
	}, nil
}

// Handler returns the HTTP routes of the service.
func (s *Service) Handler() http.Handler {
	plan := productionplan.NewHandler(s.Planner, s.bus, logger.New("api"), s.cfg.Server.MaxBodyBytes)
	mux := http.NewServeMux()
	mux.Handle("/{$}", productionplan.NewHealthHandler())
	mux.Handle("/productionplan", plan)
	mux.Handle("/production_plan", plan)
	mux.Handle("/api/productionplan/logs", productionplan.NewLogHandler(s.store, s.cfg.PlanLog.Token))
	return productionplan.Recover(mux)
}

// Start launches the bus consumers. Run calls it; it is exported for callers
// serving Handler themselves.
func (s *Service) Start(ctx context.Context) {
	s.workers = append(s.workers,
		metrics.StartEventCollector(ctx, s.bus, s.sink, logger.New("metrics")),
		StartPlanRecorder(ctx, s.bus, s.store, s.publisher, logger.New("recorder")),
	)
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	s.Start(ctx)
	if addr := s.cfg.Metrics.PrometheusAddr; addr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	srv := &http.Server{
		Addr:              s.cfg.Server.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.Server.ReadTimeout(),
		WriteTimeout:      s.cfg.Server.WriteTimeout(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", s.cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// DroppedEvents reports how many plan events the consumers missed because
// they were not keeping up.
func (s *Service) DroppedEvents() uint64 { return s.bus.Dropped() }

// Close stops the consumers and releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	for _, done := range s.workers {
		<-done
	}
	if n := s.DroppedEvents(); n > 0 {
		s.log.Warnf("event bus dropped %d events, metrics and plan log may be incomplete", n)
	}
	if p, ok := s.publisher.(*mqtt.PahoPublisher); ok {
		p.Disconnect()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	coremon.Flush(2 * time.Second)
	return s.store.Close()
}
