// Package app wires configuration into a running observation service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apischedule "github.com/flightobs/flightwatch/api/schedule"
	"github.com/flightobs/flightwatch/config"
	"github.com/flightobs/flightwatch/core/catalog"
	coremetrics "github.com/flightobs/flightwatch/core/metrics"
	"github.com/flightobs/flightwatch/core/roster"
	corestore "github.com/flightobs/flightwatch/core/store"
	"github.com/flightobs/flightwatch/infra/logger"
	"github.com/flightobs/flightwatch/infra/metrics"
	"github.com/flightobs/flightwatch/infra/notify"
	infrastore "github.com/flightobs/flightwatch/infra/store"
	"github.com/flightobs/flightwatch/internal/eventbus"
)

// Service owns the store, the roster manager and the HTTP surface.
type Service struct {
	Manager *roster.Manager

	cfg      *config.Config
	bus      *eventbus.Bus
	notifier notify.Notifier
	closers  []func() error
	log      logger.Logger
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return nil, fmt.Errorf("schedule location: %w", err)
	}
	loader := catalog.NewLoader(loc)

	svc := &Service{cfg: cfg, log: logg}

	var st corestore.TableStore
	switch cfg.Store.Backend {
	case config.StoreMemory:
		st = infrastore.NewMemStore()
	default:
		gs, err := infrastore.Open(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		svc.closers = append(svc.closers, gs.Close)
		st = gs
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc.bus = eventbus.New()
	svc.Manager = roster.New(st, loader, sink, svc.bus, logg)

	if cfg.Notify.Enabled {
		n, err := notify.NewMQTTNotifier(cfg.Notify)
		if err != nil {
			return nil, fmt.Errorf("notifier: %w", err)
		}
		svc.notifier = n
	}
	return svc, nil
}

// Run serves the API until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	if s.notifier != nil {
		events := s.bus.Subscribe()
		go func() {
			for ev := range events {
				if ae, ok := ev.(roster.AssignmentEvent); ok {
					s.notifier.Notify(ae)
				}
			}
		}()
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	handler := apischedule.New(s.Manager, s.cfg.API.Token, s.log)
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api shutdown: %v", err)
		}
	}()
	s.log.Infof("serving schedule API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.notifier != nil {
		s.notifier.Close()
	}
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
