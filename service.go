package bpm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/logger"
	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/model/holiday"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/action/notify"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao/instance/fs"
	instmem "github.com/polytechnice-si/5A-BPM-Demo/service/dao/instance/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/service/engine"
	"github.com/polytechnice-si/5A-BPM-Demo/service/event"
	histmem "github.com/polytechnice-si/5A-BPM-Demo/service/history/memory"
	"github.com/polytechnice-si/5A-BPM-Demo/service/meta"
	prommetrics "github.com/polytechnice-si/5A-BPM-Demo/service/metrics/prometheus"
	"github.com/polytechnice-si/5A-BPM-Demo/service/registry"
	"github.com/polytechnice-si/5A-BPM-Demo/service/report"
	taskmem "github.com/polytechnice-si/5A-BPM-Demo/service/task/memory"
)

// Service wires the engine with its stores, metrics and tracing.
type Service struct {
	config        *Config
	runtime       *Runtime
	metaService   *meta.Service
	configURL     string
	events        *event.Service
	listener      func(*event.Event[any])
	instances     dao.Service[string, execution.Process]
	definitions   []*model.Definition
	mailWriter    io.Writer
	engineOptions []engine.Option
	collector     *prommetrics.Collector
	exporter      *prommetrics.Exporter
	initErrs      []error
}

// New creates a Service with the holidayRequest definition registered.
func New(options ...Option) (*Service, error) {
	s := &Service{}
	for _, option := range options {
		option(s)
	}
	if err := errors.Join(s.initErrs...); err != nil {
		return nil, err
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) init() error {
	if s.metaService == nil {
		s.metaService = meta.New("")
	}
	if s.config == nil && s.configURL != "" {
		cfg, err := loadConfig(context.Background(), s.metaService, s.configURL)
		if err != nil {
			return err
		}
		s.config = cfg
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	s.config = s.config.withDefaults()
	if err := s.config.Validate(); err != nil {
		return err
	}
	if s.config.Log.Level != "" {
		logger.SetLevel(logger.ParseLevel(s.config.Log.Level))
	}
	if s.config.Tracing.Enabled {
		tc := s.config.Tracing
		if err := initTracing(tc.ServiceName, tc.ServiceVersion, tc.OutputFile); err != nil {
			return fmt.Errorf("tracing: %w", err)
		}
	}
	if s.mailWriter == nil {
		s.mailWriter = os.Stdout
	}
	if s.events == nil {
		s.events = event.New()
	}
	if s.instances == nil {
		instances, err := s.newInstanceDAO()
		if err != nil {
			return err
		}
		s.instances = instances
	}

	reg := registry.New()
	definition, err := holiday.Definition(notify.New(notify.WithWriter(s.mailWriter)))
	if err != nil {
		return err
	}
	for _, def := range append([]*model.Definition{definition}, s.definitions...) {
		if err = reg.Register(def); err != nil {
			return err
		}
	}

	tasks := taskmem.New()
	ledger := histmem.New()
	options := []engine.Option{
		engine.WithConfig(s.config.Engine),
		engine.WithRegistry(reg),
		engine.WithTasks(tasks),
		engine.WithLedger(ledger),
		engine.WithInstanceDAO(s.instances),
		engine.WithEventService(s.events),
		engine.WithLogger(logger.Default()),
	}
	if s.listener != nil {
		options = append(options, engine.WithListener(s.listener))
	}
	if s.config.Metrics.Enabled {
		s.collector = prommetrics.NewCollector()
		options = append(options, engine.WithMetrics(s.collector))
		if s.config.Metrics.Addr != "" {
			s.exporter = prommetrics.NewExporter(s.config.Metrics.Addr, s.collector)
		}
	}
	anEngine, err := engine.New(append(options, s.engineOptions...)...)
	if err != nil {
		return err
	}
	if err = anEngine.Recover(context.Background()); err != nil {
		anEngine.Close()
		return err
	}
	s.runtime = &Runtime{
		engine:   anEngine,
		tasks:    tasks,
		ledger:   ledger,
		reporter: report.New(anEngine, ledger),
		policy:   s.config.Policy,
	}
	return nil
}

func (s *Service) newInstanceDAO() (dao.Service[string, execution.Process], error) {
	switch s.config.Store.Kind {
	case StoreFS:
		return fs.New(s.config.Store.BaseURL)
	default:
		return instmem.New(), nil
	}
}

func (s *Service) Runtime() *Runtime {
	return s.runtime
}

func (s *Service) Config() *Config {
	return s.config
}

func (s *Service) MetaService() *meta.Service {
	return s.metaService
}

// SaveConfig writes the active configuration to location, as JSON when it
// ends with .json and YAML otherwise.
func (s *Service) SaveConfig(ctx context.Context, location string) error {
	return s.metaService.Upload(ctx, location, s.config)
}

// Collector returns the Prometheus collector, nil when metrics are disabled.
func (s *Service) Collector() *prommetrics.Collector {
	return s.collector
}

// Exporter returns the metrics HTTP exporter, nil unless metrics.addr is set.
func (s *Service) Exporter() *prommetrics.Exporter {
	return s.exporter
}

// Shutdown stops the metrics exporter and event listeners.
func (s *Service) Shutdown(ctx context.Context) error {
	var err error
	if s.exporter != nil {
		err = s.exporter.Shutdown(ctx)
	}
	s.runtime.engine.Close()
	return err
}
