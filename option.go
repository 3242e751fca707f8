package bpm

import (
	"io"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/engine"
	"github.com/polytechnice-si/5A-BPM-Demo/service/event"
	"github.com/polytechnice-si/5A-BPM-Demo/service/meta"
	"github.com/polytechnice-si/5A-BPM-Demo/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures the Service
type Option func(s *Service)

// WithConfig sets the configuration
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithMetaService sets the service resolving and reading config locations.
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// WithConfigURL loads the configuration from location through the meta
// service. WithConfig takes precedence.
func WithConfigURL(location string) Option {
	return func(s *Service) {
		s.configURL = location
	}
}

// WithEventService sets the event service
func WithEventService(service *event.Service) Option {
	return func(s *Service) {
		s.events = service
	}
}

// WithListener receives every engine event
func WithListener(handler func(*event.Event[any])) Option {
	return func(s *Service) {
		s.listener = handler
	}
}

// WithInstanceDAO overrides the store selected by Config.Store.
func WithInstanceDAO(instances dao.Service[string, execution.Process]) Option {
	return func(s *Service) {
		s.instances = instances
	}
}

// WithDefinitions registers additional process definitions.
func WithDefinitions(definitions ...*model.Definition) Option {
	return func(s *Service) {
		s.definitions = append(s.definitions, definitions...)
	}
}

// WithMailWriter redirects rejection notices, os.Stdout by default.
func WithMailWriter(w io.Writer) Option {
	return func(s *Service) {
		s.mailWriter = w
	}
}

// WithEngineOptions passes extra options to the engine.
func WithEngineOptions(options ...engine.Option) Option {
	return func(s *Service) {
		s.engineOptions = append(s.engineOptions, options...)
	}
}

// WithTracing writes spans to outputFile, or stdout when empty. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.initErrs = append(s.initErrs, initTracing(serviceName, serviceVersion, outputFile))
	}
}

// WithTracingExporter routes spans to a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		s.initErrs = append(s.initErrs, tracing.InitWithExporter(serviceName, serviceVersion, exporter))
	}
}

func initTracing(serviceName, serviceVersion, outputFile string) error {
	if outputFile == "" {
		return tracing.Init(serviceName, serviceVersion, nil)
	}
	return tracing.InitFile(serviceName, serviceVersion, outputFile)
}
