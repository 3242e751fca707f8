package engine

import (
	"log/slog"

	"github.com/polytechnice-si/5A-BPM-Demo/progress"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/event"
	"github.com/polytechnice-si/5A-BPM-Demo/service/history"
	"github.com/polytechnice-si/5A-BPM-Demo/service/registry"
	"github.com/polytechnice-si/5A-BPM-Demo/service/task"
)

// Option configures the engine
type Option func(*Service)

// WithRegistry sets the definition registry
func WithRegistry(r *registry.Service) Option {
	return func(s *Service) {
		s.registry = r
	}
}

// WithTasks sets the task queue
func WithTasks(tasks task.Service) Option {
	return func(s *Service) {
		s.tasks = tasks
	}
}

// WithLedger sets the history ledger
func WithLedger(ledger history.Ledger) Option {
	return func(s *Service) {
		s.ledger = ledger
	}
}

// WithInstanceDAO sets the process instance store
func WithInstanceDAO(instances dao.Service[string, execution.Process]) Option {
	return func(s *Service) {
		s.instances = instances
	}
}

// WithEventService sets the event fan-out service
func WithEventService(events *event.Service) Option {
	return func(s *Service) {
		s.events = events
	}
}

// WithListener registers a handler receiving every engine event.
func WithListener(handler func(*event.Event[any])) Option {
	return func(s *Service) {
		s.listener = handler
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(metrics Metrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithProgress sets the counter tracker
func WithProgress(p *progress.Progress) Option {
	return func(s *Service) {
		s.progress = p
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConfig sets the configuration for the service
func WithConfig(config Config) Option {
	return func(s *Service) {
		s.config = config
	}
}
