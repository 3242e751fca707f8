package memory

import qmem "github.com/polytechnice-si/5A-BPM-Demo/service/messaging/memory"

type Option func(*service)

// WithQueueConfig overrides the event queue configuration.
func WithQueueConfig(cfg qmem.Config) Option {
	return func(s *service) { s.queueConfig = cfg }
}
