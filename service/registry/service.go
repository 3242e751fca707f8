// Package registry holds the process definitions known to the engine.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
)

var (
	// ErrDuplicateKey is returned when a definition key is registered twice.
	ErrDuplicateKey = errors.New("duplicate definition key")
	// ErrUnknownDefinition is returned when no definition has the given key.
	ErrUnknownDefinition = errors.New("unknown process definition")
)

// Service is a read-mostly definition registry. Registration is expected at
// startup; lookups are safe for concurrent use.
type Service struct {
	definitions map[string]*model.Definition
	mux         sync.RWMutex
}

// Register adds a definition after validating it.
func (s *Service) Register(definition *model.Definition) error {
	if definition == nil {
		return fmt.Errorf("%w: nil definition", model.ErrInvalidDefinition)
	}
	if issues := definition.Validate(); len(issues) > 0 {
		return fmt.Errorf("%w %q: %w", model.ErrInvalidDefinition, definition.Key, errors.Join(issues...))
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.definitions[definition.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, definition.Key)
	}
	s.definitions[definition.Key] = definition
	return nil
}

// Resolve returns the definition registered under key.
func (s *Service) Resolve(key string) (*model.Definition, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	definition, ok := s.definitions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDefinition, key)
	}
	return definition, nil
}

// Keys returns registered keys in alphabetical order.
func (s *Service) Keys() []string {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]string, 0, len(s.definitions))
	for key := range s.definitions {
		ret = append(ret, key)
	}
	sort.Strings(ret)
	return ret
}

// New creates an empty registry
func New() *Service {
	return &Service{definitions: make(map[string]*model.Definition)}
}
