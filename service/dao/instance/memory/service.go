package memory

import (
	"context"

	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao/criteria"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao/store"
)

// Service implements an in-memory, thread-safe store for process instances.
// All API methods work with copies to eliminate data races between
// goroutines.
type Service struct {
	store *store.MemoryStore[string, execution.Process]
}

var _ dao.Service[string, execution.Process] = (*Service)(nil)

func (s *Service) Save(ctx context.Context, p *execution.Process) error {
	if p == nil {
		return dao.ErrNilEntity
	}
	if p.ID == "" {
		return dao.ErrInvalidID
	}
	return s.store.Save(ctx, p)
}

func (s *Service) Load(ctx context.Context, id string) (*execution.Process, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	return s.store.Load(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	return s.store.Delete(ctx, id)
}

// List returns matching instances ordered by id.
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*execution.Process, error) {
	out := s.store.Filter(func(p *execution.Process) bool {
		return criteria.MatchProcess(p, parameters)
	})
	execution.SortByID(out)
	return out, nil
}

func New() *Service {
	return &Service{store: store.NewMemoryStore[string, execution.Process](processKey, (*execution.Process).Clone)}
}

func processKey(p *execution.Process) string { return p.ID }
