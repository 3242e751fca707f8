package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/polytechnice-si/5A-BPM-Demo/internal/logger"
	"github.com/polytechnice-si/5A-BPM-Demo/runtime/execution"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao"
	"github.com/polytechnice-si/5A-BPM-Demo/service/dao/criteria"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Service stores process instance snapshots as JSON documents in any afs
// backed location (file://, mem://, cloud storage).
type Service struct {
	baseURL string
	fs      afs.Service
	mu      sync.RWMutex
}

var _ dao.Service[string, execution.Process] = (*Service)(nil)

// Save persists a process snapshot
func (s *Service) Save(ctx context.Context, process *execution.Process) error {
	if process == nil {
		return dao.ErrNilEntity
	}
	if process.ID == "" {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(process)
	if err != nil {
		return fmt.Errorf("failed to marshal process %s: %w", process.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	URL := s.processURL(process.ID)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save process to %s: %w", URL, err)
	}
	return nil
}

// Load retrieves a process snapshot
func (s *Service) Load(ctx context.Context, id string) (*execution.Process, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	URL := s.processURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check process %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("process %s: %w", id, dao.ErrNotFound)
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read process %s: %w", id, err)
	}
	var process execution.Process
	if err := json.Unmarshal(data, &process); err != nil {
		return nil, fmt.Errorf("failed to unmarshal process %s: %w", id, err)
	}
	return &process, nil
}

// Delete removes a process snapshot
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	URL := s.processURL(id)
	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check process %s: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("process %s: %w", id, dao.ErrNotFound)
	}
	if err := s.fs.Delete(ctx, URL); err != nil {
		return fmt.Errorf("failed to delete process %s: %w", id, err)
	}
	return nil
}

// List returns matching snapshots ordered by id. Unreadable documents are
// logged and skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*execution.Process, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exists, err := s.fs.Exists(ctx, s.baseURL)
	if err != nil || !exists {
		return []*execution.Process{}, err
	}
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}
	processes := make([]*execution.Process, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			logger.Default().Warn("skipping unreadable process", "url", object.URL(), "error", err)
			continue
		}
		var process execution.Process
		if err := json.Unmarshal(data, &process); err != nil {
			logger.Default().Warn("skipping malformed process", "url", object.URL(), "error", err)
			continue
		}
		if !criteria.MatchProcess(&process, parameters) {
			continue
		}
		processes = append(processes, &process)
	}
	execution.SortByID(processes)
	return processes, nil
}

func (s *Service) processURL(id string) string {
	return url.Join(s.baseURL, id+".json")
}

// New creates a store rooted at baseURL; relative paths resolve to the local
// file system.
func New(baseURL string) (*Service, error) {
	if baseURL == "" {
		return nil, errors.New("base URL cannot be empty")
	}
	return &Service{
		baseURL: url.Normalize(baseURL, file.Scheme),
		fs:      afs.New(),
	}, nil
}
