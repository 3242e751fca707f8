// Package meta loads configuration documents from any afs location, expanding
// ${env.KEY} expressions before decoding YAML or JSON.
package meta

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service reads and writes configuration assets.
type Service struct {
	fs      afs.Service
	baseURL string
	env     func(string) string
}

type Option func(*Service)

// WithFS sets the storage service
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithEnv replaces the environment lookup, os.Getenv by default.
func WithEnv(lookup func(string) string) Option {
	return func(s *Service) {
		s.env = lookup
	}
}

// New creates a meta service resolving relative locations against baseURL.
func New(baseURL string, options ...Option) *Service {
	ret := &Service{fs: afs.New(), baseURL: baseURL, env: os.Getenv}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// URL resolves location against the base URL.
func (s *Service) URL(location string) string {
	if url.IsRelative(location) && s.baseURL != "" {
		return url.Join(s.baseURL, location)
	}
	return url.Normalize(location, file.Scheme)
}

// Exists reports whether location exists
func (s *Service) Exists(ctx context.Context, location string) (bool, error) {
	return s.fs.Exists(ctx, s.URL(location))
}

// Download returns location's content with env expressions expanded.
func (s *Service) Download(ctx context.Context, location string) ([]byte, error) {
	URL := s.URL(location)
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", URL, err)
	}
	return []byte(expandEnv(string(data), s.env)), nil
}

// Load decodes location into target; .json files are decoded as JSON,
// everything else as YAML.
func (s *Service) Load(ctx context.Context, location string, target interface{}) error {
	data, err := s.Download(ctx, location)
	if err != nil {
		return err
	}
	if isJSON(location) {
		err = json.Unmarshal(data, target)
	} else {
		err = yaml.Unmarshal(data, target)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.URL(location), err)
	}
	return nil
}

// Upload encodes value in the format implied by location and stores it.
func (s *Service) Upload(ctx context.Context, location string, value interface{}) error {
	var data []byte
	var err error
	if isJSON(location) {
		data, err = json.MarshalIndent(value, "", "  ")
	} else {
		data, err = yaml.Marshal(value)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", location, err)
	}
	URL := s.URL(location)
	if err = s.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", URL, err)
	}
	return nil
}

func isJSON(location string) bool {
	return strings.EqualFold(path.Ext(location), ".json")
}
