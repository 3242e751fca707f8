// Package notify implements the notification delegates bound to service tasks.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/polytechnice-si/5A-BPM-Demo/model"
	"github.com/polytechnice-si/5A-BPM-Demo/model/state"
	"github.com/viant/structology/conv"
)

const name = "sendRejectionMail"

// Input is the part of the instance variables the rejection mail needs.
type Input struct {
	Employee     string `json:"employee"`
	NrOfHolidays int64  `json:"nrOfHolidays,omitempty"`
	Description  string `json:"description,omitempty"`
}

// SendFunc delivers a rejection notice.
type SendFunc func(ctx context.Context, w io.Writer, input *Input) error

// Service sends holiday rejection notices.
type Service struct {
	converter *conv.Converter
	writer    io.Writer
	send      SendFunc
	mux       sync.Mutex
}

type Option func(*Service)

// WithWriter redirects notices, os.Stdout by default.
func WithWriter(w io.Writer) Option {
	return func(s *Service) {
		s.writer = w
	}
}

// WithSender replaces the delivery function.
func WithSender(send SendFunc) Option {
	return func(s *Service) {
		s.send = send
	}
}

// New creates a rejection mail delegate
func New(options ...Option) *Service {
	opts := conv.DefaultOptions()
	opts.IgnoreUnmapped = true
	ret := &Service{
		converter: conv.NewConverter(opts),
		writer:    os.Stdout,
		send:      Print,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}

// Print writes the console notice.
func Print(_ context.Context, w io.Writer, input *Input) error {
	_, err := fmt.Fprintf(w, "Sending rejection email for %s\n", input.Employee)
	return err
}

func (s *Service) Name() string {
	return name
}

// Execute decodes the variables and sends the notice.
func (s *Service) Execute(ctx context.Context, variables state.Reader) error {
	input := &Input{}
	if err := s.converter.Convert(variables.Map(), input); err != nil {
		return fmt.Errorf("decode %s input: %w", name, err)
	}
	if input.Employee == "" {
		employee, err := variables.String("employee")
		if err != nil {
			return err
		}
		input.Employee = employee
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.send(ctx, s.writer, input)
}

var _ model.Delegate = (*Service)(nil)
