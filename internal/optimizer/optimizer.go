// Package optimizer streams an AI rewrite of a commit list from an
// OpenAI-compatible chat-completions endpoint.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/iksnae/git-weekly/internal"
)

const maxErrorBody = 64 * 1024

// Event is one item of a stream. Exactly one event with Done or Err ends the stream.
type Event struct {
	Text string
	Err  error
	Done bool
}

// Optimizer sends requests to a completion endpoint
type Optimizer struct {
	// Client carries no timeout; streams last as long as the model writes
	Client *http.Client
}

// New creates an Optimizer with a default HTTP client
func New() *Optimizer {
	return &Optimizer{Client: &http.Client{}}
}

func (o *Optimizer) client() *http.Client {
	if o.Client == nil {
		return http.DefaultClient
	}
	return o.Client
}

// Stream starts the request and returns its events. The channel is closed after
// the terminal event; callers must drain it until it closes.
func (o *Optimizer) Stream(ctx context.Context, req Request) <-chan Event {
	events := make(chan Event)
	go func() {
		defer close(events)
		events <- o.stream(ctx, req, events)
	}()
	return events
}

// stream sends fragments to events and returns the terminal event
func (o *Optimizer) stream(ctx context.Context, req Request, events chan<- Event) Event {
	body, err := o.open(ctx, req)
	if err != nil {
		return Event{Err: terminalError(ctx, err)}
	}
	defer body.Close()

	dec := NewDecoder(body)
	for {
		text, err := dec.Next()
		if errors.Is(err, io.EOF) {
			if !dec.SawDone() {
				internal.LogDebug("Stream ended without [DONE]")
			}
			if ctx.Err() != nil {
				return Event{Err: ErrCancelled}
			}
			return Event{Done: true}
		}
		if err != nil {
			return Event{Err: terminalError(ctx, fmt.Errorf("read stream: %w", err))}
		}
		select {
		case events <- Event{Text: text}:
		case <-ctx.Done():
			return Event{Err: ErrCancelled}
		}
	}
}

// open validates req, posts it and returns the body of a successful response
func (o *Optimizer) open(ctx context.Context, req Request) (io.ReadCloser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	endpoint, _ := req.Endpoint()

	payload, err := json.Marshal(req.body())
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(req.APIKey))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	internal.LogDebug("Optimizing %d commits with %s at %s", len(req.Commits), req.ResolvedModel(), endpoint)
	resp, err := o.client().Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newStatusError(resp.StatusCode, data)
	}
	return resp.Body, nil
}

func terminalError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrCancelled
	}
	return err
}

// Callbacks receive the progress of a Session. All of them run on one goroutine.
type Callbacks struct {
	OnChunk    func(text string)
	OnComplete func()
	OnError    func(err error)
}

// Session is a running optimization
type Session struct {
	cancel    context.CancelFunc
	cancelled atomic.Bool
	done      chan struct{}

	mu   sync.Mutex
	text strings.Builder
	err  error
}

// Start begins an optimization and returns at once. OnChunk fires per fragment in
// arrival order, then exactly one of OnComplete or OnError.
func (o *Optimizer) Start(ctx context.Context, req Request, cb Callbacks) *Session {
	ctx, cancel := context.WithCancel(ctx)
	s := &Session{cancel: cancel, done: make(chan struct{})}
	go s.run(o.Stream(ctx, req), cb)
	return s
}

func (s *Session) run(events <-chan Event, cb Callbacks) {
	defer close(s.done)
	defer s.cancel()

	finished := false
	for ev := range events {
		if finished {
			continue
		}
		if s.cancelled.Load() {
			finished = true
			s.fail(ErrCancelled, cb)
			continue
		}
		switch {
		case ev.Err != nil:
			finished = true
			s.fail(ev.Err, cb)
		case ev.Done:
			finished = true
			if cb.OnComplete != nil {
				cb.OnComplete()
			}
		default:
			s.mu.Lock()
			s.text.WriteString(ev.Text)
			s.mu.Unlock()
			if cb.OnChunk != nil {
				cb.OnChunk(ev.Text)
			}
		}
	}
}

func (s *Session) fail(err error, cb Callbacks) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	if cb.OnError != nil {
		cb.OnError(err)
	}
}

// Cancel stops the session. Unless it already finished, OnError receives ErrCancelled.
func (s *Session) Cancel() {
	s.cancelled.Store(true)
	s.cancel()
}

// Wait blocks until the terminal callback returned and reports the session error
func (s *Session) Wait() error {
	<-s.done
	return s.Err()
}

// Done is closed once the session finished
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal error, nil while running or after completion
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Text returns the fragments received so far
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text.String()
}

// Runner keeps at most one active session; starting a new one cancels the previous
type Runner struct {
	Optimizer *Optimizer

	mu      sync.Mutex
	current *Session
}

// NewRunner creates a Runner over o
func NewRunner(o *Optimizer) *Runner {
	return &Runner{Optimizer: o}
}

// Start cancels the active session, if any, and starts a new one
func (r *Runner) Start(ctx context.Context, req Request, cb Callbacks) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil {
		r.current.Cancel()
	}
	r.current = r.Optimizer.Start(ctx, req, cb)
	return r.current
}

// Cancel stops the active session
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil {
		r.current.Cancel()
		r.current = nil
	}
}
