// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package controller owns the search state. It turns query submissions into
// asynchronous analysis requests and folds their outcomes into a single
// sentiment.State that views read.
//
// Every submission gets a sequence number. Only the completion of the most
// recently issued request may change the state; completions of older requests
// are dropped when they arrive, whatever order the network returns them in.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"sentiscope/cli/internal/httperrors"
	"sentiscope/cli/internal/sentiment"
)

// Analyzer performs one analysis request.
type Analyzer interface {
	Analyze(ctx context.Context, q sentiment.Query) (sentiment.Result, error)
}

// Listener receives a state snapshot after every transition.
type Listener func(sentiment.State)

// Controller is the query controller. It is the only writer of its State.
// All methods are safe for concurrent use.
type Controller struct {
	api Analyzer
	log *zap.Logger

	requestTimeout   time.Duration
	cancelSuperseded bool

	// ctx is the parent of every request context; cancelled by Close
	ctx      context.Context
	cancelFn context.CancelFunc

	mu     sync.Mutex
	text   string
	state  sentiment.State
	latest uint64
	// cancelLatest aborts the latest request when cancelSuperseded is set
	cancelLatest context.CancelFunc
	closed       bool
	listeners    map[int]Listener
	nextListener int

	inflight sync.WaitGroup
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostics logger. Failure causes are logged here and nowhere else.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRequestTimeout bounds each request. Zero, the default, means no timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) { c.requestTimeout = d }
}

// WithCancelSuperseded aborts a request as soon as a newer one is submitted.
// By default superseded requests run to completion and their outcomes are dropped.
func WithCancelSuperseded(enabled bool) Option {
	return func(c *Controller) { c.cancelSuperseded = enabled }
}

// WithContext sets the parent context of all requests.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// New creates a controller in the Idle state.
func New(api Analyzer, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		log:       zap.NewNop(),
		ctx:       context.Background(),
		state:     sentiment.State{Status: sentiment.StatusIdle},
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancelFn = context.WithCancel(c.ctx)
	return c
}

// SetQueryText stores the raw query text. It never issues a request.
func (c *Controller) SetQueryText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
}

// QueryText returns the stored raw query text.
func (c *Controller) QueryText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() sentiment.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to be called after every state transition and returns
// a function that removes it. Listeners run outside the controller lock and may
// be called from request goroutines, so two calls can overlap; compare
// State.Version to discard a snapshot older than one already seen.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

// Submit issues an analysis request for the stored text.
// When the trimmed text is empty, or the controller is closed, nothing happens
// and ok is false. Otherwise the state moves to Pending and the request runs
// in the background; seq identifies it.
func (c *Controller) Submit() (seq uint64, ok bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, false
	}
	q, err := sentiment.NewQuery(c.text)
	if err != nil {
		c.mu.Unlock()
		return 0, false
	}

	c.latest++
	seq = c.latest

	if c.cancelSuperseded && c.cancelLatest != nil {
		c.cancelLatest()
	}
	ctx, cancel := c.requestContext()
	c.cancelLatest = cancel

	c.state.Status = sentiment.StatusPending
	c.state.Query = q.Text()
	c.state.Seq = seq
	c.state.Message = ""
	snap := c.bump()
	listeners := c.listenersLocked()
	c.inflight.Add(1)
	c.mu.Unlock()

	c.log.Debug("search submitted", zap.Uint64("seq", seq), zap.String("query", q.Text()))
	notify(listeners, snap)

	go c.run(ctx, cancel, seq, q)
	return seq, true
}

// requestContext derives the context of one request. Callers hold c.mu.
func (c *Controller) requestContext() (context.Context, context.CancelFunc) {
	if c.requestTimeout > 0 {
		return context.WithTimeout(c.ctx, c.requestTimeout)
	}
	return context.WithCancel(c.ctx)
}

// run performs one request and settles it. It never lets a panic escape.
func (c *Controller) run(ctx context.Context, cancel context.CancelFunc, seq uint64, q sentiment.Query) {
	defer c.inflight.Done()
	defer cancel()

	res, err := c.analyze(ctx, q)
	c.settle(seq, q, res, err)
}

func (c *Controller) analyze(ctx context.Context, q sentiment.Query) (res sentiment.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyzer panicked: %v", r)
		}
	}()
	return c.api.Analyze(ctx, q)
}

// settle applies the outcome of request seq if it is still the latest one.
func (c *Controller) settle(seq uint64, q sentiment.Query, res sentiment.Result, err error) {
	c.mu.Lock()
	if c.closed || seq != c.latest {
		latest := c.latest
		c.mu.Unlock()
		c.log.Debug("discarding stale search result",
			zap.Uint64("seq", seq),
			zap.Uint64("latest", latest),
			zap.String("query", q.Text()))
		return
	}

	if err != nil {
		c.state.Status = sentiment.StatusFailure
		c.state.Message = sentiment.FailureMessage
		c.state.Aggregate = sentiment.Aggregate{}
		c.state.HasAggregate = false
	} else {
		c.state.Status = sentiment.StatusSuccess
		c.state.Message = res.Message
		c.state.Aggregate = res.Aggregate
		c.state.HasAggregate = true
	}
	c.cancelLatest = nil
	snap := c.bump()
	listeners := c.listenersLocked()
	c.mu.Unlock()

	if err != nil {
		c.log.Warn("search failed",
			zap.Uint64("seq", seq),
			zap.String("query", q.Text()),
			zap.String("cause", string(httperrors.Classify(err))),
			zap.Error(err))
	} else {
		c.log.Debug("search settled",
			zap.Uint64("seq", seq),
			zap.String("query", q.Text()),
			zap.Int("total", res.Aggregate.Total))
	}
	notify(listeners, snap)
}

// bump advances the state version and returns the new snapshot. Callers hold c.mu.
func (c *Controller) bump() sentiment.State {
	c.state.Version++
	return c.state
}

// listenersLocked copies the listener set. Callers hold c.mu.
func (c *Controller) listenersLocked() []Listener {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]Listener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []Listener, s sentiment.State) {
	for _, fn := range listeners {
		fn(s)
	}
}

// Wait blocks until every issued request has settled or been discarded.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

// Close cancels in-flight requests, waits for them, and freezes the state.
// Submit returns ok=false afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancelFn()
	c.inflight.Wait()
}
