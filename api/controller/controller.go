// Package controller holds the observable list state fed by an injected
// data source.
package controller

import (
	"context"
	"sync"

	"github.com/ka2n/postview/api/datasource"
	"github.com/ka2n/postview/api/record"
	"github.com/ka2n/postview/log"
)

// Dispatcher runs fn on the execution context that owns the display surface
type Dispatcher func(fn func())

// inline runs fn on the calling goroutine
func inline(fn func()) { fn() }

type Option func(*ListController)

// WithDispatcher sets where the state update is applied. Without it the
// update runs on the fetch goroutine.
func WithDispatcher(d Dispatcher) Option {
	return func(c *ListController) {
		if d != nil {
			c.dispatch = d
		}
	}
}

type subscriber struct {
	fn func([]record.Record)
}

// ListController owns the records shown by a list view. It fetches from its
// data source exactly once, when constructed, and replaces its items with the
// result. A failed fetch leaves the items empty and notifies nobody.
type ListController struct {
	source   datasource.DataSource
	dispatch Dispatcher
	cancel   context.CancelFunc

	mu          sync.Mutex
	items       []record.Record
	published   bool
	closed      bool
	err         error
	subscribers []*subscriber

	done     chan struct{}
	doneOnce sync.Once
}

// New creates a controller for src and starts its single fetch.
// It panics when src is nil.
func New(ctx context.Context, src datasource.DataSource, opts ...Option) *ListController {
	if src == nil {
		panic("controller: nil DataSource")
	}

	ctx, cancel := context.WithCancel(ctx)
	c := &ListController{
		source:   src,
		dispatch: inline,
		cancel:   cancel,
		items:    []record.Record{},
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.load(ctx)
	return c
}

func (c *ListController) load(ctx context.Context) {
	records, err := c.source.FetchAll(ctx)
	if err != nil {
		// Swallowed: the list stays empty and subscribers hear nothing.
		log.Debug("Fetch failed", "error", err)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		c.settle()
		return
	}

	records = record.Clone(records)
	c.dispatch(func() {
		c.publish(records)
	})
}

func (c *ListController) publish(records []record.Record) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.items = records
	c.published = true
	subs := make([]*subscriber, len(c.subscribers))
	copy(subs, c.subscribers)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(record.Clone(records))
	}
	c.settle()
}

func (c *ListController) settle() {
	c.doneOnce.Do(func() {
		close(c.done)
	})
}

// Items returns a copy of the current records
func (c *ListController) Items() []record.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return record.Clone(c.items)
}

// Subscribe registers fn to be called with the records when they arrive.
// If they already arrived, fn is called once right away with the current
// records. The returned function removes the subscription.
func (c *ListController) Subscribe(fn func([]record.Record)) (cancel func()) {
	s := &subscriber{fn: fn}

	c.mu.Lock()
	c.subscribers = append(c.subscribers, s)
	replay := c.published && !c.closed
	items := record.Clone(c.items)
	c.mu.Unlock()

	if replay {
		fn(items)
	}

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subscribers {
			if sub == s {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Done is closed once the fetch has settled: the records were applied, the
// fetch failed, or the controller was closed.
func (c *ListController) Done() <-chan struct{} {
	return c.done
}

// Err returns the error of a failed fetch. It never affects Items.
func (c *ListController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Close cancels a fetch still in flight. A result arriving afterwards is
// dropped.
func (c *ListController) Close() {
	c.mu.Lock()
	c.closed = true
	c.subscribers = nil
	c.mu.Unlock()

	c.cancel()
	c.settle()
}
