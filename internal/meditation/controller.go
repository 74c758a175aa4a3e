package meditation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/npratt/hush/internal/anim"
	"github.com/npratt/hush/internal/eventloop"
	"github.com/npratt/hush/internal/events"
	"github.com/npratt/hush/internal/viewmodel"
)

// ErrNotMounted is returned by Controller methods that need a mounted screen.
var ErrNotMounted = errors.New("no screen mounted")

// Subscriber names on the router.
const (
	subscriberConsumer = "consumer"
	subscriberTrace    = "trace"
)

// Controller owns the goroutine a Screen runs on. Callers on any goroutine
// post pointer signals and read snapshots; the screen itself is only touched
// from its event loop.
type Controller struct {
	logger     *slog.Logger
	bufferSize int
	tracePath  string
	traceOpts  []events.TraceOption
	newID      func() string

	mu      sync.Mutex
	current *mount
}

// mount is everything created for one Mount call.
type mount struct {
	id     string
	loop   *eventloop.Loop
	router *events.Router
	screen *Screen
	sink   *events.TraceSink
	cancel context.CancelFunc
	closed chan struct{}
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTrace writes every event of each mount to a JSONL file at path.
func WithTrace(path string, opts ...events.TraceOption) Option {
	return func(c *Controller) {
		c.tracePath = path
		c.traceOpts = opts
	}
}

// WithRouterBuffer sets the subscriber buffer size of each mount's router.
func WithRouterBuffer(n int) Option {
	return func(c *Controller) { c.bufferSize = n }
}

// WithIDGenerator replaces the UUID session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// NewController creates a Controller. No screen is mounted until Mount.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		logger:     slog.Default(),
		bufferSize: events.DefaultBufferSize,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount starts a fresh screen on its own event loop and returns the channel
// its events arrive on. The channel is closed once the screen is unmounted
// or ctx is cancelled.
func (c *Controller) Mount(ctx context.Context) (<-chan events.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		return nil, ErrAlreadyMounted
	}

	id := c.newID()
	logger := c.logger.With("session_id", id)
	router := events.NewRouter(c.bufferSize, logger)
	sub := router.Subscribe(subscriberConsumer)

	m := &mount{
		id:     id,
		loop:   eventloop.New(logger, 0),
		router: router,
		closed: make(chan struct{}),
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if c.tracePath != "" {
		opts := append([]events.TraceOption{events.WithTraceLogger(logger)}, c.traceOpts...)
		m.sink = events.NewTraceSink(c.tracePath, opts...)
		if err := m.sink.Start(runCtx, router.Subscribe(subscriberTrace)); err != nil {
			cancel()
			router.Close()
			return nil, fmt.Errorf("start trace: %w", err)
		}
	}

	m.screen = NewScreen(m.loop, routerAnimator(id, router), router,
		WithSessionID(id),
		WithScreenLogger(logger),
	)

	go m.run(runCtx, logger)

	var mountErr error
	if err := m.loop.Call(ctx, func() { mountErr = m.screen.Mount() }); err != nil {
		m.shutdown()
		return nil, fmt.Errorf("mount screen: %w", err)
	}
	if mountErr != nil {
		m.shutdown()
		return nil, fmt.Errorf("mount screen: %w", mountErr)
	}

	c.current = m
	return sub, nil
}

// routerAnimator publishes every target request as an AnimationTargetEvent.
func routerAnimator(id string, router *events.Router) anim.Animator {
	return anim.AnimatorFunc(func(p anim.Param, v float64, curve anim.Curve) {
		router.Emit(&events.AnimationTargetEvent{
			BaseEvent: events.NewSessionEvent(events.EventAnimationTarget, events.SourceDriver, id),
			Param:     p,
			Value:     v,
			Curve:     curve,
		})
	})
}

func (m *mount) run(ctx context.Context, logger *slog.Logger) {
	defer close(m.closed)

	if err := m.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("event loop exited", "error", err)
	}
	m.router.Close()
	if m.sink != nil {
		if err := m.sink.Stop(); err != nil {
			logger.Error("trace sink close failed", "error", err)
		}
	}
}

// shutdown stops the loop and waits for the router and sink to close.
func (m *mount) shutdown() {
	m.loop.Stop()
	<-m.closed
	m.cancel()
}

// Unmount tears down the mounted screen: every timer is stopped, a
// screen.unmounted event is emitted and the event channel is closed.
// Unmount without a mounted screen does nothing.
func (c *Controller) Unmount() {
	c.mu.Lock()
	m := c.current
	c.current = nil
	c.mu.Unlock()

	if m == nil {
		return
	}
	if err := m.loop.Call(context.Background(), m.screen.Unmount); err != nil {
		c.logger.Debug("unmount after loop stopped", "session_id", m.id, "error", err)
	}
	m.shutdown()
}

// Shutdown is Unmount bounded by ctx, for use with graceful shutdown.
func (c *Controller) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.Unmount()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) active() (*mount, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNotMounted
	}
	return c.current, nil
}

// SessionID returns the ID of the mounted screen, or "" when none is mounted.
func (c *Controller) SessionID() string {
	m, err := c.active()
	if err != nil {
		return ""
	}
	return m.id
}

// PointerDown posts a pointer-down edge to the mounted screen.
func (c *Controller) PointerDown() error {
	m, err := c.active()
	if err != nil {
		return err
	}
	return m.loop.Post(func() { m.screen.PointerDown() })
}

// PointerUp posts a pointer-up edge to the mounted screen.
func (c *Controller) PointerUp() error {
	m, err := c.active()
	if err != nil {
		return err
	}
	return m.loop.Post(func() { m.screen.PointerUp() })
}

// Snapshot returns the mounted screen's state, read on its event loop.
func (c *Controller) Snapshot(ctx context.Context) (viewmodel.Snapshot, error) {
	m, err := c.active()
	if err != nil {
		return viewmodel.Snapshot{}, err
	}
	var snap viewmodel.Snapshot
	if err := m.loop.Call(ctx, func() { snap = m.screen.Snapshot() }); err != nil {
		return viewmodel.Snapshot{}, err
	}
	return snap, nil
}
