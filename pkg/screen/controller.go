// Package screen holds the state behind a list screen: the loaded collection,
// the filter criteria and the visible subset derived from them.
package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/byxorna/wrench/pkg/filter"
	"go.uber.org/zap"
)

// ErrSuperseded is returned by a load that finished after a newer load began.
// Its result is discarded.
var ErrSuperseded = errors.New("load superseded by a newer one")

// Fetcher retrieves the full collection from the backend.
type Fetcher[T any] func(ctx context.Context) ([]T, error)

// Action is a confirmed mutation of one item, such as delete or role change.
type Action[T any] struct {
	Name string
	// Prompt is the question put to the user before Run.
	Prompt func(item T) string
	// Run performs the backend call and returns the success message.
	Run func(ctx context.Context, item T) (string, error)
}

// Status is a snapshot of the controller's bookkeeping.
type Status struct {
	Loading    bool
	Loaded     bool
	LastLoaded time.Time
	Total      int
	Visible    int
	Err        error
}

// Controller owns one screen's collection. It is safe for concurrent use:
// loads complete on background goroutines while the view reads.
type Controller[T any] struct {
	name     string
	fetch    Fetcher[T]
	spec     filter.Spec[T]
	notifier Notifier
	logger   *zap.Logger

	mu         sync.Mutex
	all        []T
	visible    []T
	criteria   filter.Criteria
	generation uint64
	cancel     context.CancelFunc
	loading    bool
	loaded     bool
	lastLoaded time.Time
	lastErr    error
}

func New[T any](name string, fetch Fetcher[T], spec filter.Spec[T], notifier Notifier, logger *zap.Logger) *Controller[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Controller[T]{
		name:     name,
		fetch:    fetch,
		spec:     spec,
		notifier: notifier,
		logger:   logger.With(zap.String("screen", name)),
		criteria: filter.Default(),
		all:      []T{},
		visible:  []T{},
	}
}

func (c *Controller[T]) Name() string { return c.name }

// Load fetches the collection and replaces the in-memory copy. Starting a load
// cancels any load still in flight, so the most recent request wins. On
// failure the previous collection is kept and an error is notified.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	c.generation++
	gen := c.generation
	c.cancel = cancel
	c.loading = true
	c.mu.Unlock()
	defer cancel()

	items, err := c.fetch(ctx)

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded load", zap.Uint64("generation", gen))
		return ErrSuperseded
	}
	c.loading = false
	c.cancel = nil
	if err != nil {
		c.lastErr = err
		c.mu.Unlock()
		notifyError(c.notifier, c.logger, "load "+c.name, err)
		return fmt.Errorf("unable to load %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	c.all = items
	c.loaded = true
	c.lastLoaded = time.Now()
	c.lastErr = nil
	c.applyLocked()
	total, visible := len(c.all), len(c.visible)
	c.mu.Unlock()

	c.logger.Debug("loaded", zap.Int("total", total), zap.Int("visible", visible))
	return nil
}

// Cancel aborts the in-flight load, if any.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.generation++
		c.loading = false
	}
}

// Reset aborts the in-flight load and forgets the collection and criteria,
// as after the user signs out.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.loading = false
	c.loaded = false
	c.lastLoaded = time.Time{}
	c.lastErr = nil
	c.all = []T{}
	c.visible = []T{}
	c.criteria = filter.Default()
}

// ApplyFilters recomputes the visible subset from the collection and criteria.
func (c *Controller[T]) ApplyFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.applyLocked()
}

func (c *Controller[T]) applyLocked() {
	c.visible = c.spec.Apply(c.all, c.criteria)
}

func (c *Controller[T]) update(fn func(*filter.Criteria)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.criteria)
	c.applyLocked()
}

func (c *Controller[T]) SetCriteria(cr filter.Criteria) {
	c.update(func(x *filter.Criteria) { *x = cr })
}

func (c *Controller[T]) SetSearch(term string) {
	c.update(func(x *filter.Criteria) { x.Search = term })
}

func (c *Controller[T]) SetStatus(v string) {
	c.update(func(x *filter.Criteria) { x.Status = v })
}

func (c *Controller[T]) SetSecondary(v string) {
	c.update(func(x *filter.Criteria) { x.Secondary = v })
}

// CycleStatus advances the status facet to its next choice.
func (c *Controller[T]) CycleStatus() {
	c.update(func(x *filter.Criteria) {
		if c.spec.Status != nil {
			x.Status = c.spec.Status.Next(c.all, x.Status)
		}
	})
}

// CycleSecondary advances the secondary facet to its next choice.
func (c *Controller[T]) CycleSecondary() {
	c.update(func(x *filter.Criteria) {
		if c.spec.Secondary != nil {
			x.Secondary = c.spec.Secondary.Next(c.all, x.Secondary)
		}
	})
}

// ClearFilters resets the criteria to their defaults.
func (c *Controller[T]) ClearFilters() {
	c.update(func(x *filter.Criteria) { *x = filter.Default() })
}

func (c *Controller[T]) Criteria() filter.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

func (c *Controller[T]) Spec() filter.Spec[T] { return c.spec }

// Visible returns a copy of the filtered subset.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.visible...)
}

// All returns a copy of the full collection.
func (c *Controller[T]) All() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T(nil), c.all...)
}

func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Loading:    c.loading,
		Loaded:     c.loaded,
		LastLoaded: c.lastLoaded,
		Total:      len(c.all),
		Visible:    len(c.visible),
		Err:        c.lastErr,
	}
}

// Perform runs an already confirmed action against item. It notifies the
// outcome and, on success, reloads the collection. Nothing is changed locally
// before the reload completes.
func (c *Controller[T]) Perform(ctx context.Context, a Action[T], item T) error {
	msg, err := a.Run(ctx, item)
	if err != nil {
		notifyError(c.notifier, c.logger, a.Name, err)
		return fmt.Errorf("%s failed: %w", a.Name, err)
	}
	c.logger.Info("action performed", zap.String("action", a.Name))
	c.notifier.Notify(Notification{Level: LevelSuccess, Message: msg})
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		return err
	}
	return nil
}
