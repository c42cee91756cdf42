package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
)

const (
	// DefaultDelay is how long typing must pause before a search is sent
	DefaultDelay = 300 * time.Millisecond
	// DefaultMinLength is the shortest trimmed query that is searched
	DefaultMinLength = 1
)

// SearchFunc fetches suggestions for a query
type SearchFunc func(ctx context.Context, query string) ([]domain.SearchSuggestion, error)

// State is a snapshot of the debouncer
type State struct {
	Query     string
	Results   []domain.SearchSuggestion
	Searching bool
	// Generation increases on every keystroke; only the call dispatched for
	// the latest generation may publish results.
	Generation uint64
	// ResultsVersion increases whenever Results is replaced or cleared
	ResultsVersion uint64
}

// Option configures a Debouncer
type Option func(*Debouncer)

// WithDelay sets the pause that must elapse before searching
func WithDelay(d time.Duration) Option {
	return func(db *Debouncer) {
		if d > 0 {
			db.delay = d
		}
	}
}

// WithMinLength sets the minimum trimmed query length
func WithMinLength(n int) Option {
	return func(db *Debouncer) {
		if n > 0 {
			db.minLength = n
		}
	}
}

// WithLogger sets the logger used for failed searches
func WithLogger(l *zap.Logger) Option {
	return func(db *Debouncer) {
		if l != nil {
			db.logger = l
		}
	}
}

// OnChange registers a callback invoked after every state change. It runs
// outside the debouncer lock and may call State.
func OnChange(fn func(State)) Option {
	return func(db *Debouncer) { db.onChange = fn }
}

// Debouncer delays searches until typing pauses. A keystroke restarts the
// timer; a dispatched call supersedes and cancels the previous one, and a
// late answer from a superseded call is discarded.
type Debouncer struct {
	search    SearchFunc
	delay     time.Duration
	minLength int
	logger    *zap.Logger
	onChange  func(State)

	mu          sync.Mutex
	state       State
	timer       *time.Timer
	cancel      context.CancelFunc
	inflightGen uint64
	stopped     bool
	wg          sync.WaitGroup
}

// NewDebouncer creates a debouncer around search
func NewDebouncer(search SearchFunc, opts ...Option) *Debouncer {
	d := &Debouncer{
		search:    search,
		delay:     DefaultDelay,
		minLength: DefaultMinLength,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Update records a keystroke with the full current query
func (d *Debouncer) Update(query string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}

	d.state.Generation++
	d.state.Query = query
	gen := d.state.Generation
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	trimmed := strings.TrimSpace(query)
	if utf8.RuneCountInString(trimmed) < d.minLength {
		d.cancelInFlightLocked()
		d.state.Results = nil
		d.state.Searching = false
		d.state.ResultsVersion++
		snapshot := d.snapshotLocked()
		d.mu.Unlock()
		d.notify(snapshot)
		return
	}

	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, trimmed) })
	d.mu.Unlock()
}

// State returns the current snapshot
func (d *Debouncer) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

// Stop cancels the pending timer and any in-flight call and waits for the
// call to return. Update is a no-op afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.cancelInFlightLocked()
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Debouncer) fire(gen uint64, query string) {
	d.mu.Lock()
	if d.stopped || gen != d.state.Generation {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.cancelInFlightLocked()

	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.inflightGen = gen
	d.state.Searching = true
	d.wg.Add(1)
	snapshot := d.snapshotLocked()
	d.mu.Unlock()

	defer d.wg.Done()
	d.notify(snapshot)

	results, err := d.search(ctx, query)
	cancel()
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			d.logger.Warn("Search suggestions failed",
				zap.String("query", query),
				zap.Error(err),
			)
		}
		results = []domain.SearchSuggestion{}
	}
	if results == nil {
		results = []domain.SearchSuggestion{}
	}

	d.mu.Lock()
	if d.inflightGen == gen {
		d.cancel = nil
		d.inflightGen = 0
	}
	if d.stopped || gen != d.state.Generation {
		// A newer keystroke exists. Drop the answer; clear the flag only if no
		// newer call has been dispatched.
		changed := false
		if d.inflightGen == 0 && d.state.Searching {
			d.state.Searching = false
			changed = true
		}
		snapshot = d.snapshotLocked()
		stopped := d.stopped
		d.mu.Unlock()
		d.logger.Debug("Discarding stale search response",
			zap.String("query", query),
			zap.Uint64("generation", gen),
		)
		if changed && !stopped {
			d.notify(snapshot)
		}
		return
	}

	d.state.Results = results
	d.state.Searching = false
	d.state.ResultsVersion++
	snapshot = d.snapshotLocked()
	d.mu.Unlock()

	d.notify(snapshot)
}

func (d *Debouncer) cancelInFlightLocked() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
		d.inflightGen = 0
	}
}

func (d *Debouncer) snapshotLocked() State {
	s := d.state
	if d.state.Results != nil {
		s.Results = append([]domain.SearchSuggestion(nil), d.state.Results...)
	}
	return s
}

func (d *Debouncer) notify(s State) {
	if d.onChange != nil {
		d.onChange(s)
	}
}
