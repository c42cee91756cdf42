package search

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/phonestore/storefront/internal/domain"
)

// ProductPath is where a committed suggestion navigates to
func ProductPath(id string) string {
	return "/product/" + url.PathEscape(id)
}

// SearchPath is the full-text results page for a query
func SearchPath(query string) string {
	return "/search?q=" + url.QueryEscape(query)
}

// ViewAllLabel is the text of the trailing "view all" row
func ViewAllLabel(query string) string {
	return fmt.Sprintf("View all results for %q", query)
}

// Entry is one rendered row of the dropdown
type Entry struct {
	Suggestion domain.SearchSuggestion
	// ViewAll marks the trailing "view all results" row. It is clickable but
	// never reachable with the arrow keys.
	ViewAll bool
	Label   string
	Path    string
	Active  bool
}

// View is what the dropdown renders
type View struct {
	Query     string
	Open      bool
	Searching bool
	Active    int
	Entries   []Entry
}

// Outcome is the navigation a user interaction resolved to
type Outcome struct {
	Kind       ActionKind
	Path       string
	Query      string
	Suggestion *domain.SearchSuggestion
}

// Box is the header search box: a debounced query feeding a navigable
// suggestion list.
type Box struct {
	debouncer *Debouncer

	mu       sync.Mutex
	nav      *Navigator
	focused  bool
	query    string
	results  []domain.SearchSuggestion
	version  uint64
	onChange func()
}

// NewBox creates a search box. Options configure the underlying debouncer;
// an OnChange option is replaced by the box's own handler, use SetOnChange.
func NewBox(search SearchFunc, opts ...Option) *Box {
	b := &Box{nav: NewNavigator()}
	b.debouncer = NewDebouncer(search, opts...)
	b.debouncer.onChange = b.apply
	return b
}

// SetOnChange registers a callback run after results or list state change
func (b *Box) SetOnChange(fn func()) {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

// Type records the full query after a keystroke and focuses the box
func (b *Box) Type(query string) {
	b.mu.Lock()
	b.query = query
	b.focused = true
	b.mu.Unlock()

	b.debouncer.Update(query)
}

// Focus marks the input focused and reopens existing results
func (b *Box) Focus() {
	b.mu.Lock()
	b.focused = true
	b.nav.Open()
	b.mu.Unlock()
}

// Blur closes the list the same way Escape does
func (b *Box) Blur() {
	b.mu.Lock()
	b.focused = false
	b.nav.Close()
	b.mu.Unlock()
}

// Key handles a navigation key
func (b *Box) Key(key Key) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	act := b.nav.Handle(key)
	switch act.Kind {
	case ActionSelect:
		s := b.results[act.Index]
		b.nav.Close()
		return Outcome{Kind: ActionSelect, Path: ProductPath(s.ID), Suggestion: &s}
	case ActionSubmit:
		return b.submitLocked()
	case ActionClose:
		b.focused = false
		return Outcome{Kind: ActionClose}
	}
	return Outcome{Kind: ActionNone}
}

// Click commits the entry at index. Clicking the view-all row submits.
func (b *Box) Click(index int) Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()

	if index == len(b.results) && len(b.results) > 0 {
		return b.submitLocked()
	}
	if index < 0 || index >= len(b.results) {
		return Outcome{Kind: ActionNone}
	}
	s := b.results[index]
	b.nav.Close()
	return Outcome{Kind: ActionSelect, Path: ProductPath(s.ID), Suggestion: &s}
}

// Submit runs a full-text search for the current query
func (b *Box) Submit() Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitLocked()
}

func (b *Box) submitLocked() Outcome {
	q := strings.TrimSpace(b.query)
	if q == "" {
		return Outcome{Kind: ActionNone}
	}
	b.nav.Close()
	return Outcome{Kind: ActionSubmit, Path: SearchPath(q), Query: q}
}

// View returns the dropdown contents
func (b *Box) View() View {
	searching := b.debouncer.State().Searching

	b.mu.Lock()
	defer b.mu.Unlock()

	v := View{
		Query:     b.query,
		Open:      b.nav.Mode() != ModeClosed,
		Searching: searching,
		Active:    b.nav.Active(),
	}
	if len(b.results) == 0 {
		return v
	}
	v.Entries = make([]Entry, 0, len(b.results)+1)
	for i, s := range b.results {
		v.Entries = append(v.Entries, Entry{
			Suggestion: s,
			Label:      s.Name,
			Path:       ProductPath(s.ID),
			Active:     i == v.Active,
		})
	}
	q := strings.TrimSpace(b.query)
	v.Entries = append(v.Entries, Entry{
		ViewAll: true,
		Label:   ViewAllLabel(q),
		Path:    SearchPath(q),
	})
	return v
}

// Stop releases the debouncer
func (b *Box) Stop() {
	b.debouncer.Stop()
}

func (b *Box) apply(st State) {
	b.mu.Lock()
	if st.ResultsVersion > b.version {
		b.version = st.ResultsVersion
		b.results = st.Results
		b.nav.Reset(len(b.results))
		if b.focused {
			b.nav.Open()
		}
	}
	fn := b.onChange
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}
