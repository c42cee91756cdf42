package search

// Key is a keyboard key the suggestion list reacts to
type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// ActionKind is what a key press asks the caller to do
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionSelect commits the highlighted suggestion
	ActionSelect
	// ActionSubmit runs a full-text search for the typed query
	ActionSubmit
	// ActionClose hides the list and releases focus
	ActionClose
)

func (k ActionKind) String() string {
	switch k {
	case ActionSelect:
		return "select"
	case ActionSubmit:
		return "submit"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// Action is the result of handling a key
type Action struct {
	Kind  ActionKind
	Index int
}

// Mode is the visible state of the suggestion list
type Mode int

const (
	ModeClosed Mode = iota
	ModeOpen
	ModeOpenWithSelection
)

// Navigator tracks the highlighted suggestion. The active index is -1 when
// nothing is highlighted and never leaves [-1, length-1].
type Navigator struct {
	open   bool
	active int
	length int
}

// NewNavigator returns a closed navigator with no selection
func NewNavigator() *Navigator {
	return &Navigator{active: -1}
}

// Reset replaces the list length and clears the selection. The open flag is
// left alone unless the list became empty.
func (n *Navigator) Reset(length int) {
	if length < 0 {
		length = 0
	}
	n.length = length
	n.active = -1
	if length == 0 {
		n.open = false
	}
}

// Open shows the list if it has entries
func (n *Navigator) Open() {
	if n.length > 0 {
		n.open = true
	}
}

// Close hides the list and clears the selection. Blur and Escape both end up
// here so the two paths cannot drift apart.
func (n *Navigator) Close() {
	n.open = false
	n.active = -1
}

// Handle applies a key and reports what the caller should do
func (n *Navigator) Handle(key Key) Action {
	if !n.open || n.length == 0 {
		if key == KeyEnter {
			return Action{Kind: ActionSubmit, Index: -1}
		}
		return Action{Kind: ActionNone, Index: n.active}
	}

	switch key {
	case KeyArrowDown:
		if n.active < n.length-1 {
			n.active++
		}
	case KeyArrowUp:
		if n.active > -1 {
			n.active--
		}
	case KeyEnter:
		if n.active >= 0 {
			return Action{Kind: ActionSelect, Index: n.active}
		}
		return Action{Kind: ActionSubmit, Index: -1}
	case KeyEscape:
		n.Close()
		return Action{Kind: ActionClose, Index: -1}
	}
	return Action{Kind: ActionNone, Index: n.active}
}

// Active returns the highlighted index or -1
func (n *Navigator) Active() int { return n.active }

// Len returns the number of navigable entries
func (n *Navigator) Len() int { return n.length }

// Mode reports the visible state
func (n *Navigator) Mode() Mode {
	switch {
	case !n.open:
		return ModeClosed
	case n.active < 0:
		return ModeOpen
	default:
		return ModeOpenWithSelection
	}
}
