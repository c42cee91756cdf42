package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phonestore/storefront/internal/search"
)

var (
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("39")).Bold(true)
	itemStyle    = lipgloss.NewStyle().PaddingLeft(1)
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	viewAllStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("244")).Italic(true)
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// changedMsg wakes the program after the box changed on another goroutine
type changedMsg struct{}

// SearchModel is the interactive search-as-you-type prompt
type SearchModel struct {
	box     *search.Box
	input   textinput.Model
	spinner spinner.Model
	changes chan struct{}

	outcome search.Outcome
	done    bool
}

// NewSearchModel wraps box. The model owns the box's change callback.
func NewSearchModel(box *search.Box) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "Search phones..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 100
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	changes := make(chan struct{}, 1)
	box.SetOnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	box.Focus()

	return SearchModel{
		box:     box,
		input:   ti,
		spinner: sp,
		changes: changes,
	}
}

// Outcome is where the user chose to go; Kind is ActionNone when they quit
func (m SearchModel) Outcome() search.Outcome {
	return m.outcome
}

func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return changedMsg{}
	}
}

func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		return m, waitForChange(m.changes)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.done = true
			return m, tea.Quit
		case tea.KeyDown:
			m.box.Key(search.KeyArrowDown)
			return m, nil
		case tea.KeyUp:
			m.box.Key(search.KeyArrowUp)
			return m, nil
		case tea.KeyEnter:
			return m.commit(m.box.Key(search.KeyEnter))
		case tea.KeyEsc:
			m.box.Key(search.KeyEscape)
			return m, nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.box.Type(m.input.Value())
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m SearchModel) commit(out search.Outcome) (SearchModel, tea.Cmd) {
	if out.Kind != search.ActionSelect && out.Kind != search.ActionSubmit {
		return m, nil
	}
	m.outcome = out
	m.done = true
	return m, tea.Quit
}

func (m SearchModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())

	v := m.box.View()
	if v.Searching {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n")

	if v.Open {
		for _, e := range v.Entries {
			switch {
			case e.ViewAll:
				b.WriteString(viewAllStyle.Render(e.Label))
			case e.Active:
				b.WriteString(activeStyle.Render("> " + e.Label + "  " + FormatVND(e.Suggestion.Price)))
			default:
				b.WriteString(itemStyle.Render(e.Label) + "  " + priceStyle.Render(FormatVND(e.Suggestion.Price)))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(hintStyle.Render("↑/↓ move • enter open • esc close • ctrl+c quit"))
	return b.String()
}

// Program adapts SearchModel to tea.Model
type Program struct {
	SearchModel
}

func (p Program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.SearchModel.Update(msg)
	p.SearchModel = m
	return p, cmd
}

// FormatVND renders a whole-dong amount with dot grouping, e.g. 19.990.000 ₫
func FormatVND(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	b.WriteString(" ₫")
	return b.String()
}
