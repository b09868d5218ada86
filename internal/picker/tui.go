package picker

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GriffinCanCode/hildon-home/internal/domain/views"
)

const (
	swatchWidth  = 12
	swatchHeight = 3
)

// Model is a terminal picker over a List. Enter confirms, Esc dismisses.
type Model struct {
	list    *List
	title   string
	cursor  int
	done    bool
	outcome views.Outcome
}

// NewModel creates a picker model over list
func NewModel(list *List, title string) Model {
	return Model{list: list, title: title, outcome: views.OutcomeDismissed}
}

// Outcome reports how the picker was closed; a picker that never finished is dismissed
func (m Model) Outcome() views.Outcome {
	return m.outcome
}

// Done reports whether the user closed the picker
func (m Model) Done() bool {
	return m.done
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "left", "h", "up", "k", "shift+tab":
		if m.list.Len() > 0 {
			m.cursor = (m.cursor - 1 + m.list.Len()) % m.list.Len()
		}
	case "right", "l", "down", "j", "tab":
		if m.list.Len() > 0 {
			m.cursor = (m.cursor + 1) % m.list.Len()
		}
	case " ", "space", "x":
		m.list.Toggle(m.cursor)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		pos := int(key.String()[0] - '1')
		if pos < m.list.Len() {
			m.cursor = pos
			m.list.Toggle(pos)
		}
	case "enter":
		m.done = true
		m.outcome = views.OutcomeConfirmed
		return m, tea.Quit
	case "esc", "q", "ctrl+c":
		m.done = true
		m.outcome = views.OutcomeDismissed
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.done {
		return ""
	}

	cards := make([]string, 0, m.list.Len())
	for pos := 0; pos < m.list.Len(); pos++ {
		cards = append(cards, m.card(pos))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ move • space toggle • enter done • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) card(pos int) string {
	item := m.list.Item(pos)

	mark := "[ ]"
	if m.list.Selected(pos) {
		mark = "[x]"
	}

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(MeanColor(item.Thumbnail))).
		Width(swatchWidth).
		Height(swatchHeight).
		Render("")

	body := lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(fmt.Sprintf("%s View %d", mark, item.View)),
		swatch,
		sourceStyle.Render(string(item.Source)),
	)

	if pos == m.cursor {
		return cardCursorStyle.Render(body)
	}
	return cardStyle.Render(body)
}

// Run shows the picker on the given terminal streams and blocks until the user closes it
func Run(list *List, title string, in io.Reader, out io.Writer) (views.Outcome, error) {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(NewModel(list, title), opts...).Run()
	if err != nil {
		return views.OutcomeDismissed, fmt.Errorf("run picker: %w", err)
	}
	return final.(Model).Outcome(), nil
}
