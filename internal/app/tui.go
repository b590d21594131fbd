package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ilinovom/posts-browser/internal/widget"
)

// fetchDoneMsg is sent when a fetch started from the form finishes.
type fetchDoneMsg struct {
	err error
}

type tuiStyles struct {
	title     lipgloss.Style
	label     lipgloss.Style
	status    lipgloss.Style
	loading   lipgloss.Style
	success   lipgloss.Style
	failure   lipgloss.Style
	postTitle lipgloss.Style
	postBody  lipgloss.Style
	empty     lipgloss.Style
	help      lipgloss.Style
}

func defaultTUIStyles() tuiStyles {
	base := lipgloss.NewStyle().Padding(0, 1)
	return tuiStyles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		label:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		status:    base.Foreground(lipgloss.Color("250")),
		loading:   base.Foreground(lipgloss.Color("39")),
		success:   base.Foreground(lipgloss.Color("42")),
		failure:   base.Foreground(lipgloss.Color("196")),
		postTitle: lipgloss.NewStyle().Bold(true),
		postBody:  lipgloss.NewStyle().Foreground(lipgloss.Color("248")).PaddingLeft(3),
		empty:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244")),
		help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// statusStyle maps a status kind to its modifier style.
func (s tuiStyles) statusStyle(k widget.Kind) lipgloss.Style {
	switch k {
	case widget.KindLoading:
		return s.loading
	case widget.KindSuccess:
		return s.success
	case widget.KindError:
		return s.failure
	default:
		return s.status
	}
}

// tuiModel is the terminal front end of the widget.
type tuiModel struct {
	ctx     context.Context
	widget  *widget.Widget
	input   textinput.Model
	spinner spinner.Model
	styles  tuiStyles
	view    widget.View
}

func newTUIModel(ctx context.Context, w *widget.Widget) tuiModel {
	view := w.Snapshot()

	ti := textinput.New()
	ti.Placeholder = "1-10"
	ti.CharLimit = 4
	ti.Width = 6
	ti.Prompt = "> "
	ti.SetValue(view.Input)
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return tuiModel{
		ctx:     ctx,
		widget:  w,
		input:   ti,
		spinner: sp,
		styles:  defaultTUIStyles(),
		view:    view,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+r":
			m.widget.SetRemember(!m.view.Remember)
			m.view = m.widget.Snapshot()
			return m, nil
		case "ctrl+l":
			// failures are shown on the status line
			_ = m.widget.Clear(m.ctx)
			m.view = m.widget.Snapshot()
			return m, nil
		case "enter":
			req, err := m.widget.Submit(m.input.Value(), m.view.Remember)
			m.view = m.widget.Snapshot()
			if err != nil {
				return m, nil
			}
			return m, tea.Batch(m.fetch(req), m.spinner.Tick)
		}
	case fetchDoneMsg:
		m.view = m.widget.Snapshot()
		return m, nil
	case spinner.TickMsg:
		if !m.view.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m tuiModel) fetch(req widget.Request) tea.Cmd {
	ctx, w := m.ctx, m.widget
	return func() tea.Msg {
		return fetchDoneMsg{err: w.Fetch(ctx, req)}
	}
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("Posts browser"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.label.Render("User ID (1-10)"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	check := "[ ]"
	if m.view.Remember {
		check = "[x]"
	}
	b.WriteString(fmt.Sprintf("%s Remember user\n\n", check))

	status := m.view.Status.Message
	if m.view.Loading {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(m.styles.statusStyle(m.view.Status.Kind).Render(status))
	b.WriteString("\n\n")

	for i, item := range m.view.Items {
		if item.Placeholder {
			b.WriteString(m.styles.empty.Render(item.Title))
			b.WriteString("\n")
			continue
		}
		b.WriteString(m.styles.postTitle.Render(fmt.Sprintf("%2d. %s", i+1, item.Title)))
		b.WriteString("\n")
		b.WriteString(m.styles.postBody.Render(item.Body))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render("enter: load • ctrl+r: remember • ctrl+l: clear • esc: quit"))
	b.WriteString("\n")
	return b.String()
}
