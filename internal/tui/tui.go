package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// model is a read-only pager over a rendered export section.
type model struct {
	title    string
	content  string
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	quitting bool
}

func newModel(title, content string) model {
	return model{
		title:    title,
		content:  content,
		viewport: viewport.New(0, 0),
	}
}

// RunPager shows content in a scrollable full-screen view and blocks until
// the user quits.
func RunPager(title, content string) error {
	p := tea.NewProgram(newModel(title, content), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.viewport = viewport.New(m.bodyWidth(), m.bodyHeight())
		m.viewport.Style = stylePanelBorder
		m.viewport.SetContent(wrapText(highlight(m.content), m.bodyWidth()-2))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, keys.HalfUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, keys.HalfDown):
			m.viewport.HalfViewDown()
		case key.Matches(msg, keys.PageUp):
			m.viewport.ViewUp()
		case key.Matches(msg, keys.PageDown):
			m.viewport.ViewDown()
		case key.Matches(msg, keys.Top):
			m.viewport.GotoTop()
		case key.Matches(msg, keys.Bottom):
			m.viewport.GotoBottom()
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}
	title := styleTitle.Render(m.title)
	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), m.statusBar())
}

func (m model) statusBar() string {
	pos := fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100)
	return styleStatusBar.Render(pos + "  " + keys.helpLine())
}

func (m model) bodyWidth() int {
	return max(m.width, 10)
}

// bodyHeight leaves room for the title and status rows and the border.
func (m model) bodyHeight() int {
	return max(m.height-2, 3)
}

// highlight colors the Markdown headings written by the document package.
func highlight(content string) string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		switch {
		case l == "### User":
			lines[i] = styleUserHeading.Render(l)
		case l == "### Assistant":
			lines[i] = styleAssistantHeading.Render(l)
		case strings.HasPrefix(l, "## "), strings.HasPrefix(l, "# "), l == "---":
			lines[i] = styleSectionHeading.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}
