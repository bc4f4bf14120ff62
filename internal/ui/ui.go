// Package ui implements the interactive report browser: a filterable list
// of check results with a detail pane for the selected entry.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/positronikal/standards-check/internal/checker"
	"github.com/positronikal/standards-check/internal/validate"
)

// statusFilters cycles with tab; empty means all statuses
var statusFilters = []validate.Status{"", validate.StatusFail, validate.StatusWarning, validate.StatusPass}

type model struct {
	report  *checker.Report
	all     []validate.Result
	visible []validate.Result

	search       textinput.Model
	statusFilter int
	cursor       int
	offset       int

	width  int
	height int
}

func newModel(report *checker.Report) model {
	search := textinput.New()
	search.Placeholder = "filter checks..."
	search.Prompt = "> "
	search.Focus()

	m := model{
		report: report,
		all:    report.Results(),
		search: search,
		width:  80,
		height: 24,
	}
	m.refilter()
	return m
}

// Run starts the interactive browser over the given report
func Run(report *checker.Report) error {
	p := tea.NewProgram(newModel(report), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		case "tab":
			m.statusFilter = (m.statusFilter + 1) % len(statusFilters)
			m.refilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

// refilter recomputes the visible results from the search words and the
// status filter, clamping the cursor.
func (m *model) refilter() {
	words := strings.Fields(strings.ToLower(m.search.Value()))
	status := statusFilters[m.statusFilter]

	m.visible = m.visible[:0]
	for _, res := range m.all {
		if status != "" && res.Status != status {
			continue
		}
		if matchesWords(res, words) {
			m.visible = append(m.visible, res)
		}
	}

	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func matchesWords(res validate.Result, words []string) bool {
	haystack := strings.ToLower(res.Check + " " + res.Message)
	for _, word := range words {
		if !strings.Contains(haystack, word) {
			return false
		}
	}
	return true
}

func statusGlyph(status validate.Status) string {
	switch status {
	case validate.StatusPass:
		return styles.Pass.Render("PASS")
	case validate.StatusFail:
		return styles.Fail.Render("FAIL")
	default:
		return styles.Warn.Render("WARN")
	}
}

func (m model) View() string {
	var b strings.Builder

	summary := m.report.Summary()
	b.WriteString(styles.Title.Render("positronikal-check"))
	b.WriteString("  ")
	b.WriteString(styles.Summary.Render(fmt.Sprintf(
		"%d checks: %d passed, %d failed, %d warnings",
		summary.TotalChecks, summary.Passed, summary.Failed, summary.Warnings)))

	filterName := "all"
	if s := statusFilters[m.statusFilter]; s != "" {
		filterName = string(s)
	}
	b.WriteString(styles.Dim.Render(fmt.Sprintf("  [tab: %s]", filterName)))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(styles.Divider.Render(strings.Repeat("-", max(m.width-1, 10))))
	b.WriteString("\n")

	listHeight := m.height - 6
	if listHeight < 1 {
		listHeight = 1
	}

	// Keep the cursor inside the window.
	offset := m.offset
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+listHeight {
		offset = m.cursor - listHeight + 1
	}

	for i := offset; i < len(m.visible) && i < offset+listHeight; i++ {
		res := m.visible[i]
		line := fmt.Sprintf("%s  %s", statusGlyph(res.Status),
			styles.Check.Render(res.Check))
		if i == m.cursor {
			line = styles.Cursor.Render(">") + " " + styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(styles.Dim.Render("  no matching checks"))
		b.WriteString("\n")
	}

	b.WriteString(styles.Divider.Render(strings.Repeat("-", max(m.width-1, 10))))
	b.WriteString("\n")
	if m.cursor < len(m.visible) {
		b.WriteString(styles.Message.Render(m.visible[m.cursor].Message))
	}

	return b.String()
}
