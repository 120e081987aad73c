package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jaiparse/internal/driver"
)

const statusWidth = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	cachedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
)

type row struct {
	path    string
	stage   driver.Stage
	status  driver.Status
	cached  bool
	elapsed time.Duration
}

// label is the word shown in the status column.
func (r row) label() string {
	switch r.status {
	case driver.StatusWorking:
		switch r.stage {
		case driver.StageTokenize:
			return "lexing"
		case driver.StageImports:
			return "linking"
		}
		return "parsing"
	case driver.StatusDone:
		if r.cached {
			return "cached"
		}
		return "ok"
	case driver.StatusError:
		return "error"
	}
	return "queued"
}

func (r row) style() lipgloss.Style {
	switch r.status {
	case driver.StatusWorking:
		return workingStyle
	case driver.StatusDone:
		if r.cached {
			return cachedStyle
		}
		return doneStyle
	case driver.StatusError:
		return errorStyle
	}
	return queuedStyle
}

// Model renders per-file progress of a directory run fed by driver events.
// Files not given up front are added in the order their events arrive. It
// quits when the event channel is closed.
type Model struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type closedMsg struct{}

func NewProgressModel(title string, files []string, events <-chan driver.Event) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workingStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]row, len(files))
	byPath := make(map[string]int, len(files))
	for i, f := range files {
		rows[i] = row{path: f, status: driver.StatusQueued}
		byPath[f] = i
	}
	return &Model{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case closedMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-6, 20)
	for _, r := range m.rows {
		status := r.style().Render(fmt.Sprintf("%*s", statusWidth, r.label()))
		line := "  " + status + " " + truncate(r.path, nameWidth)
		if r.elapsed > 0 && r.status != driver.StatusWorking {
			line += footerStyle.Render(fmt.Sprintf(" %s", r.elapsed.Round(time.Millisecond)))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	b.WriteString(footerStyle.Render(m.Summary()))
	b.WriteByte('\n')
	return b.String()
}

// Summary counts finished, failed and cached files.
func (m *Model) Summary() string {
	var finished, failed, cached int
	for _, r := range m.rows {
		switch r.status {
		case driver.StatusDone:
			finished++
			if r.cached {
				cached++
			}
		case driver.StatusError:
			finished++
			failed++
		}
	}
	s := fmt.Sprintf("%d/%d files", finished, len(m.rows))
	if failed > 0 {
		s += fmt.Sprintf(", %d with errors", failed)
	}
	if cached > 0 {
		s += fmt.Sprintf(", %d cached", cached)
	}
	return s
}

func (m *Model) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		// the driver lists directories itself; rows appear with their first event
		i = len(m.rows)
		m.rows = append(m.rows, row{path: ev.File})
		m.byPath[ev.File] = i
	}
	r := &m.rows[i]
	r.stage, r.status, r.cached = ev.Stage, ev.Status, ev.Cached
	if ev.Elapsed > 0 {
		r.elapsed = ev.Elapsed
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction weighs a file in progress as half done.
func (m *Model) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, r := range m.rows {
		switch r.status {
		case driver.StatusDone, driver.StatusError:
			total++
		case driver.StatusWorking:
			total += 0.5
		}
	}
	return total / float64(len(m.rows))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
