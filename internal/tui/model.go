package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gist/internal/domain"
)

// Session is the TUI-facing subset of an opened document session.
type Session interface {
	Report() domain.Report
	Sentences() []string
	Query(ctx context.Context, query string, topK int) []domain.SearchResult
}

// Model is the Bubble Tea model for explore mode: the report up top, a
// query prompt below, and a viewport cycling through matched sentences.
type Model struct {
	session   Session
	title     string
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	results   []domain.SearchResult
	cursor    int
	status    string
	width     int
	ready     bool
	lastQuery string
}

// New creates the explore model for an opened document.
func New(session Session, title string, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		session:  session,
		title:    title,
		topK:     topK,
		input:    ti,
		viewport: vp,
		status:   "Summarized. Type a query to explore the document.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		headerLines := lipgloss.Height(m.renderHeader())
		footerLines := 1 // status
		reserved := headerLines + footerLines + qh + 2 // input line + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				res := m.session.Query(context.Background(), q, m.topK)
				if len(res) == 0 {
					m.status = fmt.Sprintf("No matches for %q", q)
				} else {
					m.status = fmt.Sprintf("Results for %q", q)
				}
				m.results = res
				m.cursor = 0
				m.lastQuery = q
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the report header, current result and query prompt.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := m.renderHeader()
	results := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderHeader() string {
	rep := m.session.Report()
	title := titleStyle.Render("gist explore") + "  " + m.title
	summary := summaryStyle.Width(max(20, m.width)).Render(rep.Summary)
	tags := "tags: " + strings.Join(rep.Tags, ", ")
	meta := fmt.Sprintf("%d words, summary %d words (%s)",
		rep.Metrics.OriginalWords, rep.Metrics.SummaryWords, rep.Metrics.Compression)
	return title + "\n" + summary + "\n" + metaStyle.Render(tags+"\n"+meta)
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No matches yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Match %d/%d for %q  score=%.3f", m.cursor+1, len(m.results), m.lastQuery, r.Score)
	return title + "\n\n" + m.renderContext(r)
}

// renderContext shows the matched sentence highlighted between its
// neighbors so the hit reads in document order.
func (m Model) renderContext(r domain.SearchResult) string {
	sentences := m.session.Sentences()
	if r.Position < 0 || r.Position >= len(sentences) {
		return r.Text
	}
	start := max(0, r.Position-1)
	end := min(len(sentences), r.Position+2)
	parts := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		if i == r.Position {
			parts = append(parts, highlightStyle.Render(sentences[i]))
		} else {
			parts = append(parts, sentences[i])
		}
	}
	return strings.Join(parts, " ")
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	summaryStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
