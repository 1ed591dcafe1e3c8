package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"recall/internal/domain"
	"recall/internal/tokenizer"
)

// EnginePort is the TUI-facing subset of the retrieval engine.
type EnginePort interface {
	Retrieve(query string, n int) domain.Result
	CountChunks() int
}

// QueryGuard screens queries before they reach the engine.
type QueryGuard interface {
	Check(query string) error
}

// Model is the Bubble Tea model for the query interface.
type Model struct {
	engine    EnginePort
	guard     QueryGuard
	topK      int
	input     textinput.Model
	viewport  viewport.Model
	result    domain.Result
	status    string
	cursor    int
	ready     bool
	lastQuery string
}

// New creates a new TUI model instance.
func New(engine EnginePort, guard QueryGuard, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	status := fmt.Sprintf("%d chunks indexed. Type to search.", engine.CountChunks())
	return Model{engine: engine, guard: guard, topK: topK, input: ti, viewport: vp, status: status}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around result and query boxes
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 1
		totalFooterLines := 2 // sources + status
		reserved := totalHeaderLines + totalFooterLines + qh + 1
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := m.input.Value()
			if err := m.guard.Check(q); err != nil {
				m.status = "Rejected: " + err.Error()
				return m, nil
			}
			res := m.engine.Retrieve(q, m.topK)
			m.result = res
			m.cursor = 0
			m.lastQuery = q
			if len(res.Chunks) == 0 {
				m.status = fmt.Sprintf("No matches for %q", strings.TrimSpace(q))
			} else {
				m.status = fmt.Sprintf("%d match(es) for %q", len(res.Chunks), strings.TrimSpace(q))
			}
			m.viewport.SetContent(m.renderCurrentResult())
			return m, nil
		case "down":
			if len(m.result.Chunks) > 0 {
				m.cursor = (m.cursor + 1) % len(m.result.Chunks)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.result.Chunks) > 0 {
				m.cursor = (m.cursor - 1 + len(m.result.Chunks)) % len(m.result.Chunks)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Recall")
	input := queryBoxStyle.Render(m.input.View())
	sources := sourceStyle.Render(m.renderSources())
	status := statusStyle.Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + sources + "\n" + status
}

func (m Model) renderSources() string {
	if len(m.result.Sources) == 0 {
		return "Sources: —"
	}
	return "Sources: " + strings.Join(m.result.Sources, ", ")
}

func (m Model) renderCurrentResult() string {
	if len(m.result.Chunks) == 0 {
		return "No results yet."
	}
	r := m.result.Chunks[m.cursor]
	title := fmt.Sprintf("Result %d/%d  score=%.3f  source=%s",
		m.cursor+1, len(m.result.Chunks), r.Score, r.Chunk.Source)
	return title + "\n\n" + highlightMatches(r.Chunk.Text, m.lastQuery)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// highlightMatches emphasizes the words of text that the query shares
// with it, so a glance shows why the chunk ranked.
func highlightMatches(text, query string) string {
	qset := tokenizer.Set(tokenizer.Tokenize(query))
	if len(qset) == 0 {
		return text
	}
	words := strings.Fields(text)
	for i, w := range words {
		toks := tokenizer.Tokenize(w)
		if len(toks) == 0 {
			continue
		}
		if _, ok := qset[toks[0]]; ok {
			words[i] = highlightStyle.Render(w)
		}
	}
	return strings.Join(words, " ")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
