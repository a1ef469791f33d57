package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const (
	sidebarMinWidth = 80  // narrower windows get a one-line mode switcher
	sidebarWidth    = 22  // sidebar panel width including padding
	scoreRows       = 100 // runs loaded per table
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the score tables.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	NextSize key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.NextSize, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMode, k.PrevMode, k.NextSize},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev mode"),
		),
		NextSize: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "board size"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs of one mode, optionally narrowed to
// one board size. Runs on different board sizes are not comparable, so the
// sizes a mode was played on are listed next to the modes.
type ScoreboardModel struct {
	store *storage.Store
	modes []registry.GameInfo
	mode  int
	sizes []int // 0 (every board) followed by the recorded sizes
	size  int   // index into sizes
	runs  []storage.ScoreRecord

	table  table.Model
	help   help.Model
	keys   ScoreboardKeyMap
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a score table opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		sizes:  []int{0},
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.selectMode(0)
	return m
}

// newScoreTable builds an empty table sized for the window.
func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 10},
		{Title: "Best", Width: 7},
		{Title: "Moves", Width: 6},
		{Title: "Board", Width: 5},
		{Title: "Played", Width: 12},
	}

	avail := width - 4
	if width >= sidebarMinWidth {
		avail -= sidebarWidth + 4
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := avail - used; spare > 0 {
		columns[len(columns)-1].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// selectMode switches to mode i (wrapping) and lists its board sizes.
func (m *ScoreboardModel) selectMode(i int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (i%len(m.modes) + len(m.modes)) % len(m.modes)
	m.sizes = []int{0}
	m.size = 0
	if m.store != nil {
		if sizes, err := m.store.GridSizes(m.modes[m.mode].ID); err == nil {
			m.sizes = append(m.sizes, sizes...)
		}
	}
	m.reload()
}

// nextSize cycles through every board, then each recorded size.
func (m *ScoreboardModel) nextSize() {
	m.size = (m.size + 1) % len(m.sizes)
	m.reload()
}

// reload fetches the runs for the current mode and size. An unreadable
// store shows as an empty table.
func (m *ScoreboardModel) reload() {
	m.runs = nil
	if m.store != nil && len(m.modes) > 0 {
		runs, err := m.store.TopScoresOnGrid(m.modes[m.mode].ID, m.sizes[m.size], scoreRows)
		if err == nil {
			m.runs = runs
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = scoreRow(i+1, r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func scoreRow(rank int, r storage.ScoreRecord) table.Row {
	score := fmt.Sprintf("%d", r.Score)
	if r.Won {
		score += "*"
	}
	return table.Row{
		fmt.Sprintf("%d", rank),
		score,
		fmt.Sprintf("%d", r.MaxTile),
		fmt.Sprintf("%d", r.Moves),
		boardLabel(r.GridSize),
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// boardLabel names a board size; 0 stands for every size.
func boardLabel(size int) string {
	if size == 0 {
		return "all"
	}
	return fmt.Sprintf("%dx%d", size, size)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.selectMode(m.mode + 1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.selectMode(m.mode - 1)
			return m, nil
		case key.Matches(msg, m.keys.NextSize):
			m.nextSize()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = newScoreTable(msg.Width, msg.Height)
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(accentStyle.Render(centerText(m.title(), m.width)))
	b.WriteString("\n\n")

	body := panelStyle.Render(m.tableBody())
	if m.width >= sidebarMinWidth {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", body))
	} else {
		b.WriteString(centerText(m.switcher(), m.width))
		b.WriteString("\n\n")
		b.WriteString(body)
	}

	b.WriteString("\n")
	if line := runSummary(m.runs); line != "" {
		b.WriteString(dimStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) title() string {
	if len(m.modes) == 0 {
		return "HIGH SCORES"
	}
	return fmt.Sprintf("HIGH SCORES - %s - %s boards  (* = won)",
		m.modes[m.mode].Title, boardLabel(m.sizes[m.size]))
}

// sidebar lists the modes and, below them, the board sizes of the current mode.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	writeList := func(heading string, items []string, cursor int) {
		b.WriteString(heading)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", sidebarWidth-4))
		b.WriteString("\n")
		for i, item := range items {
			if len(item) > sidebarWidth-6 {
				item = item[:sidebarWidth-7] + "."
			}
			if i == cursor {
				b.WriteString(accentStyle.Render("> " + item))
			} else {
				b.WriteString("  " + item)
			}
			b.WriteString("\n")
		}
	}

	modes := make([]string, len(m.modes))
	for i, g := range m.modes {
		modes[i] = g.Title
	}
	writeList("Modes", modes, m.mode)
	b.WriteString("\n")

	sizes := make([]string, len(m.sizes))
	for i, n := range m.sizes {
		sizes[i] = boardLabel(n)
	}
	writeList("Boards", sizes, m.size)

	return panelStyle.Width(sidebarWidth).Render(strings.TrimRight(b.String(), "\n"))
}

// switcher is the narrow-window stand-in for the sidebar.
func (m ScoreboardModel) switcher() string {
	if len(m.modes) == 0 {
		return ""
	}
	return fmt.Sprintf("< %s >  [%s]", m.modes[m.mode].Title, boardLabel(m.sizes[m.size]))
}

func (m ScoreboardModel) tableBody() string {
	if len(m.runs) == 0 {
		return dimStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nFinish a game of 2048 to set one!")
	}
	return m.table.View()
}

// runSummary describes the listed runs in one line.
func runSummary(runs []storage.ScoreRecord) string {
	if len(runs) == 0 {
		return ""
	}
	won, best := 0, 0
	for _, r := range runs {
		if r.Won {
			won++
		}
		best = max(best, r.MaxTile)
	}
	return fmt.Sprintf("%d runs  %d won  best tile %d", len(runs), won, best)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
