package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// T2048Mode represents the selected game mode.
type T2048Mode int

const (
	T2048ModeClassic T2048Mode = iota
	T2048ModeCampaign
	T2048ModeEndless
)

// GameID returns the registry id for the mode.
func (m T2048Mode) GameID() string {
	switch m {
	case T2048ModeCampaign:
		return "2048_campaign"
	case T2048ModeEndless:
		return "2048_endless"
	}
	return "2048"
}

// t2048Modes are the entries of the mode list, in display order.
var t2048Modes = []string{
	"Classic",
	"Campaign",
	"Endless",
	"Select Level...",
}

const selectLevelEntry = 3

// menuKeys narrows a KeyMap to the bindings a list menu responds to.
type menuKeys struct {
	KeyMap
}

// ShortHelp returns the menu bindings for the help footer.
func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back, k.Quit}
}

// FullHelp returns the menu bindings as a single column.
func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// T2048Selection holds the user's selection from the 2048 menu.
type T2048Selection struct {
	Mode  T2048Mode
	Level int // 0 = start from beginning, otherwise a 1-based campaign level
}

// T2048ModeModel lets users choose game mode and starting level for 2048.
type T2048ModeModel struct {
	cursor         int
	levelCursor    int
	inLevelSelect  bool
	width          int
	height         int
	keyMapper      *KeyMapper
	help           help.Model
	selection      T2048Selection
	choosing       bool
	quitting       bool
	back           bool
	openScoreboard bool // True if user pressed Tab for scoreboard
}

// NewT2048ModeModel creates a new 2048 mode selection model.
func NewT2048ModeModel(width, height int) T2048ModeModel {
	return T2048ModeModel{
		cursor:    0,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		choosing:  true,
	}
}

// Init initializes the model.
func (m T2048ModeModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m T2048ModeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}
	return m, nil
}

func (m T2048ModeModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	if m.inLevelSelect {
		return m.handleLevelSelectKey(action)
	}
	return m.handleModeSelectKey(action)
}

func (m T2048ModeModel) handleModeSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(t2048Modes)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		if m.cursor == selectLevelEntry {
			m.inLevelSelect = true
			m.levelCursor = 0
			return m, nil
		}
		m.choosing = false
		m.selection = T2048Selection{Mode: T2048Mode(m.cursor)}
		return m, tea.Quit
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

func (m T2048ModeModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	levelCount := t2048.LevelCount()

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < levelCount-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = T2048Selection{
			Mode:  T2048ModeCampaign,
			Level: m.levelCursor + 1, // 1-indexed
		}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the mode/level selection.
func (m T2048ModeModel) View() string {
	if m.quitting {
		return ""
	}

	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewModeSelect()
}

func (m T2048ModeModel) viewModeSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("2 0 4 8", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select game mode (Tab: high scores)", m.width))
	b.WriteString("\n\n")

	for i, mode := range t2048Modes {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%s", cursor, mode), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(menuKeys{m.keyMapper.Keys()}), m.width))

	return b.String()
}

func (m T2048ModeModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText("SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	levelNames := t2048.LevelNames()
	levelTargets := t2048.LevelTargets()

	for i, name := range levelNames {
		cursor := "  "
		if i == m.levelCursor {
			cursor = "> "
		}

		line := fmt.Sprintf("%s%2d. %s (Target: %d)", cursor, i+1, name, levelTargets[i])
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(menuKeys{m.keyMapper.Keys()}), m.width))

	return b.String()
}

// Selected returns the selection, or nil if still choosing.
func (m T2048ModeModel) Selected() *T2048Selection {
	if m.choosing {
		return nil
	}
	return &m.selection
}

// IsChoosing returns true if still in selection mode.
func (m T2048ModeModel) IsChoosing() bool {
	return m.choosing
}

// IsQuitting returns true if user wants to quit.
func (m T2048ModeModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m T2048ModeModel) WantsBack() bool {
	return m.back
}

// WantsScoreboard returns true if user asked for the high score table.
func (m T2048ModeModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Size returns the last known window size.
func (m T2048ModeModel) Size() (width, height int) {
	return m.width, m.height
}

// MenuResult holds the result of running the mode menu.
type MenuResult struct {
	Selection       *T2048Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunT2048ModeSelector runs the 2048 mode selection and returns the result.
// Quit is set when the user left without choosing.
func RunT2048ModeSelector(cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewT2048ModeModel(cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(T2048ModeModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.Size()

	result := MenuResult{Config: cfg}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.IsQuitting() || m.WantsBack() || m.Selected() == nil:
		result.Quit = true
	default:
		result.Selection = m.Selected()
	}
	return result, nil
}
