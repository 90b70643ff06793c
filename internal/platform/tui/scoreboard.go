package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockdrop/internal/storage"
)

const (
	minWidthForSidebar = 90  // below this the mode list collapses to "< Title >"
	sidebarWidth       = 24  // mode list and stats panel
	maxScores          = 100 // rows loaded per mode
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeModeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	panelStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	Clear    key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevMode, k.NextMode, k.Clear, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.PrevMode, k.NextMode},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev mode"),
		),
		Clear: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "clear mode"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the best runs and aggregate stats per mode.
type ScoreboardModel struct {
	modes  []MenuItem
	cursor int
	store  *storage.Store
	scores []storage.Result
	stats  *storage.ModeStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
// A nil store shows empty boards.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  menuItems(nil),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForSidebar
}

func (m ScoreboardModel) newTable() table.Model {
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Lvl", Width: 4},
		{Title: "Time", Width: 6},
		{Title: "Won", Width: 4},
		{Title: "Date", Width: 12},
	}

	room := m.width - 6 // panel border and padding
	if m.wide() {
		room -= sidebarWidth + 4
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	if extra := room - used; extra > 0 {
		cols[len(cols)-1].Width += min(extra, 8)
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(st)
	return t
}

// mode returns the selected mode ID, or "" when no modes exist.
func (m ScoreboardModel) mode() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.cursor].GameID
}

// load refreshes scores and stats for the selected mode. Storage failures
// degrade to an empty board.
func (m *ScoreboardModel) load() {
	m.scores, m.stats = nil, nil
	if id := m.mode(); id != "" && m.store != nil {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		} else {
			logger.Warn("could not load scores", "mode", id, "err", err)
		}
		if stats, err := m.store.ModeStats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, r := range m.scores {
		won := ""
		if r.Won {
			won = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Lines),
			fmt.Sprintf("%d", r.Level),
			formatDuration(r.DurationSecs),
			won,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) step(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.modes)) % len(m.modes)
	m.load()
}

// Init initializes the model.
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
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.step(-1)
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			if id := m.mode(); id != "" && m.store != nil {
				if err := m.store.ClearScores(id); err != nil {
					logger.Warn("could not clear scores", "mode", id, "err", err)
				} else {
					logger.Info("scores cleared", "mode", id)
				}
				m.load()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		rows := m.table.Rows()
		m.table = m.newTable()
		m.table.SetRows(rows)
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

	title, current := "HIGH SCORES", ""
	if len(m.modes) > 0 {
		current = m.modes[m.cursor].Title
		title += " - " + strings.ToUpper(current)
	}

	var body string
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", panelStyle.Render(m.tableView()))
	} else {
		body = lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("< %s >", current),
			mutedStyle.Render(m.statsLine()),
			panelStyle.Render(m.tableView()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardTitleStyle.Render(title)),
		"",
		lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body),
		"",
		mutedStyle.Render(m.help.View(m.keys)),
	)
}

// sidebar renders the mode list above the stats for the selected mode.
func (m ScoreboardModel) sidebar() string {
	var b strings.Builder
	for i, item := range m.modes {
		if i == m.cursor {
			b.WriteString(activeModeStyle.Render("> " + item.Title))
		} else {
			b.WriteString("  " + item.Title)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	st := m.stats
	if st == nil || st.Runs == 0 {
		b.WriteString(mutedStyle.Render("no runs yet"))
	} else {
		fmt.Fprintf(&b, "Runs    %d\n", st.Runs)
		if st.Wins > 0 {
			fmt.Fprintf(&b, "Wins    %d\n", st.Wins)
		}
		fmt.Fprintf(&b, "Best    %d\n", st.HighScore)
		fmt.Fprintf(&b, "Avg     %.0f\n", st.AvgScore)
		fmt.Fprintf(&b, "Lines   %d", st.TotalLines)
		if !st.LastPlayed.IsZero() {
			fmt.Fprintf(&b, "\nLast    %s", st.LastPlayed.Format("Jan 02"))
		}
	}

	return panelStyle.Width(sidebarWidth).Render(b.String())
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return mutedStyle.Italic(true).Padding(2, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

// statsLine is the one-line stats summary used in the narrow layout.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.Runs == 0 {
		return ""
	}
	line := fmt.Sprintf("%d runs  best %d  avg %.0f  lines %d", st.Runs, st.HighScore, st.AvgScore, st.TotalLines)
	if st.Wins > 0 {
		line += fmt.Sprintf("  wins %d", st.Wins)
	}
	return line
}

// formatDuration renders seconds as m:ss.
func formatDuration(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
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
