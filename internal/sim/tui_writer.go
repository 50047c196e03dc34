package sim

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"fremen-sim/internal/config"
	"fremen-sim/internal/telemetry"
	"fremen-sim/internal/trooper"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// engagementMsg carries a combat log line for the viewport.
type engagementMsg struct{ line string }

// alertMsg carries a squad alert log line.
type alertMsg struct{ line string }

// rosterMsg carries a trooper state update for the roster section.
type rosterMsg struct{ telemetry.TrooperStateRow }

const maxSectionHeightPct = 0.2

// TUIWriter renders combat events using a bubbletea TUI.
type TUIWriter struct {
	program       teaProgram
	outpostColors map[string]string
	colorIdx      int
	done          chan struct{}
	sendSignal    atomic.Bool
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(cfg *config.SimulationConfig) *TUIWriter {
	oc := make(map[string]string)
	w := &TUIWriter{outpostColors: oc, done: make(chan struct{})}
	w.sendSignal.Store(true)
	m := newTUIModel(cfg, oc)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	for _, op := range cfg.Outposts {
		w.getOutpostColor(op.ID)
	}
	go func() {
		_, _ = p.Run()
		close(w.done)
		if w.sendSignal.Load() {
			if proc, err := os.FindProcess(os.Getpid()); err == nil {
				_ = proc.Signal(os.Interrupt)
			}
		}
	}()
	return w
}

func (w *TUIWriter) getOutpostColor(id string) string {
	if c, ok := w.outpostColors[id]; ok {
		return c
	}
	c := outpostPalette[w.colorIdx%len(outpostPalette)]
	w.outpostColors[id] = c
	w.colorIdx++
	return c
}

// WriteEngagement implements EngagementWriter.
func (w *TUIWriter) WriteEngagement(row telemetry.EngagementRow) error {
	result := fmt.Sprintf("%sMISS%s", colorGray, colorReset)
	if row.Hit {
		result = fmt.Sprintf("%sHIT dmg=%d%s", colorRed, row.Damage, colorReset)
	}
	line := fmt.Sprintf("%s[%s]%s %soutpost=%s%s trooper=%s %starget=%s/%s%s %sdist=%.1fm%s %s",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		w.getOutpostColor(row.OutpostID), row.OutpostID, colorReset,
		row.TrooperID,
		colorBlue, row.TargetKind, row.TargetID, colorReset,
		colorCyan, row.DistanceM, colorReset,
		result)
	w.program.Send(engagementMsg{line: line})
	return nil
}

// WriteEngagements outputs multiple engagement rows.
func (w *TUIWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	for _, r := range rows {
		_ = w.WriteEngagement(r)
	}
	return nil
}

// WriteAlert implements AlertWriter.
func (w *TUIWriter) WriteAlert(row telemetry.AlertRow) error {
	line := fmt.Sprintf("%s[%s]%s %sALERT%s reporter=%s spotted=%s %soutpost=%s%s at=(%.1f, %.1f)",
		colorGray, row.Timestamp.Format(time.RFC3339), colorReset,
		colorYellow, colorReset,
		row.ReporterID, row.SpottedID,
		w.getOutpostColor(row.OutpostID), row.OutpostID, colorReset,
		row.Position.X, row.Position.Z)
	w.program.Send(alertMsg{line: line})
	return nil
}

// WriteAlerts outputs multiple alert rows.
func (w *TUIWriter) WriteAlerts(rows []telemetry.AlertRow) error {
	for _, r := range rows {
		_ = w.WriteAlert(r)
	}
	return nil
}

// WriteState implements StateWriter.
func (w *TUIWriter) WriteState(row telemetry.TrooperStateRow) error {
	w.program.Send(rosterMsg{TrooperStateRow: row})
	return nil
}

// WriteStates outputs multiple state rows.
func (w *TUIWriter) WriteStates(rows []telemetry.TrooperStateRow) error {
	for _, r := range rows {
		_ = w.WriteState(r)
	}
	return nil
}

// Close shuts down the TUI program and waits for cleanup.
func (w *TUIWriter) Close() error {
	w.sendSignal.Store(false)
	if w.program != nil {
		w.program.Send(tea.Quit())
	}
	if w.done != nil {
		<-w.done
	}
	return nil
}

type tuiModel struct {
	cfg           *config.SimulationConfig
	table         table.Model
	vp            viewport.Model
	alertVP       viewport.Model
	logs          []string
	alertLogs     []string
	roster        map[string]telemetry.TrooperStateRow
	outpostColors map[string]string
	wrap          bool
	autoscroll    bool
	showRoster    bool
	help          bool
	header        string
	headerHeight  int
	height        int
}

func newTUIModel(cfg *config.SimulationConfig, outpostColors map[string]string) tuiModel {
	cols := []table.Column{
		{Title: "Outpost", Width: 16},
		{Title: "Position", Width: 16},
		{Title: "Radius", Width: 8},
		{Title: "Garrison", Width: 8},
		{Title: "Faction", Width: 10},
	}
	var rows []table.Row
	for _, op := range cfg.Outposts {
		rows = append(rows, table.Row{
			op.ID,
			fmt.Sprintf("(%.0f, %.0f)", op.X, op.Z),
			fmt.Sprintf("%.0f", op.CaptureRadius),
			fmt.Sprintf("%d", op.MinGarrison),
			op.Faction,
		})
	}
	t := table.New(table.WithColumns(cols), table.WithRows(rows), table.WithHeight(len(rows)+1))
	return tuiModel{
		cfg:           cfg,
		table:         t,
		vp:            viewport.New(0, 0),
		alertVP:       viewport.New(0, 0),
		roster:        make(map[string]telemetry.TrooperStateRow),
		outpostColors: outpostColors,
		autoscroll:    true,
		showRoster:    true,
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width)
		m.vp.Width = msg.Width
		m.alertVP.Width = msg.Width
		m.height = msg.Height
		m.header = m.table.View()
		m.headerHeight = lipgloss.Height(m.header)
		m.updateViewportHeight()
		m.refreshViewport()
		m.refreshAlerts()
	case tea.KeyMsg:
		if m.help {
			switch msg.String() {
			case "?", "h", "esc":
				m.help = false
				m.updateViewportHeight()
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "w":
			m.wrap = !m.wrap
			m.refreshViewport()
			return m, nil
		case "s":
			m.autoscroll = !m.autoscroll
			if m.autoscroll {
				m.vp.GotoBottom()
				m.alertVP.GotoBottom()
			}
			return m, nil
		case "r":
			m.showRoster = !m.showRoster
			m.updateViewportHeight()
			return m, nil
		case "h", "?":
			m.help = !m.help
			m.updateViewportHeight()
			return m, nil
		}
		if !m.autoscroll {
			switch msg.String() {
			case "j", "down":
				m.vp.LineDown(1)
				m.alertVP.LineDown(1)
			case "k", "up":
				m.vp.LineUp(1)
				m.alertVP.LineUp(1)
			case "pgdown", "ctrl+n":
				m.vp.LineDown(10)
				m.alertVP.LineDown(10)
			case "pgup", "ctrl+p":
				m.vp.LineUp(10)
				m.alertVP.LineUp(10)
			}
			return m, nil
		}
		return m, nil
	case engagementMsg:
		m.logs = append(m.logs, msg.line)
		if len(m.logs) > 1000 {
			m.logs = m.logs[len(m.logs)-1000:]
		}
		m.refreshViewport()
	case alertMsg:
		m.alertLogs = append(m.alertLogs, msg.line)
		if len(m.alertLogs) > 1000 {
			m.alertLogs = m.alertLogs[len(m.alertLogs)-1000:]
		}
		m.updateViewportHeight()
		m.refreshAlerts()
		m.refreshViewport()
	case rosterMsg:
		m.roster[msg.TrooperID] = msg.TrooperStateRow
	}
	return m, nil
}

func (m *tuiModel) updateViewportHeight() {
	maxLines := int(float64(m.height) * maxSectionHeightPct)
	if maxLines < 1 {
		maxLines = 1
	}

	alertLines := len(m.alertLogs)
	if alertLines == 0 {
		alertLines = 1
	}
	if alertLines > maxLines {
		alertLines = maxLines
	}
	m.alertVP.Height = alertLines

	rosterHeight := 0
	if m.showRoster {
		rosterHeight = lipgloss.Height(m.renderRoster())
	}
	h := m.height - m.headerHeight - m.alertVP.Height - rosterHeight - 6
	if h < 0 {
		h = 0
	}
	m.vp.Height = h
	if m.autoscroll {
		m.vp.GotoBottom()
		m.alertVP.GotoBottom()
	}
}

func (m *tuiModel) refreshViewport() {
	var lines []string
	for _, l := range m.logs {
		if m.wrap {
			lines = append(lines, wordwrap.String(l, m.vp.Width))
		} else {
			lines = append(lines, l)
		}
	}
	m.vp.SetContent(strings.Join(lines, "\n"))
	if m.autoscroll {
		m.vp.GotoBottom()
	}
}

func (m *tuiModel) refreshAlerts() {
	content := "none"
	if len(m.alertLogs) > 0 {
		content = strings.Join(m.alertLogs, "\n")
	}
	m.alertVP.SetContent(content)
	if m.autoscroll {
		m.alertVP.GotoBottom()
	}
}

func (m tuiModel) View() string {
	if m.help {
		return m.renderHelp()
	}
	divider := strings.Repeat("─", m.vp.Width)
	sections := []string{
		m.header,
		divider,
		m.vp.View(),
		divider,
		"Squad Alerts:",
		m.alertVP.View(),
	}
	if m.showRoster {
		sections = append(sections, divider, m.renderRoster())
	}
	sections = append(sections, divider, m.renderBottom())
	return strings.Join(sections, "\n")
}

func (m tuiModel) renderRoster() string {
	if len(m.roster) == 0 {
		return "Garrison: none"
	}
	ids := make([]string, 0, len(m.roster))
	for id := range m.roster {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var b strings.Builder
	b.WriteString("Garrison:\n")
	for _, id := range ids {
		r := m.roster[id]
		stateColor := colorGreen
		switch trooper.State(r.State) {
		case trooper.StateCombat:
			stateColor = colorRed
		case trooper.StateInvestigate:
			stateColor = colorYellow
		case trooper.StateRetreat:
			stateColor = colorMagenta
		case trooper.StateDead:
			stateColor = colorGray
		}
		oc := m.outpostColors[r.OutpostID]
		b.WriteString(fmt.Sprintf("%s %s%s%s %s%s%s hp=%d pos=(%.1f, %.1f)\n",
			r.TrooperID, oc, r.OutpostID, colorReset,
			stateColor, r.State, colorReset,
			r.Health, r.Position.X, r.Position.Z))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m tuiModel) renderBottom() string {
	wrapColor := lipgloss.Color("9")
	if m.wrap {
		wrapColor = lipgloss.Color("10")
	}
	scrollColor := lipgloss.Color("10")
	if !m.autoscroll {
		scrollColor = lipgloss.Color("9")
	}
	rosterColor := lipgloss.Color("10")
	if !m.showRoster {
		rosterColor = lipgloss.Color("9")
	}
	wrapIndicator := lipgloss.NewStyle().Foreground(wrapColor).Render("●")
	scrollIndicator := lipgloss.NewStyle().Foreground(scrollColor).Render("●")
	rosterIndicator := lipgloss.NewStyle().Foreground(rosterColor).Render("●")
	alive := 0
	for _, r := range m.roster {
		if trooper.State(r.State) != trooper.StateDead {
			alive++
		}
	}
	return fmt.Sprintf("troopers=%d/%d | Wrap %s | Scroll %s | Roster %s | h for help",
		alive, len(m.roster), wrapIndicator, scrollIndicator, rosterIndicator)
}

func (m tuiModel) renderHelp() string {
	lines := []string{
		"Key Bindings:",
		" q  quit",
		" w  toggle line wrap",
		" s  toggle auto-scroll",
		" r  toggle garrison roster",
		" h/? toggle this help view",
		"",
		"When auto-scroll is disabled:",
		" j/k or up/down    scroll one line",
		" pgdown/pgup       scroll a page",
	}
	return strings.Join(lines, "\n")
}
