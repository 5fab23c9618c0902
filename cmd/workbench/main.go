package main

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/telintel/cdrlink/pkg/cdr"
	"github.com/telintel/cdrlink/pkg/graph"
	"github.com/telintel/cdrlink/pkg/ingest"
	"github.com/telintel/cdrlink/pkg/layout"
	"github.com/telintel/cdrlink/pkg/logging"
	"github.com/telintel/cdrlink/pkg/metrics"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	mapStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF00FF")).
			Padding(0, 1)

	inspectorStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("#FFFF00")).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	sourcesView view = iota
	networkView
	filtersView
	statsView
)

const viewCount = 4

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Escape   key.Binding
	Search   key.Binding
	Restart  key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Kind     key.Binding
	Weak     key.Binding
	ScoreUp  key.Binding
	ScoreDn  key.Binding
	MinUp    key.Binding
	MinDn    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search number"),
	),
	Restart: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "restart layout"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "zoom out"),
	),
	Kind: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "interaction type"),
	),
	Weak: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "toggle weak links"),
	),
	ScoreUp: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "min score up"),
	),
	ScoreDn: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "min score down"),
	),
	MinUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "min interactions up"),
	),
	MinDn: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "min interactions down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Search, k.Restart, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter, k.Escape},
		{k.Search, k.Kind, k.Weak, k.ScoreUp, k.ScoreDn, k.MinUp, k.MinDn},
		{k.Restart, k.ZoomIn, k.ZoomOut, k.Up, k.Down, k.Quit},
	}
}

type model struct {
	full       *graph.Graph
	visible    *graph.Graph
	roster     map[cdr.Identifier]string
	filters    graph.Filters
	thresholds graph.Thresholds
	sim        *layout.Simulation
	statuses   []ingest.SourceStatus
	metrics    *metrics.Registry

	currentView view
	sourceTable table.Model
	nodeTable   table.Model
	search      textinput.Model
	searching   bool
	selected    cdr.Identifier
	zoom        float64

	help       help.Model
	keys       keyMap
	width      int
	height     int
	message    string
	messageErr bool
	startTime  time.Time
}

// Zoom is multiplicative so repeated presses feel even in both
// directions.
const (
	zoomStep = 1.25
	minZoom  = 0.25
	maxZoom  = 4.0
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func initialModel(g *graph.Graph, roster map[cdr.Identifier]string, statuses []ingest.SourceStatus, reg *metrics.Registry) model {
	search := textinput.New()
	search.Placeholder = "0701020304"
	search.CharLimit = 20
	search.Width = 24

	sourceColumns := []table.Column{
		{Title: "Source", Width: 34},
		{Title: "Status", Width: 8},
		{Title: "Layout", Width: 16},
		{Title: "Missing", Width: 26},
	}
	sourceRows := make([]table.Row, 0, len(statuses))
	for _, s := range statuses {
		sourceRows = append(sourceRows, table.Row{
			s.SourceName,
			string(s.Status),
			s.LayoutName,
			strings.Join(s.SheetsMissing, ", "),
		})
	}
	st := table.New(
		table.WithColumns(sourceColumns),
		table.WithRows(sourceRows),
		table.WithHeight(10),
	)

	nodeColumns := []table.Column{
		{Title: " ", Width: 2},
		{Title: "Number", Width: 16},
		{Title: "Role", Width: 10},
		{Title: "Calls", Width: 6},
		{Title: "SMS", Width: 6},
		{Title: "Contacts", Width: 9},
	}
	nt := table.New(
		table.WithColumns(nodeColumns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	st.SetStyles(s)
	nt.SetStyles(s)

	m := model{
		full:        g,
		roster:      roster,
		filters:     graph.DefaultFilters(),
		thresholds:  graph.DefaultThresholds(),
		sim:         layout.NewSimulation(layout.DefaultConfig(800, 600)),
		statuses:    statuses,
		metrics:     reg,
		currentView: sourcesView,
		sourceTable: st,
		nodeTable:   nt,
		search:      search,
		zoom:        1,
		help:        help.New(),
		keys:        keys,
		startTime:   time.Now(),
	}
	m.applyFilters()
	return m
}

// applyFilters recomputes the visible subgraph and hands it to a fresh
// layout run. Selection survives only if the node is still visible.
func (m *model) applyFilters() {
	m.visible = graph.Apply(m.full, m.filters, m.thresholds)
	if m.metrics != nil {
		m.metrics.RecordFilter(len(m.visible.Nodes), len(m.visible.Edges))
	}
	if m.selected != "" {
		if _, ok := m.visible.Node(m.selected); !ok {
			m.selected = ""
		}
	}
	m.refreshNodeTable()

	w, h := float64(m.width), float64(m.height)
	if w == 0 || h == 0 {
		w, h = 800, 600
	}
	m.sim.Start(m.visible, w, h)
	if m.metrics != nil {
		m.metrics.LayoutRunsTotal.Inc()
	}
}

// refreshNodeTable rebuilds the node rows. A selection marks its
// direct neighbors; selection is pure view state and touches nothing
// upstream of the table.
func (m *model) refreshNodeTable() {
	var neighbors map[cdr.Identifier]bool
	if m.selected != "" {
		neighbors = make(map[cdr.Identifier]bool)
		for _, id := range m.visible.Neighbors(m.selected) {
			neighbors[id] = true
		}
	}

	rows := make([]table.Row, 0, len(m.visible.Nodes))
	for _, n := range m.visible.Nodes {
		marker := " "
		switch {
		case n.ID == m.selected:
			marker = "●"
		case neighbors[n.ID]:
			marker = "○"
		}
		rows = append(rows, table.Row{
			marker,
			string(n.ID),
			string(n.Role),
			fmt.Sprintf("%d", n.TotalCalls),
			fmt.Sprintf("%d", n.TotalSMS),
			fmt.Sprintf("%d", n.DistinctContacts()),
		})
	}
	m.nodeTable.SetRows(rows)
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.applyFilters()

	case tickMsg:
		if m.sim.Step() {
			if m.metrics != nil {
				m.metrics.LayoutStepsTotal.Inc()
				m.metrics.LayoutEnergy.Set(m.sim.KineticEnergy())
			}
		}
		return m, tickCmd()

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % viewCount

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = viewCount - 1
			} else {
				m.currentView--
			}

		case key.Matches(msg, m.keys.Search):
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Restart):
			m.sim.Restart()
			if m.metrics != nil {
				m.metrics.LayoutRunsTotal.Inc()
			}
			m.message = "layout restarted"
			m.messageErr = false

		case key.Matches(msg, m.keys.ZoomIn):
			if m.zoom < maxZoom {
				m.zoom *= zoomStep
			}

		case key.Matches(msg, m.keys.ZoomOut):
			if m.zoom > minZoom {
				m.zoom /= zoomStep
			}

		case key.Matches(msg, m.keys.Kind):
			m.filters.InteractionType = nextInteractionType(m.filters.InteractionType)
			m.applyFilters()

		case key.Matches(msg, m.keys.Weak):
			m.filters.ShowWeakLinks = !m.filters.ShowWeakLinks
			m.applyFilters()

		case key.Matches(msg, m.keys.ScoreUp):
			if m.filters.MinStrengthScore < 100 {
				m.filters.MinStrengthScore += 5
				m.applyFilters()
			}

		case key.Matches(msg, m.keys.ScoreDn):
			if m.filters.MinStrengthScore > 0 {
				m.filters.MinStrengthScore -= 5
				m.applyFilters()
			}

		case key.Matches(msg, m.keys.MinUp):
			m.filters.MinInteractions++
			m.applyFilters()

		case key.Matches(msg, m.keys.MinDn):
			if m.filters.MinInteractions > 0 {
				m.filters.MinInteractions--
				m.applyFilters()
			}

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == networkView {
				m.toggleSelection()
			}

		case key.Matches(msg, m.keys.Escape):
			m.selected = ""
			m.refreshNodeTable()
		}
	}

	switch m.currentView {
	case sourcesView:
		m.sourceTable, cmd = m.sourceTable.Update(msg)
		cmds = append(cmds, cmd)
	case networkView:
		m.nodeTable, cmd = m.nodeTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		m.selectByNumber(m.search.Value())
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// selectByNumber finds a visible node whose number contains the query.
func (m *model) selectByNumber(q string) {
	id, ok := cdr.CleanIdentifier(q)
	query := string(id)
	if !ok {
		query = strings.TrimSpace(q)
	}
	if query == "" {
		return
	}

	for _, n := range m.visible.Nodes {
		if strings.Contains(string(n.ID), query) {
			m.selected = n.ID
			m.currentView = networkView
			m.refreshNodeTable()
			m.message = fmt.Sprintf("selected %s", n.ID)
			m.messageErr = false
			return
		}
	}
	m.message = fmt.Sprintf("no visible number matches %q", q)
	m.messageErr = true
}

func (m *model) toggleSelection() {
	row := m.nodeTable.SelectedRow()
	if row == nil || len(row) < 2 {
		return
	}
	id := cdr.Identifier(row[1])
	if m.selected == id {
		m.selected = ""
	} else {
		m.selected = id
	}
	m.refreshNodeTable()
}

func nextInteractionType(t graph.InteractionType) graph.InteractionType {
	switch t {
	case graph.InteractionsAll:
		return graph.InteractionsCalls
	case graph.InteractionsCalls:
		return graph.InteractionsSMS
	default:
		return graph.InteractionsAll
	}
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("📞 CDRLink Workbench"))
	s.WriteString("\n\n")
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	switch m.currentView {
	case sourcesView:
		s.WriteString(m.renderSources())
	case networkView:
		s.WriteString(m.renderNetwork())
	case filtersView:
		s.WriteString(m.renderFilters())
	case statsView:
		s.WriteString(m.renderStats())
	}

	if m.searching {
		s.WriteString("\n\n")
		s.WriteString(contentStyle.Render("Search number: " + m.search.View()))
	}

	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Sources", "Network", "Filters", "Stats"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderSources() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Source Reports"))
	s.WriteString("\n\n")
	s.WriteString(m.sourceTable.View())

	success := 0
	for _, st := range m.statuses {
		if st.Status == ingest.StatusSuccess {
			success++
		}
	}
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%d of %d sources normalized", success, len(m.statuses)))

	return contentStyle.Render(s.String())
}

func (m model) renderNetwork() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Communication Network"))
	s.WriteString("\n\n")
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.nodeTable.View(), "  ", m.renderMap()))
	s.WriteString("\n\n")

	state := string(m.sim.State())
	if m.sim.State() == layout.StateSimulating {
		state = fmt.Sprintf("%s (step %d, energy %.1f)", state, m.sim.Steps(), m.sim.KineticEnergy())
	}
	s.WriteString(dimStyle.Render(fmt.Sprintf("layout: %s   zoom: ×%.2f [z/x]", state, m.zoom)))

	if m.selected != "" {
		s.WriteString("\n\n")
		s.WriteString(m.renderInspector())
	}

	return contentStyle.Render(s.String())
}

// renderMap draws the simulated arrangement as a character grid, live
// while the layout settles. The selection shows as ●, its neighbors as
// ○, everyone else as ·. Nodes pushed off the viewport by the zoom are
// simply not drawn.
func (m model) renderMap() string {
	const cols, rows = 44, 14

	w, h := m.sim.Bounds()
	r := layout.Raster{Cols: cols, Rows: rows, Width: w, Height: h, Zoom: m.zoom}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = make([]rune, cols)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	var neighbors map[cdr.Identifier]bool
	if m.selected != "" {
		neighbors = make(map[cdr.Identifier]bool)
		for _, id := range m.visible.Neighbors(m.selected) {
			neighbors[id] = true
		}
	}

	for id, pos := range m.sim.Positions() {
		col, row, ok := r.Cell(pos)
		if !ok {
			continue
		}
		mark := '·'
		switch {
		case id == m.selected:
			mark = '●'
		case neighbors[id]:
			mark = '○'
		}
		if grid[row][col] == ' ' || mark != '·' {
			grid[row][col] = mark
		}
	}

	lines := make([]string, rows)
	for i, line := range grid {
		lines[i] = string(line)
	}
	return mapStyle.Render(strings.Join(lines, "\n"))
}

func (m model) renderInspector() string {
	node, ok := m.visible.Node(m.selected)
	if !ok {
		return ""
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("Number:    %s\n", node.ID))
	if name, ok := m.roster[node.ID]; ok {
		s.WriteString(fmt.Sprintf("Name:      %s\n", name))
	}
	s.WriteString(fmt.Sprintf("Role:      %s\n", node.Role))
	s.WriteString(fmt.Sprintf("Calls:     %d\n", node.TotalCalls))
	s.WriteString(fmt.Sprintf("SMS:       %d\n", node.TotalSMS))
	s.WriteString(fmt.Sprintf("Talk time: %s\n", time.Duration(node.TotalDurationSeconds)*time.Second))
	if node.DeviceID != "" {
		s.WriteString(fmt.Sprintf("IMEI:      %s\n", node.DeviceID))
	}
	if node.Location != "" {
		s.WriteString(fmt.Sprintf("Location:  %s\n", node.Location))
	}
	if !node.FirstSeen.IsZero() {
		s.WriteString(fmt.Sprintf("Active:    %s → %s\n",
			node.FirstSeen.Format("2006-01-02"),
			node.LastSeen.Format("2006-01-02")))
	}

	links := make([]string, 0)
	for _, e := range m.visible.Edges {
		if !e.Touches(node.ID) {
			continue
		}
		links = append(links, fmt.Sprintf("%s  [%s %d]",
			e.Other(node.ID), e.Strength.Classification, e.Strength.StrengthScore))
	}
	sort.Strings(links)
	if len(links) > 0 {
		s.WriteString("\nLinks:\n")
		for _, l := range links {
			s.WriteString("  " + l + "\n")
		}
	}

	return inspectorStyle.Render(strings.TrimRight(s.String(), "\n"))
}

func (m model) renderFilters() string {
	weak := "shown"
	if !m.filters.ShowWeakLinks {
		weak = "hidden"
	}

	content := fmt.Sprintf(`🔍 Active Filters
━━━━━━━━━━━━━━━━━━━━
Interaction type:  %s
Min interactions:  %d
Min link score:    %d
Weak links:        %s

Visible:  %d of %d individuals
          %d of %d links`,
		m.filters.InteractionType,
		m.filters.MinInteractions,
		m.filters.MinStrengthScore,
		weak,
		len(m.visible.Nodes), len(m.full.Nodes),
		len(m.visible.Edges), len(m.full.Edges),
	)

	controls := `⚡ Controls
━━━━━━━━━━━━━━━━━━━━
[t]    interaction type
[w]    toggle weak links
[+/-]  min link score
[[/]]  min interactions
[/]    search number
[R]    restart layout`

	return contentStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Top,
			statsBoxStyle.Render(content),
			statsBoxStyle.Render(controls)),
	)
}

func (m model) renderStats() string {
	stats := graph.Summarize(m.visible)
	uptime := time.Since(m.startTime).Round(time.Second)

	content := fmt.Sprintf(`📊 Link Statistics
━━━━━━━━━━━━━━━━━━━━
Total links:     %d
Primary:         %d
Secondary:       %d
Weak:            %d
Avg strength:    %.1f

Individuals:     %d
Records seen:    %d
Records skipped: %d
Session:         %s`,
		stats.TotalLinks,
		stats.PrimaryLinks,
		stats.SecondaryLinks,
		stats.WeakLinks,
		stats.AverageStrength,
		len(m.visible.Nodes),
		m.full.Stats.RecordsSeen,
		m.full.Stats.RecordsSkipped,
		uptime,
	)

	return contentStyle.Render(statsBoxStyle.Render(content))
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: workbench <file.xlsx|file.zip> [more files...]")
		os.Exit(1)
	}

	logger := logging.NewDefaultLogger()
	reg := metrics.NewRegistry()

	processor := ingest.NewProcessor(
		ingest.WithLogger(logger),
		ingest.WithMetrics(reg),
	)
	result := processor.ProcessFiles(os.Args[1:])
	set, err := processor.Extract(result)
	if err != nil && !result.Succeeded() {
		for _, s := range result.Statuses {
			fmt.Fprintf(os.Stderr, "  %s: %s %s\n", s.SourceName, s.Status, s.Err)
		}
		log.Fatalf("no usable data in %d source(s)", len(result.Statuses))
	}

	start := time.Now()
	g := graph.Build(set.Records)
	graph.Classify(g, graph.DefaultThresholds())
	reg.RecordBuild(len(g.Nodes), len(g.Edges), time.Since(start))

	roster := ingest.SubscriberNames(result.Data.Subscribers)

	p := tea.NewProgram(initialModel(g, roster, result.Statuses, reg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
