package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/analysis"
	"nathanbeddoewebdev/sapmon/internal/filter"
	"nathanbeddoewebdev/sapmon/internal/pipeline"
	"nathanbeddoewebdev/sapmon/internal/tui/components"
	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard is everything the section browser shows for one load.
type Dashboard struct {
	// Context is shown on the right of the header, usually the data
	// directory.
	Context   string
	KPIs      []analysis.KPI
	Sections  []analysis.Section
	Statuses  []pipeline.Status
	Selection filter.Selection
}

// DashboardAction is what the user asked for when leaving the browser.
type DashboardAction string

const (
	DashboardQuit   DashboardAction = "quit"
	DashboardFilter DashboardAction = "filter"
	DashboardReload DashboardAction = "reload"
)

// DashboardResult holds the outcome of the dashboard TUI. Tab is the tab
// that was open, so the caller can reopen the browser where it left off.
type DashboardResult struct {
	Action DashboardAction
	Tab    int
}

type dashboardModel struct {
	data Dashboard

	tab      int
	viewport viewport.Model

	width  int
	height int

	action DashboardAction
}

// dashboardViewportKeyMap keeps h/l and the arrows free for tab switching.
func dashboardViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", " "),
			key.WithHelp("pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left:  key.NewBinding(key.WithDisabled()),
		Right: key.NewBinding(key.WithDisabled()),
	}
}

func newDashboardModel(d Dashboard, tab int) dashboardModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = dashboardViewportKeyMap()
	m := dashboardModel{data: d, viewport: vp, action: DashboardQuit}
	if tab >= 0 && tab < m.tabCount() {
		m.tab = tab
	}
	return m
}

// RunDashboard starts the full-window section browser. The first tab is
// the overview; each following tab is one section.
func RunDashboard(d Dashboard, tab int) (*DashboardResult, error) {
	m := newDashboardModel(d, tab)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run dashboard: %w", err)
	}
	final := result.(dashboardModel)
	return &DashboardResult{Action: final.action, Tab: final.tab}, nil
}

func (m dashboardModel) Init() tea.Cmd {
	return nil
}

func (m dashboardModel) tabCount() int {
	return len(m.data.Sections) + 1
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.syncViewport()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.action = DashboardQuit
		return m, tea.Quit
	case "f":
		m.action = DashboardFilter
		return m, tea.Quit
	case "r":
		m.action = DashboardReload
		return m, tea.Quit
	case "tab", "right", "l":
		m.setTab((m.tab + 1) % m.tabCount())
		return m, nil
	case "shift+tab", "left", "h":
		m.setTab((m.tab - 1 + m.tabCount()) % m.tabCount())
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if n := int(msg.String()[0] - '1'); n < m.tabCount() {
			m.setTab(n)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *dashboardModel) setTab(tab int) {
	m.tab = tab
	m.syncViewport()
	m.viewport.GotoTop()
}

// syncViewport sizes the viewport to the space left by the chrome and
// loads the current tab into it.
func (m *dashboardModel) syncViewport() {
	if m.width == 0 || m.height == 0 {
		return
	}
	header, tabs, statusBar, footer := m.chrome()
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-lipgloss.Height(header)-lipgloss.Height(tabs)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)
	m.viewport.SetContent(m.renderTab())
}

func (m dashboardModel) chrome() (header, tabs, statusBar, footer string) {
	header = components.Header(m.width, "dashboard", m.data.Context)
	tabs = m.renderTabs()
	statusBar = components.StatusBar(m.width, selectionSummary(m.data.Selection), false, loadSummary(m.data.Statuses))
	footer = components.Footer(m.width, []components.KeyBinding{
		{Key: "tab/←→", Desc: "section"},
		{Key: "j/k", Desc: "scroll"},
		{Key: "f", Desc: "filter"},
		{Key: "r", Desc: "reload"},
		{Key: "q", Desc: "quit"},
	})
	return header, tabs, statusBar, footer
}

// --- View ---

func (m dashboardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header, tabs, statusBar, footer := m.chrome()

	parts := []string{header, tabs, m.viewport.View()}
	if statusBar != "" {
		parts = append(parts, statusBar)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m dashboardModel) renderTabs() string {
	names := make([]string, 0, m.tabCount())
	names = append(names, "Overview")
	for _, s := range m.data.Sections {
		names = append(names, s.Source.Title())
	}
	rendered := make([]string, len(names))
	for i, n := range names {
		label := fmt.Sprintf("%d %s", i+1, n)
		if i == m.tab {
			rendered[i] = styles.TabActive.Render(label)
		} else {
			rendered[i] = styles.TabInactive.Render(label)
		}
	}
	return lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (m dashboardModel) renderTab() string {
	pad := lipgloss.NewStyle().Padding(1, 2)
	inner := max(m.width-4, 20)
	if m.tab == 0 {
		return pad.Render(m.renderOverview(inner))
	}
	s := m.data.Sections[m.tab-1]
	blocks := []string{styles.Title.Render(s.Title)}
	for _, c := range s.Charts {
		blocks = append(blocks, "", components.Chart(c, inner))
	}
	return pad.Render(lipgloss.JoinVertical(lipgloss.Left, blocks...))
}

func (m dashboardModel) renderOverview(width int) string {
	blocks := []string{
		styles.Title.Render("Key indicators"),
		components.KPICards(m.data.KPIs, width),
		"",
		styles.Title.Render("Sources"),
		renderStatuses(m.data.Statuses),
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func renderStatuses(statuses []pipeline.Status) string {
	if len(statuses) == 0 {
		return styles.MutedText.Render("No sources loaded.")
	}
	header := styles.TableHeader.Width(20).Render("SOURCE") +
		styles.TableHeader.Width(16).Render("STATUS") +
		styles.TableHeader.Width(10).Render("ROWS") +
		styles.TableHeader.Width(10).Render("DROPPED") +
		styles.TableHeader.Render("DETAIL")
	lines := []string{header}
	for _, st := range statuses {
		detail := st.Detail
		if len(st.Report.MissingMandatory) > 0 {
			detail = "missing: " + strings.Join(st.Report.MissingMandatory, ", ")
		}
		lines = append(lines,
			styles.TableCell.Width(20).Render(st.Source.Title())+
				lipgloss.NewStyle().Width(16).Padding(0, 1).Render(styles.StatusIndicator(st.Outcome()))+
				styles.TableCell.Width(10).Render(fmt.Sprintf("%d", st.Report.RowsOut))+
				styles.TableCell.Width(10).Render(fmt.Sprintf("%d", st.Report.Dropped()))+
				styles.MutedText.Padding(0, 1).Render(detail),
		)
	}
	return strings.Join(lines, "\n")
}

// selectionSummary renders the active filters, e.g.
// "filters: account=ALICE,BOB  task type=DIALOG".
func selectionSummary(sel filter.Selection) string {
	if sel.IsEmpty() {
		return ""
	}
	var parts []string
	for _, d := range filter.Dimensions() {
		if vals := sel[d]; len(vals) > 0 {
			parts = append(parts, strings.ToLower(d.Label())+"="+strings.Join(vals, ","))
		}
	}
	return "filters: " + strings.Join(parts, "  ")
}

// loadSummary reports how many sources were available, highlighted when
// some were not.
func loadSummary(statuses []pipeline.Status) string {
	if len(statuses) == 0 {
		return ""
	}
	n := 0
	for _, st := range statuses {
		if st.Available {
			n++
		}
	}
	text := fmt.Sprintf("%d/%d sources loaded", n, len(statuses))
	if n < len(statuses) {
		return styles.WarningText.Render(text)
	}
	return styles.MutedText.Render(text)
}
