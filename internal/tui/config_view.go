package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nathanbeddoewebdev/sapmon/internal/config"
	"nathanbeddoewebdev/sapmon/internal/pipeline"
	"nathanbeddoewebdev/sapmon/internal/tui/components"
	"nathanbeddoewebdev/sapmon/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type configSavedMsg struct{ key string }

type configSaveErrorMsg struct{ err error }

// configViewModel edits the persisted settings. Next to each value it
// shows what the setting resolves to on disk, so a wrong data directory
// is visible before a load is attempted.
type configViewModel struct {
	cfg  *config.Config
	keys []config.KeySpec
	path string

	cursor  int
	editing bool
	editor  textinput.Model

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView starts the interactive settings editor.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, _ := config.Path()

	p := tea.NewProgram(newConfigViewModel(cfg, path), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func newConfigViewModel(cfg *config.Config, path string) configViewModel {
	return configViewModel{cfg: cfg, keys: config.Keys, path: path}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case configSavedMsg:
		m.editing = false
		m.status = msg.key + " saved"
		m.isError = false
		return m, nil

	case configSaveErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m configViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.keys)-1)
	case "enter", "e":
		spec := m.keys[m.cursor]
		ti := textinput.New()
		ti.SetValue(spec.Get(m.cfg))
		ti.Placeholder = spec.Default
		ti.Width = 48
		ti.Focus()
		m.editor = ti
		m.editing = true
		m.status = ""
		return m, textinput.Blink
	case "d", "backspace":
		spec := &m.keys[m.cursor]
		spec.Set(m.cfg, "")
		return m, m.save(spec.Name)
	}
	return m, nil
}

func (m configViewModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		spec := &m.keys[m.cursor]
		if err := spec.Apply(m.cfg, m.editor.Value()); err != nil {
			m.status = "Error: " + err.Error()
			m.isError = true
			return m, nil
		}
		return m, m.save(spec.Name)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m configViewModel) save(key string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return configSaveErrorMsg{err: err}
		}
		return configSavedMsg{key: key}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", m.path)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "navigate"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "unset"},
		{Key: "q", Desc: "quit"},
	}
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "save"},
			{Key: "esc", Desc: "cancel"},
		}
	}
	footer := components.Footer(m.width, bindings)
	statusBar := components.StatusBar(m.width, m.status, m.isError, "")

	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)
	content := lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderSettings())

	parts := []string{header, content}
	if statusBar != "" {
		parts = append(parts, statusBar)
	}
	parts = append(parts, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m configViewModel) renderSettings() string {
	const nameWidth = 12

	var rows []string
	for i, spec := range m.keys {
		selected := i == m.cursor
		prefix := "  "
		nameStyle := styles.MutedText
		if selected {
			prefix = styles.AccentText.Render("> ")
			nameStyle = styles.Label
		}
		name := nameStyle.Width(nameWidth).Render(spec.Name)

		var value string
		switch {
		case selected && m.editing:
			value = m.editor.View()
		case spec.Get(m.cfg) == "":
			value = styles.MutedText.Render("(" + spec.Default + ")")
		default:
			value = styles.Value.Render(spec.Get(m.cfg))
		}
		rows = append(rows, prefix+name+value)

		if selected && !m.editing {
			rows = append(rows, strings.Repeat(" ", 2+nameWidth)+styles.MutedText.Italic(true).Render(spec.Description))
			if check, ok := checkSetting(spec.Name, m.cfg); check != "" {
				style := styles.StatusStyle("loaded")
				if !ok {
					style = styles.WarningText
				}
				rows = append(rows, strings.Repeat(" ", 2+nameWidth)+style.Render(check))
			}
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center,
		styles.Title.Render("Settings"),
		"",
		styles.Card.Width(72).Render(strings.Join(rows, "\n")),
	)
}

// checkSetting describes what a path setting points at. ok is false when
// the next load would not find what the setting promises.
func checkSetting(name string, cfg *config.Config) (check string, ok bool) {
	switch name {
	case "data-dir":
		m := pipeline.DefaultManifest(cfg.DataDir)
		found := 0
		for _, f := range pipeline.DefaultFiles {
			if _, err := os.Stat(filepath.Join(m.DataDir, f)); err == nil {
				found++
			}
		}
		return fmt.Sprintf("%d of %d default export files present", found, len(pipeline.DefaultFiles)), found > 0
	case "manifest":
		if cfg.Manifest == "" {
			return "", true
		}
		if _, err := pipeline.LoadManifest(cfg.Manifest, cfg.DataDir); err != nil {
			return err.Error(), false
		}
		return "manifest is readable", true
	default:
		return "", true
	}
}
