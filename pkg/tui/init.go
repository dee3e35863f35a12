package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/blackcoderx/kurl/pkg/command"
)

// newSpinner creates the dots spinner used while a command runs.
func newSpinner() spinner.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{
			".       ",
			"..      ",
			"...     ",
			"....    ",
			".....   ",
			"......  ",
			"....... ",
			"........",
		},
		FPS: time.Second / 5,
	}
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor)
	return sp
}

// newEditInput creates the single-line edit buffer.
func newEditInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(TextColor)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(AccentColor)
	return ti
}

// newBodyEditor creates the multi-line body editor.
func newBodyEditor() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Request body..."
	ta.CharLimit = 0
	ta.SetWidth(60)
	ta.SetHeight(8)
	return ta
}

// newGlamourRenderer creates a glamour renderer for the help screen.
func newGlamourRenderer() *glamour.TermRenderer {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	return renderer
}

// updateGlamourWidth recreates the glamour renderer on terminal resize.
func (m *Model) updateGlamourWidth(width int) {
	if width < 40 {
		width = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		m.renderer = renderer
	}
}

// InitialModel creates the initial TUI model. Templates and environments are
// loaded from the store; load failures degrade to empty lists so the editor
// still comes up.
func InitialModel(opts Options) Model {
	templates, err := opts.Store.LoadTemplates()
	if err != nil {
		templates = nil
	}
	envs, err := opts.Store.LoadEnvironments()
	if err != nil || len(envs) == 0 {
		envs = []command.Environment{*command.NewEnvironment("Default")}
	}

	return Model{
		store:          opts.Store,
		cfg:            opts.Config,
		executor:       opts.Executor,
		version:        opts.Version,
		cmd:            command.New(""),
		templates:      templates,
		envs:           envs,
		mode:           ModeNormal,
		focus:          Focus{Tab: TabURL, Kind: FieldURL},
		templateSel:    -1,
		input:          newEditInput(),
		body:           newBodyEditor(),
		spinner:        newSpinner(),
		renderer:       newGlamourRenderer(),
		optionsVisible: 10,
		status:         "ready",
		animSpring:     harmonica.NewSpring(harmonica.FPS(30), 4.0, 0.3),
		animTarget:     1,
	}
}

// Init initializes the Bubble Tea model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		textinput.Blink,
	)
}
