package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"

	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/exec"
	"github.com/blackcoderx/kurl/pkg/storage"
)

// Mode is the top-level interaction state. Exactly one is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
	ModeMethodDropdown
	ModeTemplateName
	ModeEnvironment
	ModeHelp
	ModeExiting
)

// EditKind identifies which model field the edit buffer writes back to.
type EditKind int

const (
	EditURL EditKind = iota
	EditHeaderKey
	EditHeaderValue
	EditQueryKey
	EditQueryValue
	EditBody
	EditOptionValue
)

// EditField is the target of the current edit: what is being edited and, for
// list entries, at which index. The index is validated again on commit.
type EditField struct {
	Kind  EditKind
	Index int
}

// Options carries the collaborators the TUI needs.
type Options struct {
	Store    *storage.Store
	Config   storage.Config
	Executor *exec.Executor
	Version  string
}

// Model is the Bubble Tea model for the kurl TUI. It owns the command under
// construction, the template and environment lists, the selection cursor and
// edit buffers, and the last execution results.
type Model struct {
	store    *storage.Store
	cfg      storage.Config
	executor *exec.Executor
	version  string

	cmd       *command.CurlCommand
	templates []command.Template
	envs      []command.Environment
	envIdx    int

	mode        Mode
	focus       Focus
	templateSel int // -1 when template selection is inactive
	editField   EditField
	dropdownIdx int

	input textinput.Model // single-line edit buffer
	body  textarea.Model  // multi-line body editor

	// Derived options view, rebuilt when optionsRev moves.
	optionsRev     int
	optionCache    []optionRow
	optionCacheRev int
	optionsScroll  int
	optionsVisible int

	output    viewport.Model
	results   []exec.Result // newest last, bounded by cfg.HistoryLimit
	outFormat exec.Format
	executing bool
	status    string

	// Snapshots of commands that exited 0, newest last. inFlight holds the
	// snapshot of the command currently running until its result arrives.
	history  []*command.CurlCommand
	inFlight *command.CurlCommand

	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	// Pulsing indicator while a command runs.
	animSpring harmonica.Spring
	animPos    float64
	animVel    float64
	animTarget float64
}

// execDoneMsg carries a finished execution back into the update loop.
type execDoneMsg struct {
	res exec.Result
}

// animTickMsg drives the harmonica spring animation.
type animTickMsg time.Time

// statusMsg replaces the status line text.
type statusMsg string

// programRef holds the program reference for sending messages from
// goroutines, guarded by a mutex.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// Set updates the program reference (thread-safe).
func (p *programRef) Set(prog *tea.Program) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.program = prog
}

// Send sends a message to the program if it exists (thread-safe).
func (p *programRef) Send(msg tea.Msg) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.program != nil {
		p.program.Send(msg)
	}
}

var globalProgram = &programRef{}

// currentEnv returns the active environment, or nil when none is loaded.
func (m *Model) currentEnv() *command.Environment {
	if m.envIdx < 0 || m.envIdx >= len(m.envs) {
		return nil
	}
	return &m.envs[m.envIdx]
}

// builtCommand renders the current command through the builder.
func (m *Model) builtCommand() string {
	return command.Build(m.cmd, m.currentEnv())
}

func (m *Model) historyLimit() int {
	if m.cfg.HistoryLimit > 0 {
		return m.cfg.HistoryLimit
	}
	return 50
}

// pushResult appends a finished run's output, trimming to the configured
// limit. Every result is kept so failures stay displayable and the diff view
// has both sides.
func (m *Model) pushResult(res exec.Result) {
	m.results = append(m.results, res)
	if limit := m.historyLimit(); len(m.results) > limit {
		m.results = m.results[len(m.results)-limit:]
	}
}

// pushHistory records a command snapshot. Only runs that exited 0 get here.
func (m *Model) pushHistory(snapshot *command.CurlCommand) {
	m.history = append(m.history, snapshot)
	if limit := m.historyLimit(); len(m.history) > limit {
		m.history = m.history[len(m.history)-limit:]
	}
}
