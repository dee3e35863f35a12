package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/exec"
)

// Update handles all incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case execDoneMsg:
		m.executing = false
		m.animTarget = 1
		m.pushResult(msg.res)
		if msg.res.Success() && m.inFlight != nil {
			m.pushHistory(m.inFlight)
		}
		m.inFlight = nil
		m.status = exec.Describe(msg.res)
		m.refreshOutput()
		return m, nil

	case statusMsg:
		m.status = string(msg)
		return m, nil

	case animTickMsg:
		if !m.executing {
			return m, nil
		}
		m.animPos, m.animVel = m.animSpring.Update(m.animPos, m.animVel, m.animTarget)
		// Flip the target near convergence so the indicator keeps pulsing.
		if d := m.animTarget - m.animPos; d < 0.05 && d > -0.05 {
			if m.animTarget == 1 {
				m.animTarget = 0
			} else {
				m.animTarget = 1
			}
		}
		return m, animTick()

	case spinner.TickMsg:
		if !m.executing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	outputHeight := msg.Height / 3
	if outputHeight < 5 {
		outputHeight = 5
	}
	if !m.ready {
		m.output = viewport.New(msg.Width-4, outputHeight)
		m.ready = true
	} else {
		m.output.Width = msg.Width - 4
		m.output.Height = outputHeight
	}

	// The options list shares the main pane with the tab bar, the command
	// preview and the footer.
	visible := msg.Height - outputHeight - 12
	if visible < 3 {
		visible = 3
	}
	m.optionsVisible = visible
	m.clampOptionsScroll()

	m.updateGlamourWidth(msg.Width - 4)
	m.refreshOutput()
	return m, nil
}

// startExecute validates and launches the built command. Validation errors
// surface in the status line but never block the run.
func (m Model) startExecute() (Model, tea.Cmd) {
	if m.executor == nil {
		m.status = "curl executable not found; install curl to run commands"
		return m, nil
	}
	if m.executing {
		m.status = "a command is already running"
		return m, nil
	}

	result := command.Validate(m.cmd)
	if result.HasErrors() {
		m.status = "warning: " + strings.Join(result.Errors, "; ")
	} else if result.HasWarnings() {
		m.status = "note: " + strings.Join(result.Warnings, "; ")
	} else {
		m.status = "running..."
	}

	display := m.builtCommand()
	m.inFlight = m.cmd.Clone()
	m.executing = true
	m.animPos = 0
	m.animVel = 0
	m.animTarget = 1

	return m, tea.Batch(
		executeCmd(m.executor, display),
		m.spinner.Tick,
		animTick(),
	)
}

// executeCmd runs the command off the update loop and reports back with an
// execDoneMsg.
func executeCmd(executor *exec.Executor, display string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		res := executor.Execute(ctx, display)
		return execDoneMsg{res: res}
	}
}

func animTick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// refreshOutput re-renders the latest result into the output viewport using
// the active format.
func (m *Model) refreshOutput() {
	if !m.ready || len(m.results) == 0 {
		return
	}
	res := m.results[len(m.results)-1]

	if res.Err != nil {
		m.output.SetContent(ErrorStyle.Render(res.Err.Error()))
		return
	}

	resp := exec.ParseResponse(res)
	text := exec.FormatResponse(resp, m.outFormat)
	if m.outFormat == exec.FormatFormatted {
		if highlighted, ok := m.highlightBody(resp.Body); ok {
			text = strings.Replace(text, resp.Body, highlighted, 1)
		}
	}
	m.output.SetContent(text)
	m.output.GotoTop()
}

// showDiff renders a unified diff of the last two responses into the output
// viewport.
func (m *Model) showDiff() {
	if len(m.results) < 2 {
		m.status = "need two results to diff"
		return
	}
	prev := m.results[len(m.results)-2]
	curr := m.results[len(m.results)-1]

	prevResp := exec.ParseResponse(prev)
	currResp := exec.ParseResponse(curr)

	diff := exec.Diff(prevResp.Body, currResp.Body)
	if diff == "" {
		m.status = "responses are identical"
		return
	}
	if m.ready {
		m.output.SetContent(diff)
		m.output.GotoTop()
	}
	m.status = "showing diff of last two responses"
}
