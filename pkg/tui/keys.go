package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/exec"
)

// handleKeyMsg dispatches keyboard input by mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.mode = ModeExiting
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeEditing:
		return m.handleEditingKey(msg)
	case ModeMethodDropdown:
		return m.handleDropdownKey(msg)
	case ModeTemplateName:
		return m.handleTemplateNameKey(msg)
	case ModeEnvironment:
		return m.handleEnvironmentKey(msg)
	case ModeHelp:
		return m.handleHelpKey(msg)
	}
	return m, nil
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeExiting
		return m, tea.Quit

	case "tab":
		m.nextTab(false)
	case "shift+tab":
		m.nextTab(true)

	case "up":
		m.moveUp()
	case "down":
		m.moveDown()
	case "left":
		m.moveLeft()
	case "right":
		m.moveRight()

	case "enter":
		if m.templateSel >= 0 {
			m.loadSelectedTemplate()
			return m, nil
		}
		m.enterEdit()

	case " ", "space":
		if m.focus.Kind == FieldBodyType {
			m.cycleBodyKind()
		} else {
			m.toggleSelected()
		}

	case "delete", "backspace":
		if m.templateSel >= 0 {
			m.deleteSelectedTemplate()
			return m, nil
		}
		m.removeSelected()

	case "a":
		m.addEntry()

	case "ctrl+t":
		m.mode = ModeTemplateName
		m.input.SetValue(m.cmd.Name)
		m.input.CursorEnd()
		m.input.Focus()

	case "ctrl+e":
		m.mode = ModeEnvironment
		m.input.SetValue("")
		m.input.Focus()

	case "f1", "?":
		m.mode = ModeHelp

	case "f5", "ctrl+r":
		return m.startExecute()

	case "ctrl+y":
		// Clipboard access can block on some platforms; report back through
		// the program reference instead of stalling the update loop.
		built := m.builtCommand()
		go func() {
			if err := clipboard.WriteAll(built); err != nil {
				globalProgram.Send(statusMsg("clipboard copy failed: " + err.Error()))
				return
			}
			globalProgram.Send(statusMsg("command copied"))
		}()

	case "ctrl+p":
		m.restoreLastRun()

	case "ctrl+d":
		m.showDiff()

	case "ctrl+f":
		if m.outFormat == exec.FormatRaw {
			m.outFormat = exec.FormatFormatted
		} else {
			m.outFormat = exec.FormatRaw
		}
		m.refreshOutput()

	case "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
	return m, nil
}

// enterEdit begins editing the focused field. Method opens the dropdown,
// body content opens the textarea, unattached option rows attach instead of
// editing.
func (m *Model) enterEdit() {
	switch m.focus.Kind {
	case FieldURL:
		m.beginInputEdit(EditField{Kind: EditURL}, m.cmd.URL)

	case FieldMethod:
		m.mode = ModeMethodDropdown
		m.dropdownIdx = 0
		for i, method := range command.SelectableMethods {
			if method == m.cmd.Method {
				m.dropdownIdx = i
				break
			}
		}

	case FieldHeader:
		if m.focus.Index < len(m.cmd.Headers) {
			m.beginInputEdit(EditField{Kind: EditHeaderValue, Index: m.focus.Index}, m.cmd.Headers[m.focus.Index].Value)
		}

	case FieldQueryParam:
		if m.focus.Index < len(m.cmd.QueryParams) {
			m.beginInputEdit(EditField{Kind: EditQueryValue, Index: m.focus.Index}, m.cmd.QueryParams[m.focus.Index].Value)
		}

	case FieldBodyType:
		// Type is cycled with space, never free-edited.

	case FieldBodyContent:
		raw := ""
		if m.cmd.Body != nil && m.cmd.Body.Kind == command.BodyRaw {
			raw = m.cmd.Body.Raw
		}
		m.mode = ModeEditing
		m.editField = EditField{Kind: EditBody}
		m.body.SetValue(raw)
		m.body.Focus()

	case FieldOption:
		rows := m.optionRows()
		if m.focus.Index >= len(rows) {
			return
		}
		row := rows[m.focus.Index]
		if row.Attached {
			if row.TakesValue && row.Value != nil {
				m.beginInputEdit(EditField{Kind: EditOptionValue, Index: row.AttachedIdx}, *row.Value)
			}
			return
		}
		// Unattached catalog row: attach it and move the cursor onto the
		// freshly attached entry.
		if m.cmd.HasOption(row.Flag) {
			return
		}
		if opt, ok := command.Options().NewOption(row.Flag); ok {
			m.cmd.Options = append(m.cmd.Options, opt)
			m.touchOptions()
			m.focus.Index = len(m.cmd.Options) - 1
			m.clampOptionsScroll()
		}
	}
}

func (m *Model) beginInputEdit(target EditField, value string) {
	m.mode = ModeEditing
	m.editField = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Focus()
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.editField.Kind == EditBody {
		switch msg.String() {
		case "ctrl+s":
			m.commitEdit(m.body.Value())
			m.body.Blur()
			return m, nil
		case "esc":
			m.mode = ModeNormal
			m.body.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.body, cmd = m.body.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		m.commitEdit(m.input.Value())
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// commitEdit writes the edit buffer back into the model and returns to
// Normal. Indices are re-validated; a stale index discards the edit.
func (m *Model) commitEdit(value string) {
	switch m.editField.Kind {
	case EditURL:
		m.cmd.URL = value

	case EditHeaderKey:
		if i := m.editField.Index; i < len(m.cmd.Headers) {
			m.cmd.Headers[i].Key = value
			// A fresh header chains straight into editing its value.
			m.beginInputEdit(EditField{Kind: EditHeaderValue, Index: i}, m.cmd.Headers[i].Value)
			return
		}

	case EditHeaderValue:
		if i := m.editField.Index; i < len(m.cmd.Headers) {
			m.cmd.Headers[i].Value = value
		}

	case EditQueryKey:
		if i := m.editField.Index; i < len(m.cmd.QueryParams) {
			m.cmd.QueryParams[i].Key = value
			m.beginInputEdit(EditField{Kind: EditQueryValue, Index: i}, m.cmd.QueryParams[i].Value)
			return
		}

	case EditQueryValue:
		if i := m.editField.Index; i < len(m.cmd.QueryParams) {
			m.cmd.QueryParams[i].Value = value
		}

	case EditBody:
		if strings.TrimSpace(value) == "" {
			m.cmd.SetBody(nil)
		} else {
			m.cmd.SetBody(command.RawBody(value))
		}

	case EditOptionValue:
		if i := m.editField.Index; i < len(m.cmd.Options) {
			v := value
			m.cmd.Options[i].Value = &v
			m.touchOptions()
		}
	}
	m.mode = ModeNormal
}

func (m Model) handleDropdownKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(command.SelectableMethods)
	switch msg.String() {
	case "up":
		// The dropdown is the one place navigation wraps.
		m.dropdownIdx = (m.dropdownIdx + n - 1) % n
	case "down":
		m.dropdownIdx = (m.dropdownIdx + 1) % n
	case "enter":
		m.cmd.SetMethod(command.SelectableMethods[m.dropdownIdx])
		m.mode = ModeNormal
	case "esc":
		m.mode = ModeNormal
	}
	return m, nil
}

func (m Model) handleTemplateNameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name != "" {
			m.saveTemplate(name)
		}
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	case "esc":
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleEnvironmentKey drives the environment editor: left/right switch the
// active environment, typing KEY=VALUE and enter sets a variable, delete
// before typing removes the last variable.
func (m Model) handleEnvironmentKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.persistEnvironments()
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case "left":
		if m.input.Value() == "" && m.envIdx > 0 {
			m.envIdx--
			return m, nil
		}

	case "right":
		if m.input.Value() == "" && m.envIdx < len(m.envs)-1 {
			m.envIdx++
			return m, nil
		}

	case "delete":
		if env := m.currentEnv(); env != nil && m.input.Value() == "" {
			env.RemoveVariableAt(len(env.Variables) - 1)
			return m, nil
		}

	case "enter":
		entry := strings.TrimSpace(m.input.Value())
		if entry == "" {
			return m, nil
		}
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			m.status = "expected KEY=VALUE"
			return m, nil
		}
		if env := m.currentEnv(); env != nil {
			secret := strings.HasPrefix(value, "!")
			env.SetVariable(key, strings.TrimPrefix(value, "!"), secret)
		}
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHelpKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "f1", "?":
		m.mode = ModeNormal
	}
	return m, nil
}

// addEntry appends a new list entry for the focused family and starts
// editing its key.
func (m *Model) addEntry() {
	switch m.focus.Tab {
	case TabHeaders:
		m.cmd.AddHeader("", "")
		m.focus = Focus{Tab: TabHeaders, Kind: FieldHeader, Index: len(m.cmd.Headers) - 1}
		m.beginInputEdit(EditField{Kind: EditHeaderKey, Index: m.focus.Index}, "")
	case TabURL:
		m.cmd.AddQueryParam("", "")
		m.focus = Focus{Tab: TabURL, Kind: FieldQueryParam, Index: len(m.cmd.QueryParams) - 1}
		m.beginInputEdit(EditField{Kind: EditQueryKey, Index: m.focus.Index}, "")
	}
}

// cycleBodyKind steps the body through none, raw, form and binary.
func (m *Model) cycleBodyKind() {
	switch {
	case m.cmd.Body == nil:
		m.cmd.SetBody(command.RawBody(""))
	case m.cmd.Body.Kind == command.BodyRaw:
		m.cmd.SetBody(command.FormBody(nil))
	case m.cmd.Body.Kind == command.BodyForm:
		m.cmd.SetBody(command.BinaryBody(""))
	default:
		m.cmd.SetBody(nil)
	}
}

func (m *Model) loadSelectedTemplate() {
	if m.templateSel < 0 || m.templateSel >= len(m.templates) {
		return
	}
	tpl := m.templates[m.templateSel]
	m.cmd = tpl.Load()
	m.touchOptions()
	m.templateSel = -1
	m.focus = Focus{Tab: TabURL, Kind: FieldURL}
	m.status = fmt.Sprintf("loaded template %q", tpl.Name)
}

func (m *Model) deleteSelectedTemplate() {
	i := m.templateSel
	if i < 0 || i >= len(m.templates) {
		return
	}
	m.templates = append(m.templates[:i], m.templates[i+1:]...)
	if m.templateSel >= len(m.templates) {
		m.templateSel = len(m.templates) - 1
	}
	if err := m.store.SaveTemplates(m.templates); err != nil {
		m.status = "failed to save templates: " + err.Error()
	}
}

func (m *Model) saveTemplate(name string) {
	m.cmd.Name = name
	m.templates = append(m.templates, command.NewTemplate(name, m.cmd))
	if err := m.store.SaveTemplates(m.templates); err != nil {
		m.status = "failed to save templates: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("saved template %q", name)
}

// restoreLastRun replaces the working command with the most recent snapshot
// that exited 0.
func (m *Model) restoreLastRun() {
	if len(m.history) == 0 {
		m.status = "no successful runs yet"
		return
	}
	m.cmd = m.history[len(m.history)-1].Clone()
	m.touchOptions()
	m.focus = Focus{Tab: TabURL, Kind: FieldURL}
	m.status = "restored last successful command"
}

func (m *Model) persistEnvironments() {
	if err := m.store.SaveEnvironments(m.envs); err != nil {
		m.status = "failed to save environments: " + err.Error()
		return
	}
	m.status = "environments saved"
}
