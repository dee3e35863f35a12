package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/blackcoderx/kurl/pkg/command"
)

// View renders the entire TUI to a string.
// This is called by Bubble Tea on every update.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTemplates(),
		m.renderActiveTab(),
	)
	b.WriteString(main)
	b.WriteString("\n")

	b.WriteString(m.renderPreview())
	b.WriteString("\n")

	b.WriteString(PanelStyle.Render(m.output.View()))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderTabBar() string {
	var parts []string
	for _, t := range tabOrder {
		if t == m.focus.Tab && m.templateSel < 0 {
			parts = append(parts, ActiveTabStyle.Render(t.String()))
		} else {
			parts = append(parts, InactiveTabStyle.Render(t.String()))
		}
	}
	return strings.Join(parts, "")
}

// renderTemplates draws the template sidebar. It highlights the selection only
// when template selection is active.
func (m Model) renderTemplates() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Templates"))
	b.WriteString("\n")

	if len(m.templates) == 0 {
		b.WriteString(HelpStyle.Render("(none saved)"))
	}
	for i, tpl := range m.templates {
		prefix := BlankPrefix
		style := ValueStyle
		if m.templateSel == i {
			prefix = CursorPrefix
			style = SelectedStyle
		}
		b.WriteString(prefix + style.Render(runewidth.Truncate(tpl.Name, 18, "...")))
		b.WriteString("\n")
	}

	panel := PanelStyle
	if m.templateSel >= 0 {
		panel = FocusedPanelStyle
	}
	return panel.Width(22).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderActiveTab() string {
	var content string
	switch m.focus.Tab {
	case TabURL:
		content = m.renderURLTab()
	case TabHeaders:
		content = m.renderHeadersTab()
	case TabBody:
		content = m.renderBodyTab()
	case TabOptions:
		content = m.renderOptionsTab()
	}

	panel := PanelStyle
	if m.templateSel < 0 {
		panel = FocusedPanelStyle
	}
	width := m.width - 30
	if width < 40 {
		width = 40
	}
	return panel.Width(width).Render(content)
}

func (m Model) renderURLTab() string {
	var b strings.Builder

	b.WriteString(m.renderField(FieldURL, "URL", m.cmd.URL, m.editField.Kind == EditURL))
	b.WriteString("\n")

	if m.mode == ModeMethodDropdown {
		b.WriteString(m.renderMethodDropdown())
	} else {
		b.WriteString(m.renderField(FieldMethod, "Method", string(m.cmd.Method), false))
	}
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("Query Params") + HelpStyle.Render("  (a to add)"))
	b.WriteString("\n")
	for i, qp := range m.cmd.QueryParams {
		selected := m.templateSel < 0 && m.focus.Kind == FieldQueryParam && m.focus.Index == i
		line := m.renderListEntry(qp.Key, qp.Value, qp.Enabled, selected)
		if selected && m.mode == ModeEditing &&
			(m.editField.Kind == EditQueryKey || m.editField.Kind == EditQueryValue) &&
			m.editField.Index == i {
			line = CursorPrefix + m.input.View()
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderHeadersTab() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Headers") + HelpStyle.Render("  (a to add, space to toggle, del to remove)"))
	b.WriteString("\n")

	if len(m.cmd.Headers) == 0 {
		b.WriteString(HelpStyle.Render("(no headers)"))
	}
	for i, h := range m.cmd.Headers {
		selected := m.templateSel < 0 && m.focus.Kind == FieldHeader && m.focus.Index == i
		line := m.renderListEntry(h.Key, h.Value, h.Enabled, selected)
		if selected && m.mode == ModeEditing &&
			(m.editField.Kind == EditHeaderKey || m.editField.Kind == EditHeaderValue) &&
			m.editField.Index == i {
			line = CursorPrefix + m.input.View()
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderBodyTab() string {
	var b strings.Builder

	kind := "none"
	if m.cmd.Body != nil {
		kind = string(m.cmd.Body.Kind)
	}
	b.WriteString(m.renderField(FieldBodyType, "Type", kind, false))
	b.WriteString(HelpStyle.Render("  (space cycles)"))
	b.WriteString("\n")

	if m.mode == ModeEditing && m.editField.Kind == EditBody {
		b.WriteString(m.body.View())
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("ctrl+s save  esc cancel"))
		return b.String()
	}

	switch {
	case m.cmd.Body == nil || m.cmd.Body.Kind == command.BodyNone:
		b.WriteString(HelpStyle.Render("(no body)"))
	case m.cmd.Body.Kind == command.BodyRaw:
		b.WriteString(ValueStyle.Render(m.cmd.Body.Raw))
	case m.cmd.Body.Kind == command.BodyForm:
		for _, item := range m.cmd.Body.Form {
			b.WriteString(m.renderListEntry(item.Key, item.Value, item.Enabled, false))
			b.WriteString("\n")
		}
		if len(m.cmd.Body.Form) == 0 {
			b.WriteString(HelpStyle.Render("(no form fields)"))
		}
	case m.cmd.Body.Kind == command.BodyBinary:
		b.WriteString(LabelStyle.Render("File: ") + ValueStyle.Render(m.cmd.Body.Path))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderOptionsTab draws the combined options list: attached options first,
// then the unattached command-line catalog, windowed by the scroll offset.
func (m Model) renderOptionsTab() string {
	rows := m.optionRows()
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Options") + HelpStyle.Render("  (space to toggle, enter to attach or edit value)"))
	b.WriteString("\n")

	visible := m.optionsVisible
	if visible < 1 {
		visible = 1
	}
	end := m.optionsScroll + visible
	if end > len(rows) {
		end = len(rows)
	}

	for i := m.optionsScroll; i < end; i++ {
		row := rows[i]
		selected := m.templateSel < 0 && m.focus.Kind == FieldOption && m.focus.Index == i

		mark := "   "
		if row.Attached {
			if row.Enabled {
				mark = EnabledMarkStyle.Render("[x]")
			} else {
				mark = LabelStyle.Render("[ ]")
			}
		}

		flag := runewidth.FillRight(row.Flag, 18)
		value := ""
		if row.Attached && row.Value != nil && *row.Value != "" {
			value = " = " + *row.Value
		}

		line := fmt.Sprintf("%s %s%s%s", mark, flag, row.Description, value)
		if selected && m.mode == ModeEditing && m.editField.Kind == EditOptionValue {
			line = fmt.Sprintf("%s %s= %s", mark, flag, m.input.View())
		}

		prefix := BlankPrefix
		style := ValueStyle
		if selected {
			prefix = CursorPrefix
			style = SelectedStyle
		}
		if row.Attached && !row.Enabled {
			style = DisabledStyle
		}
		b.WriteString(prefix + style.Render(line))
		b.WriteString("\n")
	}

	if end < len(rows) {
		b.WriteString(HelpStyle.Render(fmt.Sprintf("... %d more", len(rows)-end)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderMethodDropdown() string {
	var b strings.Builder
	for i, method := range command.SelectableMethods {
		if i == m.dropdownIdx {
			b.WriteString(CursorPrefix + SelectedStyle.Render(string(method)))
		} else {
			b.WriteString(BlankPrefix + ValueStyle.Render(string(method)))
		}
		b.WriteString("\n")
	}
	return DropdownStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderField draws a labelled scalar field, swapping in the edit buffer when
// that field is being edited.
func (m Model) renderField(kind FieldKind, label, value string, editing bool) string {
	selected := m.templateSel < 0 && m.focus.Kind == kind
	prefix := BlankPrefix
	if selected {
		prefix = CursorPrefix
	}
	if selected && m.mode == ModeEditing && editing {
		return prefix + LabelStyle.Render(label+": ") + m.input.View()
	}
	style := ValueStyle
	if selected {
		style = SelectedStyle
	}
	if value == "" {
		value = HelpStyle.Render("(empty)")
		return prefix + LabelStyle.Render(label+": ") + value
	}
	return prefix + LabelStyle.Render(label+": ") + style.Render(value)
}

func (m Model) renderListEntry(key, value string, enabled, selected bool) string {
	mark := LabelStyle.Render("[ ]")
	if enabled {
		mark = EnabledMarkStyle.Render("[x]")
	}
	prefix := BlankPrefix
	style := ValueStyle
	if selected {
		prefix = CursorPrefix
		style = SelectedStyle
	}
	if !enabled {
		style = DisabledStyle
	}
	return prefix + mark + " " + style.Render(key+": "+value)
}

// renderPreview shows the fully built command string, already wrapped by the
// builder.
func (m Model) renderPreview() string {
	preview := PreviewStyle.Render(m.builtCommand())
	if m.mode == ModeTemplateName {
		preview = LabelStyle.Render("Template name: ") + m.input.View()
	}
	if m.mode == ModeEnvironment {
		preview = m.renderEnvironmentEditor()
	}
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	return PanelStyle.Width(width).Render(preview)
}

func (m Model) renderEnvironmentEditor() string {
	var b strings.Builder
	env := m.currentEnv()
	name := "(none)"
	if env != nil {
		name = env.Name
	}
	b.WriteString(LabelStyle.Render("Environment: ") + SelectedStyle.Render(name))
	b.WriteString(HelpStyle.Render(fmt.Sprintf("  (%d/%d, left/right to switch)", m.envIdx+1, len(m.envs))))
	b.WriteString("\n")

	if env != nil {
		for _, v := range env.Variables {
			value := v.Value
			if v.Secret {
				value = strings.Repeat("*", 8)
			}
			b.WriteString(BlankPrefix + ValueStyle.Render(v.Key+"="+value))
			b.WriteString("\n")
		}
	}
	b.WriteString(LabelStyle.Render("KEY=VALUE: ") + m.input.View())
	return b.String()
}

// renderFooter shows the status line on the left and the shortcut hints on
// the right.
func (m Model) renderFooter() string {
	var left string
	if m.executing {
		left = m.spinner.View() + " " + m.runningIndicator()
	} else {
		left = StatusStyle.Render(m.status)
	}

	var parts []string
	switch m.mode {
	case ModeEditing:
		parts = append(parts, keyHint("enter", "save"), keyHint("esc", "cancel"))
	case ModeMethodDropdown:
		parts = append(parts, keyHint("↑↓", "method"), keyHint("enter", "select"))
	case ModeEnvironment:
		parts = append(parts, keyHint("enter", "set"), keyHint("esc", "done"))
	default:
		parts = append(parts,
			keyHint("tab", "panes"),
			keyHint("F5", "run"),
			keyHint("ctrl+y", "copy"),
			keyHint("ctrl+t", "save"),
			keyHint("?", "help"),
		)
	}
	right := strings.Join(parts, "   ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}

func keyHint(key, desc string) string {
	return SelectedStyle.Render(key) + HelpStyle.Render(" "+desc)
}

// runningIndicator renders the spring-driven pulse shown while a command
// runs. The filled width follows the spring position as it chases the
// flipping target.
func (m Model) runningIndicator() string {
	filled := int(m.animPos*pulseWidth + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > pulseWidth {
		filled = pulseWidth
	}
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", pulseWidth-filled)
	return StatusStyle.Render("running ") + SelectedStyle.Render(bar)
}

const pulseWidth = 4

const helpText = `# kurl

Interactive curl command builder.

## Navigation

| Key | Action |
|-----|--------|
| tab / shift+tab | Switch panes |
| up / down | Move within a pane |
| left | Toggle entry, or jump toward Method / templates |
| right / enter | Edit the focused field |
| a | Add a header or query parameter |
| space | Toggle entry, cycle body type |
| delete | Remove the focused entry |

## Commands

| Key | Action |
|-----|--------|
| F5 / ctrl+r | Run the command |
| ctrl+y | Copy the command to the clipboard |
| ctrl+d | Diff the last two responses |
| ctrl+p | Restore the last successfully run command |
| ctrl+f | Toggle raw/formatted output |
| ctrl+t | Save the command as a template |
| ctrl+e | Edit environment variables |
| esc / q | Quit |

Values may reference environment variables as ` + "`{{name}}`" + ` or with a
default as ` + "`{{name:default}}`" + `.
`

func (m Model) renderHelp() string {
	header := SelectedStyle.Render("kurl " + m.version)
	if m.renderer != nil {
		if out, err := m.renderer.Render(helpText); err == nil {
			return header + "\n" + out + "\n" + HelpStyle.Render("esc to close")
		}
	}
	return header + "\n" + helpText + "\n" + HelpStyle.Render("esc to close")
}
