package tui

import (
	"github.com/blackcoderx/kurl/pkg/command"
)

// Tab is one of the four editing panes.
type Tab int

const (
	TabURL Tab = iota
	TabHeaders
	TabBody
	TabOptions
)

func (t Tab) String() string {
	switch t {
	case TabURL:
		return "URL"
	case TabHeaders:
		return "Headers"
	case TabBody:
		return "Body"
	case TabOptions:
		return "Options"
	}
	return "?"
}

var tabOrder = []Tab{TabURL, TabHeaders, TabBody, TabOptions}

// FieldKind identifies what kind of field the cursor is on.
type FieldKind int

const (
	FieldURL FieldKind = iota
	FieldMethod
	FieldQueryParam
	FieldHeader
	FieldBodyType
	FieldBodyContent
	FieldOption
)

// Focus is the single selection cursor: which tab, which field kind within
// it, and the list index when the kind is indexed. All movement goes through
// the move* methods so bounds checks live in one place; indices are always
// re-checked against current list lengths, never trusted from a previous
// event.
type Focus struct {
	Tab   Tab
	Kind  FieldKind
	Index int
}

// firstField returns the cursor position a tab switch lands on.
func firstField(t Tab) Focus {
	switch t {
	case TabHeaders:
		return Focus{Tab: TabHeaders, Kind: FieldHeader, Index: 0}
	case TabBody:
		return Focus{Tab: TabBody, Kind: FieldBodyContent}
	case TabOptions:
		return Focus{Tab: TabOptions, Kind: FieldOption, Index: 0}
	default:
		return Focus{Tab: TabURL, Kind: FieldURL}
	}
}

// optionRow is one line of the combined Options-tab list: attached options
// first in stored order, then unattached command-line catalog entries sorted
// by flag.
type optionRow struct {
	Flag        string
	Description string
	TakesValue  bool
	Attached    bool
	AttachedIdx int
	Enabled     bool
	Value       *string
}

// buildOptionRows derives the combined list from the current command. The
// result depends only on cmd.Options and the static catalog; callers memoize
// it per model revision.
func buildOptionRows(cmd *command.CurlCommand) []optionRow {
	catalog := command.Options()
	rows := make([]optionRow, 0, len(cmd.Options))

	for i, opt := range cmd.Options {
		row := optionRow{
			Flag:        opt.Flag,
			Attached:    true,
			AttachedIdx: i,
			Enabled:     opt.Enabled,
			Value:       opt.Value,
		}
		if def, ok := catalog.Lookup(opt.Flag); ok {
			row.Description = def.Description
			row.TakesValue = def.TakesValue
		}
		rows = append(rows, row)
	}

	for _, def := range catalog.ByCategory(command.CategoryCommandLine) {
		if cmd.HasOption(def.Flag) {
			continue
		}
		rows = append(rows, optionRow{
			Flag:        def.Flag,
			Description: def.Description,
			TakesValue:  def.TakesValue,
		})
	}
	return rows
}

// moveUp moves the cursor one step up within the current field family.
// Movement never wraps.
func (m *Model) moveUp() {
	if m.templateSel >= 0 {
		if m.templateSel > 0 {
			m.templateSel--
		}
		return
	}
	switch m.focus.Kind {
	case FieldMethod:
		m.focus = Focus{Tab: TabURL, Kind: FieldURL}
	case FieldQueryParam:
		if m.focus.Index == 0 {
			m.focus = Focus{Tab: TabURL, Kind: FieldMethod}
		} else {
			m.focus.Index--
		}
	case FieldHeader, FieldOption:
		if m.focus.Index > 0 {
			m.focus.Index--
		}
	case FieldBodyContent:
		m.focus.Kind = FieldBodyType
	}
	m.clampOptionsScroll()
}

// moveDown moves the cursor one step down, stopping at the last item of
// variable-length lists.
func (m *Model) moveDown() {
	if m.templateSel >= 0 {
		if m.templateSel < len(m.templates)-1 {
			m.templateSel++
		}
		return
	}
	switch m.focus.Kind {
	case FieldURL:
		m.focus = Focus{Tab: TabURL, Kind: FieldMethod}
	case FieldMethod:
		if len(m.cmd.QueryParams) > 0 {
			m.focus = Focus{Tab: TabURL, Kind: FieldQueryParam, Index: 0}
		}
	case FieldQueryParam:
		if m.focus.Index < len(m.cmd.QueryParams)-1 {
			m.focus.Index++
		}
	case FieldHeader:
		if m.focus.Index < len(m.cmd.Headers)-1 {
			m.focus.Index++
		}
	case FieldBodyType:
		m.focus.Kind = FieldBodyContent
	case FieldOption:
		if m.focus.Index < len(m.optionRows())-1 {
			m.focus.Index++
		}
	}
	m.clampOptionsScroll()
}

// moveLeft toggles list rows in place, converges non-list fields on Method,
// and from Method enters template selection. With template selection active
// it does nothing; Right is the way back out.
func (m *Model) moveLeft() {
	if m.templateSel >= 0 {
		return
	}
	switch m.focus.Kind {
	case FieldHeader, FieldQueryParam, FieldOption:
		m.toggleSelected()
	case FieldMethod:
		// Legal even when no templates exist; the selection is inert.
		m.templateSel = 0
	case FieldBodyType, FieldBodyContent:
		m.focus = Focus{Tab: TabURL, Kind: FieldMethod}
	}
}

// moveRight exits template selection back to Method, re-enters the tab from
// Method, and otherwise acts as the commit-to-edit trigger.
func (m *Model) moveRight() {
	if m.templateSel >= 0 {
		m.templateSel = -1
		m.focus = Focus{Tab: TabURL, Kind: FieldMethod}
		return
	}
	if m.focus.Kind == FieldMethod {
		m.focus = firstField(m.focus.Tab)
		return
	}
	m.enterEdit()
}

// nextTab switches the active tab and resets the in-tab cursor. Template
// selection is untouched.
func (m *Model) nextTab(backward bool) {
	idx := int(m.focus.Tab)
	if backward {
		idx = (idx + len(tabOrder) - 1) % len(tabOrder)
	} else {
		idx = (idx + 1) % len(tabOrder)
	}
	m.focus = firstField(tabOrder[idx])
	m.clampOptionsScroll()
}

// toggleSelected flips the enabled flag of the focused list entry. Stale
// indices are a silent no-op.
func (m *Model) toggleSelected() {
	switch m.focus.Kind {
	case FieldHeader:
		if m.cmd.ToggleHeader(m.focus.Index) {
			m.touchOptions()
		}
	case FieldQueryParam:
		if m.cmd.ToggleQueryParam(m.focus.Index) {
			m.touchOptions()
		}
	case FieldOption:
		rows := m.optionRows()
		if m.focus.Index >= len(rows) {
			return
		}
		row := rows[m.focus.Index]
		if !row.Attached {
			return
		}
		if m.cmd.ToggleOption(row.AttachedIdx) {
			m.touchOptions()
		}
	}
}

// removeSelected deletes the focused list entry. On the Options tab only
// attached rows can be removed; the cursor then backs up one row.
func (m *Model) removeSelected() {
	switch m.focus.Kind {
	case FieldHeader:
		if m.cmd.RemoveHeader(m.focus.Index) && m.focus.Index > 0 {
			m.focus.Index--
		}
	case FieldQueryParam:
		if m.cmd.RemoveQueryParam(m.focus.Index) {
			if len(m.cmd.QueryParams) == 0 {
				m.focus = Focus{Tab: TabURL, Kind: FieldMethod}
			} else if m.focus.Index > 0 {
				m.focus.Index--
			}
		}
	case FieldOption:
		rows := m.optionRows()
		if m.focus.Index >= len(rows) || !rows[m.focus.Index].Attached {
			return
		}
		if m.cmd.RemoveOption(rows[m.focus.Index].AttachedIdx) {
			m.touchOptions()
			if m.focus.Index > 0 {
				m.focus.Index--
			}
		}
	}
	m.clampOptionsScroll()
}

// optionRows returns the memoized combined options list, rebuilding it when
// the command's option set has changed.
func (m *Model) optionRows() []optionRow {
	if m.optionCache == nil || m.optionCacheRev != m.optionsRev {
		m.optionCache = buildOptionRows(m.cmd)
		m.optionCacheRev = m.optionsRev
	}
	return m.optionCache
}

// touchOptions invalidates the derived options view.
func (m *Model) touchOptions() {
	m.optionsRev++
}

// clampOptionsScroll keeps the selected options row inside the visible
// window. The window height is derived from the current layout.
func (m *Model) clampOptionsScroll() {
	if m.focus.Kind != FieldOption {
		return
	}
	visible := m.optionsVisible
	if visible < 1 {
		visible = 1
	}
	if m.focus.Index < m.optionsScroll {
		m.optionsScroll = m.focus.Index
	}
	if m.focus.Index >= m.optionsScroll+visible {
		m.optionsScroll = m.focus.Index - visible + 1
	}
	if m.optionsScroll < 0 {
		m.optionsScroll = 0
	}
}
