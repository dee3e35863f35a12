package tui

import (
	"testing"

	"github.com/blackcoderx/kurl/pkg/command"
	"github.com/blackcoderx/kurl/pkg/exec"
	"github.com/blackcoderx/kurl/pkg/storage"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := storage.NewStore(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	executor, err := exec.New("/bin/true", 0)
	if err != nil {
		t.Fatalf("exec.New() error = %v", err)
	}
	return InitialModel(Options{
		Store:    store,
		Config:   storage.DefaultConfig(),
		Executor: executor,
		Version:  "test",
	})
}

func TestMoveDown_URLChain(t *testing.T) {
	m := newTestModel(t)

	m.moveDown()
	if m.focus.Kind != FieldMethod {
		t.Fatalf("after down from URL, kind = %v, want FieldMethod", m.focus.Kind)
	}

	// No query params: down from Method stays put.
	m.moveDown()
	if m.focus.Kind != FieldMethod {
		t.Errorf("down from Method with no params moved to %v", m.focus.Kind)
	}

	m.cmd.AddQueryParam("q", "1")
	m.cmd.AddQueryParam("r", "2")
	m.moveDown()
	if m.focus.Kind != FieldQueryParam || m.focus.Index != 0 {
		t.Fatalf("focus = %+v, want query param 0", m.focus)
	}

	// Lists never wrap.
	m.moveDown()
	m.moveDown()
	if m.focus.Index != 1 {
		t.Errorf("index = %d, want 1 at list end", m.focus.Index)
	}
}

func TestMoveUp_StopsAtTop(t *testing.T) {
	m := newTestModel(t)

	m.moveUp()
	if m.focus.Kind != FieldURL {
		t.Errorf("up from URL moved to %v", m.focus.Kind)
	}

	m.focus = Focus{Tab: TabHeaders, Kind: FieldHeader, Index: 0}
	m.moveUp()
	if m.focus.Index != 0 {
		t.Errorf("up at header 0 moved to %d", m.focus.Index)
	}
}

func TestNextTab_ResetsCursor(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddHeader("X-A", "1")

	m.nextTab(false)
	if m.focus.Tab != TabHeaders || m.focus.Kind != FieldHeader || m.focus.Index != 0 {
		t.Fatalf("focus = %+v, want first header", m.focus)
	}

	m.focus.Index = 5
	m.nextTab(false)
	m.nextTab(true)
	if m.focus.Index != 0 {
		t.Errorf("index = %d, want 0 after tab switch", m.focus.Index)
	}

	m.nextTab(true)
	if m.focus.Tab != TabURL {
		t.Errorf("tab = %v, want TabURL", m.focus.Tab)
	}
}

func TestMoveLeft_EntersTemplateSelection(t *testing.T) {
	m := newTestModel(t)
	m.focus = Focus{Tab: TabURL, Kind: FieldMethod}

	m.moveLeft()
	if m.templateSel != 0 {
		t.Fatalf("templateSel = %d, want 0", m.templateSel)
	}

	// Left is inert while template selection is active.
	m.moveLeft()
	if m.templateSel != 0 {
		t.Errorf("templateSel = %d after second left, want 0", m.templateSel)
	}

	// Right exits back to Method.
	m.moveRight()
	if m.templateSel != -1 {
		t.Errorf("templateSel = %d after right, want -1", m.templateSel)
	}
	if m.focus.Kind != FieldMethod {
		t.Errorf("focus kind = %v, want FieldMethod", m.focus.Kind)
	}
}

func TestTemplateSelection_Clamped(t *testing.T) {
	m := newTestModel(t)
	m.templates = []command.Template{
		command.NewTemplate("a", command.New("https://a.example")),
		command.NewTemplate("b", command.New("https://b.example")),
	}
	m.templateSel = 0

	m.moveUp()
	if m.templateSel != 0 {
		t.Errorf("templateSel = %d after up at top, want 0", m.templateSel)
	}
	m.moveDown()
	m.moveDown()
	if m.templateSel != 1 {
		t.Errorf("templateSel = %d, want 1 at bottom", m.templateSel)
	}
}

func TestMoveLeft_TogglesListEntry(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddHeader("X-A", "1")
	m.focus = Focus{Tab: TabHeaders, Kind: FieldHeader, Index: 0}

	m.moveLeft()
	if m.cmd.Headers[0].Enabled {
		t.Error("header still enabled after left")
	}
	m.moveLeft()
	if !m.cmd.Headers[0].Enabled {
		t.Error("header not re-enabled after second left")
	}
}

func TestBuildOptionRows_Ordering(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddOption("-v", nil)
	m.cmd.AddOption("-H", strPtr("Accept: */*"))
	m.touchOptions()

	rows := m.optionRows()
	if len(rows) < 2 {
		t.Fatalf("rows = %d, want attached plus catalog", len(rows))
	}
	if !rows[0].Attached || rows[0].Flag != "-v" {
		t.Errorf("rows[0] = %+v, want attached -v first", rows[0])
	}
	if !rows[1].Attached || rows[1].Flag != "-H" {
		t.Errorf("rows[1] = %+v, want attached -H in stored order", rows[1])
	}

	// The rest is the unattached command-line catalog, sorted by flag, with
	// the attached -v filtered out.
	prev := ""
	for _, row := range rows[2:] {
		if row.Attached {
			t.Fatalf("attached row %q after catalog start", row.Flag)
		}
		if row.Flag == "-v" {
			t.Error("-v appears both attached and in the catalog")
		}
		if prev != "" && row.Flag < prev {
			t.Errorf("catalog out of order: %q after %q", row.Flag, prev)
		}
		prev = row.Flag
	}
}

func TestMoveDown_OptionsBounded(t *testing.T) {
	m := newTestModel(t)
	m.focus = firstField(TabOptions)

	last := len(m.optionRows()) - 1
	for i := 0; i < last+10; i++ {
		m.moveDown()
	}
	if m.focus.Index != last {
		t.Errorf("index = %d, want %d at end of options list", m.focus.Index, last)
	}
}

func TestToggleSelected_StaleIndexNoOp(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddHeader("X-A", "1")
	m.focus = Focus{Tab: TabHeaders, Kind: FieldHeader, Index: 7}

	m.toggleSelected()
	if !m.cmd.Headers[0].Enabled {
		t.Error("stale index toggled a different header")
	}
}

func TestToggleSelected_UnattachedOptionNoOp(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddOption("-v", nil)
	m.touchOptions()
	m.focus = Focus{Tab: TabOptions, Kind: FieldOption, Index: 1}

	m.toggleSelected()
	if !m.cmd.Options[0].Enabled {
		t.Error("toggling a catalog row changed an attached option")
	}
	if len(m.cmd.Options) != 1 {
		t.Errorf("options = %d, want 1", len(m.cmd.Options))
	}
}

func TestRemoveSelected_QueryParamFallsBackToMethod(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddQueryParam("q", "1")
	m.focus = Focus{Tab: TabURL, Kind: FieldQueryParam, Index: 0}

	m.removeSelected()
	if len(m.cmd.QueryParams) != 0 {
		t.Fatalf("params = %d, want 0", len(m.cmd.QueryParams))
	}
	if m.focus.Kind != FieldMethod {
		t.Errorf("focus = %v, want FieldMethod after last param removed", m.focus.Kind)
	}
}

func TestRemoveSelected_OptionCursorBacksUp(t *testing.T) {
	m := newTestModel(t)
	m.cmd.AddOption("-v", nil)
	m.cmd.AddOption("-s", nil)
	m.touchOptions()
	m.focus = Focus{Tab: TabOptions, Kind: FieldOption, Index: 1}

	m.removeSelected()
	if len(m.cmd.Options) != 1 || m.cmd.Options[0].Flag != "-v" {
		t.Fatalf("options = %+v, want only -v", m.cmd.Options)
	}
	if m.focus.Index != 0 {
		t.Errorf("index = %d, want 0", m.focus.Index)
	}
}

func TestClampOptionsScroll(t *testing.T) {
	m := newTestModel(t)
	m.optionsVisible = 3
	m.focus = Focus{Tab: TabOptions, Kind: FieldOption, Index: 5}

	m.clampOptionsScroll()
	if m.optionsScroll != 3 {
		t.Errorf("scroll = %d, want 3 to keep row 5 visible", m.optionsScroll)
	}

	m.focus.Index = 1
	m.clampOptionsScroll()
	if m.optionsScroll != 1 {
		t.Errorf("scroll = %d, want 1", m.optionsScroll)
	}
}

func strPtr(s string) *string { return &s }
