package views

import (
	"strings"
	"testing"
)

func TestRenderCategoriesAllEntryFirst(t *testing.T) {
	out := RenderCategories(CategoriesPanelData{
		Items: []CategoryItemData{
			{Key: "work", Glyph: "💼", Title: "Work"},
			{Key: "personal", Glyph: "🏠", Title: "Personal"},
		},
		Selected: "work",
	})
	allAt := strings.Index(out, "All Tasks")
	workAt := strings.Index(out, "Work")
	personalAt := strings.Index(out, "Personal")
	if allAt < 0 || workAt < 0 || personalAt < 0 {
		t.Fatalf("missing entries:\n%s", out)
	}
	if !(allAt < workAt && workAt < personalAt) {
		t.Fatalf("unexpected entry order:\n%s", out)
	}
	if !strings.Contains(out, "> ") {
		t.Fatalf("expected selection marker:\n%s", out)
	}
	if strings.Contains(out, "> ☰ All Tasks") {
		t.Fatalf("all entry should not be highlighted:\n%s", out)
	}
}

func TestRenderTasksPlaceholder(t *testing.T) {
	out := RenderTasks(TaskListData{})
	if !strings.Contains(out, EmptyTasksText) {
		t.Fatalf("expected placeholder, got:\n%s", out)
	}
}

func TestRenderTasksRows(t *testing.T) {
	out := RenderTasks(TaskListData{
		Rows: []TaskRowData{
			{ID: "a", Text: "Buy milk", HasBadge: true, BadgeGlyph: "🏠", BadgeTitle: "Personal"},
			{ID: "b", Text: "Ship it", Completed: true},
		},
		CursorID: "b",
	})
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus two rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "[ ] Buy milk") || !strings.Contains(lines[1], "Personal") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "> [x]") || !strings.Contains(lines[2], "Ship it") {
		t.Fatalf("unexpected second row: %q", lines[2])
	}
	if strings.Contains(out, EmptyTasksText) {
		t.Fatal("placeholder should not render with rows")
	}
}

func TestRenderStats(t *testing.T) {
	out := RenderStats(StatsData{Total: 3, Completed: 1, ProgressView: "###"})
	if !strings.Contains(out, "Total: 3") || !strings.Contains(out, "Completed: 1") || !strings.Contains(out, "###") {
		t.Fatalf("unexpected stats: %q", out)
	}
}

func TestRenderCategoryDialogMarksSelectedIcon(t *testing.T) {
	out := RenderCategoryDialog(CategoryDialogData{
		NameView:     "name> gym",
		Icons:        []IconData{{Name: "briefcase", Glyph: "B"}, {Name: "home", Glyph: "H"}},
		SelectedIcon: "home",
	})
	if !strings.Contains(out, "[H]") || strings.Contains(out, "[B]") {
		t.Fatalf("unexpected icon highlight:\n%s", out)
	}
	if !strings.Contains(out, "selected: home") {
		t.Fatalf("expected selected icon name:\n%s", out)
	}
}

func TestRenderModals(t *testing.T) {
	if got := RenderAlert(""); got != "" {
		t.Fatalf("expected empty alert, got %q", got)
	}
	if got := RenderAlert("Category already exists!"); !strings.Contains(got, "Category already exists!") {
		t.Fatalf("unexpected alert: %q", got)
	}
	if got := RenderConfirm("Delete task?"); !strings.Contains(got, "Delete task?") {
		t.Fatalf("unexpected confirm: %q", got)
	}
	if got := RenderPrompt("Edit task:", "> Buy milk"); !strings.Contains(got, "> Buy milk") {
		t.Fatalf("unexpected prompt: %q", got)
	}
	if got := RenderCommandPalette(false, "x"); got != "" {
		t.Fatalf("inactive palette should be empty, got %q", got)
	}
}

func TestRenderAppIncludesPanes(t *testing.T) {
	out := RenderApp(AppData{
		Header:     "tasklist",
		Sidebar:    "categories:",
		Main:       "tasks:",
		Stats:      "Total: 0 | Completed: 0",
		StatusLine: "ready",
		Footer:     "keys",
	})
	for _, want := range []string{"tasklist", "categories:", "tasks:", "Total: 0", "ready", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in app view:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("   "); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := RenderMarkdown("# Keys"); !strings.Contains(got, "Keys") {
		t.Fatalf("expected rendered heading, got %q", got)
	}
}
