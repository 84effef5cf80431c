package update

import (
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) renderCategories() string {
	cats := m.Store.Categories()
	items := make([]views.CategoryItemData, 0, len(cats))
	for _, c := range cats {
		items = append(items, views.CategoryItemData{Key: c.Name, Glyph: c.Glyph(), Title: c.Title()})
	}
	return views.RenderCategories(views.CategoriesPanelData{Items: items, Selected: m.SelectedCategory})
}

func (m Model) renderTasks() string {
	visible := m.visibleTasks()
	rows := make([]views.TaskRowData, 0, len(visible))
	for _, t := range visible {
		row := views.TaskRowData{ID: t.ID, Text: t.Text, Completed: t.Completed}
		if c, ok := m.Store.Category(t.Category); ok {
			row.HasBadge = true
			row.BadgeGlyph = c.Glyph()
			row.BadgeTitle = c.Title()
		}
		rows = append(rows, row)
	}
	data := views.TaskListData{Rows: rows}
	if task, ok := m.SelectedTask(); ok && m.Mode == ModeBrowse {
		data.CursorID = task.ID
	}
	if m.Mode == ModeInput {
		data.InputView = m.taskInput.View()
	}
	return views.RenderTasks(data)
}

func (m Model) renderStats() string {
	st := m.Store.Stats()
	return views.RenderStats(views.StatsData{
		Total:        st.Total,
		Completed:    st.Completed,
		ProgressView: m.statsProgress.ViewAs(st.Ratio()),
	})
}

func (m Model) renderFilters() string {
	opts := make([]string, 0, 3)
	for _, f := range model.StatusFilters() {
		opts = append(opts, string(f))
	}
	return views.RenderFilters(views.FiltersData{Options: opts, Selected: string(m.SelectedFilter)})
}

// renderOverlay shows at most one modal, the help panel otherwise.
func (m Model) renderOverlay() string {
	switch m.Mode {
	case ModeAlert:
		return views.RenderAlert(m.Alert.Message)
	case ModeConfirm:
		if m.Confirm != nil {
			return views.RenderConfirm(m.Confirm.Message)
		}
	case ModePrompt:
		if m.Prompt != nil {
			return views.RenderPrompt(m.Prompt.Message, m.promptInput.View())
		}
	case ModeDialog:
		return m.renderCategoryDialog()
	case ModePalette:
		return views.RenderCommandPalette(true, m.commandInput.View())
	}
	return m.renderHelpIfVisible()
}
