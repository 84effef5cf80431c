package update

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

// addTask ignores blank text without touching the status bar.
func (m *Model) addTask(text string) {
	task, err := m.Store.AddTask(m.ctx, text, m.SelectedCategory)
	if errors.Is(err, state.ErrBlankText) {
		return
	}
	if err != nil && task.ID == "" {
		m.fail(err)
		return
	}
	m.taskInput.SetValue("")
	m.moveCursorTo(task.ID)
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("added: %s", task.Text)}
}

func (m *Model) toggleTask(id string) {
	task, err := m.Store.ToggleTask(m.ctx, id)
	m.clampCursor()
	if err != nil {
		m.fail(err)
		return
	}
	if task.Completed {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Text)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", task.Text)}
	}
}

func (m *Model) requestEdit(id string) {
	task, ok := m.Store.Task(id)
	if !ok {
		m.fail(fmt.Errorf("%w: %q", state.ErrTaskNotFound, id))
		return
	}
	m.Prompt = &PromptRequest{TaskID: id, Message: "Edit task:", Initial: task.Text}
	m.promptInput.SetValue(task.Text)
	m.promptInput.CursorEnd()
	m.promptInput.Focus()
	m.Mode = ModePrompt
}

// resolvePrompt applies a non-blank answer. A cancelled or blank answer
// leaves the task untouched.
func (m *Model) resolvePrompt(value string, cancelled bool) {
	req := m.Prompt
	m.Prompt = nil
	m.promptInput.Blur()
	m.promptInput.SetValue("")
	m.Mode = ModeBrowse
	if req == nil || cancelled {
		return
	}
	task, err := m.Store.EditTask(m.ctx, req.TaskID, value)
	if errors.Is(err, state.ErrBlankText) {
		return
	}
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("edited: %s", task.Text)}
}

func (m *Model) requestDelete(id string) {
	task, ok := m.Store.Task(id)
	if !ok {
		m.fail(fmt.Errorf("%w: %q", state.ErrTaskNotFound, id))
		return
	}
	if !m.ConfirmDelete {
		m.deleteTask(id)
		return
	}
	m.Confirm = &ConfirmRequest{TaskID: id, Message: fmt.Sprintf("Delete %q?", task.Text)}
	m.Mode = ModeConfirm
}

func (m *Model) resolveConfirm(confirmed bool) {
	req := m.Confirm
	m.Confirm = nil
	m.Mode = ModeBrowse
	if req == nil {
		return
	}
	if !confirmed {
		m.Status = StatusBar{Text: "delete cancelled"}
		return
	}
	m.deleteTask(req.TaskID)
}

func (m *Model) deleteTask(id string) {
	task, err := m.Store.DeleteTask(m.ctx, id)
	m.clampCursor()
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Text)}
}

func (m *Model) clearCompleted() {
	n, err := m.Store.ClearCompleted(m.ctx)
	m.clampCursor()
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed task(s)", n)}
}

func (m *Model) selectCategory(name string) bool {
	name = model.NormalizeCategoryName(name)
	if name != model.AllCategories {
		if _, ok := m.Store.Category(name); !ok {
			return false
		}
	}
	m.SelectedCategory = name
	m.Cursor = 0
	return true
}

// cycleCategory steps through "all" followed by the stored categories.
func (m *Model) cycleCategory(step int) {
	keys := []string{model.AllCategories}
	for _, c := range m.Store.Categories() {
		keys = append(keys, c.Name)
	}
	at := 0
	for i, k := range keys {
		if k == m.SelectedCategory {
			at = i
			break
		}
	}
	at = (at + step + len(keys)) % len(keys)
	m.selectCategory(keys[at])
}

func (m *Model) selectFilter(f model.StatusFilter) {
	if !f.IsValid() {
		return
	}
	m.SelectedFilter = f
	m.Cursor = 0
}

func (m *Model) moveCursorTo(id string) {
	for i, t := range m.visibleTasks() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
	m.clampCursor()
}

// fail records err. Persistence errors still leave the in-memory change applied.
func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Printf("update: %v", err)
}
