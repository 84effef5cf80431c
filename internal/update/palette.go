package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/state"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		raw := m.commandInput.Value()
		m.closePalette()
		m = m.executePaletteCommand(raw)
	default:
		m.commandInput = updateInput(m.commandInput, msg)
	}
	return m
}

func (m *Model) openPalette() {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.Mode = ModeBrowse
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand(raw string) Model {
	m.Status = StatusBar{}
	cmd, err := commands.Parse(strings.TrimSpace(raw))
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.addTask(a.Text)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Category: func(c commands.CategoryArgs) (commands.Result, error) {
			icon := c.Icon
			if icon == "" {
				icon = m.SelectedIcon
			}
			cat, err := m.Store.AddCategory(m.ctx, c.Name, icon)
			if errors.Is(err, state.ErrDuplicateCategory) {
				m.Alert = AlertState{Message: duplicateCategoryAlert, Return: ModeBrowse}
				m.Mode = ModeAlert
				return commands.Result{}, err
			}
			if err != nil && cat.Name == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("category added: %s", cat.Title())}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.selectFilter(f.Filter)
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			if !m.selectCategory(s.Category) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown category: %s", s.Category)}
			}
			return commands.Result{Message: fmt.Sprintf("showing: %s", s.Category)}, nil
		},
		Clear: func() (commands.Result, error) {
			m.clearCompleted()
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Toggle: func(t commands.TaskArgs) (commands.Result, error) {
			id, err := m.resolveTarget(t.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.toggleTask(id)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(t commands.TaskArgs) (commands.Result, error) {
			id, err := m.resolveTarget(t.ID)
			if err != nil {
				return commands.Result{}, err
			}
			m.requestDelete(id)
			if m.Status.IsError {
				return commands.Result{}, m.LastError
			}
			if m.Mode == ModeConfirm {
				return commands.Result{Message: "confirm delete"}, nil
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

// resolveTarget maps an id prefix, or the cursor when empty, to a task id.
func (m Model) resolveTarget(idOrPrefix string) (string, error) {
	if strings.TrimSpace(idOrPrefix) == "" {
		task, ok := m.SelectedTask()
		if !ok {
			return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
		}
		return task.ID, nil
	}
	task, err := m.Store.Lookup(idOrPrefix)
	if err != nil {
		return "", &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
	}
	return task.ID, nil
}
