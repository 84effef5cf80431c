package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.helpModel.Width = typed.Width
		return m, nil
	case AddTaskMsg:
		m.addTask(typed.Text)
		return m, nil
	case ToggleTaskMsg:
		m.toggleTask(typed.ID)
		return m, nil
	case EditTaskMsg:
		m.requestEdit(typed.ID)
		return m, nil
	case PromptResultMsg:
		m.resolvePrompt(typed.Value, typed.Cancelled)
		return m, nil
	case DeleteTaskMsg:
		m.requestDelete(typed.ID)
		return m, nil
	case ConfirmResultMsg:
		m.resolveConfirm(typed.Confirmed)
		return m, nil
	case ClearCompletedMsg:
		m.clearCompleted()
		return m, nil
	case SelectCategoryMsg:
		if !m.selectCategory(typed.Name) {
			m.Status = StatusBar{Text: fmt.Sprintf("unknown category: %s", typed.Name), IsError: true}
		}
		return m, nil
	case SelectFilterMsg:
		m.selectFilter(typed.Filter)
		return m, nil
	case OpenCategoryDialogMsg:
		m.openCategoryDialog()
		return m, nil
	case CloseCategoryDialogMsg:
		m.closeCategoryDialog()
		return m, nil
	case PickIconMsg:
		m.pickIcon(typed.Icon)
		return m, nil
	case SaveCategoryMsg:
		m.saveCategory(typed.Name)
		return m, nil
	case DismissAlertMsg:
		m.dismissAlert()
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	switch m.Mode {
	case ModeAlert:
		return m.handleAlertKey(msg), nil
	case ModeConfirm:
		return m.handleConfirmKey(msg), nil
	case ModePrompt:
		return m.handlePromptKey(msg), nil
	case ModeDialog:
		return m.handleDialogKey(msg), nil
	case ModePalette:
		return m.handlePaletteKey(msg), nil
	case ModeInput:
		return m.handleInputKey(msg), nil
	}
	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.toggleHelp()
	case m.HelpVisible && (msg.String() == "pgdown" || msg.String() == "pgup"):
		m.helpViewport, _ = m.helpViewport.Update(msg)
	case key.Matches(msg, k.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, k.Down):
		if m.Cursor < len(m.visibleTasks())-1 {
			m.Cursor++
		}
	case key.Matches(msg, k.Add):
		m.Mode = ModeInput
		m.taskInput.Focus()
	case key.Matches(msg, k.Toggle):
		if task, ok := m.SelectedTask(); ok {
			m.toggleTask(task.ID)
		}
	case key.Matches(msg, k.Edit):
		if task, ok := m.SelectedTask(); ok {
			m.requestEdit(task.ID)
		}
	case key.Matches(msg, k.Delete):
		if task, ok := m.SelectedTask(); ok {
			m.requestDelete(task.ID)
		}
	case key.Matches(msg, k.ClearCompleted):
		m.clearCompleted()
	case key.Matches(msg, k.PrevCategory):
		m.cycleCategory(-1)
	case key.Matches(msg, k.NextCategory):
		m.cycleCategory(1)
	case key.Matches(msg, k.FilterAll):
		m.selectFilter("all")
	case key.Matches(msg, k.FilterActive):
		m.selectFilter("active")
	case key.Matches(msg, k.FilterCompleted):
		m.selectFilter("completed")
	case key.Matches(msg, k.CycleFilter):
		m.selectFilter(m.SelectedFilter.Next())
	case key.Matches(msg, k.NewCategory):
		m.openCategoryDialog()
	case key.Matches(msg, k.Palette):
		m.openPalette()
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Mode = ModeBrowse
		m.taskInput.Blur()
	case "enter":
		m.addTask(m.taskInput.Value())
	default:
		m.taskInput = updateInput(m.taskInput, msg)
	}
	return m
}

func (m Model) handleDialogKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closeCategoryDialog()
	case "enter":
		m.saveCategory(m.categoryInput.Value())
	case "tab":
		m.stepIcon(1)
	case "shift+tab":
		m.stepIcon(-1)
	default:
		m.categoryInput = updateInput(m.categoryInput, msg)
	}
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y", "enter":
		m.resolveConfirm(true)
	case "n", "N", "esc":
		m.resolveConfirm(false)
	}
	return m
}

func (m Model) handlePromptKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.resolvePrompt("", true)
	case "enter":
		m.resolvePrompt(m.promptInput.Value(), false)
	default:
		m.promptInput = updateInput(m.promptInput, msg)
	}
	return m
}

func (m Model) handleAlertKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "enter", "esc", " ":
		m.dismissAlert()
	}
	return m
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("tasklist | category: %s | filter: %s", m.SelectedCategory, m.SelectedFilter),
		Sidebar:    m.renderCategories(),
		Main:       m.renderFilters() + "\n" + m.renderTasks(),
		Stats:      m.renderStats(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Overlay:    m.renderOverlay(),
		Footer:     m.helpModel.ShortHelpView(m.keys.ShortHelp()),
	})
}
