package update

import (
	"context"
	"io"
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
)

// Mode is the input focus. Every mode except ModeBrowse captures all keys
// until it is resolved.
type Mode string

const (
	ModeBrowse  Mode = "browse"
	ModeInput   Mode = "input"
	ModeDialog  Mode = "dialog"
	ModeConfirm Mode = "confirm"
	ModePrompt  Mode = "prompt"
	ModeAlert   Mode = "alert"
	ModePalette Mode = "palette"
)

const duplicateCategoryAlert = "Category already exists!"

type StatusBar struct {
	Text    string
	IsError bool
}

// ConfirmRequest is a pending yes/no question, answered by ConfirmResultMsg.
type ConfirmRequest struct {
	TaskID  string
	Message string
}

// PromptRequest is a pending text question, answered by PromptResultMsg.
type PromptRequest struct {
	TaskID  string
	Message string
	Initial string
}

type AlertState struct {
	Message string
	// Return is the mode restored when the alert is dismissed.
	Return Mode
}

type Options struct {
	DefaultFilter model.StatusFilter
	DefaultIcon   string
	ConfirmDelete bool
	Logger        *log.Logger
}

func DefaultOptions() Options {
	return Options{
		DefaultFilter: model.FilterAll,
		DefaultIcon:   model.DefaultIcon,
		ConfirmDelete: true,
	}
}

type Model struct {
	Store            *state.Store
	SelectedCategory string
	SelectedFilter   model.StatusFilter
	SelectedIcon     string
	Cursor           int
	Mode             Mode
	Confirm          *ConfirmRequest
	Prompt           *PromptRequest
	Alert            AlertState
	HelpVisible      bool
	ConfirmDelete    bool
	Status           StatusBar
	LastError        error
	Quitting         bool

	ctx           context.Context
	logger        *log.Logger
	keys          keyMap
	taskInput     textinput.Model
	categoryInput textinput.Model
	promptInput   textinput.Model
	commandInput  textinput.Model
	statsProgress progress.Model
	helpModel     help.Model
	helpViewport  viewport.Model
}

type AddTaskMsg struct {
	Text string
}

type ToggleTaskMsg struct {
	ID string
}

// EditTaskMsg opens the edit prompt for ID.
type EditTaskMsg struct {
	ID string
}

type PromptResultMsg struct {
	Value     string
	Cancelled bool
}

// DeleteTaskMsg opens the delete confirmation for ID, or deletes directly when
// confirmation is disabled.
type DeleteTaskMsg struct {
	ID string
}

type ConfirmResultMsg struct {
	Confirmed bool
}

type ClearCompletedMsg struct{}

type SelectCategoryMsg struct {
	Name string
}

type SelectFilterMsg struct {
	Filter model.StatusFilter
}

type OpenCategoryDialogMsg struct{}

type CloseCategoryDialogMsg struct{}

type PickIconMsg struct {
	Icon string
}

type SaveCategoryMsg struct {
	Name string
}

type DismissAlertMsg struct{}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(store *state.Store, opts Options) Model {
	if !opts.DefaultFilter.IsValid() {
		opts.DefaultFilter = model.FilterAll
	}
	if !model.IsKnownIcon(opts.DefaultIcon) {
		opts.DefaultIcon = model.DefaultIcon
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := Model{
		Store:            store,
		SelectedCategory: model.AllCategories,
		SelectedFilter:   opts.DefaultFilter,
		SelectedIcon:     opts.DefaultIcon,
		Mode:             ModeBrowse,
		ConfirmDelete:    opts.ConfirmDelete,
		ctx:              context.Background(),
		logger:           logger,
		keys:             defaultKeyMap(),
	}
	m.initBubbleComponents()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskInput = textinput.New()
	m.taskInput.Prompt = "add> "
	m.taskInput.Placeholder = "What needs to be done?"
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.categoryInput = textinput.New()
	m.categoryInput.Prompt = "name> "
	m.categoryInput.Placeholder = "Category name"
	m.categoryInput.CharLimit = 64
	m.categoryInput.Width = 32

	m.promptInput = textinput.New()
	m.promptInput.Prompt = "> "
	m.promptInput.CharLimit = 256
	m.promptInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.statsProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
	m.helpModel = help.New()
	m.helpModel.ShowAll = true
	m.helpViewport = viewport.New(56, 14)
}

// ViewFilter is the current category and status selection.
func (m Model) ViewFilter() model.ViewFilter {
	return model.ViewFilter{Category: m.SelectedCategory, Status: m.SelectedFilter}
}

func (m Model) visibleTasks() []model.Task {
	if m.Store == nil {
		return nil
	}
	return m.Store.Visible(m.ViewFilter())
}

// SelectedTask is the visible task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.visibleTasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
