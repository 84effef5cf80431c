package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type keyMap struct {
	Up              key.Binding
	Down            key.Binding
	Add             key.Binding
	Toggle          key.Binding
	Edit            key.Binding
	Delete          key.Binding
	ClearCompleted  key.Binding
	PrevCategory    key.Binding
	NextCategory    key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding
	CycleFilter     key.Binding
	NewCategory     key.Binding
	Palette         key.Binding
	Help            key.Binding
	Quit            key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:              key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "move up")),
		Down:            key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "move down")),
		Add:             key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add task")),
		Toggle:          key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle done")),
		Edit:            key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit task")),
		Delete:          key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete task")),
		ClearCompleted:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		PrevCategory:    key.NewBinding(key.WithKeys("h", "["), key.WithHelp("h/[", "previous category")),
		NextCategory:    key.NewBinding(key.WithKeys("l", "]"), key.WithHelp("l/]", "next category")),
		FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "show all")),
		FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "show active")),
		FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "show completed")),
		CycleFilter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		NewCategory:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new category")),
		Palette:         key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.NewCategory, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.ClearCompleted},
		{k.PrevCategory, k.NextCategory, k.FilterAll, k.FilterActive, k.FilterCompleted, k.CycleFilter},
		{k.NewCategory, k.Palette, k.Help, k.Quit},
	}
}

const helpMarkdown = `# tasklist

Tasks belong to one category. Pick **All Tasks** to see everything;
new tasks added there go to *personal*.

## Palette

- ` + "`add <text>`" + ` add a task
- ` + "`category <name> [icon]`" + ` create a category
- ` + "`filter all|active|completed`" + `
- ` + "`show <category>`" + ` select a category
- ` + "`clear`" + ` remove completed tasks
- ` + "`toggle [id]`" + `, ` + "`delete [id]`" + `
`

func (m *Model) toggleHelp() {
	m.HelpVisible = !m.HelpVisible
	if m.HelpVisible {
		m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown))
		m.helpViewport.GotoTop()
		m.Status = StatusBar{Text: "help shown"}
		return
	}
	m.Status = StatusBar{Text: "help hidden"}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Markdown: m.helpViewport.View(),
		HelpView: m.helpModel.View(m.keys),
	})
}
