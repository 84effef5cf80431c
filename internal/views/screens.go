package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// EmptyTasksText is shown when no task passes the current filters.
const EmptyTasksText = "No tasks found. Add a new task!"

type CategoryItemData struct {
	Key   string
	Glyph string
	Title string
}

type CategoriesPanelData struct {
	Items    []CategoryItemData
	Selected string
}

type TaskRowData struct {
	ID         string
	Text       string
	Completed  bool
	HasBadge   bool
	BadgeGlyph string
	BadgeTitle string
}

type TaskListData struct {
	Rows      []TaskRowData
	CursorID  string
	InputView string
}

type StatsData struct {
	Total        int
	Completed    int
	ProgressView string
}

type FiltersData struct {
	Options  []string
	Selected string
}

type IconData struct {
	Name  string
	Glyph string
}

type CategoryDialogData struct {
	NameView     string
	Icons        []IconData
	SelectedIcon string
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

var (
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	alertStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// RenderCategories lists the synthetic "All Tasks" entry first, then every
// category in stored order.
func RenderCategories(data CategoriesPanelData) string {
	var b strings.Builder
	b.WriteString("categories:\n")
	items := append([]CategoryItemData{{Key: "all", Glyph: "☰", Title: "All Tasks"}}, data.Items...)
	for _, item := range items {
		line := fmt.Sprintf("%s %s", item.Glyph, item.Title)
		if item.Key == data.Selected {
			b.WriteString("> " + activeStyle.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderTasks(data TaskListData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	if data.InputView != "" {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString(EmptyTasksText)
		return b.String()
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.ID == data.CursorID {
			cursor = ">"
		}
		check := "[ ]"
		text := row.Text
		if row.Completed {
			check = "[x]"
			text = doneStyle.Render(row.Text)
		}
		line := fmt.Sprintf("%s %s %s", cursor, check, text)
		if row.HasBadge {
			line += " " + badgeStyle.Render(fmt.Sprintf("%s %s", row.BadgeGlyph, row.BadgeTitle))
		}
		b.WriteString(line + "  ✎ ✗\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderStats(data StatsData) string {
	line := fmt.Sprintf("Total: %d | Completed: %d", data.Total, data.Completed)
	if data.ProgressView == "" {
		return line
	}
	return line + "\n" + data.ProgressView
}

func RenderFilters(data FiltersData) string {
	parts := make([]string, 0, len(data.Options))
	for _, opt := range data.Options {
		if opt == data.Selected {
			parts = append(parts, activeStyle.Render("["+opt+"]"))
			continue
		}
		parts = append(parts, " "+opt+" ")
	}
	return "filter: " + strings.Join(parts, " ")
}

func RenderCategoryDialog(data CategoryDialogData) string {
	var b strings.Builder
	b.WriteString("new category:\n")
	b.WriteString(data.NameView + "\n")
	b.WriteString("icon: ")
	for _, ic := range data.Icons {
		if ic.Name == data.SelectedIcon {
			b.WriteString(activeStyle.Render("[" + ic.Glyph + "]"))
		} else {
			b.WriteString(" " + ic.Glyph + " ")
		}
	}
	b.WriteString("\nselected: " + data.SelectedIcon)
	b.WriteString("\nkeys: [tab]icon [enter]save [esc]cancel")
	return b.String()
}

func RenderConfirm(message string) string {
	return fmt.Sprintf("confirm: %s\nkeys: [y]es [n]o", message)
}

func RenderPrompt(message, inputView string) string {
	return fmt.Sprintf("prompt: %s\n%s\nkeys: [enter]ok [esc]cancel", message, inputView)
}

func RenderAlert(message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	return alertStyle.Render("alert: "+message) + "\nkeys: [enter]ok"
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s", data.Markdown, data.HelpView)
}
