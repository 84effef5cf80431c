package update

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/state"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m *Model) openCategoryDialog() {
	m.Mode = ModeDialog
	m.categoryInput.SetValue("")
	m.categoryInput.Focus()
}

// closeCategoryDialog clears the name. The icon choice carries over to the
// next opening.
func (m *Model) closeCategoryDialog() {
	m.Mode = ModeBrowse
	m.categoryInput.SetValue("")
	m.categoryInput.Blur()
}

func (m *Model) pickIcon(name string) {
	if model.IsKnownIcon(name) {
		m.SelectedIcon = name
	}
}

func (m *Model) stepIcon(step int) {
	icons := model.Icons()
	at := model.IconIndex(m.SelectedIcon)
	if at < 0 {
		at = 0
	}
	at = (at + step + len(icons)) % len(icons)
	m.SelectedIcon = icons[at].Name
}

// saveCategory keeps the dialog open on a duplicate and raises the blocking
// alert. A blank name is ignored.
func (m *Model) saveCategory(name string) {
	cat, err := m.Store.AddCategory(m.ctx, name, m.SelectedIcon)
	switch {
	case errors.Is(err, state.ErrBlankCategoryName):
		return
	case errors.Is(err, state.ErrDuplicateCategory):
		m.Alert = AlertState{Message: duplicateCategoryAlert, Return: ModeDialog}
		m.Mode = ModeAlert
		return
	case errors.Is(err, state.ErrUnknownIcon):
		m.fail(err)
		return
	}
	m.closeCategoryDialog()
	if err != nil {
		m.fail(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("category added: %s", cat.Title())}
}

func (m *Model) dismissAlert() {
	next := m.Alert.Return
	if next == "" {
		next = ModeBrowse
	}
	m.Alert = AlertState{}
	m.Mode = next
}

func (m Model) renderCategoryDialog() string {
	icons := model.Icons()
	data := make([]views.IconData, 0, len(icons))
	for _, ic := range icons {
		data = append(data, views.IconData{Name: ic.Name, Glyph: ic.Glyph})
	}
	return views.RenderCategoryDialog(views.CategoryDialogData{
		NameView:     m.categoryInput.View(),
		Icons:        data,
		SelectedIcon: m.SelectedIcon,
	})
}
