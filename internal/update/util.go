package update

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// updateInput hands a key to a focused textinput, inserting at the cursor.
func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	in, _ = in.Update(msg)
	return in
}
