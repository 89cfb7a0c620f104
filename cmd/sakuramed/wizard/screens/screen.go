// Package screens holds one bubbletea model per workflow page.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
)

// Screen is a page of the workflow. Once Done, Action tells the wizard
// where to go next.
type Screen interface {
	tea.Model
	Done() bool
	Action() types.Action
}

// outcome is embedded by screens to implement Done and Action.
type outcome struct {
	done   bool
	action types.Action
}

// Done returns true when the screen asks to be left
func (o *outcome) Done() bool {
	return o.done
}

// Action returns where the screen asks to go.
func (o *outcome) Action() types.Action {
	return o.action
}

func (o *outcome) finish(a types.Action) {
	o.done = true
	o.action = a
}
