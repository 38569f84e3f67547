package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/montyhall/internal/montyhall"
)

// maxPlayDoors is the most doors the play screen supports, one digit key each.
const maxPlayDoors = 9

// PlayKeyMap defines the key bindings for an interactive game.
type PlayKeyMap struct {
	Choose   key.Binding
	Switch   key.Binding
	Keep     key.Binding
	Next     key.Binding
	Reset    key.Binding
	Quit     key.Binding
	ShowHelp key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Choose, k.Switch, k.Keep, k.Next, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Choose, k.Switch, k.Keep},
		{k.Next, k.Reset},
		{k.ShowHelp, k.Quit},
	}
}

// NewPlayKeyMap returns the default bindings for a game with the given
// number of doors.
func NewPlayKeyMap(doors int) PlayKeyMap {
	doors = min(max(doors, 1), maxPlayDoors)
	digits := make([]string, doors)
	for i := range digits {
		digits[i] = strconv.Itoa(i + 1)
	}

	return PlayKeyMap{
		Choose: key.NewBinding(
			key.WithKeys(digits...),
			key.WithHelp(fmt.Sprintf("1-%d", doors), "pick door"),
		),
		Switch: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "switch"),
		),
		Keep: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "keep"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "enter", " "),
			key.WithHelp("n", "next round"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset tally"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// doorForKey returns the door a digit key names.
func doorForKey(msg tea.KeyMsg) (montyhall.Door, bool) {
	n, err := strconv.Atoi(msg.String())
	if err != nil || n < 1 || n > maxPlayDoors {
		return 0, false
	}
	return montyhall.Door(n), true
}
