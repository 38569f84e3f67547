package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/montyhall/internal/montyhall"
	"github.com/vovakirdan/montyhall/internal/storage"
)

// ErrTooManyDoors is returned when a game has more doors than digit keys.
var ErrTooManyDoors = errors.New("tui: too many doors to play interactively")

// PlayModel is the Bubble Tea model for playing Monty Hall by hand.
type PlayModel struct {
	game   *montyhall.Game
	store  *storage.Store
	logger *log.Logger
	keys   PlayKeyMap
	help   help.Model

	width    int
	height   int
	switches int
	message  string
	err      error
	quitting bool
}

// NewPlayModel creates a play screen for game. store and logger may be nil.
func NewPlayModel(game *montyhall.Game, store *storage.Store, logger *log.Logger) (PlayModel, error) {
	doors := game.Doors().Len()
	if doors > maxPlayDoors {
		return PlayModel{}, fmt.Errorf("%w: %d (max %d)", ErrTooManyDoors, doors, maxPlayDoors)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return PlayModel{
		game:    game,
		store:   store,
		logger:  logger,
		keys:    NewPlayKeyMap(doors),
		help:    help.New(),
		message: fmt.Sprintf("Pick a door, 1 to %d.", doors),
	}, nil
}

// Init implements tea.Model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the play screen.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveSession()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.ShowHelp):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Choose):
		door, _ := doorForKey(msg)
		m.apply(m.game.ChooseDoor(door))
		if m.err == nil {
			target, _ := m.game.SwitchTarget()
			m.message = fmt.Sprintf("You picked door %d. The host opens %s. Switch to door %d or keep?",
				door, formatDoors(m.game.Opened()), target)
		}

	case key.Matches(msg, m.keys.Switch), key.Matches(msg, m.keys.Keep):
		doSwitch := key.Matches(msg, m.keys.Switch)
		m.apply(m.game.SwitchDoor(doSwitch))
		if m.err == nil {
			if doSwitch {
				m.switches++
			}
			m.message = outcomeMessage(m.game)
		}

	case key.Matches(msg, m.keys.Next):
		m.apply(m.game.ContinuePlay())
		if m.err == nil {
			m.message = fmt.Sprintf("New round. Pick a door, 1 to %d.", m.game.Doors().Len())
		}

	case key.Matches(msg, m.keys.Reset):
		m.saveSession()
		m.game.Reset()
		m.switches = 0
		m.err = nil
		m.message = "Tally cleared. Pick a door."
	}
	return m, nil
}

// apply records err as the error to show, clearing any previous one.
func (m *PlayModel) apply(err error) {
	m.err = err
	if err != nil {
		m.logger.Debug("move rejected", "phase", m.game.Phase(), "err", err)
	}
}

// saveSession stores the current tally. Sessions without a completed round
// are not recorded.
func (m *PlayModel) saveSession() {
	if m.store == nil || m.game.TotalRounds() == 0 {
		return
	}
	_, err := m.store.SavePlaySession(storage.PlaySession{
		Doors:    m.game.Doors().Len(),
		Rounds:   m.game.TotalRounds(),
		Wins:     m.game.TotalWins(),
		Switches: m.switches,
	})
	if err != nil {
		m.logger.Warn("could not save play session", "err", err)
		return
	}
	m.logger.Debug("play session saved", "rounds", m.game.TotalRounds(), "wins", m.game.TotalWins())
}

func outcomeMessage(g *montyhall.Game) string {
	out, ok := g.LastOutcome()
	if !ok {
		return ""
	}
	verb := "kept"
	if out.Switched {
		verb = "switched to"
	}
	if out.Won {
		return fmt.Sprintf("You %s door %d and won the car! Press n for another round.", verb, out.FinalChoice)
	}
	return fmt.Sprintf("You %s door %d. The car was behind door %d. Press n for another round.",
		verb, out.FinalChoice, out.WinningDoor)
}

// View renders the play screen.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	snap := m.game.Snapshot()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(titleStyle.Render("MONTY HALL"))
	b.WriteString("\n\n")
	b.WriteString(renderDoors(snap))
	b.WriteString("\n\n")
	b.WriteString(m.message)
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderTally(snap, m.switches))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	view := b.String()
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// RunPlay starts an interactive game in the terminal.
func RunPlay(game *montyhall.Game, store *storage.Store, logger *log.Logger) error {
	model, err := NewPlayModel(game, store, logger)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
