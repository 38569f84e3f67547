package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/montyhall/internal/montyhall"
	"github.com/vovakirdan/montyhall/internal/randutil"
	"github.com/vovakirdan/montyhall/internal/storage"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m PlayModel, keys ...tea.KeyMsg) PlayModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		var ok bool
		m, ok = next.(PlayModel)
		require.True(t, ok, "Update must return a PlayModel")
	}
	return m
}

func newPlayModel(t *testing.T, doors int, store *storage.Store) PlayModel {
	t.Helper()
	game, err := montyhall.New(randutil.New(7), montyhall.WithDoors(doors))
	require.NoError(t, err)
	m, err := NewPlayModel(game, store, nil)
	require.NoError(t, err)
	return m
}

func TestPlayModelFullRound(t *testing.T) {
	m := newPlayModel(t, 3, nil)

	m = press(t, m, runeKey("1"))
	assert.Equal(t, montyhall.PhaseAwaitingSwitch, m.game.Phase())
	assert.Len(t, m.game.Opened(), 1)
	assert.NoError(t, m.err)
	assert.Contains(t, m.message, "You picked door 1")

	m = press(t, m, runeKey("s"))
	assert.Equal(t, montyhall.PhaseRoundComplete, m.game.Phase())
	assert.Equal(t, 1, m.game.TotalRounds())
	assert.Equal(t, 1, m.switches)

	out, ok := m.game.LastOutcome()
	require.True(t, ok)
	assert.True(t, out.Switched)
	assert.NotEqual(t, montyhall.Door(1), out.FinalChoice)

	m = press(t, m, runeKey("n"))
	assert.Equal(t, montyhall.PhaseAwaitingChoice, m.game.Phase())
	assert.Equal(t, 1, m.game.TotalRounds(), "tally survives the next round")
}

func TestPlayModelKeepDoesNotCountSwitch(t *testing.T) {
	m := newPlayModel(t, 3, nil)

	m = press(t, m, runeKey("2"), runeKey("k"))

	out, ok := m.game.LastOutcome()
	require.True(t, ok)
	assert.False(t, out.Switched)
	assert.Equal(t, montyhall.Door(2), out.FinalChoice)
	assert.Zero(t, m.switches)
}

func TestPlayModelShowsOutOfOrderErrors(t *testing.T) {
	m := newPlayModel(t, 3, nil)

	m = press(t, m, runeKey("s"))
	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, montyhall.ErrInvalidState)
	assert.Equal(t, montyhall.PhaseAwaitingChoice, m.game.Phase())
	assert.Contains(t, m.View(), m.err.Error())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.ErrorIs(t, m.err, montyhall.ErrInvalidState)

	// A valid move clears the error.
	m = press(t, m, runeKey("3"))
	assert.NoError(t, m.err)
}

func TestPlayModelIgnoresDoorsOutsideGame(t *testing.T) {
	m := newPlayModel(t, 3, nil)

	m = press(t, m, runeKey("4"))
	assert.Equal(t, montyhall.PhaseAwaitingChoice, m.game.Phase())
	assert.NoError(t, m.err)
}

func TestPlayModelManyDoors(t *testing.T) {
	m := newPlayModel(t, 5, nil)

	m = press(t, m, runeKey("5"))
	assert.Len(t, m.game.Opened(), 3)
	assert.Contains(t, m.View(), "[5]")
}

func TestPlayModelRejectsTooManyDoors(t *testing.T) {
	game, err := montyhall.New(randutil.New(1), montyhall.WithDoors(10))
	require.NoError(t, err)

	_, err = NewPlayModel(game, nil, nil)
	assert.ErrorIs(t, err, ErrTooManyDoors)
}

func TestPlayModelSavesSessionOnQuitAndReset(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "play.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newPlayModel(t, 3, store)
	m = press(t, m,
		runeKey("1"), runeKey("s"), runeKey("n"),
		runeKey("2"), runeKey("k"),
		runeKey("r"),
	)
	assert.Zero(t, m.game.TotalRounds())
	assert.Zero(t, m.switches)

	m = press(t, m, runeKey("3"), runeKey("s"))
	next, cmd := m.Update(runeKey("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.View())

	sessions, err := store.RecentPlaySessions(10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].Rounds)
	assert.Equal(t, 1, sessions[0].Switches)
	assert.Equal(t, 2, sessions[1].Rounds)
	assert.Equal(t, 1, sessions[1].Switches)
}

func TestPlayModelSkipsEmptySession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "play.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newPlayModel(t, 3, store)
	m = press(t, m, runeKey("1"))
	press(t, m, runeKey("q"))

	sessions, err := store.RecentPlaySessions(10)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDoorFace(t *testing.T) {
	s := montyhall.Snapshot{
		Phase:        montyhall.PhaseAwaitingSwitch,
		DoorCount:    3,
		WinningDoor:  2,
		PlayerChoice: 1,
		Opened:       []montyhall.Door{3},
	}

	assert.Equal(t, facePicked, doorFace(s, 1))
	assert.Equal(t, faceClosed, doorFace(s, 2), "car stays hidden mid-round")
	assert.Equal(t, faceGoat, doorFace(s, 3))

	s.Phase = montyhall.PhaseRoundComplete
	assert.Equal(t, faceGoat, doorFace(s, 1))
	assert.Equal(t, faceCar, doorFace(s, 2))
}
