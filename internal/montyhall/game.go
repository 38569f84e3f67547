// Package montyhall models rounds of the Monty Hall game show as an explicit
// state machine.
//
// A round moves AwaitingChoice -> AwaitingSwitch -> RoundComplete. The player
// picks a door, the host opens every other door except one, never revealing
// the car, and the player then keeps or switches. Counters accumulate across
// rounds until Reset.
//
// The game holds no global state: all randomness comes from the Rand passed
// to New, so a seeded source replays the same sequence of draws.
package montyhall

import "fmt"

// Rand is the random source a Game draws from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n).
	IntN(n int) int
}

// Option configures a Game at construction.
type Option func(*options)

type options struct {
	doors int
}

// WithDoors sets the number of doors. The host opens k-2 goat doors.
func WithDoors(k int) Option {
	return func(o *options) {
		o.doors = k
	}
}

// Outcome records how a completed round played out.
type Outcome struct {
	InitialChoice Door
	FinalChoice   Door
	WinningDoor   Door
	Opened        []Door
	Switched      bool
	Won           bool
}

// Game is a single Monty Hall session. It is not safe for concurrent use;
// independent sessions should each own a Game.
type Game struct {
	doors DoorSet
	rng   Rand
	phase Phase

	winning Door
	initial Door // player's first pick, 0 until chosen
	choice  Door // player's current pick, 0 until chosen
	closed  Door // the other door the host left shut, 0 until chosen
	opened  []Door

	rounds int
	wins   int

	last    Outcome
	hasLast bool
}

// New creates a game with zeroed counters and a freshly drawn winning door.
func New(rng Rand, opts ...Option) (*Game, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}

	o := options{doors: ClassicDoors}
	for _, opt := range opts {
		opt(&o)
	}

	doors, err := NewDoorSet(o.doors)
	if err != nil {
		return nil, err
	}

	g := &Game{
		doors: doors,
		rng:   rng,
	}
	g.Reset()
	return g, nil
}

// Reset zeroes the counters and starts a new round. Valid in any phase.
func (g *Game) Reset() {
	g.rounds = 0
	g.wins = 0
	g.last = Outcome{}
	g.hasLast = false
	g.startRound()
}

// startRound draws the winning door and clears per-round state.
func (g *Game) startRound() {
	g.winning = g.doors.At(g.rng.IntN(g.doors.Len()))
	g.initial = 0
	g.choice = 0
	g.closed = 0
	g.opened = nil
	g.phase = PhaseAwaitingChoice
}

// ChooseDoor registers the player's initial pick and lets the host open doors.
//
// The host keeps exactly one other door shut. If the player missed the car,
// that door is the car. If the player holds the car, it is drawn uniformly
// from the goat doors, so the opened doors carry no information about the
// player's pick.
func (g *Game) ChooseDoor(door Door) error {
	if err := g.canMoveTo(PhaseAwaitingSwitch, "choose a door"); err != nil {
		return err
	}
	if !g.doors.Contains(door) {
		return fmt.Errorf("%w: door %d is not one of 1..%d", ErrInvalidArgument, door, g.doors.Len())
	}

	g.initial = door
	g.choice = door
	g.closed = g.hostKeepsShut(door)
	g.opened = g.doors.except(door, g.closed)
	g.phase = PhaseAwaitingSwitch
	return nil
}

func (g *Game) hostKeepsShut(pick Door) Door {
	if pick != g.winning {
		return g.winning
	}
	goats := g.doors.except(pick)
	return goats[g.rng.IntN(len(goats))]
}

// SwitchDoor registers the player's decision and completes the round.
// When doSwitch is true the player moves to the only door that is neither
// their pick nor opened by the host.
func (g *Game) SwitchDoor(doSwitch bool) error {
	if err := g.canMoveTo(PhaseRoundComplete, "decide on a switch"); err != nil {
		return err
	}

	if doSwitch {
		g.choice = g.closed
	}

	won := g.choice == g.winning
	if won {
		g.wins++
	}
	g.rounds++

	g.last = Outcome{
		InitialChoice: g.initial,
		FinalChoice:   g.choice,
		WinningDoor:   g.winning,
		Opened:        append([]Door(nil), g.opened...),
		Switched:      doSwitch,
		Won:           won,
	}
	g.hasLast = true
	g.phase = PhaseRoundComplete
	return nil
}

// ContinuePlay starts the next round, keeping the counters.
// It refuses to run before the current round completes so an in-progress
// round is never silently discarded.
func (g *Game) ContinuePlay() error {
	if err := g.canMoveTo(PhaseAwaitingChoice, "start a new round"); err != nil {
		return err
	}
	g.startRound()
	return nil
}

// canMoveTo rejects action unless the current phase may advance to target.
func (g *Game) canMoveTo(target Phase, action string) error {
	if !g.phase.CanTransitionTo(target) {
		return fmt.Errorf("%w: cannot %s while %s", ErrInvalidState, action, g.phase)
	}
	return nil
}

// SuccessRate returns wins divided by completed rounds, or 0 before any
// round completes.
func (g *Game) SuccessRate() float64 {
	if g.rounds == 0 {
		return 0
	}
	return float64(g.wins) / float64(g.rounds)
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Doors returns the game's door set.
func (g *Game) Doors() DoorSet {
	return g.doors
}

// PlayerChoice returns the player's current pick, if one was made this round.
func (g *Game) PlayerChoice() (Door, bool) {
	return g.choice, g.choice != 0
}

// HostChoice returns the first door opened by the host this round.
// In the classic three-door game it is the only opened door.
func (g *Game) HostChoice() (Door, bool) {
	if len(g.opened) == 0 {
		return 0, false
	}
	return g.opened[0], true
}

// Opened returns the doors the host opened this round.
func (g *Game) Opened() []Door {
	return append([]Door(nil), g.opened...)
}

// SwitchTarget returns the door a switch would move to, once the host has
// opened doors.
func (g *Game) SwitchTarget() (Door, bool) {
	if g.phase != PhaseAwaitingSwitch {
		return 0, false
	}
	return g.closed, true
}

// TotalRounds returns the number of completed rounds since the last reset.
func (g *Game) TotalRounds() int {
	return g.rounds
}

// TotalWins returns the number of won rounds since the last reset.
func (g *Game) TotalWins() int {
	return g.wins
}

// LastOutcome returns the most recently completed round.
func (g *Game) LastOutcome() (Outcome, bool) {
	if !g.hasLast {
		return Outcome{}, false
	}
	out := g.last
	out.Opened = append([]Door(nil), g.last.Opened...)
	return out, true
}
