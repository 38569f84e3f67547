package montyhall

// Snapshot captures the complete game state for determinism testing and
// rendering. WinningDoor is always filled in; callers showing it to a player
// should wait for PhaseRoundComplete.
type Snapshot struct {
	Phase        Phase
	DoorCount    int
	WinningDoor  Door
	PlayerChoice Door // 0 when unset
	Opened       []Door
	TotalRounds  int
	TotalWins    int
	SuccessRate  float64
}

// Snapshot returns a copy of the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:        g.phase,
		DoorCount:    g.doors.Len(),
		WinningDoor:  g.winning,
		PlayerChoice: g.choice,
		Opened:       append([]Door(nil), g.opened...),
		TotalRounds:  g.rounds,
		TotalWins:    g.wins,
		SuccessRate:  g.SuccessRate(),
	}
}

// IsOpened reports whether the host opened d this round.
func (s Snapshot) IsOpened(d Door) bool {
	for _, o := range s.Opened {
		if o == d {
			return true
		}
	}
	return false
}
