package montyhall

// Phase is the game's position in its per-round state machine.
type Phase string

const (
	PhaseAwaitingChoice Phase = "awaiting_choice" // Waiting for the player's initial pick
	PhaseAwaitingSwitch Phase = "awaiting_switch" // Host has opened doors, waiting for switch/stay
	PhaseRoundComplete  Phase = "round_complete"  // Outcome tallied, waiting for continue or reset
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// CanTransitionTo reports whether a round may move from p to target.
// Reset is not a transition: it is accepted from every phase.
func (p Phase) CanTransitionTo(target Phase) bool {
	switch p {
	case PhaseAwaitingChoice:
		return target == PhaseAwaitingSwitch
	case PhaseAwaitingSwitch:
		return target == PhaseRoundComplete
	case PhaseRoundComplete:
		return target == PhaseAwaitingChoice
	default:
		return false
	}
}
