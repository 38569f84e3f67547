package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/montyhall/internal/montyhall"
)

// face is what a door shows on screen.
type face int

const (
	faceClosed face = iota
	facePicked      // closed, held by the player
	faceGoat        // opened, goat behind
	faceCar         // opened at round end, car behind
)

// doorFace decides how door d is drawn. The car stays hidden until the round
// completes.
func doorFace(s montyhall.Snapshot, d montyhall.Door) face {
	if s.IsOpened(d) {
		return faceGoat
	}
	if s.Phase == montyhall.PhaseRoundComplete {
		if d == s.WinningDoor {
			return faceCar
		}
		return faceGoat
	}
	if d == s.PlayerChoice {
		return facePicked
	}
	return faceClosed
}

var (
	doorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(7).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center)

	faceStyles = map[face]lipgloss.Style{
		faceClosed: doorStyle,
		facePicked: doorStyle.BorderForeground(lipgloss.Color("12")).Bold(true),
		faceGoat:   doorStyle.Foreground(lipgloss.Color("245")),
		faceCar:    doorStyle.BorderForeground(lipgloss.Color("11")).Foreground(lipgloss.Color("11")).Bold(true),
	}

	faceLabels = map[face]string{
		faceClosed: "?",
		facePicked: "?",
		faceGoat:   "goat",
		faceCar:    "CAR",
	}
)

// renderDoors draws every door side by side with its number underneath.
func renderDoors(s montyhall.Snapshot) string {
	boxes := make([]string, 0, s.DoorCount)
	for i := 1; i <= s.DoorCount; i++ {
		d := montyhall.Door(i)
		f := doorFace(s, d)

		caption := fmt.Sprintf("%d", i)
		if d == s.PlayerChoice {
			caption = fmt.Sprintf("[%d]", i)
		}
		box := lipgloss.JoinVertical(lipgloss.Center,
			faceStyles[f].Render(faceLabels[f]),
			caption,
		)
		boxes = append(boxes, box, " ")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

// renderTally draws the running score line.
func renderTally(s montyhall.Snapshot, switches int) string {
	return fmt.Sprintf("Rounds %d  Wins %d  Rate %.1f%%  Switched %d",
		s.TotalRounds, s.TotalWins, s.SuccessRate*100, switches)
}

// formatDoors joins door numbers for messages, e.g. "2, 3".
func formatDoors(doors []montyhall.Door) string {
	parts := make([]string, len(doors))
	for i, d := range doors {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, ", ")
}
