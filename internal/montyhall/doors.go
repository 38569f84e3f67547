package montyhall

import "fmt"

// ClassicDoors is the number of doors on the original game show.
const ClassicDoors = 3

// Door identifies a single door. Doors of a game are numbered 1..k.
type Door int

// DoorSet is the fixed, ordered set of doors of one game.
type DoorSet struct {
	doors []Door
}

// NewDoorSet creates a set of k doors numbered 1..k.
// At least three doors are required for the host to have something to open.
func NewDoorSet(k int) (DoorSet, error) {
	if k < ClassicDoors {
		return DoorSet{}, fmt.Errorf("%w: need at least %d doors, got %d", ErrInvalidArgument, ClassicDoors, k)
	}
	doors := make([]Door, k)
	for i := range doors {
		doors[i] = Door(i + 1)
	}
	return DoorSet{doors: doors}, nil
}

// Len returns the number of doors.
func (s DoorSet) Len() int {
	return len(s.doors)
}

// At returns the i-th door (0-indexed).
func (s DoorSet) At(i int) Door {
	return s.doors[i]
}

// Contains reports whether d belongs to the set.
func (s DoorSet) Contains(d Door) bool {
	for _, door := range s.doors {
		if door == d {
			return true
		}
	}
	return false
}

// Doors returns a copy of the doors in order.
func (s DoorSet) Doors() []Door {
	out := make([]Door, len(s.doors))
	copy(out, s.doors)
	return out
}

// except returns the doors not present in skip, preserving order.
func (s DoorSet) except(skip ...Door) []Door {
	out := make([]Door, 0, len(s.doors))
	for _, d := range s.doors {
		excluded := false
		for _, x := range skip {
			if d == x {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, d)
		}
	}
	return out
}
