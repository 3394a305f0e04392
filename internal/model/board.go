package model

import "github.com/udisondev/tactica/internal/component"

// Board holds the units of one map in insertion order.
type Board struct {
	units []*Unit
}

// NewBoard creates a board with units.
func NewBoard(units ...*Unit) *Board {
	b := &Board{}
	for _, u := range units {
		b.Add(u)
	}
	return b
}

// Add places u on the board.
func (b *Board) Add(u *Unit) { b.units = append(b.units, u) }

// Unit returns the unit with nid, or nil.
func (b *Board) Unit(nid string) *Unit {
	for _, u := range b.units {
		if u.nid == nid {
			return u
		}
	}
	return nil
}

// Roster returns the concrete units in insertion order.
func (b *Board) Roster() []*Unit {
	out := make([]*Unit, len(b.units))
	copy(out, b.units)
	return out
}

// Units returns living units in insertion order.
func (b *Board) Units() []component.Unit {
	out := make([]component.Unit, 0, len(b.units))
	for _, u := range b.units {
		if !u.Dead() {
			out = append(out, u)
		}
	}
	return out
}

// Within returns the living units other than u whose Manhattan distance to u
// is at most radius.
func (b *Board) Within(u component.Unit, radius int) []component.Unit {
	ux, uy := u.Position()
	var out []component.Unit
	for _, other := range b.Units() {
		if other.NID() == u.NID() {
			continue
		}
		ox, oy := other.Position()
		if Distance(ux, uy, ox, oy) <= radius {
			out = append(out, other)
		}
	}
	return out
}

// Allied reports whether a and c fight on the same side.
func (b *Board) Allied(a, c component.Unit) bool {
	return Allied(a.Team(), c.Team())
}

// Allied reports whether two teams fight on the same side.
func Allied(a, b string) bool {
	if a == b {
		return true
	}
	return side(a) == side(b)
}

func side(team string) string {
	switch team {
	case TeamPlayer, TeamOther:
		return TeamPlayer
	}
	return team
}

// Distance is the Manhattan distance between two tiles.
func Distance(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

var _ component.Board = (*Board)(nil)
