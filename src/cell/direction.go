package cell

import "strings"

//Direction is a set of edges of a square region.
//Corners are unions of the two edges meeting there.
type Direction uint8

const (
	North Direction = 1 << iota
	South
	East
	West
)

const (
	None      Direction = 0
	Northeast           = North | East
	Northwest           = North | West
	Southeast           = South | East
	Southwest           = South | West
	All                 = North | South | East | West
)

var directionNames = []struct {
	d    Direction
	name string
}{
	{North, "N"},
	{South, "S"},
	{East, "E"},
	{West, "W"},
}

//Has reports whether every edge of o is present in d
func (d Direction) Has(o Direction) bool {
	return d&o == o
}

//project keeps the part of a quadrant's result that lies on the outer edges of its parent
func project(d Direction, row int, col int) Direction {
	mask := South
	if row == 0 {
		mask = North
	}
	if col == 0 {
		mask |= West
	} else {
		mask |= East
	}
	return d & mask
}

func (d Direction) String() string {
	switch d {
	case None:
		return "NONE"
	case All:
		return "ALL"
	}
	var b strings.Builder
	for _, n := range directionNames {
		if d.Has(n.d) {
			b.WriteString(n.name)
		}
	}
	return b.String()
}
