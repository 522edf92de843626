package cell

import (
	"fmt"
	"image"
)

//Resident is a single Life cell
type Resident struct {
	alive       bool
	willBeAlive bool
}

func (r *Resident) isStable() bool {
	return r.alive == r.willBeAlive
}

//FigureNextState applies B3/S23 to the eight neighboring cells
func (r *Resident) FigureNextState(north, south, east, west, northeast, northwest, southeast, southwest Cell) Direction {
	neighbors := 0
	for i, c := range [...]Cell{north, south, east, west, northeast, northwest, southeast, southwest} {
		verifyResident(c, i)
		if c.IsAlive() {
			neighbors++
		}
	}
	r.willBeAlive = neighbors == 3 || (r.alive && neighbors == 2)
	return r.IsDisruptiveTo()
}

//verifyResident panics unless c is a Resident or Dummy
func verifyResident(c Cell, i int) {
	if _, ok := c.(*Resident); ok || c == Dummy {
		return
	}
	panic(fmt.Errorf("%w: %s of a resident is %T", ErrNeighborMismatch, neighborNames[i], c))
}

//Edge returns the Resident itself, only (0,0) exists
func (r *Resident) Edge(row, col int) Cell {
	if row != 0 || col != 0 {
		panic(fmt.Errorf("%w: (%d,%d) on a unit cell", ErrEdgeOutOfRange, row, col))
	}
	return r
}

func (r *Resident) Transition() bool {
	stable := r.isStable()
	r.alive = r.willBeAlive
	return stable
}

func (r *Resident) Redraw(s Surface, here image.Rectangle, _ bool) {
	c := DeadColor
	if r.alive {
		c = LiveColor
	}
	s.FillRegion(here, c)
	s.DrawBorderLines(here, BorderColor)
}

//UserClicked flips the current state, the pending state is left to the next generation
func (r *Resident) UserClicked(_ image.Point, _ image.Rectangle) {
	r.alive = !r.alive
}

func (r *Resident) Clear()            { r.alive, r.willBeAlive = false, false }
func (r *Resident) IsAlive() bool     { return r.alive }
func (r *Resident) Create() Cell      { return &Resident{} }
func (r *Resident) WidthInCells() int { return 1 }

//IsDisruptiveTo is All while the pending state differs from the current one
func (r *Resident) IsDisruptiveTo() Direction {
	if r.isStable() {
		return None
	}
	return All
}

func (r *Resident) Transfer(m Memento, upperLeft image.Point, doLoad bool) bool {
	if doLoad {
		r.alive = m.IsAlive(upperLeft)
		r.willBeAlive = r.alive
		return r.alive
	}
	if r.alive {
		m.MarkAsAlive(upperLeft)
	}
	return false
}

//CreateMemento panics, mementos are built by Neighborhoods
func (r *Resident) CreateMemento() Memento {
	panic(ErrUnitaryMemento)
}
