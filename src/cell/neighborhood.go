package cell

import (
	"fmt"
	"image"
)

var neighborNames = [...]string{"north", "south", "east", "west", "northeast", "northwest", "southeast", "southwest"}

//edges of a neighbor that face this node, in FigureNextState argument order
var facing = [...]Direction{South, North, West, East, Southwest, Southeast, Northwest, Northeast}

//Neighborhood is a square of four equal sub-nodes (NW, NE / SW, SE)
//
//A Neighborhood that did not change in the last generation, and whose
//neighbors did not change on the edges facing it, is idle: its sub-tree is
//not visited until something around it changes again.
type Neighborhood struct {
	grid  [2][2]Cell
	width int

	active  bool      //changed in the last transition or edited since
	idle    bool      //skipped by the last FigureNextState
	edges   Direction //edges changed in the last transition or by edits
	pending Direction //edges that change on the coming transition
	dirty   bool      //not repainted since the last change

	fanout func(tasks []func())
}

//NewNeighborhood builds an all-dead tree of the given width
func NewNeighborhood(width int) *Neighborhood {
	if width < 2 || width&(width-1) != 0 {
		panic(fmt.Errorf("%w: %d", ErrBadWidth, width))
	}
	n := &Neighborhood{width: width, dirty: true}
	n.each(func(row int, col int) {
		if width == 2 {
			n.grid[row][col] = &Resident{}
		} else {
			n.grid[row][col] = NewNeighborhood(width / 2)
		}
	})
	return n
}

//Grow returns a Neighborhood twice as wide with n as its NW quadrant
//the cells of n settled against a dead border, so every live subtree is
//woken up to be figured again against the new quadrants
func (n *Neighborhood) Grow() *Neighborhood {
	g := &Neighborhood{width: n.width * 2, dirty: true}
	g.grid[0][0] = n
	g.grid[0][1] = n.Create()
	g.grid[1][0] = n.Create()
	g.grid[1][1] = n.Create()
	g.wake()
	return g
}

//wake marks every live subtree of n as changed on all its edges, returns true if n is alive
func (n *Neighborhood) wake() bool {
	alive := false
	for row := range n.grid {
		for _, c := range n.grid[row] {
			if sub, ok := c.(*Neighborhood); ok {
				if sub.wake() {
					alive = true
				}
			} else if c.IsAlive() {
				alive = true
			}
		}
	}
	if alive {
		n.active = true
		n.idle = false
		n.edges = All
	}
	return alive
}

//Shrink returns the NW quadrant when the three others are dead, n otherwise
func (n *Neighborhood) Shrink() Cell {
	if n.grid[0][1].IsAlive() || n.grid[1][0].IsAlive() || n.grid[1][1].IsAlive() {
		return n
	}
	return n.grid[0][0]
}

//SetFanout makes the four quadrants of n be figured and committed by run.
//run must call every task and return once all of them are done.
func (n *Neighborhood) SetFanout(run func(tasks []func())) {
	n.fanout = run
}

//each visits the grid in row-major order, through the fanout when one is set
func (n *Neighborhood) each(f func(row int, col int)) {
	if n.fanout == nil {
		for row := 0; row < 2; row++ {
			for col := 0; col < 2; col++ {
				f(row, col)
			}
		}
		return
	}
	tasks := make([]func(), 0, 4)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			row, col := row, col
			tasks = append(tasks, func() { f(row, col) })
		}
	}
	n.fanout(tasks)
}

func (n *Neighborhood) verify(c Cell, i int) {
	if c == Dummy {
		return
	}
	if o, ok := c.(*Neighborhood); ok && o.width == n.width {
		return
	}
	panic(fmt.Errorf("%w: %s of a %d-wide neighborhood is %T of width %d",
		ErrNeighborMismatch, neighborNames[i], n.width, c, c.WidthInCells()))
}

func (n *Neighborhood) FigureNextState(north, south, east, west, northeast, northwest, southeast, southwest Cell) Direction {
	disrupted := false
	for i, c := range [...]Cell{north, south, east, west, northeast, northwest, southeast, southwest} {
		n.verify(c, i)
		disrupted = disrupted || c.IsDisruptiveTo().Has(facing[i])
	}

	n.pending = None
	n.idle = !n.active && !disrupted
	if n.idle {
		return None
	}

	around := [3][3]Cell{
		{northwest, north, northeast},
		{west, n, east},
		{southwest, south, southeast},
	}
	var changes [2][2]Direction
	n.each(func(row int, col int) {
		at := func(dr, dc int) Cell {
			return n.lookup(&around, row+dr, col+dc)
		}
		changes[row][col] = n.grid[row][col].FigureNextState(
			at(-1, 0), at(1, 0), at(0, 1), at(0, -1),
			at(-1, 1), at(-1, -1), at(1, 1), at(1, -1))
	})
	for row := range changes {
		for col, d := range changes[row] {
			n.pending |= project(d, row, col)
		}
	}
	return n.pending
}

//lookup resolves a quadrant position in [-1,2] relative to n's own grid,
//reaching into the neighbors in around for positions outside [0,1]
func (n *Neighborhood) lookup(around *[3][3]Cell, row int, col int) Cell {
	outer := func(x int) int {
		switch {
		case x < 0:
			return 0
		case x > 1:
			return 2
		}
		return 1
	}
	r, c := (row+2)%2, (col+2)%2
	or, oc := outer(row), outer(col)
	if or == 1 && oc == 1 {
		return n.grid[r][c]
	}
	return around[or][oc].Edge(r, c)
}

//Transition commits every quadrant, returns true if none of them changed
func (n *Neighborhood) Transition() bool {
	if n.idle {
		return true
	}
	var stable [2][2]bool
	n.each(func(row int, col int) {
		stable[row][col] = n.grid[row][col].Transition()
	})
	changed := false
	for row := range stable {
		for _, s := range stable[row] {
			changed = changed || !s
		}
	}
	n.active = changed
	n.edges = n.pending
	n.pending = None
	if changed {
		n.dirty = true
	}
	return !changed
}

func (n *Neighborhood) IsAlive() bool {
	for row := range n.grid {
		for _, c := range n.grid[row] {
			if c.IsAlive() {
				return true
			}
		}
	}
	return false
}

func (n *Neighborhood) Clear() {
	for row := range n.grid {
		for _, c := range n.grid[row] {
			c.Clear()
		}
	}
	n.active = true
	n.idle = false
	n.edges = All
	n.pending = None
	n.dirty = true
}

func (n *Neighborhood) WidthInCells() int { return n.width }

func (n *Neighborhood) Edge(row, col int) Cell {
	if row < 0 || row > 1 || col < 0 || col > 1 {
		panic(fmt.Errorf("%w: (%d,%d) on a %d-wide neighborhood", ErrEdgeOutOfRange, row, col, n.width))
	}
	return n.grid[row][col]
}

func (n *Neighborhood) IsDisruptiveTo() Direction { return n.edges }

//quadrant splits surface the same way the grid is split, the last row and
//column absorb odd pixels
func quadrant(surface image.Rectangle, row int, col int) image.Rectangle {
	hw, hh := surface.Dx()/2, surface.Dy()/2
	r := surface
	if col == 0 {
		r.Max.X = r.Min.X + hw
	} else {
		r.Min.X += hw
	}
	if row == 0 {
		r.Max.Y = r.Min.Y + hh
	} else {
		r.Min.Y += hh
	}
	return r
}

func (n *Neighborhood) UserClicked(here image.Point, surface image.Rectangle) {
	row, col := 0, 0
	if here.Y >= surface.Min.Y+surface.Dy()/2 {
		row = 1
	}
	if here.X >= surface.Min.X+surface.Dx()/2 {
		col = 1
	}
	n.grid[row][col].UserClicked(here, quadrant(surface, row, col))
	n.active = true
	n.dirty = true
	n.edges |= project(All, row, col)
}

func (n *Neighborhood) Redraw(s Surface, here image.Rectangle, drawAll bool) {
	if !drawAll && !n.dirty {
		return
	}
	n.dirty = false
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			n.grid[row][col].Redraw(s, quadrant(here, row, col), drawAll)
		}
	}
}

func (n *Neighborhood) Create() Cell {
	return NewNeighborhood(n.width)
}

func (n *Neighborhood) Transfer(m Memento, upperLeft image.Point, doLoad bool) bool {
	half := n.width / 2
	alive := false
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			at := upperLeft.Add(image.Pt(col*half, row*half))
			if n.grid[row][col].Transfer(m, at, doLoad) {
				alive = true
			}
		}
	}
	if doLoad {
		n.active = alive
		n.idle = false
		n.edges = None
		if alive {
			n.edges = All
		}
		n.pending = None
		n.dirty = true
	}
	return alive
}

//CreateMemento stores the live cells of n, n's upper-left cell being (0,0)
func (n *Neighborhood) CreateMemento() Memento {
	m := NewLiveSet()
	n.Transfer(m, image.Point{}, false)
	return m
}
