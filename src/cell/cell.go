//Package cell implements the Life universe as a tree of square nodes.
//A Resident is one Life cell, a Neighborhood groups four equal nodes into a
//square twice as wide. Both satisfy Cell, so the simulation, drawing,
//editing and persistence code never needs to know which one it holds.
package cell

import (
	"errors"
	"image"
)

var (
	ErrNeighborMismatch = errors.New("cell: neighbor of incorrect type or width")
	ErrEdgeOutOfRange   = errors.New("cell: edge position out of range")
	ErrUnitaryMemento   = errors.New("cell: may not create memento of a unitary cell")
	ErrBadWidth         = errors.New("cell: width must be a power of two greater than one")
)

//Color is the paint a cell asks a Surface for
type Color uint8

const (
	DeadColor Color = iota
	LiveColor
	BorderColor
)

//Surface is the drawing sink used by Redraw
type Surface interface {
	FillRegion(r image.Rectangle, c Color)
	DrawBorderLines(r image.Rectangle, c Color)
}

//Cell is the contract shared by every node of the universe tree
type Cell interface {
	//FigureNextState computes the next state from the eight same-width neighbors without committing it.
	//It returns the edges of this node that will change on Transition.
	FigureNextState(north, south, east, west, northeast, northwest, southeast, southwest Cell) Direction

	//Transition commits the state computed by FigureNextState.
	//It returns true when nothing changed.
	Transition() bool

	//IsAlive reports whether at least one Life cell inside the node is alive
	IsAlive() bool

	//Clear kills every cell, current and pending
	Clear()

	WidthInCells() int

	//Edge returns the sub-node at row, col of the node's own grid.
	//row and col address the immediate 2x2 sub-grid, both are in [0,2), not unit-cell offsets.
	//A Resident is its own only edge, at (0,0).
	Edge(row, col int) Cell

	//IsDisruptiveTo reports which edges changed in a way the neighbors must look at
	IsDisruptiveTo() Direction

	//UserClicked toggles the Life cell under here, surface is the area the node was drawn in
	UserClicked(here image.Point, surface image.Rectangle)

	//Redraw paints the node into here, nodes that did not change are skipped unless drawAll is set
	Redraw(s Surface, here image.Rectangle, drawAll bool)

	//Create returns a new all-dead node of the same kind and width
	Create() Cell

	//Transfer loads the node from m (doLoad) or stores its live cells into m.
	//upperLeft is the absolute position of the node's upper-left cell.
	//On load it returns true if the node ends up alive, on store it returns false.
	Transfer(m Memento, upperLeft image.Point, doLoad bool) bool

	CreateMemento() Memento
}

//Dummy stands in for the neighbors beyond the border of the universe.
//It is dead, never changes, and fits any width.
var Dummy Cell = dummy{}

type dummy struct{}

func (dummy) FigureNextState(_, _, _, _, _, _, _, _ Cell) Direction { return None }
func (dummy) Transition() bool                                      { return true }
func (dummy) IsAlive() bool                                         { return false }
func (dummy) Clear()                                                {}
func (dummy) WidthInCells() int                                     { return 0 }
func (dummy) Edge(_, _ int) Cell                                    { return Dummy }
func (dummy) IsDisruptiveTo() Direction                             { return None }
func (dummy) UserClicked(_ image.Point, _ image.Rectangle)          {}
func (dummy) Redraw(_ Surface, _ image.Rectangle, _ bool)           {}
func (dummy) Create() Cell                                          { return Dummy }
func (dummy) Transfer(_ Memento, _ image.Point, _ bool) bool        { return false }
func (dummy) CreateMemento() Memento                                { return NewLiveSet() }
