package cell

import (
	"image"
	"sort"
)

//Memento records which absolute cell positions are alive.
//Points use X for the column and Y for the row.
type Memento interface {
	IsAlive(at image.Point) bool
	MarkAsAlive(at image.Point)
}

//LiveSet is the Memento created by Neighborhoods
type LiveSet struct {
	cells map[image.Point]struct{}
}

//NewLiveSet returns a LiveSet holding points
func NewLiveSet(points ...image.Point) *LiveSet {
	s := &LiveSet{cells: make(map[image.Point]struct{}, len(points))}
	for _, p := range points {
		s.MarkAsAlive(p)
	}
	return s
}

func (s *LiveSet) IsAlive(at image.Point) bool {
	_, ok := s.cells[at]
	return ok
}

func (s *LiveSet) MarkAsAlive(at image.Point) {
	s.cells[at] = struct{}{}
}

//Len returns the number of live cells
func (s *LiveSet) Len() int {
	return len(s.cells)
}

//Points returns the live cells ordered by row, then column
func (s *LiveSet) Points() []image.Point {
	points := make([]image.Point, 0, len(s.cells))
	for p := range s.cells {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}

//Extent returns the side of the smallest square anchored at (0,0) holding every point
func (s *LiveSet) Extent() int {
	side := 0
	for p := range s.cells {
		if p.X+1 > side {
			side = p.X + 1
		}
		if p.Y+1 > side {
			side = p.Y + 1
		}
	}
	return side
}
