package view

import (
	"bytes"
	"image"
	"testing"

	"lifegrid/src/cell"
)

func TestTerminalSurfacePaintsIncrementally(t *testing.T) {
	s := NewTerminalSurface("#", ".")
	if !s.Resize(4) {
		t.Fatal("first Resize must ask for a full redraw")
	}
	if s.Resize(4) {
		t.Fatal("Resize to the same width must not ask for a full redraw")
	}

	n := cell.NewNeighborhood(4)
	n.Transfer(cell.NewLiveSet(image.Pt(1, 0), image.Pt(1, 1), image.Pt(1, 2)), image.Point{}, true)
	n.Redraw(s, s.Bounds(), true)

	var b bytes.Buffer
	if s.Render(&b, 10, 10) {
		t.Fatal("4x4 field reported as cropped")
	}
	if b.String() != ".#..\n.#..\n.#..\n...." {
		t.Fatalf("unexpected field:\n%s", b.String())
	}

	n.FigureNextState(cell.Dummy, cell.Dummy, cell.Dummy, cell.Dummy, cell.Dummy, cell.Dummy, cell.Dummy, cell.Dummy)
	n.Transition()
	n.Redraw(s, s.Bounds(), false)

	b.Reset()
	s.Render(&b, 10, 10)
	if b.String() != "....\n###.\n....\n...." {
		t.Fatalf("unexpected field after a generation:\n%s", b.String())
	}
}

func TestTerminalSurfaceCrops(t *testing.T) {
	s := NewTerminalSurface("#", ".")
	s.Resize(4)
	s.FillRegion(image.Rect(0, 0, 4, 4), cell.DeadColor)
	s.FillRegion(image.Rect(2, 2, 10, 10), cell.LiveColor)

	var b bytes.Buffer
	if !s.Render(&b, 3, 2) {
		t.Fatal("cropping not reported")
	}
	if b.String() != "...\n..." {
		t.Fatalf("unexpected cropped field:\n%s", b.String())
	}
	b.Reset()
	s.Render(&b, 4, 4)
	if b.String() != "....\n....\n..##\n..##" {
		t.Fatalf("fill was not clipped to the field:\n%s", b.String())
	}
}
