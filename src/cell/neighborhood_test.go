package cell

import (
	"image"
	"math/rand/v2"
	"slices"
	"sync"
	"testing"
)

//generation runs one figure/commit cycle on a root, returns true if nothing changed
func generation(root Cell) bool {
	root.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy)
	return root.Transition()
}

func load(n *Neighborhood, points ...image.Point) {
	n.Transfer(NewLiveSet(points...), image.Point{}, true)
}

func livePoints(n *Neighborhood) []image.Point {
	return n.CreateMemento().(*LiveSet).Points()
}

func assertAlive(t *testing.T, n *Neighborhood, expected ...image.Point) {
	t.Helper()
	got := livePoints(n)
	want := NewLiveSet(expected...).Points()
	if !slices.Equal(got, want) {
		t.Fatalf("alive cells %v, expected %v", got, want)
	}
}

//flatGeneration is the plain grid rule with dead cells beyond the border
func flatGeneration(alive *LiveSet, width int) *LiveSet {
	next := NewLiveSet()
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			neighbors := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && alive.IsAlive(image.Pt(x+dx, y+dy)) {
						neighbors++
					}
				}
			}
			p := image.Pt(x, y)
			if neighbors == 3 || (neighbors == 2 && alive.IsAlive(p)) {
				next.MarkAsAlive(p)
			}
		}
	}
	return next
}

func randomSoup(seed uint64, width int, density int) []image.Point {
	rng := rand.New(rand.NewPCG(seed, 0))
	var points []image.Point
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			if rng.IntN(100) < density {
				points = append(points, image.Pt(x, y))
			}
		}
	}
	return points
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := []image.Point{{0, 1}, {1, 1}, {2, 1}}
	vertical := []image.Point{{1, 0}, {1, 1}, {1, 2}}

	n := NewNeighborhood(4)
	load(n, horizontal...)

	if generation(n) {
		t.Fatal("first generation reported stable")
	}
	assertAlive(t, n, vertical...)

	if generation(n) {
		t.Fatal("second generation reported stable")
	}
	assertAlive(t, n, horizontal...)
}

func TestBlinkerAcrossQuadrantBorders(t *testing.T) {
	for _, width := range []int{4, 8, 16, 32} {
		mid := width / 2
		horizontal := []image.Point{{mid - 1, mid}, {mid, mid}, {mid + 1, mid}}
		vertical := []image.Point{{mid, mid - 1}, {mid, mid}, {mid, mid + 1}}

		n := NewNeighborhood(width)
		load(n, horizontal...)
		for i := 0; i < 6; i++ {
			generation(n)
			if i%2 == 0 {
				assertAlive(t, n, vertical...)
			} else {
				assertAlive(t, n, horizontal...)
			}
		}
	}
}

func TestMatchesFlatGrid(t *testing.T) {
	for _, width := range []int{2, 4, 8, 16, 32} {
		for seed := uint64(1); seed <= 4; seed++ {
			points := randomSoup(seed, width, 35)
			n := NewNeighborhood(width)
			load(n, points...)
			expected := NewLiveSet(points...)
			for gen := 0; gen < 40; gen++ {
				expected = flatGeneration(expected, width)
				generation(n)
				if got, want := livePoints(n), expected.Points(); !slices.Equal(got, want) {
					t.Fatalf("width %d seed %d generation %d: got %v, expected %v", width, seed, gen+1, got, want)
				}
			}
		}
	}
}

func TestIsolatedCellDisruption(t *testing.T) {
	n := NewNeighborhood(8)
	load(n, image.Pt(1, 1))
	d := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy)
	if d != None {
		t.Fatalf("change deep in the NW quadrant leaked to the outer edges: %v", d)
	}
	leaf := n.Edge(0, 0).Edge(0, 0).Edge(1, 1)
	if leaf.IsDisruptiveTo() != All {
		t.Fatalf("dying cell reported %v, expected ALL", leaf.IsDisruptiveTo())
	}
	far := n.Edge(1, 1)
	if far.IsDisruptiveTo() != None {
		t.Fatalf("untouched dead region reported %v, expected NONE", far.IsDisruptiveTo())
	}
	if n.Transition() {
		t.Fatal("Transition() reported stable")
	}
	if n.IsAlive() {
		t.Fatal("isolated cell survived")
	}
}

func TestEdgeChangeProjectsOutward(t *testing.T) {
	n := NewNeighborhood(4)
	load(n, image.Pt(0, 0))
	if d := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy); d != Northwest {
		t.Fatalf("corner cell change reported %v, expected NW", d)
	}
	n.Transition()
	if n.IsDisruptiveTo() != Northwest {
		t.Fatalf("committed edges %v, expected NW", n.IsDisruptiveTo())
	}

	n = NewNeighborhood(4)
	load(n, image.Pt(1, 1))
	if d := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy); d != None {
		t.Fatalf("interior change reported %v, expected NONE", d)
	}
}

func TestFigureNextStateIdempotent(t *testing.T) {
	n := NewNeighborhood(16)
	load(n, randomSoup(7, 16, 40)...)
	first := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy)
	second := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy)
	if first != second {
		t.Fatalf("first call %v, second %v", first, second)
	}
	n.Transition()

	expected := flatGeneration(NewLiveSet(randomSoup(7, 16, 40)...), 16)
	if got := livePoints(n); !slices.Equal(got, expected.Points()) {
		t.Fatalf("repeated FigureNextState changed the result: %v", got)
	}
}

func TestStableRegionIsSkipped(t *testing.T) {
	block := []image.Point{{1, 1}, {2, 1}, {1, 2}, {2, 2}}
	n := NewNeighborhood(16)
	load(n, block...)

	if !generation(n) {
		t.Fatal("a block must be stable")
	}
	if d := n.FigureNextState(Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy); d != None {
		t.Fatalf("stable universe reported %v", d)
	}
	if !n.idle {
		t.Fatal("stable universe was visited")
	}
	if !n.Transition() {
		t.Fatal("idle universe reported a change")
	}
	assertAlive(t, n, block...)
}

type recorder struct {
	fills   map[image.Rectangle]Color
	borders int
}

func newRecorder() *recorder {
	return &recorder{fills: map[image.Rectangle]Color{}}
}

func (r *recorder) FillRegion(region image.Rectangle, c Color) { r.fills[region] = c }
func (r *recorder) DrawBorderLines(image.Rectangle, Color)     { r.borders++ }

func TestRedrawOnlyChangedRegions(t *testing.T) {
	surface := image.Rect(0, 0, 160, 160)
	n := NewNeighborhood(16)
	load(n, image.Pt(1, 2), image.Pt(2, 2), image.Pt(3, 2))

	rec := newRecorder()
	n.Redraw(rec, surface, false)
	if len(rec.fills) != 16*16 || rec.borders != 16*16 {
		t.Fatalf("first redraw painted %d cells and %d borders", len(rec.fills), rec.borders)
	}
	if rec.fills[image.Rect(20, 20, 30, 30)] != LiveColor || rec.fills[image.Rect(0, 0, 10, 10)] != DeadColor {
		t.Fatal("cells painted with the wrong color")
	}

	rec = newRecorder()
	n.Redraw(rec, surface, false)
	if len(rec.fills) != 0 {
		t.Fatalf("unchanged universe repainted %d cells", len(rec.fills))
	}

	generation(n)
	rec = newRecorder()
	n.Redraw(rec, surface, false)
	if len(rec.fills) == 0 {
		t.Fatal("changed universe was not repainted")
	}
	for r := range rec.fills {
		if !r.In(image.Rect(0, 0, 80, 80)) {
			t.Fatalf("repainted %v outside the changed quadrant", r)
		}
	}
	if rec.fills[image.Rect(20, 10, 30, 20)] != LiveColor || rec.fills[image.Rect(10, 20, 20, 30)] != DeadColor {
		t.Fatal("blinker repainted with the wrong colors")
	}

	rec = newRecorder()
	n.Redraw(rec, surface, true)
	if len(rec.fills) != 16*16 {
		t.Fatalf("forced redraw painted %d cells", len(rec.fills))
	}
}

func TestUserClicked(t *testing.T) {
	surface := image.Rect(0, 0, 80, 80)
	n := NewNeighborhood(8)
	generation(n)

	//a horizontal blinker straddling the vertical quadrant border
	for _, p := range []image.Point{{35, 45}, {45, 45}, {55, 45}} {
		n.UserClicked(p, surface)
	}
	assertAlive(t, n, image.Pt(3, 4), image.Pt(4, 4), image.Pt(5, 4))

	generation(n)
	assertAlive(t, n, image.Pt(4, 3), image.Pt(4, 4), image.Pt(4, 5))

	n.UserClicked(image.Pt(41, 41), surface)
	assertAlive(t, n, image.Pt(4, 3), image.Pt(4, 5))
}

func TestUserClickedWithOffsetSurface(t *testing.T) {
	n := NewNeighborhood(4)
	n.UserClicked(image.Pt(107, 203), image.Rect(100, 200, 108, 208))
	assertAlive(t, n, image.Pt(3, 1))
}

func TestTransferRoundTrip(t *testing.T) {
	points := randomSoup(11, 32, 30)
	src := NewNeighborhood(32)
	load(src, points...)
	m := src.CreateMemento()

	dst := NewNeighborhood(32)
	load(dst, randomSoup(12, 32, 50)...)
	dst.Clear()
	if dst.IsAlive() {
		t.Fatal("Clear left live cells")
	}
	if dst.Transfer(m, image.Point{}, true) != (len(points) > 0) {
		t.Fatal("load reported the wrong liveness")
	}
	assertAlive(t, dst, points...)
}

func TestTransferLoadOfDeadRegionReturnsFalse(t *testing.T) {
	n := NewNeighborhood(8)
	if n.Transfer(NewLiveSet(image.Pt(100, 100)), image.Point{}, true) {
		t.Fatal("loading a memento with nothing inside the region returned true")
	}
	if n.active || n.IsDisruptiveTo() != None {
		t.Fatal("dead region must stay quiescent after a load")
	}
}

func TestNeighborhoodRejectsMismatchedNeighbors(t *testing.T) {
	n := NewNeighborhood(4)
	mustPanicWith(t, ErrNeighborMismatch, func() {
		n.FigureNextState(NewNeighborhood(8), Dummy, Dummy, Dummy, Dummy, Dummy, Dummy, Dummy)
	})
	mustPanicWith(t, ErrNeighborMismatch, func() {
		n.FigureNextState(Dummy, Dummy, &Resident{}, Dummy, Dummy, Dummy, Dummy, Dummy)
	})
}

func TestNeighborhoodEdge(t *testing.T) {
	n := NewNeighborhood(2)
	if _, ok := n.Edge(1, 0).(*Resident); !ok {
		t.Fatal("bottom level edge is not a unit cell")
	}
	mustPanicWith(t, ErrEdgeOutOfRange, func() { n.Edge(2, 0) })
	mustPanicWith(t, ErrEdgeOutOfRange, func() { n.Edge(0, -1) })
}

func TestNewNeighborhoodBadWidth(t *testing.T) {
	for _, w := range []int{0, 1, 3, 12} {
		mustPanicWith(t, ErrBadWidth, func() { NewNeighborhood(w) })
	}
}

func TestCreate(t *testing.T) {
	n := NewNeighborhood(8)
	load(n, image.Pt(2, 2))
	c := n.Create()
	if c.WidthInCells() != 8 || c.IsAlive() {
		t.Fatalf("Create returned width %d alive=%v", c.WidthInCells(), c.IsAlive())
	}
}

func TestGrowAndShrink(t *testing.T) {
	glider := []image.Point{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	n := NewNeighborhood(4)
	load(n, glider...)

	g := n.Grow()
	if g.WidthInCells() != 8 {
		t.Fatalf("grown width %d", g.WidthInCells())
	}
	assertAlive(t, g, glider...)

	expected := NewLiveSet(glider...)
	for gen := 0; gen < 8; gen++ {
		expected = flatGeneration(expected, 8)
		generation(g)
	}
	assertAlive(t, g, expected.Points()...)

	if g.Shrink() == Cell(g) {
		t.Fatal("glider still inside the NW quadrant after two periods")
	}
	g.Clear()
	if g.Shrink() != g.Edge(0, 0) {
		t.Fatal("cleared universe did not shrink")
	}
}

//the soups settle against the dead border of the small tree first,
//then grow and have to be born across the old south and east border
func TestGrowThenStepMatchesFlatGrid(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		n := NewNeighborhood(8)
		load(n, randomSoup(seed, 8, 40)...)
		for gen := 0; gen < 50; gen++ {
			generation(n)
		}

		g := n.Grow()
		expected := NewLiveSet(livePoints(g)...)
		for gen := 0; gen < 10; gen++ {
			expected = flatGeneration(expected, 16)
			generation(g)
			if got, want := livePoints(g), expected.Points(); !slices.Equal(got, want) {
				t.Fatalf("seed %d generation %d after Grow: got %v, expected %v", seed, gen+1, got, want)
			}
		}
	}
}

func TestGrowWakesBorderStillLife(t *testing.T) {
	//both are still lifes while nothing lives beyond the south or the east border
	for _, pattern := range [][]image.Point{
		{{0, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 2}, {3, 3}},
		{{2, 0}, {3, 0}, {3, 1}, {3, 2}, {2, 3}, {3, 3}},
	} {
		n := NewNeighborhood(4)
		load(n, pattern...)
		for gen := 0; gen < 2; gen++ {
			if !generation(n) {
				t.Fatalf("%v is not stable inside the small tree", pattern)
			}
		}

		g := n.Grow()
		expected := NewLiveSet(pattern...)
		for gen := 0; gen < 4; gen++ {
			expected = flatGeneration(expected, 8)
			generation(g)
			assertAlive(t, g, expected.Points()...)
		}
		if expected.Len() <= len(pattern) {
			t.Fatalf("%v did not grow across the old border", pattern)
		}
	}
}

func TestFanoutMatchesSequential(t *testing.T) {
	run := func(tasks []func()) {
		var wg sync.WaitGroup
		for _, task := range tasks {
			wg.Add(1)
			go func(task func()) {
				defer wg.Done()
				task()
			}(task)
		}
		wg.Wait()
	}
	points := randomSoup(21, 32, 35)
	seq := NewNeighborhood(32)
	par := NewNeighborhood(32)
	par.SetFanout(run)
	load(seq, points...)
	load(par, points...)
	for gen := 0; gen < 30; gen++ {
		if generation(seq) != generation(par) {
			t.Fatalf("generation %d: stability differs", gen+1)
		}
		if !slices.Equal(livePoints(seq), livePoints(par)) {
			t.Fatalf("generation %d: fanout result differs", gen+1)
		}
	}
}

func TestDummy(t *testing.T) {
	if Dummy.IsAlive() || Dummy.IsDisruptiveTo() != None || Dummy.Edge(5, 5) != Dummy {
		t.Fatal("dummy must be dead, quiet and its own edge")
	}
	Dummy.UserClicked(image.Pt(0, 0), image.Rect(0, 0, 1, 1))
	Dummy.Clear()
	if Dummy.IsAlive() || !Dummy.Transition() {
		t.Fatal("dummy changed state")
	}
}
