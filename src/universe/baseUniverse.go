package universe

import (
	"image"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"lifegrid/src/cell"
)

//Options represents the Universe's configurable options
type Options struct {
	Width           int //side of the square universe, rounded up to a power of two
	MaxWidth        int //the universe never grows beyond this side
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Seed            int64
	Advanced        map[string]interface{} //advanced options (engine specific)
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{} //advanced details (engine specific)
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start()
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 64
	DefMaxWidth           = 1024
	DefMaxSkippedTicks    = 5
	DefSeed               = 42
)

const (
	RunningStateManual   = 0x0
	RunningStateStep     = 0x1
	RunningStateRun      = 0x2
	RunningStateFinished = 0x3
)

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	MaxWidth:        DefMaxWidth,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
	Seed:            DefSeed,
}

//BaseUniverse is the base universe's engine
//implements Universe interface
//the cells live in a cell.Neighborhood tree which is stepped by nextIteration,
//successors can redefine nextIteration to step the tree differently
type BaseUniverse struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	tree struct {
		root *cell.Neighborhood
		sync.Mutex
	}
	rng           *rand.Rand
	stateCh       chan Status
	views         []Viewer
	templates     map[string]Template
	controlCh     chan func()
	closeCh       chan bool
	nextIteration func() (hasLiveEnitities bool, changed bool)
}

//NewBaseUniverse creates the BaseUniverse instance
func NewBaseUniverse(o *Options, stateCh chan Status) *BaseUniverse {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	opts := *o
	opts.Advanced = map[string]interface{}{"engine": "tree"}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = DefMaxWidth
	}
	opts.Width = roundWidth(opts.Width)
	opts.MaxWidth = roundWidth(opts.MaxWidth)
	if opts.Width > opts.MaxWidth {
		opts.Width = opts.MaxWidth
	}

	u := BaseUniverse{
		options:   opts,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan bool, 1),
		stateCh:   stateCh,
		templates: map[string]Template{},
		rng:       rand.New(rand.NewPCG(uint64(opts.Seed), 0)),
	}
	//nextIteration can be implemented by successor
	u.nextIteration = u._nextIteration
	u.state.Details = make(map[string]interface{})

	u.tree.root = cell.NewNeighborhood(opts.Width)
	u.refreshView()
	go u.mainLoop()
	return &u
}

//roundWidth rounds n up to a power of two, two at least
func roundWidth(n int) int {
	w := 2
	for w < n {
		w <<= 1
	}
	return w
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *BaseUniverse) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Settle settles the universe with data
//vc - array of x,y coordinates
func (u *BaseUniverse) Settle(vc [][]int) {
	u.tree.Lock()
	u.settle(vc)
	u.tree.Unlock()
	u.refreshView()
}

//SettleTemplate populates the universe with the seeding template
func (u *BaseUniverse) SettleTemplate(name string) {
	tmpl, ok := u.templates[name]
	if !ok {
		return
	}
	u.Settle(tmpl.Coordinates)
}

//SettleWithRandomData populates the universe with random data
func (u *BaseUniverse) SettleWithRandomData() {
	if u.Status().RunningMode == RunningStateManual || u.Status().RunningMode == RunningStateFinished {
		u.controlCh <- u.clear
		u.controlCh <- func() {
			u.tree.Lock()
			w := u.tree.root.WidthInCells()
			vc := make([][]int, 0, w*w/2)
			for y := 0; y < w; y++ {
				for x := 0; x < w; x++ {
					if u.rng.IntN(2) == 1 {
						vc = append(vc, []int{x, y})
					}
				}
			}
			u.settle(vc)
			u.tree.Unlock()
			u.refreshView()
		}
	}
}

//InverseCell inverses the cell state at point x, y
func (u *BaseUniverse) InverseCell(x int, y int) {
	u.tree.Lock()
	w := u.tree.root.WidthInCells()
	if x < 0 || y < 0 || x >= w || y >= w {
		u.tree.Unlock()
		return
	}
	u.tree.root.UserClicked(image.Pt(x, y), image.Rect(0, 0, w, w))
	u.countLiveCells()
	u.tree.Unlock()
	u.refreshView()
}

//Redraw paints the universe into here, only the changed regions are painted unless drawAll is set
//the universe is drawn as one square, here should be square too
func (u *BaseUniverse) Redraw(s cell.Surface, here image.Rectangle, drawAll bool) {
	u.tree.Lock()
	defer u.tree.Unlock()
	u.tree.root.Redraw(s, here, drawAll)
}

//Save writes the live cells of the universe to w
func (u *BaseUniverse) Save(w io.Writer) error {
	u.tree.Lock()
	m := u.tree.root.CreateMemento().(*cell.LiveSet)
	u.tree.Unlock()
	return writeSnapshot(w, m)
}

//Load replaces the universe content with the snapshot read from r
//the universe grows to hold every loaded cell, counters are reset
func (u *BaseUniverse) Load(r io.Reader) error {
	m, err := readSnapshot(r, u.options.MaxWidth)
	if err != nil {
		return err
	}
	u.tree.Lock()
	u.tree.root = cell.NewNeighborhood(u.options.Width)
	u.state.Lock()
	u.state.IterationNum = 0
	u.state.Unlock()
	u.load(m)
	u.tree.Unlock()
	u.refreshView()
	return nil
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
//it is safe to call while the main loop refreshes the other viewers,
//the viewer gets refreshed only once it is registered
func (u *BaseUniverse) RegisterViewer(v Viewer) {
	v.Register(u)
	u.state.Lock()
	u.views = append(u.views, v)
	u.state.Unlock()
}

//StateCh returns the channel with the universe's status updates
func (u *BaseUniverse) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *BaseUniverse) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *BaseUniverse) Options() Options {
	return u.options
}

//Width returns the current side of the universe, it can be larger than configured after settling
func (u *BaseUniverse) Width() int {
	u.tree.Lock()
	defer u.tree.Unlock()
	return u.tree.root.WidthInCells()
}

//Run starts the universe simulation, returns immediately
func (u *BaseUniverse) Run() {
	u.controlCh <- u.run
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *BaseUniverse) Stop() {
	u.controlCh <- u.stop
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *BaseUniverse) Step() {
	u.controlCh <- u.step
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *BaseUniverse) Clear() {
	u.controlCh <- u.clear
}

//Close stops the main loop, close the channels, returns immediately
func (u *BaseUniverse) Close() {
	u.closeCh <- true
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *BaseUniverse) mainLoop() {
	var c = false
	for !c {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case c = <-u.closeCh:

		}
	}
	close(u.closeCh)
	close(u.controlCh)
}

//settle adds live cells at the x,y positions of vc, the caller holds the tree lock
//positions beyond MaxWidth are skipped
func (u *BaseUniverse) settle(vc [][]int) {
	m := u.tree.root.CreateMemento().(*cell.LiveSet)
	for _, v := range vc {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= u.options.MaxWidth || v[1] >= u.options.MaxWidth {
			continue
		}
		m.MarkAsAlive(image.Pt(v[0], v[1]))
	}
	u.load(m)
}

//load grows the tree until m fits and transfers m into it, the caller holds the tree lock
func (u *BaseUniverse) load(m *cell.LiveSet) {
	for u.tree.root.WidthInCells() < m.Extent() {
		u.tree.root = u.tree.root.Grow()
	}
	u.tree.root.Transfer(m, image.Point{}, true)
	u.state.Lock()
	u.state.LiveCells = m.Len()
	u.state.Unlock()
}

//countLiveCells stores the count of live cells in the status, the caller holds the tree lock
func (u *BaseUniverse) countLiveCells() int {
	live := u.tree.root.CreateMemento().(*cell.LiveSet).Len()
	u.state.Lock()
	u.state.LiveCells = live
	u.state.Unlock()
	return live
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *BaseUniverse) switchRunningState(to RunningState) {
	u.state.Lock()
	u.state.RunningMode = to
	st := u.state.Status
	u.state.Unlock()
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *BaseUniverse) run() {
	go func() {
		u.switchRunningState(RunningStateRun)
		skipped := 0
		done := make(chan bool)
		defer close(done)
		for {
			mode := u.Status().RunningMode
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				u.switchRunningState(RunningStateFinished)
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				u.controlCh <- func() {
					u.step()
					done <- true
				}
				<-done
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}

	}()
}

//stop stops the universe running cycle
func (u *BaseUniverse) stop() {
	if u.Status().RunningMode == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (u *BaseUniverse) step() {

	finished := false
	u.state.Lock()
	rm := u.state.RunningMode
	u.state.IterationNum++
	iteration := u.state.IterationNum
	u.state.Unlock()
	maxIter := u.options.MaxSteps
	//the viewers see the final state before it is published to the stateCh
	defer func() {
		to := rm
		if finished {
			to = RunningStateFinished
		}
		u.state.Lock()
		u.state.RunningMode = to
		u.state.Unlock()
		u.refreshView()
		u.switchRunningState(to)
	}()

	if maxIter != 0 && iteration >= maxIter {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	if !isAlive || !changed {
		finished = true
	}
}

//clear kills every cell, shrinks the universe back to the configured width and resets all counters
func (u *BaseUniverse) clear() {
	u.tree.Lock()
	u.tree.root.Clear()
	for u.tree.root.WidthInCells() > u.options.Width {
		u.tree.root = u.tree.root.Shrink().(*cell.Neighborhood)
	}
	u.tree.Unlock()

	u.state.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.RunningMode = RunningStateManual
	u.state.Unlock()
	u.switchRunningState(RunningStateManual)
	u.refreshView()

}

//_nextIteration does one simulation cycle over the whole tree
func (u *BaseUniverse) _nextIteration() (hasLiveEnitities bool, changed bool) {
	u.tree.Lock()
	defer u.tree.Unlock()
	return u.generation()
}

//generation runs both passes of a generation from the root, the caller holds the tree lock
//the first pass figures the next state everywhere, the second commits it
//live cells are only recounted when something changed
func (u *BaseUniverse) generation() (hasLiveEnitities bool, changed bool) {
	start := time.Now()
	root := u.tree.root
	d := cell.Dummy
	root.FigureNextState(d, d, d, d, d, d, d, d)
	changed = !root.Transition()

	liveCells := u.Status().LiveCells
	if changed {
		liveCells = u.countLiveCells()
	}
	u.state.Lock()
	u.state.IterationTime = time.Since(start)
	u.state.Unlock()
	hasLiveEnitities = liveCells > 0
	return
}

//refreshView calls Refresh event for all registered views
//the viewers are called without holding the state lock, they read the status themselves
func (u *BaseUniverse) refreshView() {
	u.state.Lock()
	views := u.views
	u.state.Unlock()
	for _, v := range views {
		v.Refresh()
	}
}
