package view

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"lifegrid/src/universe"
)

const (
	DefProgressEvery = 10 //iterations between the progress lines
	DefMaxFieldWidth = 64 //larger fields are not printed when the run finishes
)

//ConsoleOut is the non-interactive viewer: it reports the progress and prints the final field
type ConsoleOut struct {
	u         universe.Universe
	out       io.Writer
	startTime time.Time
	surface   *TerminalSurface
}

func NewConsoleOut() *ConsoleOut {
	return NewConsoleOutTo(os.Stdout)
}

func NewConsoleOutTo(out io.Writer) *ConsoleOut {
	return &ConsoleOut{out: out, surface: NewTerminalSurface("#", ".")}
}

func (c *ConsoleOut) Refresh() {
	st := c.u.Status()
	if st.RunningMode == universe.RunningStateFinished {
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.out, "\nFinished:")
		c.printHashData(resultData)
		c.printField()
	} else if st.RunningMode == universe.RunningStateRun {
		if st.IterationNum%DefProgressEvery == 0 {
			fmt.Fprintf(c.out, "  Iterations done: %v, live cells: %v, last iteration: %v\n",
				st.IterationNum, st.LiveCells, st.IterationTime.Round(time.Microsecond))
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	w := c.u.Width()
	fmt.Fprintln(c.out, "Running configuration:")
	fmt.Fprintf(c.out, "  Dimension: %v x %v\n", w, w)
	fmt.Fprintf(c.out, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.out, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "\nSimulation started...")
}

//printField prints the universe with one char per cell if it is small enough
func (c *ConsoleOut) printField() {
	w := c.u.Width()
	if w > DefMaxFieldWidth {
		return
	}
	drawAll := c.surface.Resize(w)
	c.u.Redraw(c.surface, c.surface.Bounds(), drawAll)
	var b bytes.Buffer
	c.surface.Render(&b, w, w)
	fmt.Fprintln(c.out, b.String())
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.out, "  %s: %v\n", propName, d[propName])
	}
}
