package main

import (
	"log"
	"os"
	"sort"
	"strings"

	"github.com/integrii/flaggy"

	"lifegrid/src/universe"
	"lifegrid/src/view"
)

var (
	testSample = [][]int{
		{1, 1}, {1, 2},
		{2, 1}, {2, 2},
		{3, 3},
		{4, 2},
		{4, 3},
		{5, 3},
	}

	engines = map[string]func(o *universe.Options, stateCh chan universe.Status) universe.Universe{
		"tree": func(o *universe.Options, stateCh chan universe.Status) universe.Universe {
			return universe.NewBaseUniverse(o, stateCh)
		},
		"parallel": universe.NewMultithreadedUniverse,
	}
)

type EnvOptions struct {
	interactive bool
	gui         bool
	randomData  bool
	engine      string
	load        string
	save        string
	scale       int
}

func main() {
	eo, uo := initOptions()

	var stateCh chan universe.Status

	if !eo.interactive && !eo.gui {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u := engines[eo.engine](uo, stateCh)

	u.AddTemplate(
		universe.Template{
			Name:        "testSample1",
			Descr:       "the test sample with 3 stable patterns",
			Coordinates: testSample,
		})

	switch {
	case eo.load != "":
		f, err := os.Open(eo.load)
		if err != nil {
			log.Fatalf("can't open the snapshot: %v", err)
		}
		err = u.Load(f)
		f.Close()
		if err != nil {
			log.Fatalf("can't load the snapshot %s: %v", eo.load, err)
		}
	case eo.randomData:
		u.SettleWithRandomData()
	default:
		u.SettleTemplate("testSample1")
	}

	switch {
	case eo.gui:
		v := view.NewWindow(eo.scale)
		u.RegisterViewer(v)
		v.Start()
	case eo.interactive:
		v := view.NewViewTerminal()
		u.RegisterViewer(v)
		v.Start()
	default:
		v := view.NewConsoleOut()
		u.RegisterViewer(v)
		v.Start()
		u.Run()
		for st := range stateCh {
			if st.RunningMode == universe.RunningStateFinished {
				break
			}
		}
	}

	if eo.save != "" {
		save(u, eo.save)
	}
	u.Close()
}

//save writes the universe snapshot to the file, the previous content is replaced
func save(u universe.Universe, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("can't create the snapshot: %v", err)
		return
	}
	defer f.Close()
	if err := u.Save(f); err != nil {
		log.Printf("can't save the snapshot %s: %v", path, err)
	}
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	uo = &universe.DefaultUniverseOptions
	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	eo = &EnvOptions{engine: "tree", scale: 8}
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field, rounded up to a power of two")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	flaggy.Int64(&uo.Seed, "", "seed", "Seed of the random data")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.gui, "g", "gui", "Open the universe in a window (requires the ebiten build tag)")
	flaggy.Int(&eo.scale, "", "scale", "Cell size in pixels for the window")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.String(&eo.load, "l", "load", "Load the universe from a snapshot file")
	flaggy.String(&eo.save, "o", "save", "Save the universe to a snapshot file on exit")

	flaggy.Parse()

	if _, ok := engines[eo.engine]; !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	if eo.gui && !view.WindowAvailable {
		flaggy.ShowHelpAndExit("the window viewer is not built in, rebuild with -tags ebiten")
	}

	if !eo.interactive && !eo.gui {
		flaggy.ShowHelp("")
	}

	return
}
