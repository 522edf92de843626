package universe

import (
	"sort"
	"testing"
)

var (
	testTemplate = Template{"ts1", "", [][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}, {3, 3}, {4, 2}, {4, 3}, {5, 3}}}

	//r-pentomino in the middle of the field, keeps changing for a thousand generations
	rPentomino = Template{"r", "", [][]int{{100, 99}, {101, 99}, {99, 100}, {100, 100}, {100, 101}}}

	//a blinker near the corner of a wide field, the rest of the tree stays idle
	cornerBlinker = Template{"blinker", "", [][]int{{2, 3}, {3, 3}, {4, 3}}}

	engines = map[string]func(o *Options, stateCh chan Status) Universe{
		"tree": func(o *Options, stateCh chan Status) Universe {
			return NewBaseUniverse(o, stateCh)
		},
		"parallel": NewMultithreadedUniverse,
	}
)

const (
	width     = 256
	idleWidth = 1024
)

func universeStep(u Universe, tmpl Template, b *testing.B) {
	u.AddTemplate(tmpl)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleTemplate(tmpl.Name)
		b.StartTimer()
		u.Step()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func universeRun(u Universe, tmpl Template, b *testing.B) {
	u.AddTemplate(tmpl)
	stateCh := u.StateCh()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		u.Clear()
		<-stateCh //wait for finish
		u.SettleTemplate(tmpl.Name)
		b.StartTimer()
		u.Run()
		for {
			st := <-stateCh
			if st.RunningMode == RunningStateFinished {
				break
			}
		}
	}
	u.Close()
	close(stateCh)
}

func newStateCh() chan Status {
	return make(chan Status, 10)
}

func newUniverseOptions() *Options {
	o := DefaultUniverseOptions
	o.Interval = 0
	o.Width = width
	o.MaxSteps = 200
	return &o
}

func engineNames() (engineNames []string) {
	engineNames = make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	return
}

func Benchmark_Step(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			u := engines[e](newUniverseOptions(), newStateCh())
			universeStep(u, rPentomino, b)
		})
	}
}

func Benchmark_Universe(b *testing.B) {
	for _, e := range engineNames() {
		for _, tmpl := range []Template{testTemplate, rPentomino} {
			b.Run(e+"/"+tmpl.Name, func(b *testing.B) {
				u := engines[e](newUniverseOptions(), newStateCh())
				universeRun(u, tmpl, b)
			})
		}
	}
}

//Benchmark_IdleField steps a wide field where only one blinker changes,
//the cost should follow the blinker, not the field width
func Benchmark_IdleField(b *testing.B) {
	for _, e := range engineNames() {
		b.Run(e, func(b *testing.B) {
			o := newUniverseOptions()
			o.Width = idleWidth
			o.MaxWidth = idleWidth
			o.MaxSteps = 0
			u := engines[e](o, newStateCh())
			u.AddTemplate(cornerBlinker)
			u.SettleTemplate(cornerBlinker.Name)
			stateCh := u.StateCh()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Step()
				for {
					st := <-stateCh
					if st.RunningMode == RunningStateManual || st.RunningMode == RunningStateFinished {
						break
					}
				}
			}
			b.StopTimer()
			u.Close()
			close(stateCh)
		})
	}
}
