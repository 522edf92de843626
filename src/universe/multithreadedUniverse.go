package universe

import (
	"sync"

	"lifegrid/src/cell"
)

/*
	Universe implementation with multithreaded computation algorithm
	the upper levels of the tree hand their four quadrants to individual goroutines,
	so each region is figured and committed concurrently
*/

const (
	DefFanoutLevels = 2 //levels of the tree splitting the work, 4^levels goroutines
)

type MultithreadedUniverse struct {
	*BaseUniverse
	levels int
}

func NewMultithreadedUniverse(o *Options, stateCh chan Status) Universe {
	mu := MultithreadedUniverse{BaseUniverse: NewBaseUniverse(o, stateCh), levels: DefFanoutLevels}
	//redefine the nextIteration
	mu.BaseUniverse.nextIteration = mu.nextIteration
	workers := 1
	for i := 0; i < mu.levels; i++ {
		workers *= 4
	}
	mu.options.Advanced["engine"] = "parallel"
	mu.options.Advanced["Workers"] = workers
	return &mu
}

//nextIteration spreads the upper tree levels over goroutines and runs one generation
//the fanout is installed every time because Grow, Clear and Load replace the root
func (mu *MultithreadedUniverse) nextIteration() (hasLiveEntities bool, changed bool) {
	mu.tree.Lock()
	defer mu.tree.Unlock()
	mu.installFanout(mu.tree.root, mu.levels)
	return mu.generation()
}

//installFanout sets the parallel runner on n and its descendants down to the given number of levels
func (mu *MultithreadedUniverse) installFanout(n *cell.Neighborhood, levels int) {
	if levels == 0 {
		return
	}
	n.SetFanout(spread)
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			if sub, ok := n.Edge(row, col).(*cell.Neighborhood); ok {
				mu.installFanout(sub, levels-1)
			}
		}
	}
}

//spread runs every task in its own goroutine and waits for all of them
func spread(tasks []func()) {
	var waitGroup sync.WaitGroup
	for _, task := range tasks {
		waitGroup.Add(1)
		go func(task func()) {
			task()
			waitGroup.Done()
		}(task)
	}
	waitGroup.Wait()
}
