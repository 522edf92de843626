//go:build !ebiten

package view

import "lifegrid/src/universe"

//WindowAvailable reports whether the binary was built with the window viewer
const WindowAvailable = false

//Window is a placeholder, the window viewer requires the ebiten build tag
type Window struct{}

//NewWindow panics to indicate that the ebiten build tag is required
func NewWindow(int) *Window {
	panic("view.NewWindow requires building with the 'ebiten' tag")
}

func (w *Window) Register(universe.Universe) {}
func (w *Window) Refresh()                   {}
func (w *Window) Start()                     {}
