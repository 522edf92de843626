package universe

import (
	"image"
	"io"

	"lifegrid/src/cell"
)

type Universe interface {
	Status() Status
	Options() Options
	Width() int
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string)
	SettleWithRandomData()
	Settle(vc [][]int)
	InverseCell(x int, y int)
	Redraw(s cell.Surface, here image.Rectangle, drawAll bool)
	RegisterViewer(v Viewer)
	Save(w io.Writer) error
	Load(r io.Reader) error
	Run()
	Stop()
	Step()
	Clear()
	Close()
}
