//go:build ebiten

package view

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifegrid/src/cell"
	"lifegrid/src/universe"
)

//WindowAvailable reports whether the binary was built with the window viewer
const WindowAvailable = true

var palette = map[cell.Color]color.Color{
	cell.DeadColor:   color.RGBA{0x20, 0x20, 0x28, 0xff},
	cell.LiveColor:   color.RGBA{0x40, 0xe0, 0x60, 0xff},
	cell.BorderColor: color.RGBA{0x38, 0x38, 0x44, 0xff},
}

//Window shows the universe in a desktop window, cells are scale pixels wide
type Window struct {
	u         universe.Universe
	scale     int
	canvas    *ebiten.Image
	redrawAll bool
}

func NewWindow(scale int) *Window {
	if scale <= 0 {
		scale = 1
	}
	return &Window{scale: scale}
}

func (w *Window) Register(u universe.Universe) {
	w.u = u
}

//Refresh does nothing, Draw pulls the changed regions every frame
func (w *Window) Refresh() {}

func (w *Window) Start() {
	size := w.u.Width() * w.scale
	ebiten.SetWindowTitle("lifegrid")
	ebiten.SetWindowSize(size, size)
	if err := ebiten.RunGame(w); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Panicln(err)
	}
}

func (w *Window) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		w.u.Step()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		w.u.Run()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		w.u.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		w.u.Clear()
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		w.u.SettleWithRandomData()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.u.InverseCell(x/w.scale, y/w.scale)
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	size := w.u.Width() * w.scale
	if w.canvas == nil || w.canvas.Bounds().Dx() != size {
		w.canvas = ebiten.NewImage(size, size)
		w.redrawAll = true
	}
	w.u.Redraw(imageSurface{w.canvas}, w.canvas.Bounds(), w.redrawAll)
	w.redrawAll = false
	screen.DrawImage(w.canvas, nil)

	st := w.u.Status()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("step %d  live %d  %v", st.IterationNum, st.LiveCells, st.IterationTime))
}

func (w *Window) Layout(_, _ int) (int, int) {
	size := w.u.Width() * w.scale
	return size, size
}

//imageSurface paints cells into an offscreen image kept between frames
type imageSurface struct {
	img *ebiten.Image
}

func (s imageSurface) FillRegion(r image.Rectangle, c cell.Color) {
	s.img.SubImage(r).(*ebiten.Image).Fill(palette[c])
}

//DrawBorderLines draws the top and left lines, cells smaller than 3 pixels get none
func (s imageSurface) DrawBorderLines(r image.Rectangle, c cell.Color) {
	if r.Dx() < 3 || r.Dy() < 3 {
		return
	}
	s.FillRegion(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	s.FillRegion(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
}
