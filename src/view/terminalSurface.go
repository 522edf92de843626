package view

import (
	"bytes"
	"image"

	"lifegrid/src/cell"
)

//TerminalSurface keeps one glyph per cell between redraws,
//so the universe only needs to paint the regions which changed
type TerminalSurface struct {
	width  int
	glyphs []string
	filler map[cell.Color]string
}

func NewTerminalSurface(liveFiller string, deadFiller string) *TerminalSurface {
	return &TerminalSurface{
		filler: map[cell.Color]string{
			cell.LiveColor: liveFiller,
			cell.DeadColor: deadFiller,
		},
	}
}

//Resize reallocates the glyph buffer for a universe of the given width
//it returns true when the buffer was reallocated and has to be painted entirely
func (s *TerminalSurface) Resize(width int) bool {
	if width == s.width {
		return false
	}
	s.width = width
	s.glyphs = make([]string, width*width)
	return true
}

//Bounds returns the region the universe is drawn into, one terminal char per cell
func (s *TerminalSurface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.width, s.width)
}

func (s *TerminalSurface) FillRegion(r image.Rectangle, c cell.Color) {
	glyph, ok := s.filler[c]
	if !ok {
		return
	}
	r = r.Intersect(s.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.glyphs[y*s.width+x] = glyph
		}
	}
}

//DrawBorderLines does nothing, a terminal char has no room for the grid lines
func (s *TerminalSurface) DrawBorderLines(image.Rectangle, cell.Color) {}

//Render writes the buffer cropped to maxW x maxH chars, lines are separated by line feeds
//it returns true if the buffer did not fit
func (s *TerminalSurface) Render(b *bytes.Buffer, maxW int, maxH int) (cropped bool) {
	cropped = s.width > maxW || s.width > maxH
	for y := 0; y < s.width && y < maxH; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < s.width && x < maxW; x++ {
			b.WriteString(s.glyphs[y*s.width+x])
		}
	}
	return
}
