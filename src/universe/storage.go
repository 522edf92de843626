package universe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"lifegrid/src/cell"
)

var (
	ErrMalformedSnapshot = errors.New("universe: malformed snapshot")
	ErrSnapshotTooWide   = errors.New("universe: snapshot does not fit the maximal width")
)

//writeSnapshot writes one "row,column" record per live cell, rows first
func writeSnapshot(w io.Writer, m *cell.LiveSet) error {
	cw := csv.NewWriter(w)
	for _, p := range m.Points() {
		if err := cw.Write([]string{strconv.Itoa(p.Y), strconv.Itoa(p.X)}); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

//readSnapshot reads the records written by writeSnapshot
//lines starting with # are comments, every cell must lie inside maxWidth
func readSnapshot(r io.Reader, maxWidth int) (*cell.LiveSet, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	m := cell.NewLiveSet()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return m, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
		line, _ := cr.FieldPos(0)
		row, rowErr := strconv.Atoi(record[0])
		col, colErr := strconv.Atoi(record[1])
		if rowErr != nil || colErr != nil || row < 0 || col < 0 {
			return nil, fmt.Errorf("%w: line %d: %q is not a cell position", ErrMalformedSnapshot, line, record)
		}
		if row >= maxWidth || col >= maxWidth {
			return nil, fmt.Errorf("%w: line %d: (%d,%d) beyond %d", ErrSnapshotTooWide, line, row, col, maxWidth)
		}
		m.MarkAsAlive(image.Pt(col, row))
	}
}
