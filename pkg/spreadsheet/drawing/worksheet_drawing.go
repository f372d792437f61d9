package drawing

import (
	"slices"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// WorksheetDrawing owns the floating objects of one worksheet, partitioned
// by kind. Each slice keeps insertion order across edits.
type WorksheetDrawing struct {
	images         []*Image
	charts         []*Chart
	oneCellAnchors []*OneCellAnchor
	twoCellAnchors []*TwoCellAnchor
}

// NewWorksheetDrawing returns an empty collection.
func NewWorksheetDrawing() *WorksheetDrawing {
	return &WorksheetDrawing{}
}

// Images returns the pictures in insertion order.
func (d *WorksheetDrawing) Images() []*Image { return d.images }

// Charts returns the charts in insertion order.
func (d *WorksheetDrawing) Charts() []*Chart { return d.charts }

// OneCellAnchors returns the point-anchored shapes in insertion order.
func (d *WorksheetDrawing) OneCellAnchors() []*OneCellAnchor { return d.oneCellAnchors }

// TwoCellAnchors returns the range-anchored shapes in insertion order.
func (d *WorksheetDrawing) TwoCellAnchors() []*TwoCellAnchor { return d.twoCellAnchors }

// AddImage appends a picture.
func (d *WorksheetDrawing) AddImage(img *Image) { d.images = append(d.images, img) }

// AddChart appends a chart.
func (d *WorksheetDrawing) AddChart(c *Chart) { d.charts = append(d.charts, c) }

// AddOneCellAnchor appends a point-anchored shape.
func (d *WorksheetDrawing) AddOneCellAnchor(a *OneCellAnchor) {
	d.oneCellAnchors = append(d.oneCellAnchors, a)
}

// AddTwoCellAnchor appends a range-anchored shape.
func (d *WorksheetDrawing) AddTwoCellAnchor(a *TwoCellAnchor) {
	d.twoCellAnchors = append(d.twoCellAnchors, a)
}

// InsertTwoCellAnchor places a range-anchored shape at position i of the
// two-cell anchors. Positions past the end append.
func (d *WorksheetDrawing) InsertTwoCellAnchor(i int, a *TwoCellAnchor) {
	i = max(0, min(i, len(d.twoCellAnchors)))
	d.twoCellAnchors = slices.Insert(d.twoCellAnchors, i, a)
}

// HasDrawingObject reports whether the collection holds any object.
func (d *WorksheetDrawing) HasDrawingObject() bool {
	return len(d.images) > 0 || len(d.charts) > 0 ||
		len(d.oneCellAnchors) > 0 || len(d.twoCellAnchors) > 0
}

// Image returns the first picture whose top-left cell is (col, row).
func (d *WorksheetDrawing) Image(col, row uint32) *Image {
	for _, img := range d.images {
		if at(img.From(), col, row) {
			return img
		}
	}
	return nil
}

// ImagesAt returns every picture whose top-left cell is (col, row).
func (d *WorksheetDrawing) ImagesAt(col, row uint32) []*Image {
	var out []*Image
	for _, img := range d.images {
		if at(img.From(), col, row) {
			out = append(out, img)
		}
	}
	return out
}

// Chart returns the first chart whose top-left cell is (col, row).
func (d *WorksheetDrawing) Chart(col, row uint32) *Chart {
	for _, c := range d.charts {
		if at(c.From(), col, row) {
			return c
		}
	}
	return nil
}

// ChartsAt returns every chart whose top-left cell is (col, row).
func (d *WorksheetDrawing) ChartsAt(col, row uint32) []*Chart {
	var out []*Chart
	for _, c := range d.charts {
		if at(c.From(), col, row) {
			out = append(out, c)
		}
	}
	return out
}

func at(p anchor.GridPoint, col, row uint32) bool {
	return p.Column() == col && p.Row() == row
}

// Insert shifts every object for count rows or columns inserted at pivot.
// Nothing is removed.
func (d *WorksheetDrawing) Insert(axis anchor.Axis, pivot, count uint32) {
	anchor.ShiftAll(d.oneCellAnchors, axis, pivot, count)
	anchor.ShiftAll(d.twoCellAnchors, axis, pivot, count)
	anchor.ShiftAll(d.charts, axis, pivot, count)
	anchor.ShiftAll(d.images, axis, pivot, count)
}

// Remove drops every object lying entirely inside the removed window, tested
// on the pre-edit coordinates, then shifts the survivors.
func (d *WorksheetDrawing) Remove(axis anchor.Axis, pivot, count uint32) {
	d.oneCellAnchors = anchor.Compact(d.oneCellAnchors, axis, pivot, count)
	d.twoCellAnchors = anchor.Compact(d.twoCellAnchors, axis, pivot, count)
	d.charts = anchor.Compact(d.charts, axis, pivot, count)
	d.images = anchor.Compact(d.images, axis, pivot, count)
}

// InsertWithSheet rewrites the chart data references that name sheet for an
// insert on that sheet. Anchors are not touched. It reports whether any
// reference changed.
func (d *WorksheetDrawing) InsertWithSheet(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	return d.eachReference(func(f *reference.Formula) bool {
		return f.ShiftInsert(sheet, axis, pivot, count)
	})
}

// RemoveWithSheet rewrites the chart data references that name sheet for a
// remove on that sheet. Anchors are not touched. It reports whether any
// reference changed.
func (d *WorksheetDrawing) RemoveWithSheet(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	return d.eachReference(func(f *reference.Formula) bool {
		return f.ShiftRemove(sheet, axis, pivot, count)
	})
}

// eachReference calls fn once per distinct chart formula. Frames of one
// chart part share their formulas.
func (d *WorksheetDrawing) eachReference(fn func(*reference.Formula) bool) bool {
	seen := make(map[*reference.Formula]bool)
	changed := false
	for _, c := range d.charts {
		for _, f := range c.References {
			if seen[f] {
				continue
			}
			seen[f] = true
			if fn(f) {
				changed = true
			}
		}
	}
	return changed
}
