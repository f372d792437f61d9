// Package anchor provides grid positions for floating objects and the index
// rules used to keep them consistent when rows or columns are inserted or
// removed.
package anchor

import "math"

// Axis selects the grid dimension an edit applies to.
type Axis int

const (
	// Row edits shift row indices.
	Row Axis = iota
	// Column edits shift column indices.
	Column
)

// String returns "row" or "column".
func (a Axis) String() string {
	if a == Column {
		return "column"
	}
	return "row"
}

// MinIndex is the smallest valid 1-based row or column index.
const MinIndex uint32 = 1

// GridPoint is a 1-based cell position plus a sub-cell offset in EMU.
// Column and row never drop below MinIndex.
type GridPoint struct {
	column       uint32
	columnOffset uint32
	row          uint32
	rowOffset    uint32
}

// NewGridPoint returns a GridPoint, clamping column and row to MinIndex.
func NewGridPoint(column, columnOffset, row, rowOffset uint32) GridPoint {
	return GridPoint{
		column:       clamp(column),
		columnOffset: columnOffset,
		row:          clamp(row),
		rowOffset:    rowOffset,
	}
}

// Column returns the 1-based column index.
func (p GridPoint) Column() uint32 { return clamp(p.column) }

// ColumnOffset returns the offset from the column's left edge in EMU.
func (p GridPoint) ColumnOffset() uint32 { return p.columnOffset }

// Row returns the 1-based row index.
func (p GridPoint) Row() uint32 { return clamp(p.row) }

// RowOffset returns the offset from the row's top edge in EMU.
func (p GridPoint) RowOffset() uint32 { return p.rowOffset }

// SetColumn sets the column index; values below MinIndex become MinIndex.
func (p *GridPoint) SetColumn(v uint32) { p.column = clamp(v) }

// SetColumnOffset sets the column offset.
func (p *GridPoint) SetColumnOffset(v uint32) { p.columnOffset = v }

// SetRow sets the row index; values below MinIndex become MinIndex.
func (p *GridPoint) SetRow(v uint32) { p.row = clamp(v) }

// SetRowOffset sets the row offset.
func (p *GridPoint) SetRowOffset(v uint32) { p.rowOffset = v }

// Index returns the row or column index for axis.
func (p GridPoint) Index(axis Axis) uint32 {
	if axis == Column {
		return p.Column()
	}
	return p.Row()
}

func (p *GridPoint) setIndex(axis Axis, v uint32) {
	if axis == Column {
		p.SetColumn(v)
		return
	}
	p.SetRow(v)
}

// ShiftInsert moves the point when count rows/columns are inserted at pivot.
func (p *GridPoint) ShiftInsert(axis Axis, pivot, count uint32) {
	p.setIndex(axis, InsertIndex(p.Index(axis), pivot, count))
}

// ShiftRemove moves the point when count rows/columns are removed at pivot.
func (p *GridPoint) ShiftRemove(axis Axis, pivot, count uint32) {
	p.setIndex(axis, RemoveIndex(p.Index(axis), pivot, count))
}

// InWindow reports whether the point lies inside the removed window on axis.
func (p GridPoint) InWindow(axis Axis, pivot, count uint32) bool {
	return InWindow(p.Index(axis), pivot, count)
}

// Extent is the explicit size of a point-anchored object in EMU.
type Extent struct {
	Width  int64
	Height int64
}

// InsertIndex returns v after inserting count lines at pivot.
func InsertIndex(v, pivot, count uint32) uint32 {
	v, pivot = clamp(v), clamp(pivot)
	if count == 0 || v < pivot {
		return v
	}
	if v > math.MaxUint32-count {
		return math.MaxUint32
	}
	return v + count
}

// RemoveIndex returns v after removing count lines starting at pivot.
// Indices after the removed window move back by count; indices inside it
// collapse to MinIndex.
func RemoveIndex(v, pivot, count uint32) uint32 {
	v, pivot = clamp(v), clamp(pivot)
	if count == 0 || v < pivot {
		return v
	}
	if v > lastIndex(pivot, count) {
		return v - count
	}
	return MinIndex
}

// InWindow reports whether v lies in [pivot, pivot+count).
func InWindow(v, pivot, count uint32) bool {
	v, pivot = clamp(v), clamp(pivot)
	return count > 0 && v >= pivot && v <= lastIndex(pivot, count)
}

func lastIndex(pivot, count uint32) uint32 {
	if pivot > math.MaxUint32-(count-1) {
		return math.MaxUint32
	}
	return pivot + count - 1
}

func clamp(v uint32) uint32 {
	if v < MinIndex {
		return MinIndex
	}
	return v
}
