package drawing

import (
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// Chart is a chart frame. Its visual position comes from Anchor, while
// References hold the series formulas, which may name any sheet of the
// workbook. The two are adjusted independently.
type Chart struct {
	Anchor *TwoCellAnchor
	// Part is the chart part path inside the package, if known.
	Part  string
	Type  string
	Title string
	// References are the c:f formulas of the chart in document order.
	References []*reference.Formula
}

// NewChart wraps a chart frame anchor.
func NewChart(a *TwoCellAnchor) *Chart {
	return &Chart{Anchor: a}
}

// From returns the top-left grid point of the chart frame.
func (c *Chart) From() anchor.GridPoint {
	if c.Anchor == nil {
		return anchor.GridPoint{}
	}
	return c.Anchor.From
}

// ShiftInsert implements anchor.Adjustable.
func (c *Chart) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	if c.Anchor != nil {
		c.Anchor.ShiftInsert(axis, pivot, count)
	}
}

// ShiftRemove implements anchor.Adjustable.
func (c *Chart) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	if c.Anchor != nil {
		c.Anchor.ShiftRemove(axis, pivot, count)
	}
}

// IsRemovalEligible implements anchor.Adjustable.
func (c *Chart) IsRemovalEligible(axis anchor.Axis, pivot, count uint32) bool {
	return c.Anchor != nil && c.Anchor.IsRemovalEligible(axis, pivot, count)
}

// ShiftInsertWithSheet rewrites the data references naming sheet for an
// insert on that sheet. It reports whether any reference changed.
func (c *Chart) ShiftInsertWithSheet(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	changed := false
	for _, f := range c.References {
		if f.ShiftInsert(sheet, axis, pivot, count) {
			changed = true
		}
	}
	return changed
}

// ShiftRemoveWithSheet rewrites the data references naming sheet for a
// remove on that sheet. It reports whether any reference changed.
func (c *Chart) ShiftRemoveWithSheet(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	changed := false
	for _, f := range c.References {
		if f.ShiftRemove(sheet, axis, pivot, count) {
			changed = true
		}
	}
	return changed
}

// ReferencesSheet reports whether any data reference names sheet.
func (c *Chart) ReferencesSheet(sheet string) bool {
	for _, f := range c.References {
		if f.References(sheet) {
			return true
		}
	}
	return false
}
