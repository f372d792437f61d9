package drawing

import "github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"

// OneCellAnchor is a point-anchored object: one grid point plus an explicit
// extent. Its size does not follow the grid.
type OneCellAnchor struct {
	From    anchor.GridPoint
	Extent  anchor.Extent
	Content Content
}

// NewOneCellAnchor returns an anchor at from with the given extent.
func NewOneCellAnchor(from anchor.GridPoint, extent anchor.Extent) *OneCellAnchor {
	return &OneCellAnchor{From: from, Extent: extent}
}

// IsImage reports whether the anchor holds a picture.
func (a *OneCellAnchor) IsImage() bool {
	return a.Content.Kind == ContentPicture
}

// ShiftInsert implements anchor.Adjustable.
func (a *OneCellAnchor) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	a.From.ShiftInsert(axis, pivot, count)
}

// ShiftRemove implements anchor.Adjustable.
func (a *OneCellAnchor) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	a.From.ShiftRemove(axis, pivot, count)
}

// IsRemovalEligible implements anchor.Adjustable.
func (a *OneCellAnchor) IsRemovalEligible(axis anchor.Axis, pivot, count uint32) bool {
	return a.From.InWindow(axis, pivot, count)
}

// TwoCellAnchor is a range-anchored object spanning From to To. Both points
// are adjusted independently, so an edit may leave To before From.
type TwoCellAnchor struct {
	// EditAs is the editAs attribute ("twoCell", "oneCell", "absolute").
	EditAs  string
	From    anchor.GridPoint
	To      anchor.GridPoint
	Content Content
}

// NewTwoCellAnchor returns an anchor spanning from..to.
func NewTwoCellAnchor(from, to anchor.GridPoint) *TwoCellAnchor {
	return &TwoCellAnchor{From: from, To: to}
}

// IsImage reports whether the anchor holds a picture.
func (a *TwoCellAnchor) IsImage() bool {
	return a.Content.Kind == ContentPicture
}

// IsChart reports whether the anchor holds a chart frame.
func (a *TwoCellAnchor) IsChart() bool {
	return a.Content.Kind == ContentGraphicFrame && a.Content.Chart
}

// ShiftInsert implements anchor.Adjustable.
func (a *TwoCellAnchor) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	a.From.ShiftInsert(axis, pivot, count)
	a.To.ShiftInsert(axis, pivot, count)
}

// ShiftRemove implements anchor.Adjustable.
func (a *TwoCellAnchor) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	a.From.ShiftRemove(axis, pivot, count)
	a.To.ShiftRemove(axis, pivot, count)
}

// IsRemovalEligible implements anchor.Adjustable.
func (a *TwoCellAnchor) IsRemovalEligible(axis anchor.Axis, pivot, count uint32) bool {
	return a.From.InWindow(axis, pivot, count) && a.To.InWindow(axis, pivot, count)
}
