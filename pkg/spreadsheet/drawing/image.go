package drawing

import "github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"

// Image is a picture owning exactly one anchor, either point or range.
type Image struct {
	oneCell *OneCellAnchor
	twoCell *TwoCellAnchor
}

// NewOneCellImage wraps a point-anchored picture.
func NewOneCellImage(a *OneCellAnchor) *Image {
	return &Image{oneCell: a}
}

// NewTwoCellImage wraps a range-anchored picture.
func NewTwoCellImage(a *TwoCellAnchor) *Image {
	return &Image{twoCell: a}
}

// OneCellAnchor returns the point anchor, or nil.
func (i *Image) OneCellAnchor() *OneCellAnchor { return i.oneCell }

// TwoCellAnchor returns the range anchor, or nil.
func (i *Image) TwoCellAnchor() *TwoCellAnchor { return i.twoCell }

// From returns the top-left grid point of the picture.
func (i *Image) From() anchor.GridPoint {
	if i.twoCell != nil {
		return i.twoCell.From
	}
	if i.oneCell != nil {
		return i.oneCell.From
	}
	return anchor.GridPoint{}
}

// Content returns the picture element description.
func (i *Image) Content() Content {
	if i.twoCell != nil {
		return i.twoCell.Content
	}
	if i.oneCell != nil {
		return i.oneCell.Content
	}
	return Content{}
}

func (i *Image) adjustable() anchor.Adjustable {
	if i.twoCell != nil {
		return i.twoCell
	}
	if i.oneCell != nil {
		return i.oneCell
	}
	return nil
}

// ShiftInsert implements anchor.Adjustable.
func (i *Image) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	if a := i.adjustable(); a != nil {
		a.ShiftInsert(axis, pivot, count)
	}
}

// ShiftRemove implements anchor.Adjustable.
func (i *Image) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	if a := i.adjustable(); a != nil {
		a.ShiftRemove(axis, pivot, count)
	}
}

// IsRemovalEligible implements anchor.Adjustable.
func (i *Image) IsRemovalEligible(axis anchor.Axis, pivot, count uint32) bool {
	if a := i.adjustable(); a != nil {
		return a.IsRemovalEligible(axis, pivot, count)
	}
	return false
}
