package drawing

import "github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"

// Embedding describes the embedded file behind an OLE object.
type Embedding struct {
	Part      string
	Extension string
	// Streams lists the compound-file streams of a binary embedding.
	Streams []string
	// Properties holds property-set values (e.g. SummaryInformation).
	Properties map[string]string
}

// OleObject is an embedded object. It is positioned twice: by a two-cell
// anchor in the drawing part and by the objectPr anchor in the worksheet
// part. Both are kept in step.
type OleObject struct {
	ProgID  string
	ShapeID string
	RelID   string
	// Requires is the mc:Choice Requires attribute, if any.
	Requires string

	Anchor       *TwoCellAnchor
	ObjectAnchor *TwoCellAnchor
	Embedding    *Embedding
}

// IsBin reports whether the object embeds a binary compound file.
func (o *OleObject) IsBin() bool {
	return o.Embedding != nil && o.Embedding.Extension == "bin"
}

// IsXlsx reports whether the object embeds a workbook.
func (o *OleObject) IsXlsx() bool {
	return o.Embedding != nil && o.Embedding.Extension == "xlsx"
}

func (o *OleObject) primary() *TwoCellAnchor {
	if o.Anchor != nil {
		return o.Anchor
	}
	return o.ObjectAnchor
}

// ShiftInsert implements anchor.Adjustable.
func (o *OleObject) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	if o.Anchor != nil {
		o.Anchor.ShiftInsert(axis, pivot, count)
	}
	if o.ObjectAnchor != nil {
		o.ObjectAnchor.ShiftInsert(axis, pivot, count)
	}
}

// ShiftRemove implements anchor.Adjustable.
func (o *OleObject) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	if o.Anchor != nil {
		o.Anchor.ShiftRemove(axis, pivot, count)
	}
	if o.ObjectAnchor != nil {
		o.ObjectAnchor.ShiftRemove(axis, pivot, count)
	}
}

// IsRemovalEligible implements anchor.Adjustable.
func (o *OleObject) IsRemovalEligible(axis anchor.Axis, pivot, count uint32) bool {
	a := o.primary()
	return a != nil && a.IsRemovalEligible(axis, pivot, count)
}

// OleObjects is the ordered set of OLE objects of a worksheet.
type OleObjects struct {
	items []*OleObject
}

// Add appends an object.
func (s *OleObjects) Add(o *OleObject) {
	s.items = append(s.items, o)
}

// Items returns the objects in document order.
func (s *OleObjects) Items() []*OleObject {
	return s.items
}

// Len returns the number of objects.
func (s *OleObjects) Len() int {
	return len(s.items)
}

// Insert shifts every object for an insert edit.
func (s *OleObjects) Insert(axis anchor.Axis, pivot, count uint32) {
	anchor.ShiftAll(s.items, axis, pivot, count)
}

// Remove drops the objects inside the removed window, then shifts the rest.
func (s *OleObjects) Remove(axis anchor.Axis, pivot, count uint32) {
	s.items = anchor.Compact(s.items, axis, pivot, count)
}
