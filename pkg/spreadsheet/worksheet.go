package spreadsheet

import (
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/parser"
)

// Worksheet is one worksheet of a workbook and its drawing layer.
type Worksheet struct {
	name string
	path string

	part        *parser.WorksheetPart
	drawingPart *parser.DrawingPart
	drawing     *drawing.WorksheetDrawing
	oles        drawing.OleObjects
}

// Name returns the sheet name.
func (s *Worksheet) Name() string { return s.name }

// Path returns the worksheet part path inside the package.
func (s *Worksheet) Path() string { return s.path }

// Drawing returns the drawing collection of the sheet. It is empty, never
// nil, for a sheet without a drawing part.
func (s *Worksheet) Drawing() *drawing.WorksheetDrawing { return s.drawing }

// OleObjects returns the embedded objects of the sheet in document order.
func (s *Worksheet) OleObjects() []*drawing.OleObject { return s.oles.Items() }

// HasDrawingPart reports whether the sheet has a drawing part that new
// anchors can be written to.
func (s *Worksheet) HasDrawingPart() bool { return s.drawingPart != nil }

// insert applies the anchor pass of an insert edit to this sheet.
func (s *Worksheet) insert(axis anchor.Axis, pivot, count uint32) {
	s.drawing.Insert(axis, pivot, count)
	s.oles.Insert(axis, pivot, count)
}

// remove applies the anchor pass of a remove edit to this sheet.
func (s *Worksheet) remove(axis anchor.Axis, pivot, count uint32) {
	s.drawing.Remove(axis, pivot, count)
	s.oles.Remove(axis, pivot, count)
}

// pairOleAnchors attaches the drawing anchors of OLE objects to the objects
// parsed from the worksheet. Anchors are matched by legacy shape id first,
// then in document order. Anchors left over are kept as plain shapes at
// their document position.
func (s *Worksheet) pairOleAnchors(anchors []*parser.OleAnchor) {
	objects := s.oles.Items()
	paired := make([]bool, len(anchors))
	for i, a := range anchors {
		if a.ShapeID == "" {
			continue
		}
		for _, o := range objects {
			if o.Anchor == nil && o.ShapeID == a.ShapeID {
				o.Anchor = a.Anchor
				paired[i] = true
				break
			}
		}
	}
	kept := 0
	for i, a := range anchors {
		if paired[i] {
			continue
		}
		for _, o := range objects {
			if o.Anchor == nil && (o.ShapeID == "" || a.ShapeID == "") {
				o.Anchor = a.Anchor
				paired[i] = true
				break
			}
		}
		if !paired[i] {
			s.drawing.InsertTwoCellAnchor(a.Slot+kept, a.Anchor)
			kept++
		}
	}
}
