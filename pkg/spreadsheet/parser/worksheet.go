package parser

import (
	"encoding/xml"
	"io"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

// WorksheetPart is a parsed worksheet part. Only the drawing relationship
// and the oleObjects block are modelled; everything else is kept verbatim.
type WorksheetPart struct {
	Path         string
	DrawingRelID string

	data      []byte
	container span
	records   []*oleRecord
}

type oleRecord struct {
	span   span
	object *drawing.OleObject
	from   []marker
	to     []marker
}

// ParseWorksheetPart parses the worksheet part at path.
func ParseWorksheetPart(path string, data []byte) (*WorksheetPart, error) {
	ws := &WorksheetPart{Path: path, data: data}
	w := newWalker(data)

	var stack []string
	var cur *oleRecord
	var inOleObjects, inFallback bool
	var acStart int64 = -1

	for {
		token, err := w.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			switch t.Name.Local {
			case "drawing":
				if parent == "worksheet" {
					ws.DrawingRelID = attrValue(t, "id")
				}
			case "oleObjects":
				inOleObjects = true
				ws.container.start = w.start
			case "AlternateContent":
				if inOleObjects {
					acStart = w.start
				}
			case "Fallback":
				if acStart >= 0 {
					inFallback = true
				}
			case "oleObject":
				if inOleObjects && cur == nil {
					cur = &oleRecord{
						span: span{start: w.start},
						object: &drawing.OleObject{
							ProgID:  attrValue(t, "progId"),
							ShapeID: attrValue(t, "shapeId"),
							RelID:   attrValue(t, "id"),
						},
					}
					if acStart >= 0 {
						cur.span.start = acStart
					}
				}
			case "from", "to":
				if cur != nil && !inFallback && parent == "anchor" {
					m, err := w.readMarker()
					if err != nil {
						return nil, err
					}
					if cur.object.ObjectAnchor == nil {
						cur.object.ObjectAnchor = &drawing.TwoCellAnchor{EditAs: "oneCell"}
					}
					if t.Name.Local == "from" {
						cur.object.ObjectAnchor.From = m.point
						cur.from = append(cur.from, m)
					} else {
						cur.object.ObjectAnchor.To = m.point
						cur.to = append(cur.to, m)
					}
					continue
				}
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			switch t.Name.Local {
			case "oleObject":
				if cur != nil && acStart < 0 {
					cur.span.end = w.end
					ws.records = append(ws.records, cur)
					cur = nil
				}
			case "Fallback":
				inFallback = false
			case "AlternateContent":
				if cur != nil && acStart >= 0 {
					cur.span.end = w.end
					ws.records = append(ws.records, cur)
					cur = nil
				}
				acStart = -1
			case "oleObjects":
				inOleObjects = false
				ws.container.end = w.end
			}
		}
	}
	return ws, nil
}

// OleObjects returns the parsed OLE objects in document order.
func (ws *WorksheetPart) OleObjects() []*drawing.OleObject {
	out := make([]*drawing.OleObject, len(ws.records))
	for i, rec := range ws.records {
		out[i] = rec.object
	}
	return out
}

// Render returns the worksheet part for the live OLE objects: removed
// objects are cut out with their mc:AlternateContent wrapper and moved
// objectPr anchors get their new values. An emptied oleObjects block is
// removed as a whole.
func (ws *WorksheetPart) Render(live []*drawing.OleObject) []byte {
	alive := make(map[*drawing.OleObject]bool, len(live))
	for _, o := range live {
		alive[o] = true
	}

	var edits []edit
	kept := 0
	for _, rec := range ws.records {
		if !alive[rec.object] {
			edits = append(edits, edit{span: rec.span})
			continue
		}
		kept++
		if a := rec.object.ObjectAnchor; a != nil {
			for _, m := range rec.from {
				edits = append(edits, m.edits(a.From)...)
			}
			for _, m := range rec.to {
				edits = append(edits, m.edits(a.To)...)
			}
		}
	}
	if kept == 0 && len(ws.records) > 0 && ws.container.valid() {
		edits = []edit{{span: ws.container}}
	}
	return splice(ws.data, edits)
}
