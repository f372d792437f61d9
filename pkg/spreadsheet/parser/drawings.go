package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

// ErrNotAppendable is returned when anchors are added to a drawing part
// that has no closing root tag to insert them before.
var ErrNotAppendable = errors.New("drawing part cannot take new anchors")

// OleAnchor is a drawing anchor wrapped in mc:AlternateContent, which is how
// OLE objects are placed on the drawing layer.
type OleAnchor struct {
	Anchor *drawing.TwoCellAnchor
	// ShapeID is the numeric VML shape id (from compatExt spid), if any.
	ShapeID  string
	Requires string
	// Slot is the position among the drawing's two-cell anchors the anchor
	// takes when no OLE object claims it.
	Slot int
}

// DrawingPart is a parsed xdr:wsDr part. It builds the worksheet drawing
// model and re-emits the part from it.
type DrawingPart struct {
	Path       string
	Drawing    *drawing.WorksheetDrawing
	OleAnchors []*OleAnchor

	data      []byte
	prefix    string
	prefixA   string
	declaresA bool
	closeAt   int64
	records   []*anchorRecord
	maxID     int
}

// anchorRecord ties a parsed anchor element to its model object. An
// mc:AlternateContent wrapper yields one record whose markers come from
// every anchor inside it.
type anchorRecord struct {
	span span
	one  *drawing.OneCellAnchor
	two  *drawing.TwoCellAnchor
	from []marker
	to   []marker
}

func (r *anchorRecord) key() any {
	if r.one != nil {
		return r.one
	}
	return r.two
}

func (r *anchorRecord) edits() []edit {
	var out []edit
	if r.one != nil {
		for _, m := range r.from {
			out = append(out, m.edits(r.one.From)...)
		}
		return out
	}
	for _, m := range r.from {
		out = append(out, m.edits(r.two.From)...)
	}
	for _, m := range r.to {
		out = append(out, m.edits(r.two.To)...)
	}
	return out
}

// ParseDrawingPart parses the drawing part at path.
func ParseDrawingPart(path string, data []byte) (*DrawingPart, error) {
	p := &DrawingPart{
		Path:    path,
		Drawing: drawing.NewWorksheetDrawing(),
		data:    data,
		prefix:  "xdr",
		prefixA: "a",
		closeAt: -1,
	}

	w := newWalker(data)
	depth := 0
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
			depth++
			if depth == 1 {
				if t.Name.Local != "wsDr" {
					return nil, fmt.Errorf("unexpected root element %q", t.Name.Local)
				}
				p.prefix = prefixFor(t, nsXDR, "xdr")
				p.prefixA = prefixFor(t, nsA, "")
				p.declaresA = p.prefixA != ""
				if !p.declaresA {
					p.prefixA = "a"
				}
				continue
			}
			start := w.start
			switch t.Name.Local {
			case "oneCellAnchor", "twoCellAnchor":
				rec, err := p.parseAnchor(w, t)
				if err != nil {
					return nil, err
				}
				rec.span = span{start: start, end: w.end}
				p.records = append(p.records, rec)
				p.classify(rec)
			case "AlternateContent":
				if err := p.parseAlternateContent(w, start); err != nil {
					return nil, err
				}
			default:
				// absoluteAnchor is not grid-bound and is left as is.
				if err := w.skip(); err != nil {
					return nil, err
				}
			}
			depth--
		case xml.EndElement:
			if depth == 1 && w.start < w.end {
				p.closeAt = w.start
			}
			depth--
		}
	}
	return p, nil
}

// parseAnchor reads a oneCellAnchor or twoCellAnchor element.
func (p *DrawingPart) parseAnchor(w *walker, start xml.StartElement) (*anchorRecord, error) {
	rec := &anchorRecord{}
	var from, to anchor.GridPoint
	var extent anchor.Extent
	var content drawing.Content

	depth := 1
	for depth > 0 {
		token, err := w.next()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				m, err := w.readMarker()
				if err != nil {
					return nil, err
				}
				from = m.point
				rec.from = append(rec.from, m)
				depth--
			case "to":
				m, err := w.readMarker()
				if err != nil {
					return nil, err
				}
				to = m.point
				rec.to = append(rec.to, m)
				depth--
			case "ext":
				if depth == 2 {
					extent.Width, _ = strconv.ParseInt(attrValue(t, "cx"), 10, 64)
					extent.Height, _ = strconv.ParseInt(attrValue(t, "cy"), 10, 64)
				}
			case "sp", "cxnSp", "grpSp", "pic", "graphicFrame", "contentPart":
				content = parseContent(w.d, t)
				if id, err := strconv.Atoi(content.ID); err == nil && id > p.maxID {
					p.maxID = id
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	if start.Name.Local == "oneCellAnchor" {
		rec.one = &drawing.OneCellAnchor{From: from, Extent: extent, Content: content}
		return rec, nil
	}
	rec.two = &drawing.TwoCellAnchor{
		EditAs:  attrValue(start, "editAs"),
		From:    from,
		To:      to,
		Content: content,
	}
	return rec, nil
}

// parseAlternateContent reads an mc:AlternateContent wrapper. The anchors of
// the Choice and Fallback branches describe the same object and share one
// model anchor.
func (p *DrawingPart) parseAlternateContent(w *walker, start int64) error {
	var rec *anchorRecord
	var requires string

	depth := 1
	for depth > 0 {
		token, err := w.next()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "Choice":
				if requires == "" {
					requires = attrValue(t, "Requires")
				}
			case "oneCellAnchor", "twoCellAnchor":
				sub, err := p.parseAnchor(w, t)
				if err != nil {
					return err
				}
				depth--
				if rec == nil {
					rec = sub
					continue
				}
				rec.from = append(rec.from, sub.from...)
				rec.to = append(rec.to, sub.to...)
			}
		case xml.EndElement:
			depth--
		}
	}

	if rec == nil {
		return nil
	}
	rec.span = span{start: start, end: w.end}
	p.records = append(p.records, rec)
	if rec.two == nil {
		p.classify(rec)
		return nil
	}
	p.OleAnchors = append(p.OleAnchors, &OleAnchor{
		Anchor:   rec.two,
		ShapeID:  legacyShapeNumber(rec.two.Content.LegacyShapeID),
		Requires: requires,
		Slot:     len(p.Drawing.TwoCellAnchors()),
	})
	return nil
}

// classify files a parsed anchor into the drawing collection.
func (p *DrawingPart) classify(rec *anchorRecord) {
	switch {
	case rec.one != nil && rec.one.IsImage():
		p.Drawing.AddImage(drawing.NewOneCellImage(rec.one))
	case rec.one != nil:
		p.Drawing.AddOneCellAnchor(rec.one)
	case rec.two.IsImage():
		p.Drawing.AddImage(drawing.NewTwoCellImage(rec.two))
	case rec.two.IsChart():
		p.Drawing.AddChart(drawing.NewChart(rec.two))
	default:
		p.Drawing.AddTwoCellAnchor(rec.two)
	}
}

// legacyShapeNumber turns a VML shape id such as "_x0000_s1025" into "1025".
func legacyShapeNumber(spid string) string {
	if i := strings.LastIndexByte(spid, 's'); i >= 0 {
		return spid[i+1:]
	}
	return spid
}

// liveAnchors returns the model anchors currently held by the drawing and
// by oles.
func (p *DrawingPart) liveAnchors(oles []*drawing.OleObject) map[any]bool {
	live := make(map[any]bool)
	for _, a := range p.Drawing.OneCellAnchors() {
		live[a] = true
	}
	for _, a := range p.Drawing.TwoCellAnchors() {
		live[a] = true
	}
	for _, img := range p.Drawing.Images() {
		if a := img.OneCellAnchor(); a != nil {
			live[a] = true
		}
		if a := img.TwoCellAnchor(); a != nil {
			live[a] = true
		}
	}
	for _, c := range p.Drawing.Charts() {
		if c.Anchor != nil {
			live[c.Anchor] = true
		}
	}
	for _, o := range oles {
		if o.Anchor != nil {
			live[o.Anchor] = true
		}
	}
	return live
}

// newAnchors returns the anchors added through the API, in collection order.
func (p *DrawingPart) newAnchors(recorded map[any]bool) []any {
	var out []any
	add := func(a any) {
		if !recorded[a] {
			out = append(out, a)
		}
	}
	for _, a := range p.Drawing.OneCellAnchors() {
		add(a)
	}
	for _, a := range p.Drawing.TwoCellAnchors() {
		add(a)
	}
	for _, img := range p.Drawing.Images() {
		if a := img.OneCellAnchor(); a != nil {
			add(a)
		}
		if a := img.TwoCellAnchor(); a != nil {
			add(a)
		}
	}
	for _, c := range p.Drawing.Charts() {
		if c.Anchor != nil {
			add(c.Anchor)
		}
	}
	return out
}

// Render returns the drawing part for the current model: removed anchors are
// cut out, moved markers get their new values and new anchors are appended.
func (p *DrawingPart) Render(oles []*drawing.OleObject) ([]byte, error) {
	live := p.liveAnchors(oles)
	recorded := make(map[any]bool, len(p.records))
	var edits []edit
	for _, rec := range p.records {
		key := rec.key()
		recorded[key] = true
		if !live[key] {
			edits = append(edits, edit{span: rec.span})
			continue
		}
		edits = append(edits, rec.edits()...)
	}

	var added bytes.Buffer
	for _, a := range p.newAnchors(recorded) {
		if err := p.writeAnchor(&added, a); err != nil {
			return nil, err
		}
	}
	if added.Len() > 0 {
		if p.closeAt < 0 {
			return nil, fmt.Errorf("%s: %w", p.Path, ErrNotAppendable)
		}
		edits = append(edits, edit{span: span{start: p.closeAt, end: p.closeAt}, text: added.Bytes()})
	}
	return splice(p.data, edits), nil
}

func (p *DrawingPart) tag(local string) string {
	if p.prefix == "" {
		return local
	}
	return p.prefix + ":" + local
}

func (p *DrawingPart) writeMarker(buf *bytes.Buffer, name string, g anchor.GridPoint) {
	fmt.Fprintf(buf, "<%s><%s>%d</%s><%s>%d</%s><%s>%d</%s><%s>%d</%s></%s>",
		p.tag(name),
		p.tag("col"), g.Column()-1, p.tag("col"),
		p.tag("colOff"), g.ColumnOffset(), p.tag("colOff"),
		p.tag("row"), g.Row()-1, p.tag("row"),
		p.tag("rowOff"), g.RowOffset(), p.tag("rowOff"),
		p.tag(name))
}

func (p *DrawingPart) writeAnchor(buf *bytes.Buffer, a any) error {
	switch a := a.(type) {
	case *drawing.OneCellAnchor:
		fmt.Fprintf(buf, "<%s>", p.tag("oneCellAnchor"))
		p.writeMarker(buf, "from", a.From)
		fmt.Fprintf(buf, `<%s cx="%d" cy="%d"/>`, p.tag("ext"), a.Extent.Width, a.Extent.Height)
		if err := p.writeContent(buf, &a.Content); err != nil {
			return err
		}
		fmt.Fprintf(buf, "<%s/></%s>", p.tag("clientData"), p.tag("oneCellAnchor"))
	case *drawing.TwoCellAnchor:
		if a.EditAs != "" {
			fmt.Fprintf(buf, `<%s editAs="%s">`, p.tag("twoCellAnchor"), escapeText(a.EditAs))
		} else {
			fmt.Fprintf(buf, "<%s>", p.tag("twoCellAnchor"))
		}
		p.writeMarker(buf, "from", a.From)
		p.writeMarker(buf, "to", a.To)
		if err := p.writeContent(buf, &a.Content); err != nil {
			return err
		}
		fmt.Fprintf(buf, "<%s/></%s>", p.tag("clientData"), p.tag("twoCellAnchor"))
	}
	return nil
}

// writeContent writes the object element of a new anchor. Pictures and
// chart frames need caller-provided Raw content since they refer to other
// parts; plain shapes get a preset-geometry sp element.
func (p *DrawingPart) writeContent(buf *bytes.Buffer, c *drawing.Content) error {
	if len(c.Raw) > 0 {
		buf.Write(c.Raw)
		return nil
	}
	if c.Kind == drawing.ContentPicture || c.Kind == drawing.ContentGraphicFrame {
		return fmt.Errorf("%s: new %s anchor has no content", p.Path, c.Kind)
	}

	if c.ID == "" {
		p.maxID++
		c.ID = strconv.Itoa(p.maxID)
	}
	if c.Name == "" {
		c.Name = "Shape " + c.ID
	}
	preset := c.Preset
	if preset == "" {
		preset = "rect"
	}
	a := func(local string) string { return p.prefixA + ":" + local }

	fmt.Fprintf(buf, `<%s macro="" textlink=""`, p.tag("sp"))
	if !p.declaresA {
		fmt.Fprintf(buf, ` xmlns:%s="%s"`, p.prefixA, nsA)
	}
	buf.WriteString(">")
	fmt.Fprintf(buf, `<%s><%s id="%s" name="%s"`, p.tag("nvSpPr"), p.tag("cNvPr"), escapeText(c.ID), escapeText(c.Name))
	if c.Description != "" {
		fmt.Fprintf(buf, ` descr="%s"`, escapeText(c.Description))
	}
	fmt.Fprintf(buf, `/><%s/></%s>`, p.tag("cNvSpPr"), p.tag("nvSpPr"))
	fmt.Fprintf(buf, `<%s><%s prst="%s"><%s/></%s></%s>`,
		p.tag("spPr"), a("prstGeom"), escapeText(preset), a("avLst"), a("prstGeom"), p.tag("spPr"))
	if c.Text != "" {
		fmt.Fprintf(buf, `<%s><%s/><%s/><%s><%s><%s>%s</%s></%s></%s></%s>`,
			p.tag("txBody"), a("bodyPr"), a("lstStyle"), a("p"), a("r"),
			a("t"), escapeText(c.Text), a("t"), a("r"), a("p"), p.tag("txBody"))
	}
	fmt.Fprintf(buf, "</%s>", p.tag("sp"))
	return nil
}
