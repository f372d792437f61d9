package parser

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
)

// XML namespaces used in SpreadsheetML and DrawingML
const (
	nsXDR = "http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing"
	nsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// span is a half-open byte range [start, end) of a part.
type span struct {
	start, end int64
}

func (s span) valid() bool { return s.end > s.start }

// edit replaces the bytes of a span. A nil text deletes them; an empty span
// inserts text at start.
type edit struct {
	span
	text []byte
}

// splice applies edits to data. Edits nested inside an earlier edit are
// dropped, so deleting an element also discards edits to its children.
func splice(data []byte, edits []edit) []byte {
	if len(edits) == 0 {
		return bytes.Clone(data)
	}
	slices.SortStableFunc(edits, func(a, b edit) int {
		if c := cmp.Compare(a.start, b.start); c != 0 {
			return c
		}
		return cmp.Compare(b.end, a.end)
	})

	var buf bytes.Buffer
	buf.Grow(len(data))
	var pos int64
	for _, e := range edits {
		if e.start < pos {
			continue
		}
		buf.Write(data[pos:e.start])
		buf.Write(e.text)
		pos = e.end
	}
	buf.Write(data[pos:])
	return buf.Bytes()
}

// walker wraps an xml.Decoder and remembers the byte span of the last token.
type walker struct {
	d     *xml.Decoder
	start int64
	end   int64
}

func newWalker(data []byte) *walker {
	return &walker{d: xml.NewDecoder(bytes.NewReader(data))}
}

func (w *walker) next() (xml.Token, error) {
	w.start = w.d.InputOffset()
	tok, err := w.d.Token()
	w.end = w.d.InputOffset()
	return tok, err
}

// readValue reads the text content of the current element up to its end tag
// and returns it with the span of the content.
func (w *walker) readValue() (string, span, error) {
	s := span{start: w.d.InputOffset()}
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := w.next()
		if err != nil {
			return "", s, err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
			if depth == 0 {
				s.end = w.start
			}
		}
	}
	return b.String(), s, nil
}

// skip consumes tokens up to the end of the current element.
func (w *walker) skip() error {
	depth := 1
	for depth > 0 {
		tok, err := w.next()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// marker is a parsed from/to element: the grid point it encodes and the
// spans of its col and row values.
type marker struct {
	point anchor.GridPoint
	col   span
	row   span
}

// readMarker reads a from/to element. XML markers are 0-based; the returned
// point is 1-based. Indices past the sheet limits are capped to the last
// row or column.
func (w *walker) readMarker() (marker, error) {
	var m marker
	var col, colOff, row, rowOff uint64
	depth := 1
	for depth > 0 {
		tok, err := w.next()
		if err != nil {
			return m, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			text, s, err := w.readValue()
			if err != nil {
				return m, err
			}
			v, _ := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
			switch t.Name.Local {
			case "col":
				col, m.col = v, s
			case "colOff":
				colOff = v
			case "row":
				row, m.row = v, s
			case "rowOff":
				rowOff = v
			}
		case xml.EndElement:
			depth--
		}
	}
	col = min(col, excelize.MaxColumns-1)
	row = min(row, excelize.TotalRows-1)
	m.point = anchor.NewGridPoint(uint32(col)+1, uint32(colOff), uint32(row)+1, uint32(rowOff))
	return m, nil
}

// edits returns the value replacements that move m to p. Offsets never
// change, and unchanged indices are left byte-identical.
func (m marker) edits(p anchor.GridPoint) []edit {
	var out []edit
	if p.Column() != m.point.Column() && m.col.valid() {
		out = append(out, edit{span: m.col, text: []byte(strconv.FormatUint(uint64(p.Column()-1), 10))})
	}
	if p.Row() != m.point.Row() && m.row.valid() {
		out = append(out, edit{span: m.row, text: []byte(strconv.FormatUint(uint64(p.Row()-1), 10))})
	}
	return out
}

func attrValue(se xml.StartElement, local string) string {
	for _, attr := range se.Attr {
		if attr.Name.Local == local {
			return attr.Value
		}
	}
	return ""
}

// prefixFor returns the prefix the element declares for namespace ns.
func prefixFor(se xml.StartElement, ns, fallback string) string {
	for _, attr := range se.Attr {
		if attr.Value != ns {
			continue
		}
		if attr.Name.Space == "xmlns" {
			return attr.Name.Local
		}
		if attr.Name.Space == "" && attr.Name.Local == "xmlns" {
			return ""
		}
	}
	return fallback
}

func escapeText(s string) []byte {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.Bytes()
}
