package models

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// DefinedName represents a workbook defined name.
type DefinedName struct {
	Name string `json:"name"`
	// Scope is the owning sheet name, empty for workbook scope.
	Scope    string `json:"scope,omitempty"`
	RefersTo string `json:"refers_to"`
}

// PrintAreaView holds the drawing objects that overlap one print area.
type PrintAreaView struct {
	BookName  string    `json:"book_name"`
	SheetName string    `json:"sheet_name"`
	Area      PrintArea `json:"area"`
	Shapes    []Shape   `json:"shapes,omitempty"`
	Images    []Image   `json:"images,omitempty"`
	Charts    []Chart   `json:"charts,omitempty"`
}

// Overlaps reports whether the cell rectangle from..to intersects the area.
// A nil to means a point at from.
func (a PrintArea) Overlaps(from Marker, to *Marker) bool {
	r2, c2 := from.Row, from.Col
	if to != nil {
		r2, c2 = to.Row, to.Col
	}
	r1, c1 := min(from.Row, r2), min(from.Col, c2)
	r2, c2 = max(from.Row, r2), max(from.Col, c2)
	return r1 <= a.R2 && r2 >= a.R1 && c1 <= a.C2 && c2 >= a.C1
}

// NewPrintAreaView collects the shapes, images and charts of sheet that
// overlap area.
func NewPrintAreaView(bookName, sheetName string, sheet SheetData, area PrintArea) PrintAreaView {
	view := PrintAreaView{
		BookName:  bookName,
		SheetName: sheetName,
		Area:      area,
	}
	for _, shape := range sheet.Shapes {
		if area.Overlaps(shape.From, shape.To) {
			view.Shapes = append(view.Shapes, shape)
		}
	}
	for _, img := range sheet.Images {
		if area.Overlaps(img.From, img.To) {
			view.Images = append(view.Images, img)
		}
	}
	for _, chart := range sheet.Charts {
		if area.Overlaps(chart.From, &chart.To) {
			view.Charts = append(view.Charts, chart)
		}
	}
	return view
}
