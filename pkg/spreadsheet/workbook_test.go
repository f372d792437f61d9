package spreadsheet

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/xuri/excelize/v2"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/parser"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

// createTestWorkbook writes a workbook whose first sheet holds a chart at E1
// plotting the Data sheet, one-cell pictures at B2 and B20 and a rectangle
// at B30.
func createTestWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet("Data"); err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	for cell, value := range map[string]any{
		"A2": "Sales", "B1": "Q1", "C1": "Q2", "D1": "Q3",
		"B2": 10, "C2": 20, "D2": 30,
	} {
		if err := f.SetCellValue("Data", cell, value); err != nil {
			t.Fatalf("SetCellValue(%s) error = %v", cell, err)
		}
	}

	if err := f.AddChart("Sheet1", "E1", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "Data!$A$2",
			Categories: "Data!$B$1:$D$1",
			Values:     "Data!$B$2:$D$2",
		}},
		Title: []excelize.RichTextRun{{Text: "Sales"}},
	}); err != nil {
		t.Fatalf("AddChart() error = %v", err)
	}

	pic := pngBytes(t)
	for _, cell := range []string{"B2", "B20"} {
		if err := f.AddPictureFromBytes("Sheet1", cell, &excelize.Picture{
			Extension: ".png",
			File:      pic,
			Format:    &excelize.GraphicOptions{AltText: "logo " + cell, Positioning: "oneCell"},
		}); err != nil {
			t.Fatalf("AddPictureFromBytes(%s) error = %v", cell, err)
		}
	}

	if err := f.AddShape("Sheet1", &excelize.Shape{
		Cell:      "B30",
		Type:      "rect",
		Width:     80,
		Height:    40,
		Paragraph: []excelize.RichTextRun{{Text: "Note"}},
	}); err != nil {
		t.Fatalf("AddShape() error = %v", err)
	}

	for _, dn := range []*excelize.DefinedName{
		{Name: "_xlnm.Print_Area", RefersTo: "Sheet1!$A$1:$H$40", Scope: "Sheet1"},
		{Name: "SalesRange", RefersTo: "Data!$B$2:$D$2"},
	} {
		if err := f.SetDefinedName(dn); err != nil {
			t.Fatalf("SetDefinedName(%s) error = %v", dn.Name, err)
		}
	}

	path := filepath.Join(t.TempDir(), "drawing.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	return path
}

func openTestWorkbook(t *testing.T, path string) *Workbook {
	t.Helper()
	wb, err := Open(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return wb
}

func imageRows(d *drawing.WorksheetDrawing) []uint32 {
	var rows []uint32
	for _, img := range d.Images() {
		rows = append(rows, img.From().Row())
	}
	return rows
}

func referenceTexts(c *drawing.Chart) []string {
	var out []string
	for _, f := range c.References {
		out = append(out, f.String())
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestOpen(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))

	if names := wb.SheetNames(); len(names) != 2 || names[0] != "Sheet1" || names[1] != "Data" {
		t.Fatalf("SheetNames() = %v", names)
	}
	sheet, err := wb.Sheet("sheet1")
	if err != nil {
		t.Fatalf("Sheet() error = %v", err)
	}
	if !sheet.HasDrawingPart() {
		t.Fatalf("expected a drawing part")
	}

	d := sheet.Drawing()
	if rows := imageRows(d); len(rows) != 2 || rows[0] != 2 || rows[1] != 20 {
		t.Errorf("image rows = %v\n%s", rows, spew.Sdump(d.Images()))
	}
	if len(d.TwoCellAnchors()) != 1 || d.TwoCellAnchors()[0].From.Row() != 30 {
		t.Errorf("unexpected shapes\n%s", spew.Sdump(d.TwoCellAnchors()))
	}
	if len(d.Charts()) != 1 {
		t.Fatalf("expected 1 chart, got %d", len(d.Charts()))
	}
	chart := d.Charts()[0]
	if chart.Type != "Bar" || chart.Title != "Sales" {
		t.Errorf("chart type/title = %q/%q", chart.Type, chart.Title)
	}
	if refs := referenceTexts(chart); !contains(refs, "Data!$B$2:$D$2") {
		t.Errorf("chart references = %v", refs)
	}
	if len(wb.DefinedNames()) != 2 {
		t.Errorf("DefinedNames() = %s", spew.Sdump(wb.DefinedNames()))
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("missing file error = %v, expected ErrFileNotFound", err)
	}

	bogus := filepath.Join(t.TempDir(), "bogus.xlsx")
	if err := os.WriteFile(bogus, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Open(bogus, DefaultOptions())
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("bogus file error = %v, expected ErrInvalidFormat", err)
	}

	wb := openTestWorkbook(t, createTestWorkbook(t))
	if err := wb.InsertRows("Missing", 1, 1); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("InsertRows() error = %v, expected ErrSheetNotFound", err)
	}
}

func TestInsertRowsAndSave(t *testing.T) {
	path := createTestWorkbook(t)
	wb := openTestWorkbook(t, path)
	sheet, _ := wb.Sheet("Sheet1")
	chartTo := sheet.Drawing().Charts()[0].Anchor.To.Row()

	if err := wb.InsertRows("Sheet1", 10, 5); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize cannot open the saved file: %v", err)
	}
	defer f.Close()
	tests := []struct {
		cell     string
		expected int
	}{
		{"B2", 1},
		{"B20", 0},
		{"B25", 1},
	}
	for _, tt := range tests {
		pics, err := f.GetPictures("Sheet1", tt.cell)
		if err != nil {
			t.Fatalf("GetPictures(%s) error = %v", tt.cell, err)
		}
		if len(pics) != tt.expected {
			t.Errorf("GetPictures(%s) = %d pictures, expected %d", tt.cell, len(pics), tt.expected)
		}
	}

	again := openTestWorkbook(t, path)
	s, _ := again.Sheet("Sheet1")
	d := s.Drawing()
	if got := d.TwoCellAnchors()[0].From.Row(); got != 35 {
		t.Errorf("shape row = %d, expected 35", got)
	}
	chart := d.Charts()[0]
	if chart.Anchor.From.Row() != 1 || chart.Anchor.To.Row() != chartTo+5 {
		t.Errorf("chart rows = %d..%d, expected 1..%d", chart.Anchor.From.Row(), chart.Anchor.To.Row(), chartTo+5)
	}
	if refs := referenceTexts(chart); !contains(refs, "Data!$B$2:$D$2") {
		t.Errorf("references of another sheet changed: %v", refs)
	}
	for _, dn := range again.DefinedNames() {
		if dn.IsPrintArea() && dn.Formula.String() != "Sheet1!$A$1:$H$45" {
			t.Errorf("print area = %s", dn.Formula)
		}
	}
}

func TestInsertRowsRewritesOtherSheetCharts(t *testing.T) {
	path := createTestWorkbook(t)
	wb := openTestWorkbook(t, path)

	if err := wb.InsertRows("Data", 2, 3); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	sheet, _ := wb.Sheet("Sheet1")
	if rows := imageRows(sheet.Drawing()); rows[0] != 2 || rows[1] != 20 {
		t.Errorf("anchors on Sheet1 moved: %v", rows)
	}

	if err := wb.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	again := openTestWorkbook(t, path)
	s, _ := again.Sheet("Sheet1")
	refs := referenceTexts(s.Drawing().Charts()[0])
	for _, expected := range []string{"Data!$A$5", "Data!$B$1:$D$1", "Data!$B$5:$D$5"} {
		if !contains(refs, expected) {
			t.Errorf("references = %v, expected %s", refs, expected)
		}
	}
	for _, dn := range again.DefinedNames() {
		if dn.Name == "SalesRange" && dn.Formula.String() != "Data!$B$5:$D$5" {
			t.Errorf("SalesRange = %s", dn.Formula)
		}
	}
}

func TestRemoveRowsDeletesContainedObjects(t *testing.T) {
	path := createTestWorkbook(t)
	wb := openTestWorkbook(t, path)

	if err := wb.RemoveRows("Sheet1", 20, 1); err != nil {
		t.Fatalf("RemoveRows() error = %v", err)
	}
	if err := wb.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	again := openTestWorkbook(t, path)
	s, _ := again.Sheet("Sheet1")
	d := s.Drawing()
	if rows := imageRows(d); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("image rows = %v, expected [2]", rows)
	}
	if got := d.TwoCellAnchors()[0].From.Row(); got != 29 {
		t.Errorf("shape row = %d, expected 29", got)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("excelize cannot open the saved file: %v", err)
	}
	defer f.Close()
	if pics, _ := f.GetPictures("Sheet1", "B20"); len(pics) != 0 {
		t.Errorf("removed picture still present")
	}
}

func TestSharedChartPartAfterFirstFrameRemoved(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))
	sheet, _ := wb.Sheet("Sheet1")
	d := sheet.Drawing()
	first := d.Charts()[0]

	// A second frame plotting the same chart part, below the removed rows.
	second := drawing.NewChart(&drawing.TwoCellAnchor{
		From:    anchor.NewGridPoint(5, 0, 50, 0),
		To:      anchor.NewGridPoint(12, 0, 60, 0),
		Content: first.Anchor.Content,
	})
	d.AddChart(second)
	rels, err := wb.relationships(sheet.drawingPart.Path)
	if err != nil {
		t.Fatalf("relationships() error = %v", err)
	}
	wb.loadChart(sheet.drawingPart.Path, second, rels)
	if second.Part != first.Part || len(second.References) == 0 {
		t.Fatalf("second frame not bound to %s\n%s", first.Part, spew.Sdump(second))
	}

	if err := wb.InsertRows("Data", 1, 1); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	if refs := referenceTexts(second); !contains(refs, "Data!$B$3:$D$3") {
		t.Errorf("shared references shifted more than once: %v", refs)
	}

	if err := wb.RemoveRows("Sheet1", 1, 20); err != nil {
		t.Fatalf("RemoveRows() error = %v", err)
	}
	if charts := d.Charts(); len(charts) != 1 || charts[0] != second {
		t.Fatalf("expected only the second frame to survive\n%s", spew.Sdump(charts))
	}
	if err := wb.InsertRows("Data", 1, 2); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}
	if refs := referenceTexts(second); !contains(refs, "Data!$B$5:$D$5") {
		t.Errorf("references = %v, expected Data!$B$5:$D$5", refs)
	}
	if cp := wb.charts[second.Part]; cp == nil || !cp.Changed() {
		t.Errorf("chart part %s not marked changed", second.Part)
	}
}

func TestColumnsEdit(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))
	if err := wb.InsertColumns("Sheet1", 1, 2); err != nil {
		t.Fatalf("InsertColumns() error = %v", err)
	}
	s, _ := wb.Sheet("Sheet1")
	for _, img := range s.Drawing().Images() {
		if img.From().Column() != 4 {
			t.Errorf("image column = %d, expected 4", img.From().Column())
		}
	}
	if err := wb.RemoveColumns("Sheet1", 1, 2); err != nil {
		t.Fatalf("RemoveColumns() error = %v", err)
	}
	if rows := imageRows(s.Drawing()); len(rows) != 2 {
		t.Errorf("column round trip dropped images: %v", rows)
	}
	for _, img := range s.Drawing().Images() {
		if img.From().Column() != 2 {
			t.Errorf("image column = %d, expected 2", img.From().Column())
		}
	}
}

func TestZeroCountIsNoop(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))
	if err := wb.Remove("Sheet1", anchor.Row, 1, 0); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	s, _ := wb.Sheet("Sheet1")
	if rows := imageRows(s.Drawing()); len(rows) != 2 {
		t.Errorf("zero-count remove changed the drawing: %v", rows)
	}
}

func TestClone(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))
	if err := wb.InsertRows("Sheet1", 1, 1); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}

	clone, err := wb.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}
	if err := clone.InsertRows("Sheet1", 1, 10); err != nil {
		t.Fatalf("InsertRows() error = %v", err)
	}

	orig, _ := wb.Sheet("Sheet1")
	copied, _ := clone.Sheet("Sheet1")
	if rows := imageRows(orig.Drawing()); rows[0] != 3 {
		t.Errorf("original rows = %v, expected the clone to be independent", rows)
	}
	if rows := imageRows(copied.Drawing()); rows[0] != 13 {
		t.Errorf("clone rows = %v, expected edits made before Clone to carry over", rows)
	}
}

func TestAddShapeAndSave(t *testing.T) {
	path := createTestWorkbook(t)
	wb := openTestWorkbook(t, path)
	s, _ := wb.Sheet("Sheet1")

	shape := drawing.NewTwoCellAnchor(anchor.NewGridPoint(3, 0, 40, 0), anchor.NewGridPoint(5, 0, 44, 0))
	shape.Content = drawing.Content{Kind: drawing.ContentShape, Preset: "ellipse", Text: "Added"}
	s.Drawing().AddTwoCellAnchor(shape)

	if err := wb.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := excelize.OpenFile(path); err != nil {
		t.Fatalf("excelize cannot open the saved file: %v", err)
	}

	again := openTestWorkbook(t, path)
	s, _ = again.Sheet("Sheet1")
	anchors := s.Drawing().TwoCellAnchors()
	if len(anchors) != 2 {
		t.Fatalf("expected 2 shapes\n%s", spew.Sdump(anchors))
	}
	added := anchors[1]
	if added.From.Row() != 40 || added.To.Column() != 5 || added.Content.Text != "Added" || added.Content.Preset != "ellipse" {
		t.Errorf("added shape = %s", spew.Sdump(added))
	}
}

func TestAddWithoutDrawingPart(t *testing.T) {
	wb := openTestWorkbook(t, createTestWorkbook(t))
	s, _ := wb.Sheet("Data")
	if s.HasDrawingPart() {
		t.Fatalf("Data sheet should have no drawing part")
	}
	s.Drawing().AddOneCellAnchor(drawing.NewOneCellAnchor(anchor.NewGridPoint(1, 0, 1, 0), anchor.Extent{Width: parser.PixelsToEMU(20), Height: parser.PixelsToEMU(20)}))

	var buf bytes.Buffer
	err := wb.Write(&buf)
	if !errors.Is(err, ErrNoDrawingPart) {
		t.Errorf("Write() error = %v, expected ErrNoDrawingPart", err)
	}
	var partErr *PartError
	if !errors.As(err, &partErr) || partErr.Component != "drawing" {
		t.Errorf("expected a drawing PartError, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	off := false
	tests := []struct {
		name     string
		opts     Options
		expected bool
	}{
		{"default", DefaultOptions(), true},
		{"disabled", Options{InspectEmbeddings: &off}, false},
	}
	for _, tt := range tests {
		if got := tt.opts.ShouldInspectEmbeddings(); got != tt.expected {
			t.Errorf("%s: ShouldInspectEmbeddings() = %v, expected %v", tt.name, got, tt.expected)
		}
	}
	if DefaultOptions().logger() == nil {
		t.Errorf("default logger must not be nil")
	}
}
