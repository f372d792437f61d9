package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

func oleObjectXML(progID, shapeID, relID string, fromRow, toRow int) string {
	row := strconv.Itoa
	return `<mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006"><mc:Choice Requires="x14">` +
		`<oleObject progId="` + progID + `" shapeId="` + shapeID + `" r:id="` + relID + `"><objectPr defaultSize="0" r:id="rId9"><anchor moveWithCells="1">` +
		`<from><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>` + row(fromRow) + `</xdr:row><xdr:rowOff>0</xdr:rowOff></from>` +
		`<to><xdr:col>3</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>` + row(toRow) + `</xdr:row><xdr:rowOff>0</xdr:rowOff></to>` +
		`</anchor></objectPr></oleObject></mc:Choice><mc:Fallback><oleObject progId="` + progID + `" shapeId="` + shapeID + `" r:id="` + relID + `"/></mc:Fallback></mc:AlternateContent>`
}

func testWorksheetXML() string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing">` +
		`<sheetData><row r="1"><c r="A1" t="s"><v>0</v></c></row></sheetData>` +
		`<drawing r:id="rId1"/><legacyDrawing r:id="rId2"/>` +
		`<oleObjects>` +
		oleObjectXML("Word.Document.12", "1025", "rId3", 1, 4) +
		oleObjectXML("Package", "1026", "rId4", 9, 10) +
		`</oleObjects></worksheet>`
}

func TestParseWorksheetPart(t *testing.T) {
	ws, err := ParseWorksheetPart("xl/worksheets/sheet1.xml", []byte(testWorksheetXML()))
	if err != nil {
		t.Fatalf("ParseWorksheetPart() error = %v", err)
	}
	if ws.DrawingRelID != "rId1" {
		t.Errorf("DrawingRelID = %q", ws.DrawingRelID)
	}
	objs := ws.OleObjects()
	if len(objs) != 2 {
		t.Fatalf("expected 2 OLE objects, got %d", len(objs))
	}
	first := objs[0]
	if first.ProgID != "Word.Document.12" || first.ShapeID != "1025" || first.RelID != "rId3" {
		t.Errorf("first = %+v", first)
	}
	if first.ObjectAnchor == nil || first.ObjectAnchor.From.Row() != 2 || first.ObjectAnchor.To.Row() != 5 {
		t.Errorf("first anchor = %+v", first.ObjectAnchor)
	}
}

func TestRenderWorksheetPart(t *testing.T) {
	src := testWorksheetXML()
	ws, err := ParseWorksheetPart("xl/worksheets/sheet1.xml", []byte(src))
	if err != nil {
		t.Fatalf("ParseWorksheetPart() error = %v", err)
	}
	if out := ws.Render(ws.OleObjects()); string(out) != src {
		t.Errorf("unchanged worksheet must render byte-identical")
	}

	var oles drawing.OleObjects
	for _, o := range ws.OleObjects() {
		oles.Add(o)
	}
	oles.Remove(anchor.Row, 10, 2)
	oles.Insert(anchor.Row, 1, 1)

	out := string(ws.Render(oles.Items()))
	if strings.Contains(out, `progId="Package"`) {
		t.Errorf("removed object still present\n%s", out)
	}
	if strings.Count(out, "AlternateContent") != 2 {
		t.Errorf("expected one wrapper left\n%s", out)
	}
	again, err := ParseWorksheetPart(ws.Path, []byte(out))
	if err != nil {
		t.Fatalf("reparse error = %v", err)
	}
	objs := again.OleObjects()
	if len(objs) != 1 || objs[0].ObjectAnchor.From.Row() != 3 || objs[0].ObjectAnchor.To.Row() != 6 {
		t.Errorf("unexpected objects after edit\n%s", out)
	}
}

func TestRenderWorksheetDropsEmptyContainer(t *testing.T) {
	src := testWorksheetXML()
	ws, err := ParseWorksheetPart("xl/worksheets/sheet1.xml", []byte(src))
	if err != nil {
		t.Fatalf("ParseWorksheetPart() error = %v", err)
	}
	out := string(ws.Render(nil))
	if strings.Contains(out, "oleObjects") {
		t.Errorf("empty oleObjects block must be removed\n%s", out)
	}
	if !strings.HasSuffix(out, `<legacyDrawing r:id="rId2"/></worksheet>`) {
		t.Errorf("unexpected tail\n%s", out)
	}
}
