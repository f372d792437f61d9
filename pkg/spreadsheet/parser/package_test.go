package parser

import (
	"archive/zip"
	"bytes"
	"slices"
	"testing"

	"github.com/xuri/excelize/v2"
)

func buildZip(t *testing.T, parts map[string]string, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func TestPackageRoundTrip(t *testing.T) {
	order := []string{"[Content_Types].xml", "xl/workbook.xml", "xl/_rels/workbook.xml.rels"}
	parts := map[string]string{
		"[Content_Types].xml":        "<Types/>",
		"xl/workbook.xml":            "<workbook/>",
		"xl/_rels/workbook.xml.rels": "<Relationships/>",
	}
	data := buildZip(t, parts, order)

	p, err := ReadPackage(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadPackage() error = %v", err)
	}
	if !slices.Equal(p.Names(), order) {
		t.Errorf("Names() = %v, expected %v", p.Names(), order)
	}

	p.SetPart("xl/workbook.xml", []byte("<workbook>changed</workbook>"))
	p.SetPart("xl/new.xml", []byte("<new/>"))

	var out bytes.Buffer
	if err := p.Write(&out); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	again, err := ReadPackage(bytes.NewReader(out.Bytes()), int64(out.Len()))
	if err != nil {
		t.Fatalf("ReadPackage() error = %v", err)
	}
	if got, _ := again.Part("xl/workbook.xml"); string(got) != "<workbook>changed</workbook>" {
		t.Errorf("workbook part = %q", got)
	}
	if names := again.Names(); len(names) != 4 || names[3] != "xl/new.xml" {
		t.Errorf("Names() = %v", names)
	}
}

func TestPackageClone(t *testing.T) {
	data := buildZip(t, map[string]string{"a.xml": "<a/>"}, []string{"a.xml"})
	p, err := ReadPackage(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("ReadPackage() error = %v", err)
	}
	c, err := p.Clone()
	if err != nil {
		t.Fatalf("Clone() error = %v", err)
	}

	orig, _ := p.Part("a.xml")
	orig[1] = 'b'
	c.SetPart("b.xml", []byte("<b/>"))

	if got, _ := c.Part("a.xml"); string(got) != "<a/>" {
		t.Errorf("clone shares part bytes: %q", got)
	}
	if _, ok := p.Part("b.xml"); ok || len(p.Names()) != 1 {
		t.Errorf("clone shares the part list")
	}
}

func TestOpenPackageFromExcelize(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	path := t.TempDir() + "/book.xlsx"
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}

	p, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage() error = %v", err)
	}
	data, ok := p.Part(WorkbookPath)
	if !ok {
		t.Fatalf("missing %s in %v", WorkbookPath, p.Names())
	}
	wb, err := ParseWorkbookPart(WorkbookPath, data)
	if err != nil {
		t.Fatalf("ParseWorkbookPart() error = %v", err)
	}
	if len(wb.Sheets) != 1 || wb.Sheets[0].Name != "Sheet1" {
		t.Errorf("sheets = %+v", wb.Sheets)
	}
}

func TestInspectEmbedding(t *testing.T) {
	emb, err := InspectEmbedding("xl/embeddings/Microsoft_Word_Document.DOCX", []byte("PK"))
	if err != nil {
		t.Fatalf("InspectEmbedding() error = %v", err)
	}
	if emb.Extension != "docx" || len(emb.Streams) != 0 {
		t.Errorf("embedding = %+v", emb)
	}

	if _, err := InspectEmbedding("xl/embeddings/oleObject1.bin", []byte("not a compound file")); err == nil {
		t.Errorf("expected an error for a malformed compound file")
	}
}
