package parser

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// WorkbookPath is the default location of the workbook part.
const WorkbookPath = "xl/workbook.xml"

// SheetEntry is a <sheet> of the workbook part.
type SheetEntry struct {
	Name    string
	SheetID string
	RelID   string
	// Path is the worksheet part, set by ResolveSheets. It stays empty for
	// chartsheets and dialog sheets.
	Path string
}

// WorkbookPart is the parsed workbook part: its sheets and defined names.
type WorkbookPart struct {
	Path         string
	Sheets       []SheetEntry
	DefinedNames []*reference.DefinedName

	data  []byte
	names []span
}

// ParseWorkbookPart parses the workbook part at path.
func ParseWorkbookPart(path string, data []byte) (*WorkbookPart, error) {
	wb := &WorkbookPart{Path: path, data: data}
	w := newWalker(data)
	for {
		token, err := w.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sheet":
			var entry SheetEntry
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					entry.Name = attr.Value
				case "sheetId":
					entry.SheetID = attr.Value
				case "id":
					if attr.Name.Space == nsR || entry.RelID == "" {
						entry.RelID = attr.Value
					}
				}
			}
			if entry.Name != "" && entry.RelID != "" {
				wb.Sheets = append(wb.Sheets, entry)
			}
		case "definedName":
			dn := &reference.DefinedName{Name: attrValue(se, "name"), LocalSheetID: -1}
			if v := attrValue(se, "localSheetId"); v != "" {
				if id, err := strconv.Atoi(v); err == nil {
					dn.LocalSheetID = id
				}
			}
			text, s, err := w.readValue()
			if err != nil {
				return nil, err
			}
			dn.Formula = reference.ParseFormula(text)
			wb.DefinedNames = append(wb.DefinedNames, dn)
			wb.names = append(wb.names, s)
		}
	}
	return wb, nil
}

// ResolveSheets sets the Path of every worksheet from the workbook
// relationships.
func (wb *WorkbookPart) ResolveSheets(rels []Relationship) {
	for i, s := range wb.Sheets {
		rel, ok := FindRelationship(rels, s.RelID)
		if !ok || !rel.HasType(RelTypeWorksheet) || rel.IsExternal() {
			continue
		}
		wb.Sheets[i].Path = ResolveTarget(wb.Path, rel.Target)
	}
}

// Worksheets returns the sheets backed by a worksheet part, in workbook
// order.
func (wb *WorkbookPart) Worksheets() []SheetEntry {
	var out []SheetEntry
	for _, s := range wb.Sheets {
		if s.Path != "" {
			out = append(out, s)
		}
	}
	return out
}

// SheetNames returns every sheet name in workbook order. A defined name's
// localSheetId indexes this list.
func (wb *WorkbookPart) SheetNames() []string {
	names := make([]string, len(wb.Sheets))
	for i, s := range wb.Sheets {
		names[i] = s.Name
	}
	return names
}

// Render returns the workbook part with rewritten defined names.
func (wb *WorkbookPart) Render() []byte {
	var edits []edit
	for i, dn := range wb.DefinedNames {
		if dn.Formula == nil || !dn.Formula.Changed() || !wb.names[i].valid() {
			continue
		}
		edits = append(edits, edit{span: wb.names[i], text: escapeText(dn.Formula.String())})
	}
	return splice(wb.data, edits)
}
