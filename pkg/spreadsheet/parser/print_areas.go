package parser

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/models"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// ExtractPrintAreas extracts print areas from the workbook defined names.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(names []*reference.DefinedName, sheetNames []string) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, dn := range names {
		if !dn.IsPrintArea() || dn.Formula == nil {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.Formula)
		// A sheet-scoped name belongs to its sheet whatever its text says.
		if dn.LocalSheetID >= 0 && dn.LocalSheetID < len(sheetNames) {
			sheetName = sheetNames[dn.LocalSheetID]
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}

	return result
}

// parsePrintAreaReference parses a print area formula.
// Format: 'SheetName'!$A$1:$D$10,'SheetName'!$F$1:$G$4
func parsePrintAreaReference(f *reference.Formula) (string, []models.PrintArea) {
	var areas []models.PrintArea
	var sheetName string
	for _, r := range f.Ranges() {
		if r.IsExternal() {
			continue
		}
		if sheetName == "" {
			sheetName = r.Sheet
		}
		areas = append(areas, rangeToArea(r))
	}
	return sheetName, areas
}

// rangeToArea converts a range to PrintArea. Whole-row and whole-column
// ranges span the sheet on their open axis.
func rangeToArea(r reference.Range) models.PrintArea {
	area := models.PrintArea{
		R1: int(r.From.Row),
		C1: int(r.From.Column),
		R2: int(r.To.Row),
		C2: int(r.To.Column),
	}
	if r.From.Row == 0 {
		area.R1, area.R2 = 1, excelize.TotalRows
	}
	if r.From.Column == 0 {
		area.C1, area.C2 = 1, excelize.MaxColumns
	}
	return area
}
