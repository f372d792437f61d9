package reference

import "strings"

// PrintAreaName is the built-in defined name holding a sheet's print area.
const PrintAreaName = "_xlnm.Print_Area"

// DefinedName is a workbook-level <definedName> entry.
type DefinedName struct {
	Name string
	// LocalSheetID is the 0-based sheet index the name is scoped to, or -1
	// for a workbook-scoped name.
	LocalSheetID int
	Formula      *Formula
}

// IsPrintArea reports whether the name is a print area definition.
func (d *DefinedName) IsPrintArea() bool {
	return strings.EqualFold(d.Name, PrintAreaName)
}
