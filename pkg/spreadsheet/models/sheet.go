package models

// SheetData represents the drawing layer of a single sheet.
type SheetData struct {
	// Shapes contains one-cell and two-cell anchored shapes.
	Shapes []Shape `json:"shapes,omitempty"`
	// Images contains pictures.
	Images []Image `json:"images,omitempty"`
	// Charts contains charts.
	Charts []Chart `json:"charts,omitempty"`
	// OleObjects contains embedded objects.
	OleObjects []OleObject `json:"ole_objects,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
