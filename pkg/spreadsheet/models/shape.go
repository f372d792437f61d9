// Package models defines the summary structures reported for a workbook's
// drawing layer.
package models

// Marker is a 1-based cell position with sub-cell offsets in EMU.
type Marker struct {
	// Col is the column index (1-based).
	Col int `json:"col"`
	// Row is the row index (1-based).
	Row int `json:"row"`
	// ColOff is the offset from the column's left edge in EMU.
	ColOff int64 `json:"col_off,omitempty"`
	// RowOff is the offset from the row's top edge in EMU.
	RowOff int64 `json:"row_off,omitempty"`
	// Cell is the A1-style name of the cell.
	Cell string `json:"cell"`
}

// Shape represents a drawing shape and its anchor.
type Shape struct {
	// ID is the sequential shape id within the sheet.
	ID *int `json:"id,omitempty"`
	// Name is the shape name from its non-visual properties.
	Name string `json:"name,omitempty"`
	// Text is the visible text content of the shape.
	Text string `json:"text,omitempty"`
	// Type is the Excel shape type name.
	Type string `json:"type,omitempty"`
	// Kind is the element kind (shape, connector, group).
	Kind string `json:"kind"`
	// Anchor is "oneCell" or "twoCell".
	Anchor string `json:"anchor"`
	// From is the top-left anchor position.
	From Marker `json:"from"`
	// To is the bottom-right anchor position of a two-cell anchor.
	To *Marker `json:"to,omitempty"`
	// W is the width in pixels of a one-cell anchor.
	W *int `json:"w,omitempty"`
	// H is the height in pixels of a one-cell anchor.
	H *int `json:"h,omitempty"`
}
