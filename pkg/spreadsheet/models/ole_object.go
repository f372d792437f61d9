package models

// OleObject represents an embedded OLE object.
type OleObject struct {
	// ProgID identifies the embedding application (e.g. Word.Document.12).
	ProgID string `json:"prog_id,omitempty"`
	// ShapeID is the legacy shape id linking the object to its drawing.
	ShapeID string `json:"shape_id,omitempty"`
	// Embedding is the embedded part path inside the package.
	Embedding string `json:"embedding,omitempty"`
	// Extension is the embedded file extension (bin, docx, xlsx, ...).
	Extension string `json:"extension,omitempty"`
	// Streams lists the compound-file streams of a binary embedding.
	Streams []string `json:"streams,omitempty"`
	// Properties holds decoded property-set values.
	Properties map[string]string `json:"properties,omitempty"`
	// From is the top-left anchor position.
	From *Marker `json:"from,omitempty"`
	// To is the bottom-right anchor position.
	To *Marker `json:"to,omitempty"`
}
