// Package drawing models the floating objects of a worksheet (pictures,
// charts, shapes, OLE objects) and keeps their anchors consistent when rows
// or columns are inserted or removed.
package drawing

// ContentKind identifies the element held by an anchor.
type ContentKind int

const (
	ContentUnknown ContentKind = iota
	ContentShape
	ContentConnector
	ContentGroup
	ContentPicture
	ContentGraphicFrame
)

var contentKindNames = map[ContentKind]string{
	ContentUnknown:      "unknown",
	ContentShape:        "shape",
	ContentConnector:    "connector",
	ContentGroup:        "group",
	ContentPicture:      "picture",
	ContentGraphicFrame: "graphicFrame",
}

func (k ContentKind) String() string {
	if name, ok := contentKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Content describes the object element inside an anchor.
type Content struct {
	Kind ContentKind
	// ID and Name come from the non-visual properties (cNvPr).
	ID          string
	Name        string
	Description string
	// Preset is the preset geometry (prstGeom) of a shape.
	Preset string
	// Text is the concatenated visible text of a shape.
	Text string
	// RelID is the relationship id of the embedded picture or chart.
	RelID string
	// Chart is set for graphic frames that hold a chart.
	Chart bool
	// LegacyShapeID is the VML shape id (compatExt spid) of an OLE shape.
	LegacyShapeID string
	// Raw is the serialized object element. It is only used for anchors
	// created through the API; parsed anchors keep their source bytes.
	Raw []byte
}
