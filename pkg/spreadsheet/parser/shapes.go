package parser

import (
	"encoding/xml"
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

// PresetGeomMap maps OOXML preset geometry names to human-readable type labels.
var PresetGeomMap = map[string]string{
	"flowChartProcess":           "AutoShape-FlowchartProcess",
	"flowChartDecision":          "AutoShape-FlowchartDecision",
	"flowChartTerminator":        "AutoShape-FlowchartTerminator",
	"flowChartData":              "AutoShape-FlowchartData",
	"flowChartDocument":          "AutoShape-FlowchartDocument",
	"flowChartMultidocument":     "AutoShape-FlowchartMultidocument",
	"flowChartPredefinedProcess": "AutoShape-FlowchartPredefinedProcess",
	"flowChartInternalStorage":   "AutoShape-FlowchartInternalStorage",
	"flowChartPreparation":       "AutoShape-FlowchartPreparation",
	"flowChartManualInput":       "AutoShape-FlowchartManualInput",
	"flowChartManualOperation":   "AutoShape-FlowchartManualOperation",
	"flowChartConnector":         "AutoShape-FlowchartConnector",
	"flowChartOffpageConnector":  "AutoShape-FlowchartOffpageConnector",
	"rect":                       "AutoShape-Rectangle",
	"roundRect":                  "AutoShape-RoundedRectangle",
	"ellipse":                    "AutoShape-Oval",
	"diamond":                    "AutoShape-Diamond",
	"triangle":                   "AutoShape-IsoscelesTriangle",
	"rightArrow":                 "AutoShape-RightArrow",
	"leftArrow":                  "AutoShape-LeftArrow",
	"straightConnector1":         "Line",
	"bentConnector2":             "AutoShape-Connector",
	"bentConnector3":             "AutoShape-Connector",
	"bentConnector4":             "AutoShape-Connector",
	"bentConnector5":             "AutoShape-Connector",
	"curvedConnector2":           "AutoShape-Connector",
	"curvedConnector3":           "AutoShape-Connector",
	"curvedConnector4":           "AutoShape-Connector",
	"curvedConnector5":           "AutoShape-Connector",
	"line":                       "Line",
	"textBox":                    "TextBox",
}

// ShapeTypeLabel returns the display label of a shape from its preset
// geometry, falling back to its name.
func ShapeTypeLabel(prst, name string) string {
	if prst != "" {
		if label, ok := PresetGeomMap[prst]; ok {
			return label
		}
		return "AutoShape-" + prst
	}
	if name != "" {
		return name
	}
	return "Unknown"
}

// isConnectorShape checks if a shape is a connector or line.
func isConnectorShape(prst, typeLabel string) bool {
	connectorKeywords := []string{"Connector", "line", "straightConnector"}
	for _, kw := range connectorKeywords {
		if strings.Contains(strings.ToLower(prst), strings.ToLower(kw)) {
			return true
		}
	}
	return strings.Contains(typeLabel, "Line") || strings.Contains(typeLabel, "Connector")
}

// contentKinds maps anchor child elements to content kinds.
var contentKinds = map[string]drawing.ContentKind{
	"sp":           drawing.ContentShape,
	"cxnSp":        drawing.ContentConnector,
	"grpSp":        drawing.ContentGroup,
	"pic":          drawing.ContentPicture,
	"graphicFrame": drawing.ContentGraphicFrame,
}

// parseContent reads the object element of an anchor. Nested elements of a
// group contribute their text; the first cNvPr names the object.
func parseContent(decoder *xml.Decoder, start xml.StartElement) drawing.Content {
	content := drawing.Content{Kind: contentKinds[start.Name.Local]}
	var text strings.Builder
	seenNvPr := false

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				if seenNvPr {
					break
				}
				seenNvPr = true
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "id":
						content.ID = attr.Value
					case "name":
						content.Name = attr.Value
					case "descr":
						content.Description = attr.Value
					}
				}
			case "prstGeom":
				if content.Preset == "" {
					content.Preset = attrValue(t, "prst")
				}
			case "t":
				if txt, err := readElementText(decoder); err == nil {
					text.WriteString(txt)
				}
				depth--
			case "blip":
				content.RelID = attrValue(t, "embed")
			case "chart":
				if t.Name.Space != nsA && t.Name.Space != nsXDR {
					content.RelID = attrValue(t, "id")
					content.Chart = true
				}
			case "compatExt":
				content.LegacyShapeID = attrValue(t, "spid")
			}
		case xml.EndElement:
			depth--
		}
	}

	content.Text = strings.TrimSpace(text.String())
	if content.Kind == drawing.ContentShape &&
		isConnectorShape(content.Preset, ShapeTypeLabel(content.Preset, content.Name)) {
		content.Kind = drawing.ContentConnector
	}
	return content
}

func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}
