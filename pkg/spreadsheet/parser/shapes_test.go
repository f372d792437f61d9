package parser

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

func TestIsConnectorShape(t *testing.T) {
	tests := []struct {
		prst      string
		typeLabel string
		expected  bool
	}{
		{"straightConnector1", "Line", true},
		{"bentConnector3", "AutoShape-Connector", true},
		{"line", "Line", true},
		{"rect", "AutoShape-Rectangle", false},
		{"flowChartProcess", "AutoShape-FlowchartProcess", false},
		{"", "Line", true},
		{"", "AutoShape-Connector", true},
	}

	for _, tt := range tests {
		result := isConnectorShape(tt.prst, tt.typeLabel)
		if result != tt.expected {
			t.Errorf("isConnectorShape(%q, %q) = %v, expected %v",
				tt.prst, tt.typeLabel, result, tt.expected)
		}
	}
}

func TestShapeTypeLabel(t *testing.T) {
	tests := []struct {
		prst     string
		name     string
		expected string
	}{
		{"flowChartProcess", "", "AutoShape-FlowchartProcess"},
		{"rect", "Rectangle 1", "AutoShape-Rectangle"},
		{"ellipse", "", "AutoShape-Oval"},
		{"straightConnector1", "", "Line"},
		{"heart", "", "AutoShape-heart"},
		{"", "TextBox 2", "TextBox 2"},
		{"", "", "Unknown"},
	}

	for _, tt := range tests {
		result := ShapeTypeLabel(tt.prst, tt.name)
		if result != tt.expected {
			t.Errorf("ShapeTypeLabel(%q, %q) = %q, expected %q",
				tt.prst, tt.name, result, tt.expected)
		}
	}
}

func TestParseContent(t *testing.T) {
	tests := []struct {
		xml   string
		kind  drawing.ContentKind
		name  string
		text  string
		relID string
	}{
		{
			xml: `<xdr:sp xmlns:xdr="` + nsXDR + `" xmlns:a="` + nsA + `"><xdr:nvSpPr><xdr:cNvPr id="3" name="Box"/></xdr:nvSpPr>` +
				`<xdr:spPr><a:prstGeom prst="rect"/></xdr:spPr><xdr:txBody><a:p><a:r><a:t>Hello </a:t></a:r><a:r><a:t>World</a:t></a:r></a:p></xdr:txBody></xdr:sp>`,
			kind: drawing.ContentShape, name: "Box", text: "Hello World",
		},
		{
			xml:  `<xdr:sp xmlns:xdr="` + nsXDR + `" xmlns:a="` + nsA + `"><xdr:nvSpPr><xdr:cNvPr id="4" name="Arrow"/></xdr:nvSpPr><xdr:spPr><a:prstGeom prst="straightConnector1"/></xdr:spPr></xdr:sp>`,
			kind: drawing.ContentConnector, name: "Arrow",
		},
		{
			xml: `<xdr:pic xmlns:xdr="` + nsXDR + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `"><xdr:nvPicPr><xdr:cNvPr id="2" name="Picture 1" descr="logo"/></xdr:nvPicPr>` +
				`<xdr:blipFill><a:blip r:embed="rId1"/></xdr:blipFill></xdr:pic>`,
			kind: drawing.ContentPicture, name: "Picture 1", relID: "rId1",
		},
		{
			xml: `<xdr:graphicFrame xmlns:xdr="` + nsXDR + `" xmlns:a="` + nsA + `" xmlns:r="` + nsR + `"><xdr:nvGraphicFramePr><xdr:cNvPr id="5" name="Chart 1"/></xdr:nvGraphicFramePr>` +
				`<a:graphic><a:graphicData><c:chart xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" r:id="rId7"/></a:graphicData></a:graphic></xdr:graphicFrame>`,
			kind: drawing.ContentGraphicFrame, name: "Chart 1", relID: "rId7",
		},
	}

	for _, tt := range tests {
		decoder := xml.NewDecoder(strings.NewReader(tt.xml))
		token, err := decoder.Token()
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		c := parseContent(decoder, token.(xml.StartElement))
		if c.Kind != tt.kind || c.Name != tt.name || c.Text != tt.text || c.RelID != tt.relID {
			t.Errorf("parseContent(%s) = %+v", tt.name, c)
		}
	}
}
