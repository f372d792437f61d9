package parser

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// ChartTypeMap maps OOXML chart element tags to chart type names.
var ChartTypeMap = map[string]string{
	"lineChart":      "Line",
	"line3DChart":    "3DLine",
	"barChart":       "Bar",
	"bar3DChart":     "3DBar",
	"areaChart":      "Area",
	"area3DChart":    "3DArea",
	"pieChart":       "Pie",
	"pie3DChart":     "3DPie",
	"doughnutChart":  "Doughnut",
	"scatterChart":   "XYScatter",
	"bubbleChart":    "Bubble",
	"radarChart":     "Radar",
	"surfaceChart":   "Surface",
	"surface3DChart": "3DSurface",
	"stockChart":     "Stock",
	"ofPieChart":     "PieOfPie",
}

// ChartSeries is one c:ser of a chart part.
type ChartSeries struct {
	Name       string
	NameRef    *reference.Formula
	Categories *reference.Formula
	Values     *reference.Formula
}

// ChartPart is a parsed chart part. Its c:f formulas are the chart data
// references; Render writes back the ones that changed.
type ChartPart struct {
	Path   string
	Type   string
	Title  string
	Series []ChartSeries

	data []byte
	refs []chartRef
}

type chartRef struct {
	value   span
	formula *reference.Formula
}

// ParseChartPart parses the chart part at path.
func ParseChartPart(path string, data []byte) (*ChartPart, error) {
	c := &ChartPart{Path: path, data: data}
	w := newWalker(data)
	var stack []string
	var series *ChartSeries
	for {
		token, err := w.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			switch {
			case t.Name.Local == "f":
				text, s, err := w.readValue()
				if err != nil {
					return nil, err
				}
				f := reference.ParseFormula(strings.TrimSpace(text))
				c.refs = append(c.refs, chartRef{value: s, formula: f})
				if series != nil {
					switch seriesSlot(stack) {
					case "tx":
						series.NameRef = f
					case "cat", "xVal":
						series.Categories = f
					case "val", "yVal":
						series.Values = f
					}
				}
				continue
			case t.Name.Local == "title" && parent == "chart" && c.Title == "":
				title, err := parseChartTitle(w)
				if err != nil {
					return nil, err
				}
				c.Title = title
				continue
			case t.Name.Local == "v" && series != nil && seriesSlot(stack) == "tx":
				text, _, err := w.readValue()
				if err != nil {
					return nil, err
				}
				series.Name = strings.TrimSpace(text)
				continue
			case t.Name.Local == "ser":
				c.Series = append(c.Series, ChartSeries{})
				series = &c.Series[len(c.Series)-1]
			case parent == "plotArea" && c.Type == "":
				if ct, ok := ChartTypeMap[t.Name.Local]; ok {
					c.Type = ct
				}
			}
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			if t.Name.Local == "ser" {
				series = nil
			}
		}
	}
	if c.Type == "" {
		c.Type = "unknown"
	}
	return c, nil
}

// seriesSlot returns the child of the innermost c:ser on the stack.
func seriesSlot(stack []string) string {
	for i := len(stack) - 1; i > 0; i-- {
		if stack[i-1] == "ser" {
			return stack[i]
		}
	}
	return ""
}

// parseChartTitle reads the rich text runs of a title element.
func parseChartTitle(w *walker) (string, error) {
	var title strings.Builder
	depth := 1
	for depth > 0 {
		token, err := w.next()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				text, _, err := w.readValue()
				if err != nil {
					return "", err
				}
				title.WriteString(text)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
	return strings.TrimSpace(title.String()), nil
}

// References returns the data reference formulas in document order.
func (c *ChartPart) References() []*reference.Formula {
	out := make([]*reference.Formula, len(c.refs))
	for i, r := range c.refs {
		out[i] = r.formula
	}
	return out
}

// Changed reports whether any reference was rewritten.
func (c *ChartPart) Changed() bool {
	for _, r := range c.refs {
		if r.formula.Changed() {
			return true
		}
	}
	return false
}

// Render returns the chart part with rewritten references.
func (c *ChartPart) Render() []byte {
	var edits []edit
	for _, r := range c.refs {
		if !r.formula.Changed() || !r.value.valid() {
			continue
		}
		edits = append(edits, edit{span: r.value, text: escapeText(r.formula.String())})
	}
	return splice(c.data, edits)
}
