package spreadsheet

import (
	"github.com/xuri/excelize/v2"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/models"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/parser"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// Inspect opens the workbook at path and summarizes its drawing layer.
func Inspect(path string, opts Options) (*models.WorkbookData, error) {
	wb, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	return wb.Summary(), nil
}

// Summary describes the drawing layer of every sheet in its current state.
func (w *Workbook) Summary() *models.WorkbookData {
	sheets := make(map[string]models.SheetData, len(w.sheets))
	for _, s := range w.sheets {
		sheets[s.name] = w.summarizeSheet(s)
	}

	printAreas := parser.ExtractPrintAreas(w.book.DefinedNames, w.book.SheetNames())
	for name, areas := range printAreas {
		if sheet, ok := sheets[name]; ok {
			sheet.PrintAreas = areas
			sheets[name] = sheet
		}
	}

	allNames := w.book.SheetNames()
	var names []models.DefinedName
	for _, dn := range w.book.DefinedNames {
		if dn.Formula == nil {
			continue
		}
		var scope string
		if dn.LocalSheetID >= 0 && dn.LocalSheetID < len(allNames) {
			scope = allNames[dn.LocalSheetID]
		}
		names = append(names, models.DefinedName{
			Name:     dn.Name,
			Scope:    scope,
			RefersTo: dn.Formula.String(),
		})
	}

	return &models.WorkbookData{
		BookName:     w.name,
		SheetNames:   w.SheetNames(),
		Sheets:       sheets,
		DefinedNames: names,
	}
}

func (w *Workbook) summarizeSheet(s *Worksheet) models.SheetData {
	var data models.SheetData
	d := s.drawing

	// Shape ids count the non-connector shapes of the sheet.
	nextID := 0
	addShape := func(c drawing.Content, anchorType string, from anchor.GridPoint, to *anchor.GridPoint, ext *anchor.Extent) {
		shape := models.Shape{
			Name:   c.Name,
			Text:   c.Text,
			Type:   parser.ShapeTypeLabel(c.Preset, c.Name),
			Kind:   c.Kind.String(),
			Anchor: anchorType,
			From:   toMarker(from),
		}
		if c.Kind != drawing.ContentConnector {
			nextID++
			id := nextID
			shape.ID = &id
		}
		if to != nil {
			m := toMarker(*to)
			shape.To = &m
		}
		if ext != nil {
			shape.W, shape.H = pixels(*ext)
		}
		data.Shapes = append(data.Shapes, shape)
	}
	for _, a := range d.OneCellAnchors() {
		ext := a.Extent
		addShape(a.Content, "oneCell", a.From, nil, &ext)
	}
	for _, a := range d.TwoCellAnchors() {
		to := a.To
		addShape(a.Content, "twoCell", a.From, &to, nil)
	}

	for _, img := range d.Images() {
		c := img.Content()
		out := models.Image{
			Name:        c.Name,
			Description: c.Description,
			From:        toMarker(img.From()),
		}
		if a := img.OneCellAnchor(); a != nil {
			out.Anchor = "oneCell"
			out.W, out.H = pixels(a.Extent)
		}
		if a := img.TwoCellAnchor(); a != nil {
			out.Anchor = "twoCell"
			to := toMarker(a.To)
			out.To = &to
		}
		data.Images = append(data.Images, out)
	}

	for _, c := range d.Charts() {
		out := models.Chart{
			ChartType: c.Type,
			Title:     c.Title,
			Part:      c.Part,
			Series:    []models.ChartSeries{},
		}
		if c.Anchor != nil {
			out.Name = c.Anchor.Content.Name
			out.From = toMarker(c.Anchor.From)
			out.To = toMarker(c.Anchor.To)
		}
		if cp, ok := w.charts[c.Part]; ok {
			for _, ser := range cp.Series {
				out.Series = append(out.Series, models.ChartSeries{
					Name:      ser.Name,
					NameRange: formulaText(ser.NameRef),
					XRange:    formulaText(ser.Categories),
					YRange:    formulaText(ser.Values),
				})
			}
		}
		for _, f := range c.References {
			out.References = append(out.References, f.String())
		}
		data.Charts = append(data.Charts, out)
	}

	for _, o := range s.oles.Items() {
		out := models.OleObject{
			ProgID:  o.ProgID,
			ShapeID: o.ShapeID,
		}
		if e := o.Embedding; e != nil {
			out.Embedding = e.Part
			out.Extension = e.Extension
			out.Streams = e.Streams
			out.Properties = e.Properties
		}
		a := o.Anchor
		if a == nil {
			a = o.ObjectAnchor
		}
		if a != nil {
			from, to := toMarker(a.From), toMarker(a.To)
			out.From, out.To = &from, &to
		}
		data.OleObjects = append(data.OleObjects, out)
	}
	return data
}

func toMarker(p anchor.GridPoint) models.Marker {
	m := models.Marker{
		Col:    int(p.Column()),
		Row:    int(p.Row()),
		ColOff: int64(p.ColumnOffset()),
		RowOff: int64(p.RowOffset()),
	}
	// Saturated indexes past the sheet limits have no cell name.
	if cell, err := excelize.CoordinatesToCellName(m.Col, m.Row); err == nil {
		m.Cell = cell
	}
	return m
}

func pixels(ext anchor.Extent) (*int, *int) {
	w, h := parser.ExtentPixels(ext)
	return &w, &h
}

func formulaText(f *reference.Formula) string {
	if f == nil {
		return ""
	}
	return f.String()
}
