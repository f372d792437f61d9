package spreadsheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/parser"
	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/reference"
)

// Workbook is an opened xlsx package. Edits change the in-memory model;
// Save and Write re-emit the parts that hold it.
//
// A Workbook is not safe for concurrent use.
type Workbook struct {
	name   string
	pkg    *parser.Package
	book   *parser.WorkbookPart
	sheets []*Worksheet
	charts map[string]*parser.ChartPart
	opts   Options
	log    *slog.Logger
}

// Open opens the workbook at path.
func Open(path string, opts Options) (*Workbook, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	pkg, err := parser.OpenPackage(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return load(pkg, filepath.Base(path), opts)
}

// OpenReader opens a workbook from r.
func OpenReader(r io.ReaderAt, size int64, opts Options) (*Workbook, error) {
	pkg, err := parser.ReadPackage(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return load(pkg, "", opts)
}

func load(pkg *parser.Package, name string, opts Options) (*Workbook, error) {
	w := &Workbook{
		name:   name,
		pkg:    pkg,
		charts: make(map[string]*parser.ChartPart),
		opts:   opts,
		log:    opts.logger(),
	}

	data, ok := pkg.Part(parser.WorkbookPath)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidFormat, parser.WorkbookPath)
	}
	book, err := parser.ParseWorkbookPart(parser.WorkbookPath, data)
	if err != nil {
		return nil, NewPartError(parser.WorkbookPath, "workbook", err)
	}
	rels, err := w.relationships(parser.WorkbookPath)
	if err != nil {
		return nil, err
	}
	book.ResolveSheets(rels)
	w.book = book

	for _, entry := range book.Worksheets() {
		sheet, err := w.loadSheet(entry)
		if err != nil {
			return nil, err
		}
		w.sheets = append(w.sheets, sheet)
	}
	return w, nil
}

// relationships returns the relationships of part. A part without a
// relationships part has none.
func (w *Workbook) relationships(part string) ([]parser.Relationship, error) {
	relsPath := parser.RelsPath(part)
	data, ok := w.pkg.Part(relsPath)
	if !ok {
		return nil, nil
	}
	rels, err := parser.ParseRelationships(data)
	if err != nil {
		return nil, NewPartError(relsPath, "relationships", err)
	}
	return rels, nil
}

func (w *Workbook) loadSheet(entry parser.SheetEntry) (*Worksheet, error) {
	data, ok := w.pkg.Part(entry.Path)
	if !ok {
		return nil, NewPartError(entry.Path, "worksheet", fs.ErrNotExist)
	}
	part, err := parser.ParseWorksheetPart(entry.Path, data)
	if err != nil {
		return nil, NewPartError(entry.Path, "worksheet", err)
	}
	sheet := &Worksheet{
		name:    entry.Name,
		path:    entry.Path,
		part:    part,
		drawing: drawing.NewWorksheetDrawing(),
	}

	rels, err := w.relationships(entry.Path)
	if err != nil {
		return nil, err
	}
	for _, o := range part.OleObjects() {
		w.loadEmbedding(entry.Path, o, rels)
		sheet.oles.Add(o)
	}

	rel, ok := parser.FindRelationship(rels, part.DrawingRelID)
	if !ok {
		if part.DrawingRelID == "" {
			return sheet, nil
		}
		rel, ok = parser.FindDrawingRelationship(rels)
		if !ok {
			w.log.Warn("drawing relationship not found", "sheet", entry.Name, "id", part.DrawingRelID)
			return sheet, nil
		}
	}
	drawingPath := parser.ResolveTarget(entry.Path, rel.Target)
	data, ok = w.pkg.Part(drawingPath)
	if !ok {
		w.log.Warn("drawing part missing", "sheet", entry.Name, "part", drawingPath)
		return sheet, nil
	}
	dp, err := parser.ParseDrawingPart(drawingPath, data)
	if err != nil {
		return nil, NewPartError(drawingPath, "drawing", err)
	}
	sheet.drawingPart = dp
	sheet.drawing = dp.Drawing
	sheet.pairOleAnchors(dp.OleAnchors)

	drawingRels, err := w.relationships(drawingPath)
	if err != nil {
		return nil, err
	}
	for _, c := range sheet.drawing.Charts() {
		w.loadChart(drawingPath, c, drawingRels)
	}
	return sheet, nil
}

// loadEmbedding resolves the embedded part of o. Embeddings that cannot be
// read are logged and left undescribed.
func (w *Workbook) loadEmbedding(sheetPath string, o *drawing.OleObject, rels []parser.Relationship) {
	rel, ok := parser.FindRelationship(rels, o.RelID)
	if !ok || rel.IsExternal() {
		return
	}
	partPath := parser.ResolveTarget(sheetPath, rel.Target)
	if !w.opts.ShouldInspectEmbeddings() {
		o.Embedding = &drawing.Embedding{Part: partPath, Extension: extension(partPath)}
		return
	}
	data, ok := w.pkg.Part(partPath)
	if !ok {
		w.log.Warn("embedding part missing", "part", partPath)
		return
	}
	emb, err := parser.InspectEmbedding(partPath, data)
	if err != nil {
		w.log.Warn("skipping embedding contents", "part", partPath, "error", err)
	}
	o.Embedding = emb
}

// loadChart parses the chart part behind c and binds its data references.
// Malformed or missing chart parts are logged and skipped; the frame itself
// is still adjusted.
func (w *Workbook) loadChart(drawingPath string, c *drawing.Chart, rels []parser.Relationship) {
	rel, ok := parser.FindRelationship(rels, c.Anchor.Content.RelID)
	if !ok {
		w.log.Warn("chart relationship not found", "drawing", drawingPath, "id", c.Anchor.Content.RelID)
		return
	}
	partPath := parser.ResolveTarget(drawingPath, rel.Target)
	c.Part = partPath
	if cp, dup := w.charts[partPath]; dup {
		// Frames of a shared part hold the same formulas.
		c.Type, c.Title, c.References = cp.Type, cp.Title, cp.References()
		return
	}
	data, ok := w.pkg.Part(partPath)
	if !ok {
		w.log.Warn("chart part missing", "part", partPath)
		return
	}
	cp, err := parser.ParseChartPart(partPath, data)
	if err != nil {
		w.log.Warn("skipping chart part", "part", partPath, "error", err)
		return
	}
	w.charts[partPath] = cp
	c.Type = cp.Type
	c.Title = cp.Title
	c.References = cp.References()
}

// Name returns the file name the workbook was opened from, if any.
func (w *Workbook) Name() string { return w.name }

// Sheet returns the worksheet called name. Names compare case-insensitively.
func (w *Workbook) Sheet(name string) (*Worksheet, error) {
	for _, s := range w.sheets {
		if reference.SameSheet(s.name, name) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
}

// Sheets returns the worksheets in workbook order.
func (w *Workbook) Sheets() []*Worksheet {
	return w.sheets
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

// DefinedNames returns the workbook defined names.
func (w *Workbook) DefinedNames() []*reference.DefinedName {
	return w.book.DefinedNames
}

// Insert inserts count rows or columns before pivot on sheet. Objects on
// that sheet at or after pivot move by count; chart data references and
// defined names naming the sheet are rewritten on every sheet.
func (w *Workbook) Insert(sheet string, axis anchor.Axis, pivot, count uint32) error {
	s, err := w.Sheet(sheet)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	s.insert(axis, pivot, count)

	refs := w.shiftChartReferences(func(f *reference.Formula) bool {
		return f.ShiftInsert(s.name, axis, pivot, count)
	})
	names := 0
	for _, dn := range w.book.DefinedNames {
		if dn.Formula != nil && dn.Formula.ShiftInsert(s.name, axis, pivot, count) {
			names++
		}
	}
	w.log.Debug("inserted", "sheet", s.name, "axis", axis.String(), "pivot", pivot, "count", count,
		"references", refs, "names", names)
	return nil
}

// Remove removes count rows or columns starting at pivot on sheet. Objects
// lying entirely inside the removed window are deleted, the others move;
// chart data references and defined names naming the sheet are rewritten on
// every sheet.
func (w *Workbook) Remove(sheet string, axis anchor.Axis, pivot, count uint32) error {
	s, err := w.Sheet(sheet)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	s.remove(axis, pivot, count)

	refs := w.shiftChartReferences(func(f *reference.Formula) bool {
		return f.ShiftRemove(s.name, axis, pivot, count)
	})
	names := 0
	for _, dn := range w.book.DefinedNames {
		if dn.Formula != nil && dn.Formula.ShiftRemove(s.name, axis, pivot, count) {
			names++
		}
	}
	w.log.Debug("removed", "sheet", s.name, "axis", axis.String(), "pivot", pivot, "count", count,
		"references", refs, "names", names)
	return nil
}

// shiftChartReferences applies fn once to every chart data reference of the
// workbook and returns how many changed. Chart parts are visited even when
// all their frames were removed, and frames sharing a part share formulas.
func (w *Workbook) shiftChartReferences(fn func(*reference.Formula) bool) int {
	seen := make(map[*reference.Formula]bool)
	changed := 0
	visit := func(refs []*reference.Formula) {
		for _, f := range refs {
			if seen[f] {
				continue
			}
			seen[f] = true
			if fn(f) {
				changed++
			}
		}
	}
	for _, cp := range w.charts {
		visit(cp.References())
	}
	for _, s := range w.sheets {
		for _, c := range s.drawing.Charts() {
			visit(c.References)
		}
	}
	return changed
}

// InsertRows inserts count rows before row.
func (w *Workbook) InsertRows(sheet string, row, count uint32) error {
	return w.Insert(sheet, anchor.Row, row, count)
}

// RemoveRows removes count rows starting at row.
func (w *Workbook) RemoveRows(sheet string, row, count uint32) error {
	return w.Remove(sheet, anchor.Row, row, count)
}

// InsertColumns inserts count columns before col.
func (w *Workbook) InsertColumns(sheet string, col, count uint32) error {
	return w.Insert(sheet, anchor.Column, col, count)
}

// RemoveColumns removes count columns starting at col.
func (w *Workbook) RemoveColumns(sheet string, col, count uint32) error {
	return w.Remove(sheet, anchor.Column, col, count)
}

// render writes the current model into the parts of pkg.
func (w *Workbook) render(pkg *parser.Package) error {
	pkg.SetPart(w.book.Path, w.book.Render())
	for _, s := range w.sheets {
		pkg.SetPart(s.path, s.part.Render(s.oles.Items()))
		if s.drawingPart == nil {
			if s.drawing.HasDrawingObject() {
				return NewPartError(s.path, "drawing", ErrNoDrawingPart)
			}
			continue
		}
		data, err := s.drawingPart.Render(s.oles.Items())
		if err != nil {
			return NewPartError(s.drawingPart.Path, "drawing", err)
		}
		pkg.SetPart(s.drawingPart.Path, data)
	}
	for partPath, cp := range w.charts {
		if cp.Changed() {
			pkg.SetPart(partPath, cp.Render())
		}
	}
	return nil
}

// Write writes the workbook as an xlsx package to dst.
func (w *Workbook) Write(dst io.Writer) error {
	if err := w.render(w.pkg); err != nil {
		return err
	}
	return w.pkg.Write(dst)
}

// Save writes the workbook to path.
func (w *Workbook) Save(path string) error {
	var buf bytes.Buffer
	if err := w.Write(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	w.log.Info("saved workbook", "path", path, "bytes", buf.Len())
	return nil
}

// Clone returns an independent copy of the workbook in its current state.
func (w *Workbook) Clone() (*Workbook, error) {
	pkg, err := w.pkg.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone package: %w", err)
	}
	if err := w.render(pkg); err != nil {
		return nil, err
	}
	return load(pkg, w.name, w.opts)
}

func extension(partPath string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(partPath), "."))
}
