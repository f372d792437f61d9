// Package reference parses and rewrites the cell-range coordinates held by
// chart series and defined names.
package reference

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
)

// Cell is one endpoint of a range. A zero Column marks a whole-row
// reference (e.g. "3:5"), a zero Row a whole-column one (e.g. "B:D").
type Cell struct {
	Column    uint32
	Row       uint32
	AbsColumn bool
	AbsRow    bool
}

// String formats the cell in A1 notation, keeping "$" markers.
func (c Cell) String() string {
	var b strings.Builder
	if c.Column > 0 {
		if c.AbsColumn {
			b.WriteByte('$')
		}
		name, err := excelize.ColumnNumberToName(int(c.Column))
		if err != nil {
			name, _ = excelize.ColumnNumberToName(excelize.MaxColumns)
		}
		b.WriteString(name)
	}
	if c.Row > 0 {
		if c.AbsRow {
			b.WriteByte('$')
		}
		b.WriteString(strconv.FormatUint(uint64(c.Row), 10))
	}
	return b.String()
}

func (c *Cell) shiftInsert(axis anchor.Axis, pivot, count uint32) {
	switch {
	case axis == anchor.Row && c.Row > 0:
		c.Row = min(anchor.InsertIndex(c.Row, pivot, count), excelize.TotalRows)
	case axis == anchor.Column && c.Column > 0:
		c.Column = min(anchor.InsertIndex(c.Column, pivot, count), excelize.MaxColumns)
	}
}

func (c *Cell) shiftRemove(axis anchor.Axis, pivot, count uint32) {
	switch {
	case axis == anchor.Row && c.Row > 0:
		c.Row = anchor.RemoveIndex(c.Row, pivot, count)
	case axis == anchor.Column && c.Column > 0:
		c.Column = anchor.RemoveIndex(c.Column, pivot, count)
	}
}

// parseCell parses "A1", "$A$1", "$A", "12" or "$12".
func parseCell(s string) (Cell, error) {
	var c Cell
	rest := s
	if strings.HasPrefix(rest, "$") {
		c.AbsColumn = true
		rest = rest[1:]
	}
	i := 0
	for i < len(rest) && isLetter(rest[i]) {
		i++
	}
	letters := rest[:i]
	rest = rest[i:]
	if letters == "" {
		// row-only reference: the leading "$" belonged to the row
		c.AbsRow, c.AbsColumn = c.AbsColumn, false
	} else {
		col, err := excelize.ColumnNameToNumber(letters)
		if err != nil {
			return Cell{}, fmt.Errorf("invalid cell reference %q: %w", s, err)
		}
		c.Column = uint32(col)
		if strings.HasPrefix(rest, "$") {
			c.AbsRow = true
			rest = rest[1:]
		}
	}
	if rest != "" {
		row, err := strconv.ParseUint(rest, 10, 32)
		if err != nil || row == 0 || row > excelize.TotalRows {
			return Cell{}, fmt.Errorf("invalid cell reference %q", s)
		}
		c.Row = uint32(row)
	}
	if c.Column == 0 && c.Row == 0 {
		return Cell{}, fmt.Errorf("invalid cell reference %q", s)
	}
	return c, nil
}

func isLetter(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}

// Range is a cell or area reference with an optional sheet qualifier, such
// as "Sheet1!$A$2:$A$9" or "'Q1 Data'!B3".
type Range struct {
	Sheet string
	From  Cell
	To    Cell
	// Single is set for one-cell references written without a colon.
	Single bool

	// qualifier is the sheet prefix as written, quotes included.
	qualifier string
}

// ParseRange parses a range reference. Quoted sheet names are unquoted.
func ParseRange(s string) (Range, error) {
	var r Range
	area := s
	if idx := strings.LastIndex(s, "!"); idx >= 0 {
		r.qualifier = s[:idx]
		r.Sheet = unquoteSheet(r.qualifier)
		area = s[idx+1:]
		if r.Sheet == "" {
			return Range{}, fmt.Errorf("invalid range reference %q: empty sheet name", s)
		}
	}
	first, second, hasColon := strings.Cut(area, ":")
	from, err := parseCell(first)
	if err != nil {
		return Range{}, err
	}
	r.From = from
	if !hasColon {
		if from.Column == 0 || from.Row == 0 {
			return Range{}, fmt.Errorf("invalid range reference %q", s)
		}
		r.To = from
		r.Single = true
		return r, nil
	}
	to, err := parseCell(second)
	if err != nil {
		return Range{}, err
	}
	if (from.Column == 0) != (to.Column == 0) || (from.Row == 0) != (to.Row == 0) {
		return Range{}, fmt.Errorf("invalid range reference %q: mixed endpoints", s)
	}
	r.To = to
	return r, nil
}

// String formats the range. A parsed sheet qualifier is written back as it
// was; otherwise the sheet name is quoted when required.
func (r Range) String() string {
	var b strings.Builder
	switch {
	case r.qualifier != "" && unquoteSheet(r.qualifier) == r.Sheet:
		b.WriteString(r.qualifier)
		b.WriteByte('!')
	case r.Sheet != "":
		b.WriteString(quoteSheet(r.Sheet))
		b.WriteByte('!')
	}
	b.WriteString(r.From.String())
	if !r.Single {
		b.WriteByte(':')
		b.WriteString(r.To.String())
	}
	return b.String()
}

// ShiftInsert applies the insert rule to both endpoints.
func (r *Range) ShiftInsert(axis anchor.Axis, pivot, count uint32) {
	r.From.shiftInsert(axis, pivot, count)
	r.To.shiftInsert(axis, pivot, count)
}

// ShiftRemove applies the remove rule to both endpoints.
func (r *Range) ShiftRemove(axis anchor.Axis, pivot, count uint32) {
	r.From.shiftRemove(axis, pivot, count)
	r.To.shiftRemove(axis, pivot, count)
}

// IsExternal reports whether the range points into another workbook.
func (r Range) IsExternal() bool {
	return strings.HasPrefix(r.Sheet, "[")
}

// SameSheet reports whether two sheet names address the same sheet.
// Sheet names compare case-insensitively.
func SameSheet(a, b string) bool {
	if a == b {
		return true
	}
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}

// Names reports whether the range refers to sheet.
func (r Range) Names(sheet string) bool {
	return r.Sheet != "" && !r.IsExternal() && SameSheet(r.Sheet, sheet)
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

func quoteSheet(s string) string {
	if !needsQuote(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func needsQuote(s string) bool {
	if s == "" {
		return false
	}
	if s[0] >= '0' && s[0] <= '9' {
		return true
	}
	for _, r := range s {
		if !(r == '_' || r == '.' || ('0' <= r && r <= '9') || ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') || r > 0x7f) {
			return true
		}
	}
	// names that also read as a cell reference
	if c, err := parseCell(s); err == nil && c.Column > 0 && c.Row > 0 {
		return true
	}
	return isR1C1(s)
}

// isR1C1 reports whether s reads as an R1C1 reference such as "R", "C2"
// or "r1c1".
func isR1C1(s string) bool {
	s = strings.ToUpper(s)
	digits := func(s string) string {
		return strings.TrimLeft(s, "0123456789")
	}
	switch {
	case strings.HasPrefix(s, "R"):
		rest := digits(s[1:])
		return rest == "" || (rest[0] == 'C' && digits(rest[1:]) == "")
	case strings.HasPrefix(s, "C"):
		return digits(s[1:]) == ""
	}
	return false
}
