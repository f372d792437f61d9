package reference

import (
	"strings"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/anchor"
	"github.com/xuri/efp"
)

// Formula is a reference formula as stored in a chart series (c:f) or a
// defined name. Only its range operands are ever rewritten; a formula that
// was not changed renders as its original text.
type Formula struct {
	text    string
	tokens  []efp.Token
	ranges  map[int]*operand
	changed bool
}

// operand is a range token and whether it was rewritten.
type operand struct {
	Range
	changed bool
}

// ParseFormula tokenizes text and extracts its range operands. Operands that
// are not plain ranges (names, numbers, errors) are kept verbatim.
func ParseFormula(text string) *Formula {
	f := &Formula{text: text, ranges: make(map[int]*operand)}
	ps := efp.ExcelParser()
	f.tokens = ps.Parse(text)
	for i, tok := range f.tokens {
		if tok.TType != efp.TokenTypeOperand || tok.TSubType != efp.TokenSubTypeRange {
			continue
		}
		r, err := ParseRange(tok.TValue)
		if err != nil {
			continue
		}
		f.ranges[i] = &operand{Range: r}
	}
	return f
}

// String returns the formula text, re-rendered when a range was rewritten.
func (f *Formula) String() string {
	if !f.changed {
		return f.text
	}
	return f.render()
}

// Changed reports whether any range of the formula was rewritten.
func (f *Formula) Changed() bool { return f.changed }

// Ranges returns copies of the range operands in formula order.
func (f *Formula) Ranges() []Range {
	out := make([]Range, 0, len(f.ranges))
	for i := range f.tokens {
		if r, ok := f.ranges[i]; ok {
			out = append(out, r.Range)
		}
	}
	return out
}

// References reports whether any range operand names sheet.
func (f *Formula) References(sheet string) bool {
	for _, r := range f.ranges {
		if r.Names(sheet) {
			return true
		}
	}
	return false
}

// ShiftInsert rewrites the ranges naming sheet for an insert edit and
// reports whether the text changed.
func (f *Formula) ShiftInsert(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	return f.apply(sheet, count, func(r *Range) { r.ShiftInsert(axis, pivot, count) })
}

// ShiftRemove rewrites the ranges naming sheet for a remove edit and reports
// whether the text changed.
func (f *Formula) ShiftRemove(sheet string, axis anchor.Axis, pivot, count uint32) bool {
	return f.apply(sheet, count, func(r *Range) { r.ShiftRemove(axis, pivot, count) })
}

func (f *Formula) apply(sheet string, count uint32, fn func(*Range)) bool {
	if count == 0 {
		return false
	}
	changed := false
	for _, r := range f.ranges {
		if !r.Names(sheet) {
			continue
		}
		before := r.Range
		fn(&r.Range)
		if r.Range != before {
			r.changed = true
			changed = true
		}
	}
	if changed {
		f.changed = true
	}
	return changed
}

func (f *Formula) render() string {
	var b strings.Builder
	if strings.HasPrefix(strings.TrimSpace(f.text), "=") {
		b.WriteByte('=')
	}
	for i, t := range f.tokens {
		if i == 0 && t.TType == efp.TokenTypeOperatorInfix && t.TValue == "=" {
			continue
		}
		if r, ok := f.ranges[i]; ok && r.changed {
			b.WriteString(r.String())
			continue
		}
		switch {
		case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStart:
			b.WriteString(t.TValue)
			b.WriteRune(efp.ParenOpen)
		case t.TType == efp.TokenTypeFunction && t.TSubType == efp.TokenSubTypeStop:
			b.WriteRune(efp.ParenClose)
		case t.TType == efp.TokenTypeSubexpression && t.TSubType == efp.TokenSubTypeStart:
			b.WriteRune(efp.ParenOpen)
		case t.TType == efp.TokenTypeSubexpression && t.TSubType == efp.TokenSubTypeStop:
			b.WriteRune(efp.ParenClose)
		case t.TType == efp.TokenTypeOperand && t.TSubType == efp.TokenSubTypeText:
			b.WriteRune(efp.QuoteDouble)
			b.WriteString(strings.ReplaceAll(t.TValue, `"`, `""`))
			b.WriteRune(efp.QuoteDouble)
		case t.TType == efp.TokenTypeWhitespace,
			t.TType == efp.TokenTypeOperatorInfix && t.TSubType == efp.TokenSubTypeIntersection:
			b.WriteRune(efp.Whitespace)
		default:
			b.WriteString(t.TValue)
		}
	}
	return b.String()
}
