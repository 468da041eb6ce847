package kernel

import "github.com/proofcore/proofcore/internal/term"

// Formula is a minimal formula-tree interface. The saturation front
// end is expected to build these when clausification is skipped; the
// core only needs to read a formula's textual form when computing an
// interpolant component key, where a formula is treated as one atomic
// component keyed by its own textual form.
type Formula interface {
	String() string
}

// FormulaUnit is a non-clausal unit: it carries a formula tree and the
// same inference/input-type/color/identity attributes as a Clause, but
// without reference counting.
type FormulaUnit struct {
	number    UnitNumber
	formula   Formula
	inference *Inference
	inputType InputType
	color     term.Color
	trace     TraceMarks
}

// NewFormulaUnit constructs a published FormulaUnit. color must already
// have been computed by the caller from the formula's free symbols
// (formula construction is outside this component's scope).
func NewFormulaUnit(number UnitNumber, formula Formula, inf *Inference, inputType InputType, color term.Color) *FormulaUnit {
	return &FormulaUnit{
		number:    number,
		formula:   formula,
		inference: inf,
		inputType: inputType,
		color:     color,
	}
}

func (f *FormulaUnit) Number() UnitNumber    { return f.number }
func (f *FormulaUnit) Kind() UnitKind        { return FormulaKind }
func (f *FormulaUnit) InputType() InputType  { return f.inputType }
func (f *FormulaUnit) Color() term.Color     { return f.color }
func (f *FormulaUnit) Inference() *Inference { return f.inference }
func (f *FormulaUnit) Trace() *TraceMarks    { return &f.trace }
func (f *FormulaUnit) IDString() string      { return idString(f.number) }
func (f *FormulaUnit) Formula() Formula      { return f.formula }
