package kernel

import (
	"sort"

	"github.com/proofcore/proofcore/internal/term"
)

// Clause is an immutable ordered sequence of literals plus its
// reference-counting bookkeeping. DecRef reports when the count
// reaches zero; the Store has no removal operation, so such a clause
// stays registered and nothing is freed.
type Clause struct {
	number    UnitNumber
	literals  []term.LitID // sorted by literal id, for canonical variant-checking
	inference *Inference
	inputType InputType
	color     term.Color
	weight    int
	refCount  int32
	trace     TraceMarks
}

// NewClause constructs a published, immutable Clause. The literal
// sequence is sorted by literal identifier to make variant-checking
// canonical. number must come from Store.NextNumber and must not have
// been used before.
func NewClause(number UnitNumber, store *term.Store, literals []term.LitID, inf *Inference, inputType InputType) *Clause {
	sorted := append([]term.LitID(nil), literals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	color := term.TRANSPARENT
	weight := 0
	colors := make([]term.Color, 0, len(sorted)+1)
	for _, lid := range sorted {
		if l := store.Literal(lid); l != nil {
			weight += l.Weight
			colors = append(colors, l.Color)
		}
	}
	color = foldColor(colors)

	return &Clause{
		number:    number,
		literals:  sorted,
		inference: inf,
		inputType: inputType,
		color:     color,
		weight:    weight,
		refCount:  0,
	}
}

func foldColor(colors []term.Color) term.Color {
	seenLeft, seenRight := false, false
	for _, c := range colors {
		switch c {
		case term.LEFT:
			seenLeft = true
		case term.RIGHT:
			seenRight = true
		case term.INVALID:
			return term.INVALID
		}
	}
	switch {
	case seenLeft && seenRight:
		return term.INVALID
	case seenLeft:
		return term.LEFT
	case seenRight:
		return term.RIGHT
	default:
		return term.TRANSPARENT
	}
}

func (c *Clause) Number() UnitNumber         { return c.number }
func (c *Clause) Kind() UnitKind             { return ClauseKind }
func (c *Clause) InputType() InputType       { return c.inputType }
func (c *Clause) Color() term.Color          { return c.color }
func (c *Clause) Inference() *Inference      { return c.inference }
func (c *Clause) Trace() *TraceMarks         { return &c.trace }
func (c *Clause) IDString() string           { return idString(c.number) }
func (c *Clause) Literals() []term.LitID     { return c.literals }
func (c *Clause) Weight() int                { return c.weight }
func (c *Clause) RefCount() int32            { return c.refCount }

// IncRef increments the clause's reference count. Indexes and the
// passive/active sets call this when they start holding the clause.
func (c *Clause) IncRef() {
	c.refCount++
}

// DecRef decrements the reference count and reports whether it
// reached zero; it does not unregister or free the clause.
// Decrementing past zero is a fatal ErrRefCountUnderflow.
func (c *Clause) DecRef() (destroyed bool, err error) {
	if c.refCount <= 0 {
		return false, ErrRefCountUnderflow
	}
	c.refCount--
	return c.refCount == 0, nil
}
