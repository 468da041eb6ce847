package term

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store is a per-session hash-consing context: an owned object
// threaded through all Intern* calls rather than process-wide mutable
// state. A Store is not safe for concurrent use: the core is
// single-threaded cooperative, and the only mutation points are
// Intern*.
type Store struct {
	logger logrus.FieldLogger

	varTerms   map[varKey]TermID
	applyTerms map[string]TermID // keyed by a canonical string encoding (functor,sort,args)
	literals   map[string]LitID

	termNodes []*Node
	litNodes  []*LiteralNode

	symbolColor map[string]Color // functor/predicate name -> declared color, default TRANSPARENT

	stats StoreStats
}

type varKey struct {
	id   int
	sort Sort
}

// StoreStats mirrors what internal/stats exports as Prometheus gauges.
type StoreStats struct {
	NumTerms    int
	NumLiterals int
	TotalWeight int
}

// NewStore constructs an empty, ready-to-use term/literal store.
func NewStore(logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		logger:      logger,
		varTerms:    make(map[varKey]TermID),
		applyTerms:  make(map[string]TermID),
		literals:    make(map[string]LitID),
		termNodes:   []*Node{nil}, // index 0 reserved, IDs are 1-based
		litNodes:    []*LiteralNode{nil},
		symbolColor: make(map[string]Color),
	}
}

// DeclareSymbolColor fixes the color of a functor or predicate symbol
// prior to interning any term or literal that uses it. Symbols not
// declared default to TRANSPARENT.
func (s *Store) DeclareSymbolColor(symbol string, c Color) {
	s.symbolColor[symbol] = c
}

func (s *Store) colorOf(symbol string) Color {
	return s.symbolColor[symbol]
}

// Stats returns a snapshot of store-wide counters.
func (s *Store) Stats() StoreStats {
	return s.stats
}

// Term returns the node stored under id, or nil if id is unknown.
func (s *Store) Term(id TermID) *Node {
	if int(id) <= 0 || int(id) >= len(s.termNodes) {
		return nil
	}
	return s.termNodes[id]
}

// Literal returns the node stored under id, or nil if id is unknown.
func (s *Store) Literal(id LitID) *LiteralNode {
	if int(id) <= 0 || int(id) >= len(s.litNodes) {
		return nil
	}
	return s.litNodes[id]
}

// InternVariable interns a variable of the given identifier and sort,
// returning the existing id if this (id,sort) pair has been seen
// before: hash-cons identity means pointer/identity equality implies
// structural equality.
func (s *Store) InternVariable(id int, sort Sort) (TermID, error) {
	key := varKey{id: id, sort: sort}
	if existing, ok := s.varTerms[key]; ok {
		return existing, nil
	}
	tid, err := s.nextTermID()
	if err != nil {
		return 0, err
	}
	node := &Node{
		ID:     tid,
		kind:   kindVar,
		VarID:  id,
		Sort:   sort,
		Weight: 1,
		Color:  TRANSPARENT,
	}
	s.storeTerm(tid, node)
	s.varTerms[key] = tid
	return tid, nil
}

// InternApply interns a function application, hash-consing on
// (functor, sort, ordered argument ids). Weight and color are cached
// at insertion. A color collision (a LEFT and a RIGHT symbol both
// reachable) is refused with ErrInvalidColor.
func (s *Store) InternApply(functor string, sort Sort, args []TermID) (TermID, error) {
	key := s.applyKey(functor, sort, args)
	if existing, ok := s.applyTerms[key]; ok {
		return existing, nil
	}

	weight := 1
	colors := make([]Color, 0, len(args)+1)
	colors = append(colors, s.colorOf(functor))
	for _, a := range args {
		n := s.Term(a)
		if n == nil {
			return 0, errors.Errorf("term store: unknown argument term id %d", a)
		}
		weight += n.Weight
		colors = append(colors, n.Color)
	}
	color := combine(colors...)
	if color == INVALID {
		return 0, errors.Wrapf(ErrInvalidColor, "functor %q", functor)
	}

	tid, err := s.nextTermID()
	if err != nil {
		return 0, err
	}
	node := &Node{
		ID:      tid,
		kind:    kindApply,
		Functor: functor,
		Sort:    sort,
		Args:    append([]TermID(nil), args...),
		Weight:  weight,
		Color:   color,
	}
	s.storeTerm(tid, node)
	s.applyTerms[key] = tid
	return tid, nil
}

// InternLiteral interns a typed predicate application, hash-consing on
// (predicate, polarity, argument ids).
func (s *Store) InternLiteral(pred string, polarity bool, args []TermID) (LitID, error) {
	key := s.litKey(pred, polarity, args)
	if existing, ok := s.literals[key]; ok {
		return existing, nil
	}

	weight := 1
	colors := make([]Color, 0, len(args)+1)
	colors = append(colors, s.colorOf(pred))
	for _, a := range args {
		n := s.Term(a)
		if n == nil {
			return 0, errors.Errorf("term store: unknown argument term id %d", a)
		}
		weight += n.Weight
		colors = append(colors, n.Color)
	}
	color := combine(colors...)
	if color == INVALID {
		return 0, errors.Wrapf(ErrInvalidColor, "predicate %q", pred)
	}

	lid, err := s.nextLitID()
	if err != nil {
		return 0, err
	}
	node := &LiteralNode{
		ID:       lid,
		Pred:     pred,
		Polarity: polarity,
		Args:     append([]TermID(nil), args...),
		Weight:   weight,
		Color:    color,
	}
	s.litNodes = append(s.litNodes, node)
	s.literals[key] = lid
	s.stats.NumLiterals++
	s.stats.TotalWeight += weight
	return lid, nil
}

func (s *Store) nextTermID() (TermID, error) {
	id := TermID(len(s.termNodes))
	if id > maxID {
		return 0, ErrAllocation
	}
	return id, nil
}

func (s *Store) nextLitID() (LitID, error) {
	id := LitID(len(s.litNodes))
	if TermID(id) > maxID {
		return 0, ErrAllocation
	}
	return id, nil
}

func (s *Store) storeTerm(id TermID, node *Node) {
	s.termNodes = append(s.termNodes, node)
	s.stats.NumTerms++
	s.stats.TotalWeight += node.Weight
}

func (s *Store) applyKey(functor string, sort Sort, args []TermID) string {
	var b strings.Builder
	b.WriteString(functor)
	b.WriteByte(0)
	b.WriteString(string(sort))
	for _, a := range args {
		b.WriteByte(0)
		fmt.Fprintf(&b, "%d", a)
	}
	return b.String()
}

func (s *Store) litKey(pred string, polarity bool, args []TermID) string {
	var b strings.Builder
	b.WriteString(pred)
	b.WriteByte(0)
	if polarity {
		b.WriteByte('+')
	} else {
		b.WriteByte('-')
	}
	for _, a := range args {
		b.WriteByte(0)
		fmt.Fprintf(&b, "%d", a)
	}
	return b.String()
}
