package kernel

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Store maintains the mapping from unit-number to Unit. It is the
// process-wide (really, per-session) unit-number counter: monotonic,
// and not safe for concurrent access under the single-threaded model.
type Store struct {
	logger logrus.FieldLogger
	units  map[UnitNumber]Unit
	next   UnitNumber
}

// NewStore constructs an empty unit/inference store.
func NewStore(logger logrus.FieldLogger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		logger: logger,
		units:  make(map[UnitNumber]Unit),
		next:   0,
	}
}

// NextNumber allocates (but does not register) the next unit number.
// Constructors such as NewClause take this value so that a unit's
// number is fixed before the unit itself is built.
func (s *Store) NextNumber() UnitNumber {
	n := s.next
	s.next++
	return n
}

// Register publishes a unit. A unit number may be registered exactly
// once; a duplicate registration is a programming error.
func (s *Store) Register(u Unit) error {
	if _, exists := s.units[u.Number()]; exists {
		return errors.Wrapf(ErrDuplicateRegistration, "unit %s", u.IDString())
	}
	for _, p := range u.Inference().parentsOrEmpty() {
		if _, ok := s.units[p]; !ok {
			return errors.Wrapf(ErrUnknownParent, "unit %s references parent %d", u.IDString(), p)
		}
	}
	s.units[u.Number()] = u
	return nil
}

// Get returns the unit registered under number, or nil if none.
func (s *Store) Get(number UnitNumber) Unit {
	return s.units[number]
}

// ParentsOf returns the parents of u's producing inference, in the
// order recorded by the inference.
func (s *Store) ParentsOf(u Unit) []Unit {
	parents := u.Inference().parentsOrEmpty()
	result := make([]Unit, 0, len(parents))
	for _, p := range parents {
		if unit := s.Get(p); unit != nil {
			result = append(result, unit)
		}
	}
	return result
}

// UnitIDString returns u's stable textual identifier, used as a key in
// the interpolant minimizer's encoding.
func (s *Store) UnitIDString(u Unit) string { return u.IDString() }

// Number returns u's unit number.
func (s *Store) Number(u Unit) UnitNumber { return u.Number() }

// Len reports how many units have been registered.
func (s *Store) Len() int { return len(s.units) }

func (inf *Inference) parentsOrEmpty() []UnitNumber {
	if inf == nil {
		return nil
	}
	return inf.Parents
}
