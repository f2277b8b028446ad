// Package collision tracks the trace names added to a snapshot and notices when
// two names share a hash ID.
package collision

import (
	"fmt"

	"github.com/arloliu/wavepeek/errs"
)

// Tracker records name → ID pairs in insertion order.
//
// Duplicate names are rejected. Distinct names with the same ID are accepted and
// only set the collision flag; the snapshot then tells readers to resolve traces
// by name instead of by ID.
type Tracker struct {
	byID         map[uint64]string
	names        map[string]struct{}
	order        []string
	hasCollision bool
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byID:  make(map[uint64]string),
		names: make(map[string]struct{}),
	}
}

// Track adds name with its hash ID.
func (t *Tracker) Track(name string, id uint64) error {
	if name == "" {
		return errs.ErrInvalidTraceName
	}
	if _, dup := t.names[name]; dup {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateTraceName, name)
	}

	if existing, ok := t.byID[id]; ok && existing != name {
		t.hasCollision = true
	} else {
		t.byID[id] = name
	}
	t.names[name] = struct{}{}
	t.order = append(t.order, name)

	return nil
}

// HasCollision reports whether two tracked names share an ID.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset forgets every name and keeps the allocated maps.
func (t *Tracker) Reset() {
	clear(t.byID)
	clear(t.names)
	t.order = t.order[:0]
	t.hasCollision = false
}
