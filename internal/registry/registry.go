// Package registry maps 32-bit format identifiers to their immutable
// format literals. Registration happens once per call site; lookups run
// on the consumer for every record. Both sides are lock-free: the table
// is open-addressed, append-only, and published with a CAS per slot.
package registry

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// DefaultCapacity is sized so that a program's call-site count never
// plausibly fills the table.
const DefaultCapacity = 1 << 16

var (
	// ErrFull means every slot is occupied. With a sanely sized table
	// this is a build-configuration bug, not a runtime condition.
	ErrFull = errors.New("registry: table full")

	// ErrCollision means two distinct literals hashed to the same
	// identifier inside one process.
	ErrCollision = errors.New("registry: format id collision")
)

// slot pairs an identifier with a pointer to the literal. key == 0
// marks an empty slot; the key CAS is the claim, the pointer store
// completes publication. A reader that wins the race between the two
// sees a non-zero key with a nil pointer and retries.
type slot struct {
	key atomic.Uint32
	ptr atomic.Pointer[string]
}

// Table is a fixed-capacity id -> literal map. The zero identifier is
// reserved as the empty sentinel; callers bump a hash of zero before
// registering.
type Table struct {
	slots []slot
	mask  uint32
}

// New allocates a table. Capacity must be a power of two.
func New(capacity int) *Table {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("registry: capacity must be a power of two and >= 2")
	}
	return &Table{
		slots: make([]slot, capacity),
		mask:  uint32(capacity - 1),
	}
}

// Register installs literal under id. It is idempotent for the same
// id/literal pair, returns ErrCollision when id is already bound to
// different bytes, and ErrFull when no slot is free. id must not be 0.
func (t *Table) Register(id uint32, literal string) error {
	for i := uint32(0); i <= t.mask; i++ {
		s := &t.slots[(id+i)&t.mask]
		k := s.key.Load()
		if k == 0 {
			if s.key.CompareAndSwap(0, id) {
				lit := literal
				s.ptr.Store(&lit)
				return nil
			}
			k = s.key.Load()
		}
		if k != id {
			continue // occupied by another id, keep probing
		}
		p := s.ptr.Load()
		if p == nil {
			// A racing Register claimed the slot and has not stored
			// the pointer yet. Both writers hold the same call site's
			// literal, so the registration is already done.
			return nil
		}
		if *p != literal {
			return errors.Wrapf(ErrCollision, "id %#08x: %q vs %q", id, *p, literal)
		}
		return nil
	}
	return errors.Wrapf(ErrFull, "registering id %#08x", id)
}

// Lookup returns the literal registered under id. A slot whose key
// matches but whose pointer is still in flight is retried once, then
// reported as a miss; the caller treats a miss as an unknown id.
func (t *Table) Lookup(id uint32) (string, bool) {
	for i := uint32(0); i <= t.mask; i++ {
		s := &t.slots[(id+i)&t.mask]
		k := s.key.Load()
		if k == 0 {
			return "", false
		}
		if k != id {
			continue
		}
		p := s.ptr.Load()
		if p == nil {
			p = s.ptr.Load()
			if p == nil {
				return "", false
			}
		}
		return *p, true
	}
	return "", false
}

// Capacity returns the allocated slot count.
func (t *Table) Capacity() int {
	return len(t.slots)
}
