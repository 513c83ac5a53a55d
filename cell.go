package loom

import (
	"sync/atomic"
)

// borrowHigh is the high bit of a borrowCell's word: set while a caller
// holds the exclusive borrow. The remaining bits count outstanding shared
// borrows.
const borrowHigh uint64 = 1 << 63

// maxBorrowAttempts is the word value at which tryShared gives up on an
// exclusively-held cell: each failed attempt adds one and then undoes it, so
// the word only climbs this far if that many attempts are in flight at once.
const maxBorrowAttempts = borrowHigh + (borrowHigh >> 1)

// borrowCell is a single atomic word tracking shared/exclusive access to one
// table row, modeled on original_source/src/cells/ref_cell.rs. Unlike the
// Rust AtomicRefCell, release is explicit (release) rather than Drop-driven;
// callers must release exactly what they acquired.
type borrowCell struct {
	state atomic.Uint64
}

// borrowOutcome reports whether an acquisition succeeded. The Rust original
// aborts the process on its overflow cases; loom panics there instead
// (aborting the whole process is not acceptable inside an embeddable
// library), so tryShared and tryExclusive only ever return borrowOK or
// borrowExclusiveHeld.
type borrowOutcome int

const (
	borrowOK borrowOutcome = iota
	borrowExclusiveHeld
	borrowOverflow
)

// tryShared attempts to register a shared borrow. On success the caller must
// call releaseShared exactly once. Panics if the shared-borrow counter would
// overflow into the exclusive bit while genuinely under shared-only load;
// also panics if, while the cell is exclusively held, the word reaches
// maxBorrowAttempts. Never loops: a refused attempt returns at once.
func (c *borrowCell) tryShared() borrowOutcome {
	next := c.state.Add(1)

	if next&borrowHigh == 0 {
		return borrowOK
	}

	if next == borrowHigh {
		c.state.Add(^uint64(0))
		panic("loom: too many shared borrows")
	}

	if next >= maxBorrowAttempts {
		panic("loom: too many shared borrow attempts while exclusively borrowed")
	}

	c.state.Add(^uint64(0))
	return borrowExclusiveHeld
}

// releaseShared undoes one tryShared success.
func (c *borrowCell) releaseShared() {
	c.state.Add(^uint64(0))
}

// tryExclusive attempts to acquire the exclusive borrow via CAS. On success
// the caller must call releaseExclusive exactly once.
func (c *borrowCell) tryExclusive() borrowOutcome {
	if c.state.CompareAndSwap(0, borrowHigh) {
		return borrowOK
	}
	return borrowExclusiveHeld
}

// releaseExclusive clears the cell unconditionally. Only call this while
// holding the exclusive borrow.
func (c *borrowCell) releaseExclusive() {
	c.state.Store(0)
}

// locked reports whether the cell is currently held, shared or exclusive.
func (c *borrowCell) locked() bool {
	return c.state.Load() != 0
}
