package loom

import (
	"reflect"

	"go.uber.org/zap"
)

// Access describes how a query slot touches a component row.
type Access uint8

const (
	AccessShared Access = iota
	AccessExclusive
)

// term is one slot of a query's Extract tuple: a component kind, the access
// it needs, and whether its absence from a table is tolerated (Optional).
// Ported from original_source/src/query.rs's Extract trait, collapsed to a
// runtime-tagged constructor rather than a type-level Shared<K>/Exclusive<K>
// split — Go's lack of variadic generics makes a fully type-level tuple of
// independently-moded slots impractical past a couple of arities; the
// component *kind* stays compile-time typed (the primary safety property),
// while read/write mode and optionality become constructor arguments. See
// DESIGN.md's Open Question decision for the full rationale.
type term struct {
	kind     reflect.Type
	access   Access
	optional bool
}

// SharedOf declares a read slot for component kind K.
func SharedOf[K any]() term {
	return term{kind: kindOf[K](), access: AccessShared}
}

// ExclusiveOf declares a write slot for component kind K.
func ExclusiveOf[K any]() term {
	return term{kind: kindOf[K](), access: AccessExclusive}
}

// OptionalOf marks t as tolerant of the table lacking its kind.
func OptionalOf(t term) term {
	t.optional = true
	return t
}

// validateTerms panics (matching spec.md §7's "planner-time validation
// failures" taxonomy) on duplicate kinds, an all-optional extractor, or an
// extractor kind also named by f.
func validateTerms(terms []term, f Filter) {
	seen := make(map[reflect.Type]bool, len(terms))
	allOptional := true
	for _, t := range terms {
		if seen[t.kind] {
			panic("loom: duplicate component kind in query extractor: " + t.kind.String())
		}
		seen[t.kind] = true
		if !t.optional {
			allOptional = false
		}
	}
	if len(terms) > 0 && allOptional {
		panic("loom: query extractor consists only of optional terms")
	}
	if f == nil {
		return
	}
	for _, fk := range f.kinds() {
		if seen[fk] {
			panic("loom: extract/filter conflict on component kind: " + fk.String())
		}
	}
}

// acquireRow acquires the borrow t.access demands on r, returning false if
// the cell refuses (the scheduler's static plan should make this
// unreachable in practice; it is defensive, not the primary coordinator,
// per spec.md §4.5). A refusal is logged as a BorrowConflictError rather
// than silently dropped, since it means the table it governs is about to
// be excluded from the query's results.
func acquireRow(r *row, access Access) bool {
	var ok bool
	if access == AccessExclusive {
		ok = r.cell.tryExclusive() == borrowOK
	} else {
		ok = r.cell.tryShared() == borrowOK
	}
	if !ok {
		logger.Debug("dropping table from query", zap.Error(BorrowConflictError{Kind: r.kind}))
	}
	return ok
}

func releaseRow(r *row, access Access) {
	if access == AccessExclusive {
		r.cell.releaseExclusive()
	} else {
		r.cell.releaseShared()
	}
}
