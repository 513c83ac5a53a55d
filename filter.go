package loom

import "reflect"

// Filter decides whether a table should be visited by a query, independent
// of what the query's Extract actually reads or writes. Ported from
// original_source/src/filter.rs.
type Filter interface {
	check(t *table) bool
	kinds() []reflect.Type
	// set returns the kind sets this filter requires present (has) and
	// absent (not), used by the planner to relax a footprint conflict when
	// two systems' filters guarantee they never visit the same table. A
	// filter that can't express itself this way (Or, see below) reports the
	// empty set, which conservatively never relaxes anything.
	set() filterSet
}

// filterSet is the has/not decomposition of a Filter that the planner can
// reason about. Two filterSets are disjoint (see filtersDisjoint) when one
// requires a kind the other forbids.
type filterSet struct {
	has []reflect.Type
	not []reflect.Type
}

// NoFilter matches every table; it is Query's default filter.
type NoFilter struct{}

func (NoFilter) check(*table) bool     { return true }
func (NoFilter) kinds() []reflect.Type { return nil }
func (NoFilter) set() filterSet        { return filterSet{} }

// With requires the table to contain kind K.
type With[K any] struct{}

func (With[K]) check(t *table) bool {
	return t.containsKind(kindOf[K]())
}

func (With[K]) kinds() []reflect.Type {
	return []reflect.Type{kindOf[K]()}
}

func (With[K]) set() filterSet {
	return filterSet{has: []reflect.Type{kindOf[K]()}}
}

// Without requires the table to NOT contain kind K.
type Without[K any] struct{}

func (Without[K]) check(t *table) bool {
	return !t.containsKind(kindOf[K]())
}

func (Without[K]) kinds() []reflect.Type {
	return []reflect.Type{kindOf[K]()}
}

func (Without[K]) set() filterSet {
	return filterSet{not: []reflect.Type{kindOf[K]()}}
}

// Or matches a table if either F1 or F2 matches it.
type Or[F1, F2 Filter] struct{}

func (Or[F1, F2]) check(t *table) bool {
	var f1 F1
	var f2 F2
	return f1.check(t) || f2.check(t)
}

func (Or[F1, F2]) kinds() []reflect.Type {
	var f1 F1
	var f2 F2
	return append(f1.kinds(), f2.kinds()...)
}

// set conservatively reports no requirements: an Or's two branches can pull
// in opposite directions (one might have what the other doesn't), so it
// can't be decomposed into a single has/not pair the way With/Without can.
func (Or[F1, F2]) set() filterSet {
	return filterSet{}
}

// filtersDisjoint reports whether a and b can never both match the same
// table: one requires a kind the other forbids. Mirrors
// original_source/src/schedule.rs's prevents_overlapping check used when
// deciding whether two systems touching the same component kind can still
// run in parallel.
func filtersDisjoint(a, b filterSet) bool {
	for _, h := range a.has {
		for _, n := range b.not {
			if h == n {
				return true
			}
		}
	}
	for _, n := range a.not {
		for _, h := range b.has {
			if n == h {
				return true
			}
		}
	}
	return false
}
