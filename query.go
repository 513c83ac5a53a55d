package loom

import "iter"

// tableSlot1 is the per-table access handle for a one-term query: the
// entities in the table, the row a live borrow was acquired on (nil if the
// term was optional and absent), and a typed pointer into that row's
// backing slice.
type tableSlot1[T1 any] struct {
	entities []Entity
	row1     *row
	access1  Access
	slice1   *[]T1
}

// Query1 is a query extracting a single component kind, filtered by F.
// Ported from original_source/src/query.rs's Query<'a, E, F>.
type Query1[T1 any] struct {
	term1  term
	filter Filter
	tables []tableSlot1[T1]
}

// NewQuery1 builds a query over scene for the single term described by
// access1/optional1, restricted to tables f accepts. Returns (nil, false)
// if no table matches, matching spec.md §4.5's "construction reports no
// match" contract.
func NewQuery1[T1 any](scene *Scene, access1 Access, optional1 bool, f Filter) (*Query1[T1], bool) {
	if f == nil {
		f = NoFilter{}
	}
	t1 := term{kind: kindOf[T1](), access: access1, optional: optional1}
	validateTerms([]term{t1}, f)

	q := &Query1[T1]{term1: t1, filter: f}
	for _, tbl := range scene.allTables() {
		if !f.check(tbl) {
			continue
		}
		has1 := tbl.containsKind(t1.kind)
		if !has1 && !t1.optional {
			continue
		}
		slot := tableSlot1[T1]{entities: tbl.entities, access1: t1.access}
		if has1 {
			r := tbl.rowFor(t1.kind)
			if !acquireRow(r, t1.access) {
				continue
			}
			slot.row1 = r
			slot.slice1 = typedSlice[T1](r)
		}
		q.tables = append(q.tables, slot)
	}
	if len(q.tables) == 0 {
		return nil, false
	}
	return q, true
}

// TableCount returns how many tables this query matched.
func (q *Query1[T1]) TableCount() int {
	return len(q.tables)
}

// Release returns every borrow the query acquired. Callers (ordinarily the
// system-param adapter) must call this once the query is no longer used.
func (q *Query1[T1]) Release() {
	for _, slot := range q.tables {
		if slot.row1 != nil {
			releaseRow(slot.row1, slot.access1)
		}
	}
}

// All iterates every (entity, *component) pair across every matched table.
func (q *Query1[T1]) All() iter.Seq2[Entity, *T1] {
	return func(yield func(Entity, *T1) bool) {
		for _, slot := range q.tables {
			for i, e := range slot.entities {
				var v *T1
				if slot.slice1 != nil {
					v = &(*slot.slice1)[i]
				}
				if !yield(e, v) {
					return
				}
			}
		}
	}
}

// Get returns the component for a specific entity, if the entity is in one
// of the matched tables.
func (q *Query1[T1]) Get(e Entity) (*T1, bool) {
	for _, slot := range q.tables {
		for i, ent := range slot.entities {
			if ent == e {
				if slot.slice1 == nil {
					return nil, false
				}
				return &(*slot.slice1)[i], true
			}
		}
	}
	return nil, false
}
