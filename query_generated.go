// Code generated by hand from the Query1 shape in query.go. Arities 2-4
// repeat the same per-slot pattern; kept in their own file the way
// edwinsyarief-lazyecs splits its generated query arities out.
package loom

import "iter"

type tableSlot2[T1, T2 any] struct {
	entities []Entity
	row1     *row
	row2     *row
	access1  Access
	access2  Access
	slice1   *[]T1
	slice2   *[]T2
}

// Query2 is a query extracting two component kinds, filtered by F.
type Query2[T1, T2 any] struct {
	term1, term2 term
	filter       Filter
	tables       []tableSlot2[T1, T2]
}

func NewQuery2[T1, T2 any](
	scene *Scene,
	access1 Access, optional1 bool,
	access2 Access, optional2 bool,
	f Filter,
) (*Query2[T1, T2], bool) {
	if f == nil {
		f = NoFilter{}
	}
	t1 := term{kind: kindOf[T1](), access: access1, optional: optional1}
	t2 := term{kind: kindOf[T2](), access: access2, optional: optional2}
	validateTerms([]term{t1, t2}, f)

	q := &Query2[T1, T2]{term1: t1, term2: t2, filter: f}
	for _, tbl := range scene.allTables() {
		if !f.check(tbl) {
			continue
		}
		has1 := tbl.containsKind(t1.kind)
		has2 := tbl.containsKind(t2.kind)
		if (!has1 && !t1.optional) || (!has2 && !t2.optional) {
			continue
		}
		slot := tableSlot2[T1, T2]{entities: tbl.entities, access1: t1.access, access2: t2.access}
		ok := true
		if has1 {
			r := tbl.rowFor(t1.kind)
			if !acquireRow(r, t1.access) {
				ok = false
			} else {
				slot.row1 = r
				slot.slice1 = typedSlice[T1](r)
			}
		}
		if ok && has2 {
			r := tbl.rowFor(t2.kind)
			if !acquireRow(r, t2.access) {
				if slot.row1 != nil {
					releaseRow(slot.row1, t1.access)
				}
				ok = false
			} else {
				slot.row2 = r
				slot.slice2 = typedSlice[T2](r)
			}
		}
		if !ok {
			continue
		}
		q.tables = append(q.tables, slot)
	}
	if len(q.tables) == 0 {
		return nil, false
	}
	return q, true
}

func (q *Query2[T1, T2]) TableCount() int { return len(q.tables) }

func (q *Query2[T1, T2]) Release() {
	for _, slot := range q.tables {
		if slot.row1 != nil {
			releaseRow(slot.row1, slot.access1)
		}
		if slot.row2 != nil {
			releaseRow(slot.row2, slot.access2)
		}
	}
}

func (q *Query2[T1, T2]) All() iter.Seq2[Entity, [2]any] {
	return func(yield func(Entity, [2]any) bool) {
		for _, slot := range q.tables {
			for i, e := range slot.entities {
				var v1 *T1
				var v2 *T2
				if slot.slice1 != nil {
					v1 = &(*slot.slice1)[i]
				}
				if slot.slice2 != nil {
					v2 = &(*slot.slice2)[i]
				}
				if !yield(e, [2]any{v1, v2}) {
					return
				}
			}
		}
	}
}

// Each calls fn with the entity and typed pointers for every matched row;
// nil pointers mean an optional term was absent for that entity's table.
func (q *Query2[T1, T2]) Each(fn func(e Entity, v1 *T1, v2 *T2)) {
	for _, slot := range q.tables {
		for i, e := range slot.entities {
			var v1 *T1
			var v2 *T2
			if slot.slice1 != nil {
				v1 = &(*slot.slice1)[i]
			}
			if slot.slice2 != nil {
				v2 = &(*slot.slice2)[i]
			}
			fn(e, v1, v2)
		}
	}
}

type tableSlot3[T1, T2, T3 any] struct {
	entities []Entity
	row1, row2, row3 *row
	access1, access2, access3 Access
	slice1 *[]T1
	slice2 *[]T2
	slice3 *[]T3
}

// Query3 is a query extracting three component kinds, filtered by F.
type Query3[T1, T2, T3 any] struct {
	term1, term2, term3 term
	filter              Filter
	tables              []tableSlot3[T1, T2, T3]
}

func NewQuery3[T1, T2, T3 any](
	scene *Scene,
	access1 Access, optional1 bool,
	access2 Access, optional2 bool,
	access3 Access, optional3 bool,
	f Filter,
) (*Query3[T1, T2, T3], bool) {
	if f == nil {
		f = NoFilter{}
	}
	t1 := term{kind: kindOf[T1](), access: access1, optional: optional1}
	t2 := term{kind: kindOf[T2](), access: access2, optional: optional2}
	t3 := term{kind: kindOf[T3](), access: access3, optional: optional3}
	validateTerms([]term{t1, t2, t3}, f)

	q := &Query3[T1, T2, T3]{term1: t1, term2: t2, term3: t3, filter: f}
	for _, tbl := range scene.allTables() {
		if !f.check(tbl) {
			continue
		}
		has1 := tbl.containsKind(t1.kind)
		has2 := tbl.containsKind(t2.kind)
		has3 := tbl.containsKind(t3.kind)
		if (!has1 && !t1.optional) || (!has2 && !t2.optional) || (!has3 && !t3.optional) {
			continue
		}
		slot := tableSlot3[T1, T2, T3]{entities: tbl.entities, access1: t1.access, access2: t2.access, access3: t3.access}
		ok := true
		if has1 {
			r := tbl.rowFor(t1.kind)
			if !acquireRow(r, t1.access) {
				ok = false
			} else {
				slot.row1, slot.slice1 = r, typedSlice[T1](r)
			}
		}
		if ok && has2 {
			r := tbl.rowFor(t2.kind)
			if !acquireRow(r, t2.access) {
				ok = false
			} else {
				slot.row2, slot.slice2 = r, typedSlice[T2](r)
			}
		}
		if ok && has3 {
			r := tbl.rowFor(t3.kind)
			if !acquireRow(r, t3.access) {
				ok = false
			} else {
				slot.row3, slot.slice3 = r, typedSlice[T3](r)
			}
		}
		if !ok {
			if slot.row1 != nil {
				releaseRow(slot.row1, t1.access)
			}
			if slot.row2 != nil {
				releaseRow(slot.row2, t2.access)
			}
			continue
		}
		q.tables = append(q.tables, slot)
	}
	if len(q.tables) == 0 {
		return nil, false
	}
	return q, true
}

func (q *Query3[T1, T2, T3]) TableCount() int { return len(q.tables) }

func (q *Query3[T1, T2, T3]) Release() {
	for _, slot := range q.tables {
		if slot.row1 != nil {
			releaseRow(slot.row1, slot.access1)
		}
		if slot.row2 != nil {
			releaseRow(slot.row2, slot.access2)
		}
		if slot.row3 != nil {
			releaseRow(slot.row3, slot.access3)
		}
	}
}

func (q *Query3[T1, T2, T3]) Each(fn func(e Entity, v1 *T1, v2 *T2, v3 *T3)) {
	for _, slot := range q.tables {
		for i, e := range slot.entities {
			var v1 *T1
			var v2 *T2
			var v3 *T3
			if slot.slice1 != nil {
				v1 = &(*slot.slice1)[i]
			}
			if slot.slice2 != nil {
				v2 = &(*slot.slice2)[i]
			}
			if slot.slice3 != nil {
				v3 = &(*slot.slice3)[i]
			}
			fn(e, v1, v2, v3)
		}
	}
}

type tableSlot4[T1, T2, T3, T4 any] struct {
	entities                        []Entity
	row1, row2, row3, row4          *row
	access1, access2, access3, access4 Access
	slice1 *[]T1
	slice2 *[]T2
	slice3 *[]T3
	slice4 *[]T4
}

// Query4 is a query extracting four component kinds, filtered by F.
type Query4[T1, T2, T3, T4 any] struct {
	term1, term2, term3, term4 term
	filter                     Filter
	tables                     []tableSlot4[T1, T2, T3, T4]
}

func NewQuery4[T1, T2, T3, T4 any](
	scene *Scene,
	access1 Access, optional1 bool,
	access2 Access, optional2 bool,
	access3 Access, optional3 bool,
	access4 Access, optional4 bool,
	f Filter,
) (*Query4[T1, T2, T3, T4], bool) {
	if f == nil {
		f = NoFilter{}
	}
	t1 := term{kind: kindOf[T1](), access: access1, optional: optional1}
	t2 := term{kind: kindOf[T2](), access: access2, optional: optional2}
	t3 := term{kind: kindOf[T3](), access: access3, optional: optional3}
	t4 := term{kind: kindOf[T4](), access: access4, optional: optional4}
	validateTerms([]term{t1, t2, t3, t4}, f)

	q := &Query4[T1, T2, T3, T4]{term1: t1, term2: t2, term3: t3, term4: t4, filter: f}
	for _, tbl := range scene.allTables() {
		if !f.check(tbl) {
			continue
		}
		has1 := tbl.containsKind(t1.kind)
		has2 := tbl.containsKind(t2.kind)
		has3 := tbl.containsKind(t3.kind)
		has4 := tbl.containsKind(t4.kind)
		if (!has1 && !t1.optional) || (!has2 && !t2.optional) || (!has3 && !t3.optional) || (!has4 && !t4.optional) {
			continue
		}
		slot := tableSlot4[T1, T2, T3, T4]{
			entities: tbl.entities,
			access1:  t1.access, access2: t2.access, access3: t3.access, access4: t4.access,
		}
		ok := true
		if has1 {
			r := tbl.rowFor(t1.kind)
			if !acquireRow(r, t1.access) {
				ok = false
			} else {
				slot.row1, slot.slice1 = r, typedSlice[T1](r)
			}
		}
		if ok && has2 {
			r := tbl.rowFor(t2.kind)
			if !acquireRow(r, t2.access) {
				ok = false
			} else {
				slot.row2, slot.slice2 = r, typedSlice[T2](r)
			}
		}
		if ok && has3 {
			r := tbl.rowFor(t3.kind)
			if !acquireRow(r, t3.access) {
				ok = false
			} else {
				slot.row3, slot.slice3 = r, typedSlice[T3](r)
			}
		}
		if ok && has4 {
			r := tbl.rowFor(t4.kind)
			if !acquireRow(r, t4.access) {
				ok = false
			} else {
				slot.row4, slot.slice4 = r, typedSlice[T4](r)
			}
		}
		if !ok {
			if slot.row1 != nil {
				releaseRow(slot.row1, t1.access)
			}
			if slot.row2 != nil {
				releaseRow(slot.row2, t2.access)
			}
			if slot.row3 != nil {
				releaseRow(slot.row3, t3.access)
			}
			continue
		}
		q.tables = append(q.tables, slot)
	}
	if len(q.tables) == 0 {
		return nil, false
	}
	return q, true
}

func (q *Query4[T1, T2, T3, T4]) TableCount() int { return len(q.tables) }

func (q *Query4[T1, T2, T3, T4]) Release() {
	for _, slot := range q.tables {
		if slot.row1 != nil {
			releaseRow(slot.row1, slot.access1)
		}
		if slot.row2 != nil {
			releaseRow(slot.row2, slot.access2)
		}
		if slot.row3 != nil {
			releaseRow(slot.row3, slot.access3)
		}
		if slot.row4 != nil {
			releaseRow(slot.row4, slot.access4)
		}
	}
}

func (q *Query4[T1, T2, T3, T4]) Each(fn func(e Entity, v1 *T1, v2 *T2, v3 *T3, v4 *T4)) {
	for _, slot := range q.tables {
		for i, e := range slot.entities {
			var v1 *T1
			var v2 *T2
			var v3 *T3
			var v4 *T4
			if slot.slice1 != nil {
				v1 = &(*slot.slice1)[i]
			}
			if slot.slice2 != nil {
				v2 = &(*slot.slice2)[i]
			}
			if slot.slice3 != nil {
				v3 = &(*slot.slice3)[i]
			}
			if slot.slice4 != nil {
				v4 = &(*slot.slice4)[i]
			}
			fn(e, v1, v2, v3, v4)
		}
	}
}
