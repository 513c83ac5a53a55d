package loom

import (
	"hash/maphash"
	"reflect"
	"sort"
	"sync"
)

var kindHashSeed = maphash.MakeSeed()
var kindHashCache sync.Map // reflect.Type -> uint64

// kindHash returns a process-stable hash for a component kind. Hashes are
// cached per reflect.Type since maphash.Hash is not free to recompute for
// every table built.
func kindHash(kind reflect.Type) uint64 {
	if v, ok := kindHashCache.Load(kind); ok {
		return v.(uint64)
	}
	var h maphash.Hash
	h.SetSeed(kindHashSeed)
	_, _ = h.WriteString(kind.PkgPath())
	_, _ = h.WriteString(kind.Name())
	_, _ = h.WriteString(kind.String())
	sum := h.Sum64()
	kindHashCache.Store(kind, sum)
	return sum
}

// TableID is a content-addressed 128-bit identifier for the exact set of
// component kinds a table stores. Two tables built from the same kind set,
// in any order, get the same TableID; no two distinct kind sets collide in
// practice. Ported from original_source/src/table.rs's TableIdBuilder.
type TableID struct {
	Sum uint64
	Xor uint64
}

// InvalidTableID is the zero value, never assigned to a real table.
var InvalidTableID = TableID{}

// IsInvalid reports whether id is the zero TableID.
func (id TableID) IsInvalid() bool {
	return id.Sum == 0 && id.Xor == 0
}

const tableIDClearMask uint64 = 0xFFFF_FFFF_FFFF_FF00

// tableIDBuilder accumulates per-kind hashes into a TableID. Sum is the
// wrapping sum of hashes (order-independent, collision-resistant across
// most kind combinations); Xor is the bitwise OR of hashes with its low 8
// bits overwritten by the kind count, disambiguating kind sets that happen
// to sum identically.
type tableIDBuilder struct {
	sum uint64
	xor uint64
	cnt uint8
}

func (b *tableIDBuilder) addUnique(kind reflect.Type) {
	h := kindHash(kind)
	b.xor |= h
	b.sum += h
	b.cnt++
}

func (b *tableIDBuilder) finish() TableID {
	xor := (b.xor & tableIDClearMask) | uint64(b.cnt)
	return TableID{Sum: b.sum, Xor: xor}
}

// tableIDFromKinds computes the TableID for an arbitrary, possibly
// unordered, set of distinct component kinds.
func tableIDFromKinds(kinds []reflect.Type) TableID {
	var b tableIDBuilder
	for _, k := range kinds {
		b.addUnique(k)
	}
	return b.finish()
}

// table owns one row per distinct component kind plus the parallel entity
// slice; row[i] and entities[i] always describe the same entity across
// every row. Grounded on original_source/src/table.rs's Table.
type table struct {
	id       TableID
	rows     []*row
	entities []Entity
}

func newTable(id TableID, rows []*row) *table {
	return &table{id: id, rows: rows}
}

func (t *table) len() int {
	return len(t.entities)
}

func (t *table) isEmpty() bool {
	return t.len() == 0
}

// kinds returns the component kinds stored in t, in row order.
func (t *table) kinds() []reflect.Type {
	kinds := make([]reflect.Type, len(t.rows))
	for i, r := range t.rows {
		kinds[i] = r.kind
	}
	return kinds
}

func (t *table) containsKind(kind reflect.Type) bool {
	for _, r := range t.rows {
		if r.kind == kind {
			return true
		}
	}
	return false
}

func (t *table) containsAll(kinds []reflect.Type) bool {
	for _, k := range kinds {
		if !t.containsKind(k) {
			return false
		}
	}
	return true
}

func (t *table) rowFor(kind reflect.Type) *row {
	for _, r := range t.rows {
		if r.kind == kind {
			return r
		}
	}
	return nil
}

func (t *table) entityPosition(e Entity) (int, bool) {
	for i, ent := range t.entities {
		if ent == e {
			return i, true
		}
	}
	return -1, false
}

// pushEntity appends e to the table with every row left holding zero
// values for it; callers fill in real component values afterward.
func (t *table) pushEntity(e Entity) int {
	for _, r := range t.rows {
		r.pushZero()
	}
	t.entities = append(t.entities, e)
	return len(t.entities) - 1
}

// deleteEntity removes e and all its components from the table.
func (t *table) deleteEntity(e Entity) bool {
	pos, ok := t.entityPosition(e)
	if !ok {
		return false
	}
	for _, r := range t.rows {
		r.swapRemoveAt(pos)
	}
	last := len(t.entities) - 1
	t.entities[pos] = t.entities[last]
	t.entities = t.entities[:last]
	return true
}

// moveEntityUp moves e from t to dst, which must own every row t has (plus
// possibly more, left untouched at the new position).
func (t *table) moveEntityUp(dst *table, e Entity) bool {
	pos, ok := t.entityPosition(e)
	if !ok {
		return false
	}
	for _, srcRow := range t.rows {
		dstRow := dst.rowFor(srcRow.kind)
		if dstRow == nil {
			panic("loom: destination table missing a row the source table has")
		}
		srcRow.moveOneTo(dstRow, pos)
	}
	last := len(t.entities) - 1
	t.entities[pos] = t.entities[last]
	t.entities = t.entities[:last]
	dst.entities = append(dst.entities, e)
	return true
}

// moveEntityDown moves e from t to dst, dropping any component whose row
// dst does not have.
func (t *table) moveEntityDown(dst *table, e Entity) bool {
	pos, ok := t.entityPosition(e)
	if !ok {
		return false
	}
	for _, srcRow := range t.rows {
		if dstRow := dst.rowFor(srcRow.kind); dstRow != nil {
			srcRow.moveOneTo(dstRow, pos)
		} else {
			srcRow.swapRemoveAt(pos)
		}
	}
	last := len(t.entities) - 1
	t.entities[pos] = t.entities[last]
	t.entities = t.entities[:last]
	dst.entities = append(dst.entities, e)
	return true
}

// padShortRows zero-fills every row shorter than the table's entity count.
// moveEntityUp only copies the rows its source table already owns; a row for
// a kind the destination table gained but the source table never had stays
// one short after the move, since nothing has appended a value for the
// entity that just arrived into it. Restores the table-homogeneity
// invariant before any ComponentSet.writeInto call indexes into those rows.
func (t *table) padShortRows() {
	n := len(t.entities)
	for _, r := range t.rows {
		for r.len() < n {
			r.pushZero()
		}
	}
}

// extendableTable is a clone of an existing table's empty rows, used as the
// staging area when computing a new target table during an add/remove
// component operation.
type extendableTable struct {
	id   TableID
	rows []*row
}

func (t *table) extendablePrecomputed(id TableID) *extendableTable {
	rows := make([]*row, len(t.rows))
	for i, r := range t.rows {
		rows[i] = r.cloneEmpty()
	}
	return &extendableTable{id: id, rows: rows}
}

func (ex *extendableTable) extendRows(rows []*row) {
	for _, newRow := range rows {
		found := false
		for _, existing := range ex.rows {
			if existing.kind == newRow.kind {
				found = true
				break
			}
		}
		if !found {
			ex.rows = append(ex.rows, newRow)
		}
	}
}

func (ex *extendableTable) removeRows(kinds []reflect.Type) {
	remove := make(map[reflect.Type]bool, len(kinds))
	for _, k := range kinds {
		remove[k] = true
	}
	kept := ex.rows[:0]
	for _, r := range ex.rows {
		if !remove[r.kind] {
			kept = append(kept, r)
		}
	}
	ex.rows = kept
}

func (ex *extendableTable) finish() *table {
	sortRowsByKind(ex.rows)
	return newTable(ex.id, ex.rows)
}

func sortRowsByKind(rows []*row) {
	sort.Slice(rows, func(i, j int) bool {
		return kindHash(rows[i].kind) < kindHash(rows[j].kind)
	})
}
