package loom

import (
	"reflect"
	"sort"
	"sync"
)

// directoryEntry is the scene's per-entity-index record: the generation the
// slot was allocated at and the id of the table currently holding it.
// InvalidTableID means "reserved but inactive" — no components yet.
type directoryEntry struct {
	gen     Generation
	tableID TableID
}

// Scene is the archetype set: it owns every table and the entity directory
// mapping each live entity to the table holding its components. Named after
// original_source/src/scene.rs (the teacher repo calls the equivalent type
// Storage; loom keeps the original-source name since this module is a
// from-scratch rebuild of the storage engine, not a reuse of teacher code).
//
// mu guards directory and the tables/tableOrder pair. Commands.ReserveEntity
// calls Reserve synchronously from whichever worker goroutine issued the
// command, and AddComponents/RemoveComponents run during a pass under the
// planner's conflict guarantees but can still overlap a concurrent Reserve —
// so every exported method takes the lock rather than assuming a single
// caller.
type Scene struct {
	mu sync.Mutex

	alloc     *entityAllocator
	directory []directoryEntry

	tables map[TableID]*table
	// tableOrder records table ids in creation order. Scene hands out tables
	// to queries via tablesMatching/allTables, and spec.md's data model
	// treats the archetype set as an ordered Vec<Table> rather than an
	// unordered map — ranging over Go's tables map directly would make
	// query iteration order (and so S2's entity-yield order) nondeterministic
	// from run to run.
	tableOrder []TableID
}

// NewScene returns an empty Scene.
func NewScene() *Scene {
	return &Scene{
		alloc:  newEntityAllocator(),
		tables: make(map[TableID]*table),
	}
}

func (s *Scene) ensureDirectory(index uint32) {
	for uint32(len(s.directory)) <= index {
		s.directory = append(s.directory, directoryEntry{tableID: InvalidTableID})
	}
}

// Reserve allocates a fresh Entity with no components.
func (s *Scene) Reserve() Entity {
	e := s.alloc.allocate()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureDirectory(e.Index)
	s.directory[e.Index] = directoryEntry{gen: e.Gen, tableID: InvalidTableID}
	return e
}

// Alive reports whether e currently names a live entity in this scene.
func (s *Scene) Alive(e Entity) bool {
	return s.alloc.alive(e)
}

// Destroy removes e from its table (if it has one) and recycles its index.
// A reference to an unknown or stale entity silently no-ops, matching the
// deferred-command contract described in spec.md §4.4.
func (s *Scene) Destroy(e Entity) {
	if !s.alloc.alive(e) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.directory[e.Index]
	if !entry.tableID.IsInvalid() {
		if t := s.tables[entry.tableID]; t != nil {
			t.deleteEntity(e)
			s.reapIfEmpty(t)
		}
	}
	s.directory[e.Index] = directoryEntry{tableID: InvalidTableID}
	s.alloc.free(e)
}

func (s *Scene) reapIfEmpty(t *table) {
	if t.isEmpty() {
		delete(s.tables, t.id)
	}
}

// registerTable records a newly created table and appends its id to
// tableOrder, unless an earlier (since reaped) table with the same id is
// already listed there. Callers must hold s.mu.
func (s *Scene) registerTable(t *table) {
	s.tables[t.id] = t
	listed := false
	for _, id := range s.tableOrder {
		if id == t.id {
			listed = true
			break
		}
	}
	if !listed {
		s.tableOrder = append(s.tableOrder, t.id)
	}
	if Config.tableEvents.OnTableCreated != nil {
		Config.tableEvents.OnTableCreated(t.id)
	}
}

// TableOf returns the table currently holding e, or nil if e has no
// components (or is unknown/stale).
func (s *Scene) TableOf(e Entity) *table {
	if !s.alloc.alive(e) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.directory[e.Index]
	if entry.gen != e.Gen || entry.tableID.IsInvalid() {
		return nil
	}
	return s.tables[entry.tableID]
}

func (s *Scene) findOrCreateTable(id TableID, rows []*row) *table {
	if t, ok := s.tables[id]; ok {
		return t
	}
	sortRowsByKind(rows)
	t := newTable(id, rows)
	s.registerTable(t)
	return t
}

// AddComponents attaches the component set to e, moving it into whatever
// table the resulting kind set names, creating that table on first use.
// Implements the algorithm in spec.md §4.4.
func (s *Scene) AddComponents(e Entity, set ComponentSet) error {
	if !s.alloc.alive(e) {
		return UnknownEntityError{Entity: e}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &s.directory[e.Index]
	if entry.gen != e.Gen {
		return StaleEntityError{Entity: e}
	}

	newKinds := set.Kinds()
	newID := tableIDFromKinds(newKinds)

	if entry.tableID.IsInvalid() {
		rows := make([]*row, len(newKinds))
		for i, k := range newKinds {
			rows[i] = newRow(k)
		}
		target := s.findOrCreateTable(newID, rows)
		pos := target.pushEntity(e)
		set.writeInto(target, pos)
		entry.tableID = newID
		return nil
	}

	cur := s.tables[entry.tableID]
	if cur == nil {
		return UnknownEntityError{Entity: e}
	}

	if newID == cur.id {
		pos, ok := cur.entityPosition(e)
		if !ok {
			return UnknownEntityError{Entity: e}
		}
		set.writeInto(cur, pos)
		return nil
	}

	if cur.containsAll(newKinds) {
		pos, ok := cur.entityPosition(e)
		if !ok {
			return UnknownEntityError{Entity: e}
		}
		set.writeInto(cur, pos)
		return nil
	}

	union := unionKinds(cur.kinds(), newKinds)
	targetID := tableIDFromKinds(union)

	target, ok := s.tables[targetID]
	if !ok {
		ex := cur.extendablePrecomputed(targetID)
		missing := make([]*row, 0, len(newKinds))
		for _, k := range newKinds {
			if !cur.containsKind(k) {
				missing = append(missing, newRow(k))
			}
		}
		ex.extendRows(missing)
		target = ex.finish()
		s.registerTable(target)
	}

	from := cur.id
	if !cur.moveEntityUp(target, e) {
		return UnknownEntityError{Entity: e}
	}
	s.reapIfEmpty(cur)

	// moveEntityUp only moves the rows cur and target have in common; rows
	// for kinds target gained over cur (the "C" in spec.md §4.4's
	// upsert_missing_or_update) are still short by one relative to target's
	// entity count, so the row set.writeInto is about to index into needs
	// padding first or it panics on an out-of-range Set.
	target.padShortRows()

	pos, _ := target.entityPosition(e)
	set.writeInto(target, pos)

	entry.tableID = targetID
	if Config.tableEvents.OnEntityMoved != nil {
		Config.tableEvents.OnEntityMoved(e, from, targetID)
	}
	return nil
}

// RemoveComponents detaches the component kinds from e, moving it to the
// table for the surviving kind set (or deleting it entirely if none
// survive). Symmetric to AddComponents per spec.md §4.4.
func (s *Scene) RemoveComponents(e Entity, kinds []reflect.Type) error {
	if !s.alloc.alive(e) {
		return UnknownEntityError{Entity: e}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := &s.directory[e.Index]
	if entry.gen != e.Gen {
		return StaleEntityError{Entity: e}
	}
	if entry.tableID.IsInvalid() {
		return nil
	}

	cur := s.tables[entry.tableID]
	if cur == nil {
		return UnknownEntityError{Entity: e}
	}

	surviving := subtractKinds(cur.kinds(), kinds)
	if len(surviving) == 0 {
		cur.deleteEntity(e)
		s.reapIfEmpty(cur)
		entry.tableID = InvalidTableID
		return nil
	}

	targetID := tableIDFromKinds(surviving)
	if targetID == cur.id {
		return nil
	}

	target, ok := s.tables[targetID]
	if !ok {
		ex := cur.extendablePrecomputed(targetID)
		ex.removeRows(kinds)
		target = ex.finish()
		s.registerTable(target)
	}

	from := cur.id
	if !cur.moveEntityDown(target, e) {
		return UnknownEntityError{Entity: e}
	}
	s.reapIfEmpty(cur)
	entry.tableID = targetID
	if Config.tableEvents.OnEntityMoved != nil {
		Config.tableEvents.OnEntityMoved(e, from, targetID)
	}
	return nil
}

func unionKinds(a, b []reflect.Type) []reflect.Type {
	seen := make(map[reflect.Type]bool, len(a)+len(b))
	out := make([]reflect.Type, 0, len(a)+len(b))
	for _, k := range a {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range b {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sortKinds(out)
	return out
}

func subtractKinds(a, remove []reflect.Type) []reflect.Type {
	drop := make(map[reflect.Type]bool, len(remove))
	for _, k := range remove {
		drop[k] = true
	}
	out := make([]reflect.Type, 0, len(a))
	for _, k := range a {
		if !drop[k] {
			out = append(out, k)
		}
	}
	return out
}

func sortKinds(kinds []reflect.Type) {
	sort.Slice(kinds, func(i, j int) bool {
		return kindHash(kinds[i]) < kindHash(kinds[j])
	})
}

// tablesMatching returns every non-empty table containing all of kinds, in
// the order their tables were first created.
func (s *Scene) tablesMatching(kinds []reflect.Type) []*table {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*table
	for _, id := range s.tableOrder {
		t, ok := s.tables[id]
		if !ok || t.isEmpty() {
			continue
		}
		if t.containsAll(kinds) {
			out = append(out, t)
		}
	}
	return out
}

// allTables returns every non-empty table in the scene, in the order their
// tables were first created. Used by queries that must filter on their own
// (With/Without/Or) rather than a fixed extractor kind set.
func (s *Scene) allTables() []*table {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*table
	for _, id := range s.tableOrder {
		t, ok := s.tables[id]
		if !ok || t.isEmpty() {
			continue
		}
		out = append(out, t)
	}
	return out
}
