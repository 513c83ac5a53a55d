package loom

import "testing"

func TestEntityAllocatorReusesFreedIndexWithBumpedGeneration(t *testing.T) {
	a := newEntityAllocator()

	e1 := a.allocate()
	if e1.Index != 0 || e1.Gen != 0 {
		t.Fatalf("first allocation = %v, want {0 0}", e1)
	}

	if !a.free(e1) {
		t.Fatalf("free() on a live entity should succeed")
	}
	if a.alive(e1) {
		t.Fatalf("e1 should no longer be alive after free")
	}

	e2 := a.allocate()
	if e2.Index != e1.Index {
		t.Fatalf("expected index reuse, got %v after freeing %v", e2, e1)
	}
	if e2.Gen == e1.Gen {
		t.Fatalf("expected generation to advance on reuse, both are %v", e2.Gen)
	}
	if !a.alive(e2) {
		t.Fatalf("freshly allocated entity should be alive")
	}
	if a.alive(e1) {
		t.Fatalf("stale handle e1 must not read as alive once its index is reused")
	}
}

func TestEntityAllocatorFreeIsIdempotent(t *testing.T) {
	a := newEntityAllocator()
	e := a.allocate()

	if !a.free(e) {
		t.Fatalf("first free should succeed")
	}
	if a.free(e) {
		t.Fatalf("freeing an already-freed handle must report failure, not double-free")
	}
}

func TestEntityAllocatorUnknownIndexNotAlive(t *testing.T) {
	a := newEntityAllocator()
	if a.alive(Entity{Index: 7, Gen: 0}) {
		t.Fatalf("an index never allocated must not read as alive")
	}
}

func TestEntityValidRejectsInvalidGenerationBit(t *testing.T) {
	if Nil.Valid() {
		t.Fatalf("loom.Nil must never report as Valid")
	}
	if !(Entity{Index: 0, Gen: 0}).Valid() {
		t.Fatalf("a zero-generation entity with the invalid bit clear must be Valid")
	}
}

func TestEntityAllocatorGenerationWrapsPastInvalidBit(t *testing.T) {
	a := newEntityAllocator()
	e := a.allocate()

	// Drive the slot's generation right up to the invalid bit and confirm it
	// wraps back to zero instead of ever reporting Valid()==false for a live
	// handle, matching spec.md §3's "generation wraps past the flag back to
	// zero" rule.
	a.slots[e.Index].gen = invalidGenBit - 1
	cur := Entity{Index: e.Index, Gen: invalidGenBit - 1}
	a.slots[e.Index].live = true
	if !a.free(cur) {
		t.Fatalf("free should succeed for the live handle at the pre-wrap generation")
	}
	if a.slots[e.Index].gen != 0 {
		t.Fatalf("generation should have wrapped to 0, got %d", a.slots[e.Index].gen)
	}
}
