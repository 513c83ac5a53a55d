package loom

import (
	"reflect"
	"testing"
)

type tableTestPos struct{ X, Y int32 }
type tableTestVel struct{ X, Y int32 }

func TestTableIDPermutationInvariant(t *testing.T) {
	a := tableIDFromKinds([]reflect.Type{kindOf[tableTestPos](), kindOf[tableTestVel]()})
	b := tableIDFromKinds([]reflect.Type{kindOf[tableTestVel](), kindOf[tableTestPos]()})

	if a != b {
		t.Fatalf("TableID not permutation-invariant: %v != %v", a, b)
	}
}

func TestTableIDDiffersByKindSet(t *testing.T) {
	a := tableIDFromKinds([]reflect.Type{kindOf[tableTestPos]()})
	b := tableIDFromKinds([]reflect.Type{kindOf[tableTestPos](), kindOf[tableTestVel]()})

	if a == b {
		t.Fatalf("TableID collided across different kind sets")
	}
}

func TestTablePushAndGet(t *testing.T) {
	posRow := newRowFor[tableTestPos]()
	velRow := newRowFor[tableTestVel]()
	id := tableIDFromKinds([]reflect.Type{kindOf[tableTestPos](), kindOf[tableTestVel]()})
	tbl := newTable(id, []*row{posRow, velRow})

	e := Entity{Index: 0, Gen: 0}
	pos := tbl.pushEntity(e)
	posRow.set(pos, tableTestPos{X: 1, Y: 2})
	velRow.set(pos, tableTestVel{X: 3, Y: 4})

	if tbl.len() != 1 {
		t.Fatalf("len = %d, want 1", tbl.len())
	}

	gotPos := (*typedSlice[tableTestPos](posRow))[0]
	if gotPos != (tableTestPos{X: 1, Y: 2}) {
		t.Fatalf("pos = %v", gotPos)
	}
}

func TestTableMoveEntityUp(t *testing.T) {
	single := newTable(tableIDFromKinds([]reflect.Type{kindOf[tableTestPos]()}), []*row{newRowFor[tableTestPos]()})
	tuple := newTable(
		tableIDFromKinds([]reflect.Type{kindOf[tableTestPos](), kindOf[tableTestVel]()}),
		[]*row{newRowFor[tableTestPos](), newRowFor[tableTestVel]()},
	)

	e := Entity{Index: 1, Gen: 0}
	pos := single.pushEntity(e)
	single.rowFor(kindOf[tableTestPos]()).set(pos, tableTestPos{X: 5, Y: 6})

	if !single.moveEntityUp(tuple, e) {
		t.Fatalf("moveEntityUp failed to find entity")
	}

	if single.len() != 0 {
		t.Fatalf("source table len = %d, want 0", single.len())
	}
	if tuple.len() != 1 {
		t.Fatalf("dest table len = %d, want 1", tuple.len())
	}
	got := (*typedSlice[tableTestPos](tuple.rowFor(kindOf[tableTestPos]())))[0]
	if got != (tableTestPos{X: 5, Y: 6}) {
		t.Fatalf("moved component = %v", got)
	}
}

func TestTableMoveEntityDownDropsMissingRows(t *testing.T) {
	tuple := newTable(
		tableIDFromKinds([]reflect.Type{kindOf[tableTestPos](), kindOf[tableTestVel]()}),
		[]*row{newRowFor[tableTestPos](), newRowFor[tableTestVel]()},
	)
	single := newTable(tableIDFromKinds([]reflect.Type{kindOf[tableTestPos]()}), []*row{newRowFor[tableTestPos]()})

	e := Entity{Index: 2, Gen: 0}
	pos := tuple.pushEntity(e)
	tuple.rowFor(kindOf[tableTestPos]()).set(pos, tableTestPos{X: 9, Y: 9})
	tuple.rowFor(kindOf[tableTestVel]()).set(pos, tableTestVel{X: 1, Y: 1})

	if !tuple.moveEntityDown(single, e) {
		t.Fatalf("moveEntityDown failed to find entity")
	}
	if single.len() != 1 || tuple.len() != 0 {
		t.Fatalf("unexpected lengths: single=%d tuple=%d", single.len(), tuple.len())
	}
}
