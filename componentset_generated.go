// Code generated by hand, following the single-meta-definition pattern
// spec.md's design notes call for (see Set1 in componentset.go). Arities
// 2-4 are mechanical repeats of the same shape and are kept in their own
// file the way edwinsyarief-lazyecs splits its generated query arities out.
package loom

import "reflect"

// Set2 is a ComponentSet carrying two component values.
type Set2[C1, C2 any] struct {
	V1 C1
	V2 C2
}

func NewSet2[C1, C2 any](v1 C1, v2 C2) Set2[C1, C2] {
	return Set2[C1, C2]{V1: v1, V2: v2}
}

func (s Set2[C1, C2]) Kinds() []reflect.Type {
	return []reflect.Type{kindOf[C1](), kindOf[C2]()}
}

func (s Set2[C1, C2]) writeInto(t *table, pos int) {
	t.rowFor(kindOf[C1]()).set(pos, s.V1)
	t.rowFor(kindOf[C2]()).set(pos, s.V2)
}

// Set3 is a ComponentSet carrying three component values.
type Set3[C1, C2, C3 any] struct {
	V1 C1
	V2 C2
	V3 C3
}

func NewSet3[C1, C2, C3 any](v1 C1, v2 C2, v3 C3) Set3[C1, C2, C3] {
	return Set3[C1, C2, C3]{V1: v1, V2: v2, V3: v3}
}

func (s Set3[C1, C2, C3]) Kinds() []reflect.Type {
	return []reflect.Type{kindOf[C1](), kindOf[C2](), kindOf[C3]()}
}

func (s Set3[C1, C2, C3]) writeInto(t *table, pos int) {
	t.rowFor(kindOf[C1]()).set(pos, s.V1)
	t.rowFor(kindOf[C2]()).set(pos, s.V2)
	t.rowFor(kindOf[C3]()).set(pos, s.V3)
}

// Set4 is a ComponentSet carrying four component values.
type Set4[C1, C2, C3, C4 any] struct {
	V1 C1
	V2 C2
	V3 C3
	V4 C4
}

func NewSet4[C1, C2, C3, C4 any](v1 C1, v2 C2, v3 C3, v4 C4) Set4[C1, C2, C3, C4] {
	return Set4[C1, C2, C3, C4]{V1: v1, V2: v2, V3: v3, V4: v4}
}

func (s Set4[C1, C2, C3, C4]) Kinds() []reflect.Type {
	return []reflect.Type{kindOf[C1](), kindOf[C2](), kindOf[C3](), kindOf[C4]()}
}

func (s Set4[C1, C2, C3, C4]) writeInto(t *table, pos int) {
	t.rowFor(kindOf[C1]()).set(pos, s.V1)
	t.rowFor(kindOf[C2]()).set(pos, s.V2)
	t.rowFor(kindOf[C3]()).set(pos, s.V3)
	t.rowFor(kindOf[C4]()).set(pos, s.V4)
}
