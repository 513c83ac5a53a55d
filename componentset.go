package loom

import "reflect"

// ComponentSet is a typed bundle of component values to attach to an
// entity in one AddComponents call. Go has no variadic generics, so loom
// hand-generates fixed arities (Set1..Set4) the way edwinsyarief-lazyecs
// hand-generates Query1..Query5 — one concrete struct per arity rather than
// a single variadic type.
type ComponentSet interface {
	Kinds() []reflect.Type
	writeInto(t *table, pos int)
}

// Set1 is a ComponentSet carrying a single component value.
type Set1[C1 any] struct {
	V1 C1
}

// NewSet1 builds a one-component ComponentSet.
func NewSet1[C1 any](v1 C1) Set1[C1] {
	return Set1[C1]{V1: v1}
}

func (s Set1[C1]) Kinds() []reflect.Type {
	return []reflect.Type{kindOf[C1]()}
}

func (s Set1[C1]) writeInto(t *table, pos int) {
	t.rowFor(kindOf[C1]()).set(pos, s.V1)
}
