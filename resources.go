package loom

import (
	"reflect"

	"go.uber.org/zap"
)

// resourceCell wraps one resource value behind a borrow cell so concurrent
// systems can share- or exclusive-borrow it under the same contract as a
// table row.
type resourceCell struct {
	cell  borrowCell
	value any
}

// resourceStore is a type-identity-keyed map of resources, each guarded by
// its own borrow cell. A World keeps two instances: one for resources that
// must be shareable across worker goroutines, one for main-thread-only
// ("local") resources. Grounded on original_source/src/world.rs's
// global_resources/global_nosend split.
type resourceStore struct {
	cells map[reflect.Type]*resourceCell
}

func newResourceStore() *resourceStore {
	return &resourceStore{cells: make(map[reflect.Type]*resourceCell)}
}

func (s *resourceStore) remove(kind reflect.Type) {
	delete(s.cells, kind)
}

func (s *resourceStore) has(kind reflect.Type) bool {
	_, ok := s.cells[kind]
	return ok
}

// boxedResource gives every stored resource a stable address, so
// BorrowExclusive can hand back a real *R instead of a copy.
type boxedResource[R any] struct {
	v R
}

// InsertResource stores R, overwriting any previous value of the same type.
func InsertResource[R any](s *resourceStore, value R) {
	s.cells[kindOf[R]()] = &resourceCell{value: &boxedResource[R]{v: value}}
}

// RemoveResource drops the stored value of type R, if any.
func RemoveResource[R any](s *resourceStore) {
	s.remove(kindOf[R]())
}

// BorrowShared acquires a shared borrow on R, returning the value and a
// release function. ok is false if R was never inserted or is currently
// exclusively borrowed.
func BorrowShared[R any](s *resourceStore) (value R, release func(), ok bool) {
	kind := kindOf[R]()
	cell, found := s.cells[kind]
	if !found {
		logger.Debug("resource borrow miss", zap.Error(ResourceNotFoundError{Kind: kind}))
		return value, nil, false
	}
	if cell.cell.tryShared() != borrowOK {
		logger.Debug("resource borrow miss", zap.Error(BorrowConflictError{Kind: kind}))
		return value, nil, false
	}
	boxed := cell.value.(*boxedResource[R])
	return boxed.v, func() { cell.cell.releaseShared() }, true
}

// BorrowExclusive acquires the exclusive borrow on R, returning a pointer
// to the stored value and a release function.
func BorrowExclusive[R any](s *resourceStore) (value *R, release func(), ok bool) {
	kind := kindOf[R]()
	cell, found := s.cells[kind]
	if !found {
		logger.Debug("resource borrow miss", zap.Error(ResourceNotFoundError{Kind: kind}))
		return nil, nil, false
	}
	if cell.cell.tryExclusive() != borrowOK {
		logger.Debug("resource borrow miss", zap.Error(BorrowConflictError{Kind: kind}))
		return nil, nil, false
	}
	boxed := cell.value.(*boxedResource[R])
	return &boxed.v, func() { cell.cell.releaseExclusive() }, true
}
