package loom

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// LockedStorageError describes a mutating operation on a scene that is
// currently borrowed elsewhere. No loom operation takes a scene-wide lock,
// so nothing in the package returns it.
type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "scene is currently borrowed"
}

// BorrowConflictError describes a query or resource borrow refused by a
// borrow cell. It is logged at debug level, not returned: the refusing
// call reports the failure as a false ok value.
type BorrowConflictError struct {
	Kind reflect.Type
}

func (e BorrowConflictError) Error() string {
	return fmt.Sprintf("borrow conflict acquiring access to component %s", e.Kind)
}

// ComponentExistsError describes adding a component kind an entity already
// carries. Scene.AddComponents overwrites such a component instead, so
// nothing in the package returns it.
type ComponentExistsError struct {
	Kind reflect.Type
}

func (e ComponentExistsError) Error() string {
	return fmt.Sprintf("component already exists on entity: %s", e.Kind)
}

// ComponentNotFoundError describes a component kind absent from an entity's
// table. Scene.RemoveComponents ignores absent kinds and queries skip
// tables that lack a required kind, so nothing in the package returns it.
type ComponentNotFoundError struct {
	Kind reflect.Type
}

func (e ComponentNotFoundError) Error() string {
	return fmt.Sprintf("component does not exist on entity: %s", e.Kind)
}

// UnknownEntityError is returned when an entity handle does not name a live
// entity: its index was never allocated, or the entity has been destroyed.
type UnknownEntityError struct {
	Entity Entity
}

func (e UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown entity: %v", e.Entity)
}

// StaleEntityError is returned when the allocator still reports a handle as
// live but the scene's directory records a different generation for its
// index. A handle to a destroyed entity gets UnknownEntityError instead.
type StaleEntityError struct {
	Entity Entity
}

func (e StaleEntityError) Error() string {
	return fmt.Sprintf("stale entity handle: %v", e.Entity)
}

// ResourceNotFoundError describes a resource lookup for a type that was
// never inserted. It is logged at debug level, not returned: the lookup
// reports the miss as a false ok value.
type ResourceNotFoundError struct {
	Kind reflect.Type
}

func (e ResourceNotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.Kind)
}

// wrap adds a stack trace to err, in the role the teacher repo gives
// bark.AddTrace. Returns nil if err is nil.
func wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, message)
}
