package loom

import "reflect"

// row is one column of a table: every component of a single kind, for every
// entity in that table, stored contiguously. Position i in every row of a
// table and position i in the table's entity slice describe the same
// entity, matching original_source/src/table.rs's Row/Table pairing.
//
// Unlike eonix's Row, which captures a per-kind vtable (clone_empty,
// swap_remove, move_entity) as function pointers at construction time to
// erase the component type, row leans on reflect.Value directly: Go's
// reflect package already performs slice append/index/slice operations
// without per-kind code generation, so the vtable indirection buys nothing
// here and is dropped in favor of a handful of reflect-based methods.
type row struct {
	kind reflect.Type
	cell borrowCell
	data reflect.Value // addressable []kind
}

func newRow(kind reflect.Type) *row {
	sliceType := reflect.SliceOf(kind)
	return &row{
		kind: kind,
		data: reflect.New(sliceType).Elem(),
	}
}

func newRowFor[C any]() *row {
	return newRow(reflect.TypeOf((*C)(nil)).Elem())
}

func (r *row) len() int {
	return r.data.Len()
}

// cloneEmpty returns a new, empty row of the same kind.
func (r *row) cloneEmpty() *row {
	return newRow(r.kind)
}

// push appends v, which must be assignable to r.kind.
func (r *row) push(v any) {
	r.data.Set(reflect.Append(r.data, reflect.ValueOf(v)))
}

// pushZero appends the zero value of r.kind.
func (r *row) pushZero() {
	r.data.Set(reflect.Append(r.data, reflect.Zero(r.kind)))
}

// swapRemoveAt removes the element at pos by swapping in the last element,
// matching Vec::swap_remove's O(1), order-scrambling contract.
func (r *row) swapRemoveAt(pos int) {
	last := r.data.Len() - 1
	if pos != last {
		r.data.Index(pos).Set(r.data.Index(last))
	}
	r.data.Set(r.data.Slice(0, last))
}

// moveOneTo appends the element at pos to dst, then removes it from r.
func (r *row) moveOneTo(dst *row, pos int) {
	val := reflect.ValueOf(r.data.Index(pos).Interface())
	dst.data.Set(reflect.Append(dst.data, val))
	r.swapRemoveAt(pos)
}

func (r *row) at(pos int) reflect.Value {
	return r.data.Index(pos)
}

func (r *row) set(pos int, v any) {
	r.data.Index(pos).Set(reflect.ValueOf(v))
}

// typedSlice returns a live *[]C pointer into the row's backing array,
// letting typed Extractors iterate without per-element reflection.
func typedSlice[C any](r *row) *[]C {
	return r.data.Addr().Interface().(*[]C)
}

func kindOf[C any]() reflect.Type {
	return reflect.TypeOf((*C)(nil)).Elem()
}
