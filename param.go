package loom

import "reflect"

// paramFootprint is one system parameter's aliasing claim, consumed by the
// planner's conflict classification (spec.md §4.8). world=true models the
// "World access conflicts with everything" rule; kind is nil in that case.
// filter carries a query term's has/not requirements so the planner can
// relax an overlapping-kind conflict when two systems' filters guarantee
// they never visit the same table (spec.md §4.8 rule (c)); non-query
// parameters (Res/ResMut/LocalRes/LocalResMut/World) leave it at its zero
// value, which never relaxes anything.
type paramFootprint struct {
	kind   reflect.Type
	access Access
	world  bool
	filter filterSet
}

// filterSetOf decomposes a query's Filter into the has/not form the planner
// reasons about, tolerating a nil Filter (the default, equivalent to
// NoFilter).
func filterSetOf(f Filter) filterSet {
	if f == nil {
		return filterSet{}
	}
	return f.set()
}

// Param is the contract every system parameter type implements, ported from
// original_source/src/system.rs's ParamType trait. Go's lack of variadic
// generics means the adapter (system.go) can't take an arbitrary tuple of
// Params the way eonix's macro-generated impls do; instead each arity gets
// its own hand-generated SystemN, the same trade-off already made for
// ComponentSet and Query.
type Param interface {
	footprint() []paramFootprint
	locality() bool
	extract(w *World) bool
	release()
}

// WorldParam grants a system the whole World by exclusive reference. Its
// presence always forces locality, matching spec.md §4.7 ("World itself is
// a permitted parameter; it implies total exclusive access and forces
// locality").
type WorldParam struct {
	world *World
}

func (WorldParam) footprint() []paramFootprint {
	return []paramFootprint{{world: true}}
}
func (WorldParam) locality() bool { return true }
func (p *WorldParam) extract(w *World) bool {
	p.world = w
	return true
}
func (p *WorldParam) release() {}

// World returns the extracted world reference.
func (p WorldParam) World() *World { return p.world }

// Res is a shared-borrow system parameter over resource kind R, drawn from
// the world's sendable resource store.
type Res[R any] struct {
	value      R
	releaseFn  func()
}

func (Res[R]) footprint() []paramFootprint {
	return []paramFootprint{{kind: kindOf[R](), access: AccessShared}}
}
func (Res[R]) locality() bool { return false }
func (p *Res[R]) extract(w *World) bool {
	v, release, ok := BorrowShared[R](w.sendResources)
	if !ok {
		return false
	}
	p.value, p.releaseFn = v, release
	return true
}
func (p *Res[R]) release() {
	if p.releaseFn != nil {
		p.releaseFn()
		p.releaseFn = nil
	}
}

// Get returns the borrowed resource value.
func (p Res[R]) Get() R { return p.value }

// ResMut is an exclusive-borrow system parameter over resource kind R,
// drawn from the world's sendable resource store.
type ResMut[R any] struct {
	value     *R
	releaseFn func()
}

func (ResMut[R]) footprint() []paramFootprint {
	return []paramFootprint{{kind: kindOf[R](), access: AccessExclusive}}
}
func (ResMut[R]) locality() bool { return false }
func (p *ResMut[R]) extract(w *World) bool {
	v, release, ok := BorrowExclusive[R](w.sendResources)
	if !ok {
		return false
	}
	p.value, p.releaseFn = v, release
	return true
}
func (p *ResMut[R]) release() {
	if p.releaseFn != nil {
		p.releaseFn()
		p.releaseFn = nil
	}
}

// Get returns a pointer to the exclusively-borrowed resource value.
func (p ResMut[R]) Get() *R { return p.value }

// LocalRes is a shared-borrow parameter over a main-thread-only resource.
// Its presence forces locality, per spec.md §4.6.
type LocalRes[R any] struct {
	value     R
	releaseFn func()
}

func (LocalRes[R]) footprint() []paramFootprint {
	return []paramFootprint{{kind: kindOf[R](), access: AccessShared}}
}
func (LocalRes[R]) locality() bool { return true }
func (p *LocalRes[R]) extract(w *World) bool {
	v, release, ok := BorrowShared[R](w.localResources)
	if !ok {
		return false
	}
	p.value, p.releaseFn = v, release
	return true
}
func (p *LocalRes[R]) release() {
	if p.releaseFn != nil {
		p.releaseFn()
		p.releaseFn = nil
	}
}
func (p LocalRes[R]) Get() R { return p.value }

// LocalResMut is an exclusive-borrow parameter over a main-thread-only
// resource. Its presence forces locality, per spec.md §4.6.
type LocalResMut[R any] struct {
	value     *R
	releaseFn func()
}

func (LocalResMut[R]) footprint() []paramFootprint {
	return []paramFootprint{{kind: kindOf[R](), access: AccessExclusive}}
}
func (LocalResMut[R]) locality() bool { return true }
func (p *LocalResMut[R]) extract(w *World) bool {
	v, release, ok := BorrowExclusive[R](w.localResources)
	if !ok {
		return false
	}
	p.value, p.releaseFn = v, release
	return true
}
func (p *LocalResMut[R]) release() {
	if p.releaseFn != nil {
		p.releaseFn()
		p.releaseFn = nil
	}
}
func (p LocalResMut[R]) Get() *R { return p.value }

// QueryDesc1 is a one-term query system parameter; extract builds the live
// Query1 against the world's scene for this tick, release tears it down.
type QueryDesc1[T1 any] struct {
	access1   Access
	optional1 bool
	filter    Filter
	query     *Query1[T1]
}

// Q1 declares a one-term query parameter with the given access mode and
// optional filter.
func Q1[T1 any](access1 Access, f Filter) *QueryDesc1[T1] {
	return &QueryDesc1[T1]{access1: access1, filter: f}
}

// Optional marks the query's only term as tolerant of a matched table
// lacking it, per spec.md §4.5's Optional extract contract.
func (q *QueryDesc1[T1]) Optional() *QueryDesc1[T1] {
	q.optional1 = true
	return q
}

func (q QueryDesc1[T1]) footprint() []paramFootprint {
	fs := filterSetOf(q.filter)
	return []paramFootprint{{kind: kindOf[T1](), access: q.access1, filter: fs}}
}
func (QueryDesc1[T1]) locality() bool { return false }
func (q *QueryDesc1[T1]) extract(w *World) bool {
	built, ok := NewQuery1[T1](w.scene, q.access1, q.optional1, q.filter)
	if !ok {
		return false
	}
	q.query = built
	return true
}
func (q *QueryDesc1[T1]) release() {
	if q.query != nil {
		q.query.Release()
		q.query = nil
	}
}

// Query returns this tick's live query handle.
func (q QueryDesc1[T1]) Query() *Query1[T1] { return q.query }

// QueryDesc2 is a two-term query system parameter.
type QueryDesc2[T1, T2 any] struct {
	access1, access2     Access
	optional1, optional2 bool
	filter               Filter
	query                *Query2[T1, T2]
}

func Q2[T1, T2 any](access1, access2 Access, f Filter) *QueryDesc2[T1, T2] {
	return &QueryDesc2[T1, T2]{access1: access1, access2: access2, filter: f}
}

// Optional1 marks the query's first term as tolerant of a matched table
// lacking it.
func (q *QueryDesc2[T1, T2]) Optional1() *QueryDesc2[T1, T2] {
	q.optional1 = true
	return q
}

// Optional2 marks the query's second term as tolerant of a matched table
// lacking it.
func (q *QueryDesc2[T1, T2]) Optional2() *QueryDesc2[T1, T2] {
	q.optional2 = true
	return q
}

func (q QueryDesc2[T1, T2]) footprint() []paramFootprint {
	fs := filterSetOf(q.filter)
	return []paramFootprint{
		{kind: kindOf[T1](), access: q.access1, filter: fs},
		{kind: kindOf[T2](), access: q.access2, filter: fs},
	}
}
func (QueryDesc2[T1, T2]) locality() bool { return false }
func (q *QueryDesc2[T1, T2]) extract(w *World) bool {
	built, ok := NewQuery2[T1, T2](w.scene, q.access1, q.optional1, q.access2, q.optional2, q.filter)
	if !ok {
		return false
	}
	q.query = built
	return true
}
func (q *QueryDesc2[T1, T2]) release() {
	if q.query != nil {
		q.query.Release()
		q.query = nil
	}
}
func (q QueryDesc2[T1, T2]) Query() *Query2[T1, T2] { return q.query }

// QueryDesc3 is a three-term query system parameter.
type QueryDesc3[T1, T2, T3 any] struct {
	access1, access2, access3     Access
	optional1, optional2, optional3 bool
	filter                        Filter
	query                         *Query3[T1, T2, T3]
}

func Q3[T1, T2, T3 any](access1, access2, access3 Access, f Filter) *QueryDesc3[T1, T2, T3] {
	return &QueryDesc3[T1, T2, T3]{access1: access1, access2: access2, access3: access3, filter: f}
}

// Optional1 marks the query's first term as tolerant of a matched table
// lacking it.
func (q *QueryDesc3[T1, T2, T3]) Optional1() *QueryDesc3[T1, T2, T3] {
	q.optional1 = true
	return q
}

// Optional2 marks the query's second term as tolerant of a matched table
// lacking it.
func (q *QueryDesc3[T1, T2, T3]) Optional2() *QueryDesc3[T1, T2, T3] {
	q.optional2 = true
	return q
}

// Optional3 marks the query's third term as tolerant of a matched table
// lacking it.
func (q *QueryDesc3[T1, T2, T3]) Optional3() *QueryDesc3[T1, T2, T3] {
	q.optional3 = true
	return q
}

func (q QueryDesc3[T1, T2, T3]) footprint() []paramFootprint {
	fs := filterSetOf(q.filter)
	return []paramFootprint{
		{kind: kindOf[T1](), access: q.access1, filter: fs},
		{kind: kindOf[T2](), access: q.access2, filter: fs},
		{kind: kindOf[T3](), access: q.access3, filter: fs},
	}
}
func (QueryDesc3[T1, T2, T3]) locality() bool { return false }
func (q *QueryDesc3[T1, T2, T3]) extract(w *World) bool {
	built, ok := NewQuery3[T1, T2, T3](w.scene, q.access1, q.optional1, q.access2, q.optional2, q.access3, q.optional3, q.filter)
	if !ok {
		return false
	}
	q.query = built
	return true
}
func (q *QueryDesc3[T1, T2, T3]) release() {
	if q.query != nil {
		q.query.Release()
		q.query = nil
	}
}
func (q QueryDesc3[T1, T2, T3]) Query() *Query3[T1, T2, T3] { return q.query }
