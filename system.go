package loom

// System is the uniform callable the adapter produces from any function
// whose parameters implement Param, per spec.md §4.7. Concrete arities
// (System0..System4) are hand-generated the same way ComponentSet and Query
// are: Go has no variadic generics to express "any tuple of Params".
type System interface {
	Name() string
	Locality() bool
	Footprint() []paramFootprint
	// Run extracts every parameter against w and, if all extractions
	// succeed, invokes the wrapped function and returns true. A false
	// return means the system was skipped this tick (a parameter could not
	// be extracted — missing resource, empty query, busy borrow).
	Run(w *World) bool
}

// footprintsConflict implements the ParamType.conflicts aliasing rule from
// original_source/src/system.rs: a World-access footprint conflicts with
// everything; same-kind footprints conflict unless both are shared reads —
// unless the two query terms' filters are mutually exclusive, in which case
// neither system can ever visit the same table and the conflict relaxes
// per spec.md §4.8 rule (c), mirroring original_source/src/schedule.rs's
// prevents_overlapping check.
func footprintsConflict(a, b paramFootprint) bool {
	if a.world || b.world {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	if a.access != AccessExclusive && b.access != AccessExclusive {
		return false
	}
	return !filtersDisjoint(a.filter, b.filter)
}

// System0 takes no parameters; it always runs.
type System0 struct {
	name string
	fn   func()
}

func NewSystem0(name string, fn func()) *System0 {
	return &System0{name: name, fn: fn}
}

func (s *System0) Name() string                 { return s.name }
func (s *System0) Locality() bool                { return false }
func (s *System0) Footprint() []paramFootprint   { return nil }
func (s *System0) Run(w *World) bool {
	s.fn()
	return true
}

// System1 takes one parameter.
type System1[P1 Param] struct {
	name  string
	desc1 P1
	fn    func(P1)
}

func NewSystem1[P1 Param](name string, desc1 P1, fn func(P1)) *System1[P1] {
	return &System1[P1]{name: name, desc1: desc1, fn: fn}
}

func (s *System1[P1]) Name() string               { return s.name }
func (s *System1[P1]) Locality() bool              { return s.desc1.locality() }
func (s *System1[P1]) Footprint() []paramFootprint { return s.desc1.footprint() }
func (s *System1[P1]) Run(w *World) bool {
	if !s.desc1.extract(w) {
		return false
	}
	defer s.desc1.release()
	s.fn(s.desc1)
	return true
}

// System2 takes two parameters.
type System2[P1, P2 Param] struct {
	name  string
	desc1 P1
	desc2 P2
	fn    func(P1, P2)
}

func NewSystem2[P1, P2 Param](name string, desc1 P1, desc2 P2, fn func(P1, P2)) *System2[P1, P2] {
	return &System2[P1, P2]{name: name, desc1: desc1, desc2: desc2, fn: fn}
}

func (s *System2[P1, P2]) Name() string  { return s.name }
func (s *System2[P1, P2]) Locality() bool { return s.desc1.locality() || s.desc2.locality() }
func (s *System2[P1, P2]) Footprint() []paramFootprint {
	return append(s.desc1.footprint(), s.desc2.footprint()...)
}
func (s *System2[P1, P2]) Run(w *World) bool {
	if !s.desc1.extract(w) {
		return false
	}
	defer s.desc1.release()
	if !s.desc2.extract(w) {
		return false
	}
	defer s.desc2.release()
	s.fn(s.desc1, s.desc2)
	return true
}

// System3 takes three parameters.
type System3[P1, P2, P3 Param] struct {
	name  string
	desc1 P1
	desc2 P2
	desc3 P3
	fn    func(P1, P2, P3)
}

func NewSystem3[P1, P2, P3 Param](name string, desc1 P1, desc2 P2, desc3 P3, fn func(P1, P2, P3)) *System3[P1, P2, P3] {
	return &System3[P1, P2, P3]{name: name, desc1: desc1, desc2: desc2, desc3: desc3, fn: fn}
}

func (s *System3[P1, P2, P3]) Name() string { return s.name }
func (s *System3[P1, P2, P3]) Locality() bool {
	return s.desc1.locality() || s.desc2.locality() || s.desc3.locality()
}
func (s *System3[P1, P2, P3]) Footprint() []paramFootprint {
	out := s.desc1.footprint()
	out = append(out, s.desc2.footprint()...)
	return append(out, s.desc3.footprint()...)
}
func (s *System3[P1, P2, P3]) Run(w *World) bool {
	if !s.desc1.extract(w) {
		return false
	}
	defer s.desc1.release()
	if !s.desc2.extract(w) {
		return false
	}
	defer s.desc2.release()
	if !s.desc3.extract(w) {
		return false
	}
	defer s.desc3.release()
	s.fn(s.desc1, s.desc2, s.desc3)
	return true
}

// System4 takes four parameters.
type System4[P1, P2, P3, P4 Param] struct {
	name  string
	desc1 P1
	desc2 P2
	desc3 P3
	desc4 P4
	fn    func(P1, P2, P3, P4)
}

func NewSystem4[P1, P2, P3, P4 Param](name string, desc1 P1, desc2 P2, desc3 P3, desc4 P4, fn func(P1, P2, P3, P4)) *System4[P1, P2, P3, P4] {
	return &System4[P1, P2, P3, P4]{name: name, desc1: desc1, desc2: desc2, desc3: desc3, desc4: desc4, fn: fn}
}

func (s *System4[P1, P2, P3, P4]) Name() string { return s.name }
func (s *System4[P1, P2, P3, P4]) Locality() bool {
	return s.desc1.locality() || s.desc2.locality() || s.desc3.locality() || s.desc4.locality()
}
func (s *System4[P1, P2, P3, P4]) Footprint() []paramFootprint {
	out := s.desc1.footprint()
	out = append(out, s.desc2.footprint()...)
	out = append(out, s.desc3.footprint()...)
	return append(out, s.desc4.footprint()...)
}
func (s *System4[P1, P2, P3, P4]) Run(w *World) bool {
	if !s.desc1.extract(w) {
		return false
	}
	defer s.desc1.release()
	if !s.desc2.extract(w) {
		return false
	}
	defer s.desc2.release()
	if !s.desc3.extract(w) {
		return false
	}
	defer s.desc3.release()
	if !s.desc4.extract(w) {
		return false
	}
	defer s.desc4.release()
	s.fn(s.desc1, s.desc2, s.desc3, s.desc4)
	return true
}

// SystemSet is one planner unit: either a single system or an ordered chain
// that must run back-to-back on one thread. Matches spec.md §4.7.
type SystemSet interface {
	footprintUnion() []paramFootprint
	localityUnion() bool
	members() []System
}

// Single wraps one system as its own planner unit.
type Single struct {
	Sys System
}

func (s Single) footprintUnion() []paramFootprint { return s.Sys.Footprint() }
func (s Single) localityUnion() bool              { return s.Sys.Locality() }
func (s Single) members() []System                { return []System{s.Sys} }

// Chained runs its members sequentially, in order, on the same thread. Its
// effective footprint is the union of its members' footprints.
type Chained struct {
	Systems []System
}

func (c Chained) footprintUnion() []paramFootprint {
	var out []paramFootprint
	for _, s := range c.Systems {
		out = append(out, s.Footprint()...)
	}
	return out
}

func (c Chained) localityUnion() bool {
	for _, s := range c.Systems {
		if s.Locality() {
			return true
		}
	}
	return false
}

func (c Chained) members() []System { return c.Systems }
