package loom

// World is the top-level handle clients hold: one Scene (archetype set),
// two resource stores (sendable and local, per spec.md §4.6) and one
// command center. Grounded on original_source/src/world.rs's World, which
// carries the same scene/global_resources/global_nosend/commands split.
type World struct {
	scene          *Scene
	sendResources  *resourceStore
	localResources *resourceStore
	cc             *commandCenter
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		scene:          NewScene(),
		sendResources:  newResourceStore(),
		localResources: newResourceStore(),
		cc:             newCommandCenter(),
	}
}

// CurrentScene returns the world's archetype set for read-only use (query
// construction). Named after original_source/src/world.rs's current_scene.
func (w *World) CurrentScene() *Scene { return w.scene }

// CurrentSceneMut returns the same scene handle for structural mutation
// (add/remove component, spawn/destroy). Scene has no separate mutable
// type in loom — unlike Rust, Go has no borrow checker distinguishing
// shared vs. exclusive access at the type level, so this accessor exists
// only to preserve the original API's two-name surface from
// original_source/src/world.rs, per SPEC_FULL.md's supplemented features.
func (w *World) CurrentSceneMut() *Scene { return w.scene }

// Commands returns a dispatch handle for deferred mutation.
func (w *World) Commands() *Commands {
	return &Commands{scene: w.scene, cc: w.cc}
}

// ApplyCommands drains every queued command immediately, in entity ->
// component -> resource order. Schedule.Run calls this automatically
// between stages; exposed for callers driving systems manually.
func (w *World) ApplyCommands() {
	w.cc.drain(w.scene, w.sendResources, w.localResources)
}

// InsertWorldResource stores a sendable resource, overwriting any previous
// value of the same type.
func InsertWorldResource[R any](w *World, value R) {
	InsertResource(w.sendResources, value)
}

// GetResource acquires a shared borrow on sendable resource R.
func GetResource[R any](w *World) (R, func(), bool) {
	return BorrowShared[R](w.sendResources)
}

// GetResourceMut acquires the exclusive borrow on sendable resource R.
func GetResourceMut[R any](w *World) (*R, func(), bool) {
	return BorrowExclusive[R](w.sendResources)
}

// InsertLocalResource stores a main-thread-only resource.
func InsertLocalResource[R any](w *World, value R) {
	InsertResource(w.localResources, value)
}

// GetLocalResource acquires a shared borrow on local resource R.
func GetLocalResource[R any](w *World) (R, func(), bool) {
	return BorrowShared[R](w.localResources)
}

// GetLocalResourceMut acquires the exclusive borrow on local resource R.
func GetLocalResourceMut[R any](w *World) (*R, func(), bool) {
	return BorrowExclusive[R](w.localResources)
}
