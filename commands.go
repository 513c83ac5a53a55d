package loom

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// entityCommand, componentCommand and resourceCommand are the three queues
// of the deferred command buffer, ported from
// original_source/src/commands.rs's CommandCenter. Rust's crossbeam
// multi-producer channels become a mutex-guarded slice apiece: Go's
// channels are a poor fit here because the drain side needs to consume
// everything queued so far without blocking on more producers showing up,
// which is exactly what a lock + slice-swap gives for free.
type entityCommand func(scene *Scene)
type componentCommand func(scene *Scene)
type resourceCommand func(send, local *resourceStore)

// commandCenter owns the three queues and the synchronization guarding
// them. A World holds exactly one.
type commandCenter struct {
	mu            sync.Mutex
	entityCmds    []entityCommand
	componentCmds []componentCommand
	resourceCmds  []resourceCommand
}

func newCommandCenter() *commandCenter {
	return &commandCenter{}
}

func (cc *commandCenter) enqueueEntity(c entityCommand) {
	cc.mu.Lock()
	cc.entityCmds = append(cc.entityCmds, c)
	cc.mu.Unlock()
}

func (cc *commandCenter) enqueueComponent(c componentCommand) {
	cc.mu.Lock()
	cc.componentCmds = append(cc.componentCmds, c)
	cc.mu.Unlock()
}

func (cc *commandCenter) enqueueResource(c resourceCommand) {
	cc.mu.Lock()
	cc.resourceCmds = append(cc.resourceCmds, c)
	cc.mu.Unlock()
}

// drain applies every queued command against scene/send/local, in the fixed
// order entity → component → resource, then clears the queues. Matches
// spec.md §4.10's stage-boundary drain contract.
func (cc *commandCenter) drain(scene *Scene, send, local *resourceStore) {
	cc.mu.Lock()
	entities := cc.entityCmds
	components := cc.componentCmds
	resources := cc.resourceCmds
	cc.entityCmds = nil
	cc.componentCmds = nil
	cc.resourceCmds = nil
	cc.mu.Unlock()

	for _, cmd := range entities {
		cmd(scene)
	}
	for _, cmd := range components {
		cmd(scene)
	}
	for _, cmd := range resources {
		cmd(send, local)
	}
}

// Commands is the dispatch handle systems use to mutate the world without
// taking the world lock directly. ReserveEntity is the one operation that
// takes effect synchronously (matching original_source/src/entity.rs's
// EntitySpawner.reserve, itself called eagerly inside
// Commands::reserve_entity): every other method only queues work for the
// next drain.
type Commands struct {
	scene *Scene
	cc    *commandCenter
}

// ReserveEntity allocates a fresh, componentless Entity immediately. The
// handle is valid right away; attaching components to it is still
// deferred if done through Commands.
func (c *Commands) ReserveEntity() Entity {
	return c.scene.Reserve()
}

// DeleteEntity queues e (and all its components) for removal at the next
// drain. A stale or unknown e is silently dropped when the command runs.
func (c *Commands) DeleteEntity(e Entity) {
	c.cc.enqueueEntity(func(scene *Scene) {
		scene.Destroy(e)
	})
}

// CmdAddComponent queues a component set for attachment to e at the next
// drain.
func CmdAddComponent[S ComponentSet](c *Commands, e Entity, set S) {
	c.cc.enqueueComponent(func(scene *Scene) {
		logDroppedCommand(scene.AddComponents(e, set))
	})
}

// CmdRemoveComponent queues component kind K for removal from e at the
// next drain.
func CmdRemoveComponent[K any](c *Commands, e Entity) {
	kind := kindOf[K]()
	c.cc.enqueueComponent(func(scene *Scene) {
		logDroppedCommand(scene.RemoveComponents(e, []reflect.Type{kind}))
	})
}

// logDroppedCommand records a deferred command that no-opped against a
// stale or unknown entity, per spec.md §4.10's silent-drop contract ("an
// implementer may wish to emit a warning").
func logDroppedCommand(err error) {
	if err == nil {
		return
	}
	logger.Debug("dropped deferred command", zap.Error(wrap(err, "drain")))
}

// CmdAddResource queues R for insertion into the sendable resource store.
func CmdAddResource[R any](c *Commands, value R) {
	c.cc.enqueueResource(func(send, _ *resourceStore) {
		InsertResource(send, value)
	})
}

// CmdAddLocalResource queues R for insertion into the main-thread-only
// resource store.
func CmdAddLocalResource[R any](c *Commands, value R) {
	c.cc.enqueueResource(func(_, local *resourceStore) {
		InsertResource(local, value)
	})
}

// CmdRemoveResource queues R for removal from the sendable resource store.
func CmdRemoveResource[R any](c *Commands) {
	c.cc.enqueueResource(func(send, _ *resourceStore) {
		RemoveResource[R](send)
	})
}

// CmdRemoveLocalResource queues R for removal from the local resource
// store.
func CmdRemoveLocalResource[R any](c *Commands) {
	c.cc.enqueueResource(func(_, local *resourceStore) {
		RemoveResource[R](local)
	})
}
