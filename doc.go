/*
Package loom provides an in-process Entity-Component-System (ECS) runtime.

Loom stores entities as rows in content-addressed archetype tables, offers a
compile-time-typed query system for reading and writing components, and
schedules systems onto a fixed worker pool using a static, conflict-aware
execution plan computed once per schedule build.

Core Concepts:

  - Entity: an opaque (index, generation) handle into a World.
  - Component: a Go type attached to an entity's row in an archetype table.
  - Table: columnar storage for every entity sharing an exact component set.
  - Query: a typed view (Extract, Filter) over every matching table.
  - Schedule: a static per-thread execution plan built once and run every tick.

Basic Usage:

	world := loom.NewWorld()

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	cmds := world.Commands()
	e := cmds.ReserveEntity()
	loom.CmdAddComponent(cmds, e, loom.NewSet2(Position{}, Velocity{X: 1}))
	world.ApplyCommands()

	move := loom.NewSystem1(
		"move",
		loom.Q2[Position, Velocity](loom.AccessExclusive, loom.AccessShared, nil),
		func(q *loom.QueryDesc2[Position, Velocity]) {
			q.Query().Each(func(_ loom.Entity, pos *Position, vel *Velocity) {
				pos.X += vel.X
			})
		},
	)

	schedule := loom.NewSchedule().
		AddSystem(loom.StageUpdate, loom.Single{Sys: move}).
		Build()

	schedule.RunSetup(world)
	schedule.Run(world)
	schedule.RunShutdown(world)

Loom is a standalone library; it has no rendering, networking, or
persistence surface of its own.
*/
package loom
