package loom

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

type schPosition struct{ X int32 }
type schVelocity struct{ X int32 }

func TestScheduleRunsUpdateStage(t *testing.T) {
	w := NewWorld()
	e := w.CurrentSceneMut().Reserve()
	require.NoError(t, w.CurrentSceneMut().AddComponents(e, NewSet2(schPosition{}, schVelocity{X: 2})))

	move := NewSystem1(
		"move",
		Q2[schPosition, schVelocity](AccessExclusive, AccessShared, nil),
		func(q *QueryDesc2[schPosition, schVelocity]) {
			q.Query().Each(func(_ Entity, pos *schPosition, vel *schVelocity) {
				pos.X += vel.X
			})
		},
	)

	schedule := NewSchedule().
		SetThreadCount(2).
		AddSystem(StageUpdate, Single{Sys: move}).
		Build()

	schedule.Run(w)

	tbl := w.CurrentScene().TableOf(e)
	slice := typedSlice[schPosition](tbl.rowFor(kindOf[schPosition]()))
	require.Equal(t, int32(2), (*slice)[0].X)

	schedule.RunShutdown(w)
}

func TestScheduleSetupAndShutdownRunOnce(t *testing.T) {
	var setupCount, shutdownCount int32

	w := NewWorld()
	schedule := NewSchedule().
		AddSystem(StageSetup, Single{Sys: NewSystem0("setup", func() { atomic.AddInt32(&setupCount, 1) })}).
		AddSystem(StageShutdown, Single{Sys: NewSystem0("shutdown", func() { atomic.AddInt32(&shutdownCount, 1) })}).
		Build()

	schedule.RunSetup(w)
	schedule.RunShutdown(w)

	require.Equal(t, int32(1), atomic.LoadInt32(&setupCount))
	require.Equal(t, int32(1), atomic.LoadInt32(&shutdownCount))
}

func TestScheduleDrainsCommandsBetweenStages(t *testing.T) {
	w := NewWorld()
	var spawned Entity

	spawn := NewSystem1("spawn", &WorldParam{}, func(p *WorldParam) {
		spawned = p.World().Commands().ReserveEntity()
		CmdAddComponent(p.World().Commands(), spawned, NewSet1(schPosition{X: 9}))
	})

	schedule := NewSchedule().
		AddSystem(StagePreUpdate, Single{Sys: spawn}).
		Build()

	schedule.Run(w)

	require.NotNil(t, w.CurrentScene().TableOf(spawned))
	schedule.RunShutdown(w)
}
