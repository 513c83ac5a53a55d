package loom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type cmdPosition struct{ X, Y int32 }
type cmdHealth struct{ HP int32 }

func TestCommandsDeleteEntityDeferred(t *testing.T) {
	scene := NewScene()
	e := scene.Reserve()
	require.NoError(t, scene.AddComponents(e, NewSet1(cmdPosition{X: 1})))

	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}
	cmds.DeleteEntity(e)

	require.True(t, scene.Alive(e), "delete must not take effect before drain")

	send, local := newResourceStore(), newResourceStore()
	cc.drain(scene, send, local)

	require.False(t, scene.Alive(e))
}

func TestCommandsAddComponentDeferred(t *testing.T) {
	scene := NewScene()
	e := scene.Reserve()
	require.NoError(t, scene.AddComponents(e, NewSet1(cmdPosition{X: 1})))

	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}
	CmdAddComponent(cmds, e, NewSet1(cmdHealth{HP: 10}))

	tbl := scene.TableOf(e)
	require.False(t, tbl.containsKind(kindOf[cmdHealth]()), "add must not take effect before drain")

	send, local := newResourceStore(), newResourceStore()
	cc.drain(scene, send, local)

	tbl = scene.TableOf(e)
	require.True(t, tbl.containsKind(kindOf[cmdHealth]()))
}

func TestCommandsRemoveComponentDeferred(t *testing.T) {
	scene := NewScene()
	e := scene.Reserve()
	require.NoError(t, scene.AddComponents(e, NewSet2(cmdPosition{X: 1}, cmdHealth{HP: 10})))

	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}
	CmdRemoveComponent[cmdHealth](cmds, e)

	send, local := newResourceStore(), newResourceStore()
	cc.drain(scene, send, local)

	tbl := scene.TableOf(e)
	require.False(t, tbl.containsKind(kindOf[cmdHealth]()))
	require.True(t, tbl.containsKind(kindOf[cmdPosition]()))
}

func TestCommandsDeleteStaleEntitySilentlyDropped(t *testing.T) {
	scene := NewScene()
	e := scene.Reserve()
	scene.Destroy(e)

	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}
	cmds.DeleteEntity(e)

	send, local := newResourceStore(), newResourceStore()
	require.NotPanics(t, func() { cc.drain(scene, send, local) })
}

func TestCommandsResourceAddAndRemove(t *testing.T) {
	scene := NewScene()
	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}

	CmdAddResource(cmds, rtConfig{MaxPlayers: 16})
	CmdAddLocalResource(cmds, rtConfig{MaxPlayers: 1})

	send, local := newResourceStore(), newResourceStore()
	cc.drain(scene, send, local)

	cfg, release, ok := BorrowShared[rtConfig](send)
	require.True(t, ok)
	require.Equal(t, 16, cfg.MaxPlayers)
	release()

	localCfg, release2, ok2 := BorrowShared[rtConfig](local)
	require.True(t, ok2)
	require.Equal(t, 1, localCfg.MaxPlayers)
	release2()

	CmdRemoveResource[rtConfig](cmds)
	cc.drain(scene, send, local)
	_, _, ok3 := BorrowShared[rtConfig](send)
	require.False(t, ok3)
}

func TestCommandsReserveEntityIsImmediate(t *testing.T) {
	scene := NewScene()
	cc := newCommandCenter()
	cmds := &Commands{scene: scene, cc: cc}

	e := cmds.ReserveEntity()
	require.True(t, scene.Alive(e))
}
