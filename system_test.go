package loom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sysPosition struct{ X int32 }
type sysVelocity struct{ X int32 }
type sysConfig struct{ Speed int32 }

func TestSystem0AlwaysRuns(t *testing.T) {
	ran := false
	sys := NewSystem0("noop", func() { ran = true })
	w := NewWorld()
	require.True(t, sys.Run(w))
	require.True(t, ran)
}

func TestSystem1SkipsOnMissingResource(t *testing.T) {
	w := NewWorld()
	sys := NewSystem1("needs-config", &Res[sysConfig]{}, func(*Res[sysConfig]) {
		t.Fatalf("system body should not run without its resource")
	})
	require.False(t, sys.Run(w))
}

func TestSystem1RunsWithResource(t *testing.T) {
	w := NewWorld()
	InsertWorldResource(w, sysConfig{Speed: 5})
	var seen int32
	sys := NewSystem1("reads-config", &Res[sysConfig]{}, func(p *Res[sysConfig]) {
		seen = p.Get().Speed
	})
	require.True(t, sys.Run(w))
	require.Equal(t, int32(5), seen)
}

func TestSystem1QueryMutatesComponents(t *testing.T) {
	w := NewWorld()
	e := w.CurrentSceneMut().Reserve()
	require.NoError(t, w.CurrentSceneMut().AddComponents(e, NewSet2(sysPosition{X: 0}, sysVelocity{X: 3})))

	sys := NewSystem1(
		"integrate",
		Q2[sysPosition, sysVelocity](AccessExclusive, AccessShared, nil),
		func(q *QueryDesc2[sysPosition, sysVelocity]) {
			q.Query().Each(func(_ Entity, pos *sysPosition, vel *sysVelocity) {
				pos.X += vel.X
			})
		},
	)
	require.True(t, sys.Run(w))

	tbl := w.CurrentScene().TableOf(e)
	slice := typedSlice[sysPosition](tbl.rowFor(kindOf[sysPosition]()))
	require.Equal(t, int32(3), (*slice)[0].X)
}

func TestSystemQueryOptionalTermToleratesMissingComponent(t *testing.T) {
	w := NewWorld()
	e := w.CurrentSceneMut().Reserve()
	require.NoError(t, w.CurrentSceneMut().AddComponents(e, NewSet1(sysPosition{X: 7})))

	var sawNilVelocity bool
	sys := NewSystem1(
		"maybe-integrate",
		Q2[sysPosition, sysVelocity](AccessShared, AccessShared, nil).Optional2(),
		func(q *QueryDesc2[sysPosition, sysVelocity]) {
			q.Query().Each(func(_ Entity, pos *sysPosition, vel *sysVelocity) {
				sawNilVelocity = vel == nil
				_ = pos
			})
		},
	)
	require.True(t, sys.Run(w))
	require.True(t, sawNilVelocity)
}

func TestWorldParamForcesLocality(t *testing.T) {
	sys := NewSystem1("uses-world", &WorldParam{}, func(*WorldParam) {})
	require.True(t, sys.Locality())
}

func TestChainedFootprintUnion(t *testing.T) {
	a := NewSystem1("a", &Res[sysConfig]{}, func(*Res[sysConfig]) {})
	b := NewSystem1("b", Q1[sysPosition](AccessShared, nil), func(*QueryDesc1[sysPosition]) {})
	chain := Chained{Systems: []System{a, b}}
	require.Len(t, chain.footprintUnion(), 2)
}

func TestFootprintsConflictRules(t *testing.T) {
	kind := kindOf[sysPosition]()
	shared := paramFootprint{kind: kind, access: AccessShared}
	exclusive := paramFootprint{kind: kind, access: AccessExclusive}
	world := paramFootprint{world: true}

	require.False(t, footprintsConflict(shared, shared))
	require.True(t, footprintsConflict(shared, exclusive))
	require.True(t, footprintsConflict(exclusive, exclusive))
	require.True(t, footprintsConflict(world, shared))
}
