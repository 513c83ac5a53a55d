package loom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type wtConfig struct{ MaxPlayers int }
type wtLocalConfig struct{ WindowTitle string }

func TestWorldResourceRoundTrip(t *testing.T) {
	w := NewWorld()
	InsertWorldResource(w, wtConfig{MaxPlayers: 4})

	cfg, release, ok := GetResource[wtConfig](w)
	require.True(t, ok)
	require.Equal(t, 4, cfg.MaxPlayers)
	release()
}

func TestWorldLocalResourceRoundTrip(t *testing.T) {
	w := NewWorld()
	InsertLocalResource(w, wtLocalConfig{WindowTitle: "loom"})

	cfg, release, ok := GetLocalResource[wtLocalConfig](w)
	require.True(t, ok)
	require.Equal(t, "loom", cfg.WindowTitle)
	release()
}

func TestWorldCurrentSceneSharesOneScene(t *testing.T) {
	w := NewWorld()
	require.Same(t, w.CurrentScene(), w.CurrentSceneMut())
}

func TestWorldApplyCommandsDrainsQueuedWork(t *testing.T) {
	w := NewWorld()
	e := w.Commands().ReserveEntity()
	CmdAddComponent(w.Commands(), e, NewSet1(wtConfig{MaxPlayers: 2}))

	require.Nil(t, w.CurrentScene().TableOf(e))
	w.ApplyCommands()
	require.NotNil(t, w.CurrentScene().TableOf(e))
}
