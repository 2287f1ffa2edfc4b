package levels

import (
	"testing"

	"github.com/milk9111/stealth/collider"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultLevel(t *testing.T) {
	lvl, err := LoadLevelFromFS("warehouse")
	require.NoError(t, err)
	require.Equal(t, "warehouse", lvl.Name)
	require.NotEmpty(t, lvl.Solids)
	require.NotEmpty(t, lvl.Cues)

	climbable := 0
	for _, s := range lvl.Solids {
		require.NotEqual(t, collider.LayerNone, s.Layer)
		if s.Tile != nil && s.Tile.Climbable {
			climbable++
		}
	}
	require.Greater(t, climbable, 0)
}

func TestLoadMissingLevel(t *testing.T) {
	_, err := LoadLevelFromFS("nowhere")
	require.Error(t, err)
}
