package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/milk9111/stealth/collider"
	"github.com/milk9111/stealth/focus"
	"github.com/stretchr/testify/require"
)

func withDir(t *testing.T, dir string) {
	t.Helper()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
}

func TestEmbeddedSpecs(t *testing.T) {
	withDir(t, t.TempDir())

	focal, err := LoadFocalPointSpec()
	require.NoError(t, err)
	require.Equal(t, focus.DefaultConfig(), focal.Config())

	player, err := LoadPlayerSpec()
	require.NoError(t, err)
	require.Equal(t, collider.LayerCharacterObjects, player.Collider.Layer)
	require.Greater(t, player.ClimbSpeed, 0.0)

	camera, err := LoadCameraSpec()
	require.NoError(t, err)
	require.Equal(t, "focal_point", camera.Target)
}

func TestFocalPointExtremesMatchConfig(t *testing.T) {
	cases := []struct {
		name  string
		spec  FocalPointSpec
		wantX int
		wantY int
	}{
		{"unset", FocalPointSpec{}, int(focus.DefaultX), int(focus.DefaultY)},
		{"zero_x_only", FocalPointSpec{Y: 12}, int(focus.DefaultX), 12},
		{"explicit", FocalPointSpec{X: 64, Y: 30}, 64, 30},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, y := tc.spec.Extremes()
			require.Equal(t, tc.wantX, x)
			require.Equal(t, tc.wantY, y)

			cfg := tc.spec.Config()
			require.Equal(t, float64(x), cfg.X)
			require.Equal(t, float64(y), cfg.Y)
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "focal_point.yaml"), []byte("x: 64\ny: 8\n"), 0o644))

	focal, err := LoadFocalPointSpec()
	require.NoError(t, err)
	cfg := focal.Config()
	require.Equal(t, 64.0, cfg.X)
	require.Equal(t, 8.0, cfg.Y)
	require.Equal(t, focus.DefaultFlipDuration, cfg.FlipDuration)
}

func TestUnknownLayerFailsAtLoad(t *testing.T) {
	dir := t.TempDir()
	withDir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "player.yaml"), []byte("collider:\n  layer: lava\n"), 0o644))

	_, err := LoadPlayerSpec()
	require.ErrorIs(t, err, collider.ErrUnknownLayer)
}

func TestLoadScript(t *testing.T) {
	withDir(t, t.TempDir())
	for _, name := range []string{"vent_peek.tengo", "scripts/vent_peek.tengo", "prefabs/scripts/security_office.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		require.NotEmpty(t, data)
	}
}

func TestWatcherReportsChangedSpec(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "focal_point.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case name := <-w.Events:
		require.Equal(t, "focal_point.yaml", name)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcherPollErrors(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	require.Empty(t, w.PollErrors())

	overflow := errors.New("event queue overflow")
	closed := errors.New("watcher closed")
	w.Errors <- overflow
	w.Errors <- closed
	require.Equal(t, []error{overflow, closed}, w.PollErrors())
	require.Empty(t, w.PollErrors())

	var nilWatcher *Watcher
	require.Nil(t, nilWatcher.PollErrors())
}
