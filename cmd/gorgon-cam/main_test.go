package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func scanVec3(t *testing.T, output, prefix string) [3]float64 {
	t.Helper()
	var v [3]float64
	_, err := fmt.Sscanf(strings.TrimSpace(output), prefix+" (%f, %f, %f)", &v[0], &v[1], &v[2])
	require.NoError(t, err, output)
	return v
}

func TestMatrices(t *testing.T) {
	out, err := run(t, "matrices")
	require.NoError(t, err)

	assert.Contains(t, out, "(orthographic)")
	assert.Contains(t, out, "Aspect: (1.3333, 1.0000)")
	assert.Contains(t, out, "View:\n  [    1.0000")
	assert.Contains(t, out, "Projection:")
	assert.Contains(t, out, "ViewProjection:")
}

func TestUnprojectAnchors(t *testing.T) {
	out, err := run(t, "unproject", "400", "300")
	require.NoError(t, err)
	v := scanVec3(t, out, "Screen:")
	assert.InDelta(t, 400, v[0], 1e-3)
	assert.InDelta(t, 300, v[1], 1e-3)

	out, err = run(t, "unproject", "--anchor", "0.5,0.5", "--", "-400", "-300", "0")
	require.NoError(t, err)
	v = scanVec3(t, out, "Screen:")
	assert.InDelta(t, 0, v[0], 1e-3)
	assert.InDelta(t, 0, v[1], 1e-3)
}

func TestUnprojectNoView(t *testing.T) {
	out, err := run(t, "unproject", "400", "300", "--position", "100,0,0")
	require.NoError(t, err)
	v := scanVec3(t, out, "Screen:")
	assert.InDelta(t, 300, v[0], 1e-3)
	assert.InDelta(t, 300, v[1], 1e-3)

	// Without the view the projection is skipped too: the point is treated as clip space.
	out, err = run(t, "unproject", "0.5", "0.5", "--no-view")
	require.NoError(t, err)
	v = scanVec3(t, out, "Screen:")
	assert.InDelta(t, 600, v[0], 1e-3)
	assert.InDelta(t, 150, v[1], 1e-3)
}

func TestProjectRoundTrip(t *testing.T) {
	out, err := run(t, "project", "0", "0", "--anchor", "0.5,0.5", "--target-width", "1600", "--target-height", "1200")
	require.NoError(t, err)
	v := scanVec3(t, out, "World:")
	assert.InDelta(t, -400, v[0], 1e-3)
	assert.InDelta(t, -300, v[1], 1e-3)

	_, err = run(t, "project", "1", "abc")
	assert.ErrorContains(t, err, "invalid coordinate")

	_, err = run(t, "project", "1")
	assert.Error(t, err)
}

func TestRegion(t *testing.T) {
	out, err := run(t, "region", "--anchor", "0.5,0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Region: x=-400.0000 y=-300.0000 width=800.0000 height=600.0000")
	assert.Contains(t, out, "Right: 400.0000  Bottom: 300.0000")

	out, err = run(t, "region", "--kind", "perspective")
	require.NoError(t, err)
	assert.Contains(t, out, "Region: x=-1.0000 y=-1.0000 width=2.0000 height=2.0000")
}

func TestPresetFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: scene\nkind: perspective\nwidth: 1280\nheight: 720\nfov: 60\n"), 0o644))

	out, err := run(t, "preset", "--preset", path, "--fov", "75", "--format", "yaml")
	require.NoError(t, err)

	p, err := camera.DecodePreset(strings.NewReader(out), camera.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "scene", p.Name)
	assert.Equal(t, camera.KindPerspective, p.Kind)
	assert.Equal(t, float32(1280), p.Width)
	assert.Equal(t, float32(75), p.Fov)
}

func TestInvalidInput(t *testing.T) {
	_, err := run(t, "matrices", "--kind", "isometric")
	assert.ErrorIs(t, err, camera.ErrInvalidPreset)

	_, err = run(t, "matrices", "--position", "1,2")
	assert.ErrorContains(t, err, "--position needs 3")

	_, err = run(t, "matrices", "--preset", filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = run(t, "unproject", "0", "0", "--width", "0", "--height", "0")
	assert.ErrorIs(t, err, camera.ErrInvalidProjection)
}
