package camera

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hudPreset = `
name = "hud"
kind = "orthographic"
width = 800.0
height = 600.0
position = [100.0, 50.0, 0.0]
anchor = [0.5, 0.5]
zoom = [2.0, 2.0]
allow_update_on_resize = false
`

const scenePreset = `
name: scene
kind: perspective
width: 1280
height: 720
position: [0, 5, -10]
fov: 60
max_depth: 500
look_at: [0, 0, 0]
`

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("cams/main.TOML")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	f, err = FormatFromPath("main.yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = FormatFromPath("main.json")
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestDecodeTOMLPreset(t *testing.T) {
	p, err := DecodePreset(strings.NewReader(hudPreset), FormatTOML)
	require.NoError(t, err)

	cam, err := p.Build()
	require.NoError(t, err)

	ortho, ok := cam.(OrthographicCamera)
	require.True(t, ok)
	assert.Equal(t, "hud", ortho.Name())
	assert.Equal(t, mgl32.Vec3{100, 50, 0}, ortho.Position())
	assert.Equal(t, mgl32.Vec2{0.5, 0.5}, ortho.Anchor())
	assert.Equal(t, mgl32.Vec2{2, 2}, ortho.Zoom())
	assert.False(t, ortho.AllowUpdateOnResize())
	assert.Equal(t, float32(1), ortho.MaximumDepth())
	assert.Equal(t, ChangeAll, ortho.Changes())
}

func TestDecodeYAMLPreset(t *testing.T) {
	p, err := DecodePreset(strings.NewReader(scenePreset), FormatYAML)
	require.NoError(t, err)

	cam, err := p.Build()
	require.NoError(t, err)

	persp, ok := cam.(PerspectiveCamera)
	require.True(t, ok)
	assert.Equal(t, float32(60), persp.Fov())
	assert.Equal(t, float32(0.1), persp.MinimumDepth())
	assert.Equal(t, float32(500), persp.MaximumDepth())
	assert.True(t, persp.AllowUpdateOnResize())

	origin := persp.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, origin.X(), tol)
	assert.InDelta(t, 0, origin.Y(), tol)
	assert.InDelta(t, mgl32.Vec3{0, 5, -10}.Len(), origin.Z(), tol)
}

func TestDecodePresetErrors(t *testing.T) {
	_, err := DecodePreset(strings.NewReader("kind = \"orthographic\"\nbogus = 1\n"), FormatTOML)
	assert.ErrorIs(t, err, ErrInvalidPreset)

	_, err = DecodePreset(strings.NewReader("kind: perspective\nbogus: 1\n"), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidPreset)

	_, err = DecodePreset(strings.NewReader(""), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidPreset)

	_, err = DecodePreset(strings.NewReader("{}"), Format("json"))
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestPresetValidate(t *testing.T) {
	zoom := [2]float32{2, 2}
	cases := []struct {
		name   string
		preset Preset
	}{
		{"unknown kind", Preset{Kind: "isometric", Width: 1, Height: 1}},
		{"negative size", Preset{Kind: KindOrthographic, Width: -5, Height: 1}},
		{"fov too wide", Preset{Kind: KindPerspective, Width: 1, Height: 1, Fov: 180}},
		{"fov on orthographic", Preset{Kind: KindOrthographic, Width: 1, Height: 1, Fov: 45}},
		{"zoom on perspective", Preset{Kind: KindPerspective, Width: 1, Height: 1, Zoom: &zoom}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.preset.Build()
			assert.ErrorIs(t, err, ErrInvalidPreset)
		})
	}
}

func TestPresetBuildDegenerateLookAt(t *testing.T) {
	at := [3]float32{1, 1, 1}
	p := Preset{Kind: KindPerspective, Width: 10, Height: 10, Position: at, LookAt: &at}
	_, err := p.Build()
	assert.ErrorIs(t, err, ErrDegenerateLookAt)
}

func TestLoadPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hud.toml")
	require.NoError(t, os.WriteFile(path, []byte(hudPreset), 0o644))

	p, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, KindOrthographic, p.Kind)

	_, err = LoadPreset(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("kind: [\n"), 0o644))
	_, err = LoadPreset(bad)
	assert.ErrorIs(t, err, ErrInvalidPreset)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ortho := NewOrthographicCamera(common.Size2F{Width: 1024, Height: 768},
		WithName("minimap"), WithPosition(12.5, -3, 0), WithAnchor(0.5, 0.5),
		WithZoom(1.5, 1.5), WithAngle(30), WithDepthRange(-1, 4), WithAllowUpdateOnResize(false))
	persp := NewPerspectiveCamera(common.Size2F{Width: 1280, Height: 720},
		WithName("player"), WithPosition(3, 4, -5), WithFov(70))
	persp.RotateEuler(20, -10, 5)

	for _, format := range []Format{FormatTOML, FormatYAML} {
		for _, original := range []Camera{ortho, persp} {
			t.Run(string(format)+"/"+original.Name(), func(t *testing.T) {
				p, err := Snapshot(original)
				require.NoError(t, err)

				var buf bytes.Buffer
				require.NoError(t, p.Encode(&buf, format))

				decoded, err := DecodePreset(&buf, format)
				require.NoError(t, err)
				restored, err := decoded.Build()
				require.NoError(t, err)

				assert.Equal(t, original.Name(), restored.Name())
				assert.Equal(t, original.AllowUpdateOnResize(), restored.AllowUpdateOnResize())
				assertMat4InDelta(t, original.ViewMatrix(), restored.ViewMatrix(), 1e-6)
				assertMat4InDelta(t, original.ProjectionMatrix(), restored.ProjectionMatrix(), 1e-6)
			})
		}
	}
}

func TestSnapshotNil(t *testing.T) {
	_, err := Snapshot(nil)
	assert.ErrorIs(t, err, ErrNilCamera)
}
