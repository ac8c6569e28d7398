package main

import (
	"fmt"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/spf13/cobra"
)

// cameraFlags holds the persistent flags shared by every subcommand.
type cameraFlags struct {
	presetPath string
	kind       string
	width      float32
	height     float32
	position   []float32
	minDepth   float32
	maxDepth   float32

	anchor []float32
	zoom   []float32
	angle  float32

	fov    float32
	lookAt []float32

	targetWidth  int
	targetHeight int
	noView       bool
}

func (f *cameraFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.presetPath, "preset", "p", "", "camera preset file (.toml, .yaml, .yml)")
	pf.StringVarP(&f.kind, "kind", "k", string(camera.KindOrthographic), "camera kind: orthographic or perspective")
	pf.Float32VarP(&f.width, "width", "W", 800, "view width")
	pf.Float32VarP(&f.height, "height", "H", 600, "view height")
	pf.Float32SliceVar(&f.position, "position", nil, "camera position x,y,z")
	pf.Float32Var(&f.minDepth, "min-depth", 0, "near depth")
	pf.Float32Var(&f.maxDepth, "max-depth", 0, "far depth")
	pf.Float32SliceVar(&f.anchor, "anchor", nil, "orthographic anchor x,y")
	pf.Float32SliceVar(&f.zoom, "zoom", nil, "orthographic zoom x,y")
	pf.Float32Var(&f.angle, "angle", 0, "orthographic rotation in degrees")
	pf.Float32Var(&f.fov, "fov", 0, "perspective vertical field of view in degrees")
	pf.Float32SliceVar(&f.lookAt, "look-at", nil, "perspective look-at point x,y,z")
	pf.IntVar(&f.targetWidth, "target-width", 0, "render target width in pixels (defaults to the view width)")
	pf.IntVar(&f.targetHeight, "target-height", 0, "render target height in pixels (defaults to the view height)")
	pf.BoolVar(&f.noView, "no-view", false, "exclude the view transform from conversions")
}

// preset returns the preset file's contents, or a default for --kind, with every
// explicitly set flag applied on top.
func (f *cameraFlags) preset(cmd *cobra.Command) (*camera.Preset, error) {
	p := &camera.Preset{
		Kind:   camera.Kind(f.kind),
		Width:  f.width,
		Height: f.height,
	}
	if f.presetPath != "" {
		loaded, err := camera.LoadPreset(f.presetPath)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	changed := cmd.Flags().Changed
	if changed("kind") {
		p.Kind = camera.Kind(f.kind)
	}
	if changed("width") {
		p.Width = f.width
	}
	if changed("height") {
		p.Height = f.height
	}
	if changed("position") {
		v, err := vec3("position", f.position)
		if err != nil {
			return nil, err
		}
		p.Position = v
	}
	if changed("min-depth") {
		p.MinDepth = &f.minDepth
	}
	if changed("max-depth") {
		p.MaxDepth = &f.maxDepth
	}
	if changed("anchor") {
		v, err := vec2("anchor", f.anchor)
		if err != nil {
			return nil, err
		}
		p.Anchor = v
	}
	if changed("zoom") {
		v, err := vec2("zoom", f.zoom)
		if err != nil {
			return nil, err
		}
		p.Zoom = &v
	}
	if changed("angle") {
		p.Angle = f.angle
	}
	if changed("fov") {
		p.Fov = f.fov
	}
	if changed("look-at") {
		v, err := vec3("look-at", f.lookAt)
		if err != nil {
			return nil, err
		}
		p.LookAt = &v
	}
	return p, nil
}

// build resolves the preset and constructs the camera.
func (f *cameraFlags) build(cmd *cobra.Command) (camera.Camera, error) {
	p, err := f.preset(cmd)
	if err != nil {
		return nil, err
	}
	cam, err := p.Build()
	if err != nil {
		return nil, fmt.Errorf("build camera: %w", err)
	}
	return cam, nil
}

// targetSize returns the render target size for conversions, falling back to the
// camera's view dimensions for any dimension not given.
func (f *cameraFlags) targetSize(cam camera.Camera) common.Size2 {
	return common.Size2{
		Width:  common.Coalesce(f.targetWidth, cam.TargetWidth()),
		Height: common.Coalesce(f.targetHeight, cam.TargetHeight()),
	}
}

func vec2(name string, values []float32) ([2]float32, error) {
	var out [2]float32
	if err := fill(name, out[:], values); err != nil {
		return out, err
	}
	return out, nil
}

func vec3(name string, values []float32) ([3]float32, error) {
	var out [3]float32
	if err := fill(name, out[:], values); err != nil {
		return out, err
	}
	return out, nil
}

// fill copies a flag's values into dst, requiring an exact length.
func fill(name string, dst, values []float32) error {
	if len(values) != len(dst) {
		return fmt.Errorf("--%s needs %d comma-separated values, got %d", name, len(dst), len(values))
	}
	copy(dst, values)
	return nil
}
