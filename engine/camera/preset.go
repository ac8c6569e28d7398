package camera

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Kind names a camera variant in a preset.
type Kind string

const (
	KindOrthographic Kind = "orthographic"
	KindPerspective  Kind = "perspective"
)

// Format is a preset file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the preset format from a file extension.
//
// Parameters:
//   - path: the preset file path
//
// Returns:
//   - Format: FormatTOML for .toml, FormatYAML for .yaml and .yml
//   - error: ErrInvalidPreset for any other extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: unsupported preset extension %q", ErrInvalidPreset, filepath.Ext(path))
	}
}

// Preset is a serializable description of a camera. Zero or absent optional fields
// take the variant's defaults when built.
type Preset struct {
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`
	Kind Kind   `toml:"kind" yaml:"kind"`

	Width  float32 `toml:"width" yaml:"width"`
	Height float32 `toml:"height" yaml:"height"`

	Position            [3]float32 `toml:"position" yaml:"position,flow"`
	MinDepth            *float32   `toml:"min_depth,omitempty" yaml:"min_depth,omitempty"`
	MaxDepth            *float32   `toml:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	AllowUpdateOnResize *bool      `toml:"allow_update_on_resize,omitempty" yaml:"allow_update_on_resize,omitempty"`

	// Orthographic only.
	Anchor [2]float32  `toml:"anchor,omitempty" yaml:"anchor,omitempty,flow"`
	Zoom   *[2]float32 `toml:"zoom,omitempty" yaml:"zoom,omitempty,flow"`
	Angle  float32     `toml:"angle,omitempty" yaml:"angle,omitempty"`

	// Perspective only. Rotation is (x, y, z, w); LookAt is applied after Rotation.
	Fov      float32     `toml:"fov,omitempty" yaml:"fov,omitempty"`
	Rotation *[4]float32 `toml:"rotation,omitempty" yaml:"rotation,omitempty,flow"`
	LookAt   *[3]float32 `toml:"look_at,omitempty" yaml:"look_at,omitempty,flow"`
}

// LoadPreset reads and decodes a preset file, choosing the format from its extension.
//
// Parameters:
//   - path: the preset file path
//
// Returns:
//   - *Preset: the decoded preset
//   - error: if the file cannot be read or decoded
func LoadPreset(path string) (*Preset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("camera: open preset: %w", err)
	}
	defer f.Close()

	p, err := DecodePreset(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// DecodePreset decodes a preset from r. Unknown fields are rejected.
//
// Parameters:
//   - r: the encoded preset
//   - format: the encoding of r
//
// Returns:
//   - *Preset: the decoded preset
//   - error: ErrInvalidPreset wrapping the decoder error
func DecodePreset(r io.Reader, format Format) (*Preset, error) {
	var p Preset
	var err error

	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&p)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&p)
		if errors.Is(err, io.EOF) {
			err = errors.New("empty document")
		}
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}
	return &p, nil
}

// Encode writes the preset to w.
//
// Parameters:
//   - w: the destination
//   - format: the encoding to use
//
// Returns:
//   - error: if encoding fails or the format is unknown
func (p *Preset) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalidPreset, format)
	}
}

// Validate checks the preset without building a camera.
//
// Returns:
//   - error: ErrInvalidPreset describing the first problem found
func (p *Preset) Validate() error {
	switch p.Kind {
	case KindOrthographic, KindPerspective:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidPreset, p.Kind)
	}
	if p.Width < 0 || p.Height < 0 || !common.IsFinite(p.Width, p.Height) {
		return fmt.Errorf("%w: invalid dimensions %vx%v", ErrInvalidPreset, p.Width, p.Height)
	}
	if p.Fov != 0 && (p.Fov <= 0 || p.Fov >= 180) {
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidPreset, p.Fov)
	}
	if p.Kind == KindOrthographic && (p.Fov != 0 || p.Rotation != nil || p.LookAt != nil) {
		return fmt.Errorf("%w: fov, rotation and look_at apply to perspective cameras only", ErrInvalidPreset)
	}
	if p.Kind == KindPerspective && (p.Zoom != nil || p.Angle != 0 || p.Anchor != [2]float32{}) {
		return fmt.Errorf("%w: anchor, zoom and angle apply to orthographic cameras only", ErrInvalidPreset)
	}
	return nil
}

// Build validates the preset and constructs the camera it describes.
// The new camera has every change bit set.
//
// Parameters:
//   - options: extra options applied after the preset's own, such as WithTarget
//
// Returns:
//   - Camera: an OrthographicCamera or PerspectiveCamera
//   - error: ErrInvalidPreset or ErrDegenerateLookAt
func (p *Preset) Build(options ...CameraBuilderOption) (Camera, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	opts := []CameraBuilderOption{
		WithName(p.Name),
		WithPosition(p.Position[0], p.Position[1], p.Position[2]),
	}
	if p.AllowUpdateOnResize != nil {
		opts = append(opts, WithAllowUpdateOnResize(*p.AllowUpdateOnResize))
	}

	dims := common.Size2F{Width: p.Width, Height: p.Height}

	switch p.Kind {
	case KindOrthographic:
		opts = append(opts, p.depthOption(0, 1), WithAnchor(p.Anchor[0], p.Anchor[1]), WithAngle(p.Angle))
		if p.Zoom != nil {
			opts = append(opts, WithZoom(p.Zoom[0], p.Zoom[1]))
		}
		return NewOrthographicCamera(dims, append(opts, options...)...), nil

	default:
		opts = append(opts, p.depthOption(0.1, 1000))
		if p.Fov != 0 {
			opts = append(opts, WithFov(p.Fov))
		}
		if p.Rotation != nil {
			r := p.Rotation
			opts = append(opts, WithRotation(mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}))
		}
		cam := NewPerspectiveCamera(dims, append(opts, options...)...)
		if p.LookAt != nil {
			if err := cam.LookAt(mgl32.Vec3(*p.LookAt), mgl32.Vec3{}); err != nil {
				return nil, fmt.Errorf("camera: preset %q: %w", p.Name, err)
			}
		}
		return cam, nil
	}
}

// depthOption returns a WithDepthRange option filling unset ends with the given defaults.
func (p *Preset) depthOption(minDefault, maxDefault float32) CameraBuilderOption {
	minDepth, maxDepth := minDefault, maxDefault
	if p.MinDepth != nil {
		minDepth = *p.MinDepth
	}
	if p.MaxDepth != nil {
		maxDepth = *p.MaxDepth
	}
	return WithDepthRange(minDepth, maxDepth)
}

// Snapshot captures a camera's current settings as a preset.
// Building the preset yields an equivalent camera; the target binding is not captured.
//
// Parameters:
//   - cam: the camera to capture
//
// Returns:
//   - *Preset: the captured settings
//   - error: ErrNilCamera, or ErrInvalidPreset for an unknown camera type
func Snapshot(cam Camera) (*Preset, error) {
	if cam == nil {
		return nil, ErrNilCamera
	}

	dims := cam.ViewDimensions()
	minDepth, maxDepth := cam.MinimumDepth(), cam.MaximumDepth()
	allow := cam.AllowUpdateOnResize()

	p := &Preset{
		Name:                cam.Name(),
		Width:               dims.Width,
		Height:              dims.Height,
		Position:            cam.Position(),
		MinDepth:            &minDepth,
		MaxDepth:            &maxDepth,
		AllowUpdateOnResize: &allow,
	}

	switch c := cam.(type) {
	case OrthographicCamera:
		zoom := [2]float32(c.Zoom())
		p.Kind = KindOrthographic
		p.Anchor = c.Anchor()
		p.Zoom = &zoom
		p.Angle = c.Angle()
	case PerspectiveCamera:
		q := c.Rotation()
		rotation := [4]float32{q.V[0], q.V[1], q.V[2], q.W}
		p.Kind = KindPerspective
		p.Fov = c.Fov()
		p.Rotation = &rotation
	default:
		return nil, fmt.Errorf("%w: unsupported camera type %T", ErrInvalidPreset, cam)
	}
	return p, nil
}
