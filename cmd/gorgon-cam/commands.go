package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Carmen-Shannon/gorgon/common"
	"github.com/Carmen-Shannon/gorgon/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
)

func newMatricesCmd(opts *cameraFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "matrices",
		Short: "Print the view, projection and view-projection matrices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cam, err := opts.build(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Camera: %s (%s)\n", cam.Name(), kindOf(cam))
			fmt.Fprintf(out, "Aspect: %s\n\n", formatVec2(cam.AspectRatio()))
			writeMatrix(out, "View", cam.ViewMatrix())
			writeMatrix(out, "Projection", cam.ProjectionMatrix())
			writeMatrix(out, "ViewProjection", cam.ViewProjectionMatrix())
			return nil
		},
	}
}

func newProjectCmd(opts *cameraFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "project X Y",
		Short: "Convert a screen position in pixels to world space",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			screen, err := parseVec3(args)
			if err != nil {
				return err
			}
			cam, err := opts.build(cmd)
			if err != nil {
				return err
			}

			world, err := cam.ProjectSize(screen, opts.targetSize(cam), !opts.noView)
			if err != nil {
				return fmt.Errorf("project %s: %w", formatVec3(screen), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "World: %s\n", formatVec3(world))
			return nil
		},
	}
}

func newUnprojectCmd(opts *cameraFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "unproject X Y [Z]",
		Short: "Convert a world position to a screen position in pixels",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			world, err := parseVec3(args)
			if err != nil {
				return err
			}
			cam, err := opts.build(cmd)
			if err != nil {
				return err
			}

			screen, err := cam.UnprojectSize(world, opts.targetSize(cam), !opts.noView)
			if err != nil {
				return fmt.Errorf("unproject %s: %w", formatVec3(world), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Screen: %s\n", formatVec3(screen))
			return nil
		},
	}
}

func newRegionCmd(opts *cameraFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "region",
		Short: "Print the camera's viewable region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cam, err := opts.build(cmd)
			if err != nil {
				return err
			}

			r := cam.ViewableRegion()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Region: x=%.4f y=%.4f width=%.4f height=%.4f\n", r.X, r.Y, r.Width, r.Height)
			fmt.Fprintf(out, "Right: %.4f  Bottom: %.4f\n", r.Right(), r.Bottom())
			return nil
		},
	}
}

func newPresetCmd(opts *cameraFlags) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Print the resolved camera as a preset file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cam, err := opts.build(cmd)
			if err != nil {
				return err
			}
			p, err := camera.Snapshot(cam)
			if err != nil {
				return err
			}
			return p.Encode(cmd.OutOrStdout(), camera.Format(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(camera.FormatTOML), "output format: toml or yaml")
	return cmd
}

// parseVec3 reads two or three coordinates; a missing Z is zero.
func parseVec3(args []string) (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i, arg := range args {
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return v, fmt.Errorf("invalid coordinate %q: %w", arg, err)
		}
		v[i] = float32(f)
	}
	return v, nil
}

func kindOf(cam camera.Camera) camera.Kind {
	if _, ok := cam.(camera.PerspectiveCamera); ok {
		return camera.KindPerspective
	}
	return camera.KindOrthographic
}

func writeMatrix(w io.Writer, name string, m mgl32.Mat4) {
	fmt.Fprintf(w, "%s:\n", name)
	for row := 1; row <= 4; row++ {
		fmt.Fprintf(w, "  [% 10.4f % 10.4f % 10.4f % 10.4f]\n",
			common.Element(m, row, 1), common.Element(m, row, 2), common.Element(m, row, 3), common.Element(m, row, 4))
	}
	fmt.Fprintln(w)
}

func formatVec2(v mgl32.Vec2) string {
	return fmt.Sprintf("(%.4f, %.4f)", v.X(), v.Y())
}

func formatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X(), v.Y(), v.Z())
}
