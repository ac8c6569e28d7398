package camera

import "errors"

var (
	// ErrDegenerateLookAt is returned by LookAt when the target equals the camera position
	// or the look direction is parallel to the up vector.
	ErrDegenerateLookAt = errors.New("camera: degenerate look direction")

	// ErrInvalidProjection is returned by Project and Unproject when the transform cannot be
	// applied: a singular view/projection matrix, a zero homogeneous w, or an empty target size.
	ErrInvalidProjection = errors.New("camera: invalid projection")

	// ErrNilCamera is returned when a nil camera is added to a collection.
	ErrNilCamera = errors.New("camera: nil camera")

	// ErrDuplicateName is returned when a collection already holds a camera with the same name.
	ErrDuplicateName = errors.New("camera: duplicate camera name")

	// ErrInvalidPreset is returned when a preset cannot be turned into a camera.
	ErrInvalidPreset = errors.New("camera: invalid preset")
)
