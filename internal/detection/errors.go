package detection

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyForeground means no pixel survived masking and thresholding.
	ErrEmptyForeground = errors.New("no foreground pixels")

	// ErrCenterNotFound is matched by every *CenterNotFoundError.
	ErrCenterNotFound = errors.New("center not found")

	// ErrFrameShape marks frames whose dimensions violate the session's
	// fixed shape or are malformed.
	ErrFrameShape = errors.New("invalid frame shape")
)

// Axis names the coordinate a center estimator failed on.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// CenterNotFoundError reports that one axis of the center could not be
// estimated.
type CenterNotFoundError struct {
	Axis Axis
}

func (e *CenterNotFoundError) Error() string {
	return fmt.Sprintf("center not found on %s axis", e.Axis)
}

// Is lets errors.Is(err, ErrCenterNotFound) match any axis.
func (e *CenterNotFoundError) Is(target error) bool {
	return target == ErrCenterNotFound
}
