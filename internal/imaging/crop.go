package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
)

// TargetBounds returns the square around the detected target, widened by
// margin and clipped to the frame.
func TargetBounds(frame detection.Frame, res *detection.Result, margin int) (image.Rectangle, error) {
	if res == nil || !res.Found() {
		return image.Rectangle{}, fmt.Errorf("no target to crop")
	}
	if margin < 0 {
		return image.Rectangle{}, fmt.Errorf("margin must not be negative, got %d", margin)
	}

	reach := res.Radius + margin
	rect := image.Rect(
		res.Center.Col-reach, res.Center.Row-reach,
		res.Center.Col+reach+1, res.Center.Row+reach+1,
	).Intersect(image.Rect(0, 0, frame.Cols, frame.Rows))

	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("target (%d,%d) r=%d lies outside the %dx%d frame",
			res.Center.Col, res.Center.Row, res.Radius, frame.Cols, frame.Rows)
	}
	return rect, nil
}

// CropTarget extracts the region around the detected target from img.
//
// img is normally the frame itself or an overlay rendered from it. A scale
// other than 1 resizes the crop with Lanczos resampling; scale must be
// positive.
func CropTarget(img image.Image, frame detection.Frame, res *detection.Result, margin int, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	rect, err := TargetBounds(frame, res, margin)
	if err != nil {
		return nil, err
	}

	cropped := imaging.Crop(img, rect)

	if scale != 1.0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 || newHeight < 1 {
			return nil, fmt.Errorf("scale %g shrinks the %dx%d crop to nothing", scale, rect.Dx(), rect.Dy())
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return cropped, nil
}
