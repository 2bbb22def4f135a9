package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
)

// RenderResult contains a rendered image encoded as base64 PNG.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as a base64 PNG RenderResult.
func EncodePNG(img image.Image) (*RenderResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &RenderResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// ParseColor parses "#RRGGBB" or "#RGB" into an opaque color.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Overlay draws the detected target on top of frame.
//
// Parameters:
//   - frame: the intensity frame the result was computed from.
//   - res: detection result. Only a result with both axes found is drawn;
//     otherwise the plain frame is returned.
//   - circleColor: color for the circle and center mark.
//   - thickness: circle stroke width in pixels; values below 1 draw 1.
//
// The circle is drawn at res.Radius around res.Center. The center gets a
// small cross so it stays visible when the radius is 0.
func Overlay(frame detection.Frame, res *detection.Result, circleColor color.RGBA, thickness int) *image.RGBA {
	bounds := image.Rect(0, 0, frame.Cols, frame.Rows)
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, FrameImage(frame), image.Point{}, draw.Src)

	if res == nil || !res.Found() {
		return out
	}
	if thickness < 1 {
		thickness = 1
	}

	drawCircle(out, res.Center, res.Radius, thickness, circleColor)
	for d := -3; d <= 3; d++ {
		setIn(out, res.Center.Col+d, res.Center.Row, circleColor)
		setIn(out, res.Center.Col, res.Center.Row+d, circleColor)
	}
	return out
}

// drawCircle strokes a circle by testing every pixel of its bounding box
// against the stroke band |d - radius| <= thickness/2.
func drawCircle(img *image.RGBA, center detection.Point, radius, thickness int, c color.RGBA) {
	half := float64(thickness) / 2
	reach := radius + thickness

	for row := center.Row - reach; row <= center.Row+reach; row++ {
		for col := center.Col - reach; col <= center.Col+reach; col++ {
			dr := float64(row - center.Row)
			dc := float64(col - center.Col)
			d := math.Sqrt(dr*dr + dc*dc)
			if math.Abs(d-float64(radius)) <= half {
				setIn(img, col, row, c)
			}
		}
	}
}

func setIn(img *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
