package imaging

import (
	"encoding/base64"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
)

func foundResult(row, col, radius int) *detection.Result {
	return &detection.Result{
		Center: detection.Point{Row: row, Col: col},
		Radius: radius,
		HasX:   true,
		HasY:   true,
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"#FF0000", color.RGBA{255, 0, 0, 255}, false},
		{"#00ff80", color.RGBA{0, 255, 128, 255}, false},
		{"#0F0", color.RGBA{0, 255, 0, 255}, false},
		{"red", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ParseColor(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.hex, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseColor(%q): got %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestOverlay_DrawsCircle(t *testing.T) {
	frame := detection.BlankFrame(100, 120)
	red := color.RGBA{255, 0, 0, 255}

	out := Overlay(frame, foundResult(50, 60, 20), red, 1)

	if got := out.RGBAAt(80, 50); got != red {
		t.Errorf("pixel on circle (80,50): got %v, want %v", got, red)
	}
	if got := out.RGBAAt(60, 30); got != red {
		t.Errorf("pixel on circle (60,30): got %v, want %v", got, red)
	}
	if got := out.RGBAAt(60, 50); got != red {
		t.Errorf("center mark: got %v, want %v", got, red)
	}
	if got := out.RGBAAt(70, 50); got == red {
		t.Error("pixel inside the circle should not be drawn")
	}
}

func TestOverlay_NotFound(t *testing.T) {
	frame := detection.BlankFrame(10, 10)
	frame.Set(4, 4, 200)

	out := Overlay(frame, &detection.Result{HasX: true}, color.RGBA{255, 0, 0, 255}, 2)

	if got := out.RGBAAt(4, 4); got != (color.RGBA{200, 200, 200, 255}) {
		t.Errorf("frame pixel: got %v, want gray 200", got)
	}
	if got := out.RGBAAt(0, 0); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("background: got %v, want black", got)
	}
}

func TestOverlay_ClipsAtEdges(t *testing.T) {
	frame := detection.BlankFrame(20, 20)

	// Must not panic when the circle leaves the frame
	out := Overlay(frame, foundResult(2, 2, 15), color.RGBA{0, 255, 0, 255}, 3)
	if out.Bounds().Dx() != 20 {
		t.Errorf("width: got %d, want 20", out.Bounds().Dx())
	}
}

func TestEncodePNG(t *testing.T) {
	res, err := EncodePNG(FrameImage(detection.BlankFrame(12, 16)))
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if res.Width != 16 || res.Height != 12 {
		t.Errorf("dimensions: got %dx%d, want 16x12", res.Width, res.Height)
	}
	if res.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", res.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	if _, err := png.Decode(strings.NewReader(string(data))); err != nil {
		t.Errorf("payload is not a PNG: %v", err)
	}
}

func TestTargetBounds(t *testing.T) {
	frame := detection.BlankFrame(100, 100)

	rect, err := TargetBounds(frame, foundResult(50, 40, 10), 5)
	if err != nil {
		t.Fatalf("TargetBounds failed: %v", err)
	}
	if rect.Min.X != 25 || rect.Min.Y != 35 || rect.Max.X != 56 || rect.Max.Y != 66 {
		t.Errorf("bounds: got %v, want (25,35)-(56,66)", rect)
	}

	rect, err = TargetBounds(frame, foundResult(5, 95, 10), 0)
	if err != nil {
		t.Fatalf("TargetBounds failed: %v", err)
	}
	if rect.Min.Y != 0 || rect.Max.X != 100 {
		t.Errorf("bounds not clipped: got %v", rect)
	}

	if _, err := TargetBounds(frame, &detection.Result{}, 5); err == nil {
		t.Error("expected error without a target")
	}
	if _, err := TargetBounds(frame, foundResult(50, 50, 10), -1); err == nil {
		t.Error("expected error for negative margin")
	}
	if _, err := TargetBounds(frame, foundResult(500, 500, 10), 0); err == nil {
		t.Error("expected error for target outside the frame")
	}
}

func TestCropTarget(t *testing.T) {
	frame := detection.BlankFrame(100, 100)
	res := foundResult(50, 50, 10)

	img, err := CropTarget(FrameImage(frame), frame, res, 5, 1.0)
	if err != nil {
		t.Fatalf("CropTarget failed: %v", err)
	}
	if img.Bounds().Dx() != 31 || img.Bounds().Dy() != 31 {
		t.Errorf("dimensions: got %v, want 31x31", img.Bounds())
	}

	img, err = CropTarget(FrameImage(frame), frame, res, 5, 2.0)
	if err != nil {
		t.Fatalf("CropTarget with scale failed: %v", err)
	}
	if img.Bounds().Dx() != 62 {
		t.Errorf("scaled width: got %d, want 62", img.Bounds().Dx())
	}

	if _, err := CropTarget(FrameImage(frame), frame, res, 5, 0.01); err == nil {
		t.Error("expected error when scale shrinks the crop to nothing")
	}
	for _, scale := range []float64{0, -2} {
		if _, err := CropTarget(FrameImage(frame), frame, res, 5, scale); err == nil {
			t.Errorf("expected error for scale %g", scale)
		}
	}
}

func TestExport(t *testing.T) {
	frame := detection.BlankFrame(8, 8)
	frame.Set(3, 3, 255)
	path := filepath.Join(t.TempDir(), "nested", "mask.png")

	if err := Export(path, FrameImage(frame)); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}

	img, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen export: %v", err)
	}
	back, err := ToFrame(img, 8000)
	if err != nil {
		t.Fatalf("ToFrame failed: %v", err)
	}
	if back.At(3, 3) != 255 || back.At(0, 0) != 0 {
		t.Error("exported pixels do not match the frame")
	}
}
