// Package imaging converts between image files and detection frames and
// renders detection results for display and export.
//
// It stands between the files a client hands the server and the pure
// detection pipeline: decoding, grayscale and depth conversion on the way in;
// masks, overlays, crops and PNG export on the way out.
//
// # Frame Conversion
//
// Input images are turned into 8-bit single-channel frames:
//   - *image.Gray is copied as is
//   - *image.Gray16 is treated as a raw depth map in millimeters and mapped
//     linearly onto [0, 255] against the configured maximum depth, saturating
//     above it
//   - every other image is converted to luminance
//
// The depth mapping must stay in step with detection.Threshold, which assumes
// the same linear scale.
//
// # Thread Safety
//
// FrameCache is safe for concurrent use. Frames handed out by the cache are
// shared and must be treated as read-only; the detection pipeline never
// writes to its input.
//
// # Output
//
// Rendered images are returned either as image values, as base64 PNG inside
// a RenderResult, or written to disk with Export.
package imaging
