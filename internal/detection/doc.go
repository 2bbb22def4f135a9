// Package detection locates the fence-mounted ring target in a single
// depth-derived intensity frame.
//
// The pipeline is strictly linear and runs once per frame:
//
//  1. Threshold: an intensity cutoff derived from the physical geometry of
//     sensor and fence (see Threshold).
//  2. Foreground extraction: spatial masking plus the cutoff partition the
//     frame into a column-ordered ForegroundSet (see ExtractForeground).
//  3. Center X: vertical rods of foreground pixels below the ring give the
//     horizontal center (see EstimateCenterX).
//  4. Center Y: a probe circle walked up the center column finds the dark
//     interior of the ring (see EstimateCenterY).
//  5. Radius: a probe circle grown around the center stops when it starts
//     enclosing the ring itself (see EstimateRadius).
//
// Session wires the stages together behind a validated boundary.
//
// # Coordinate System
//
// Coordinates are (Row, Col) pairs in pixel space:
//   - Origin (0, 0) at the top-left corner
//   - Col increases rightward
//   - Row increases downward, so "above" means a smaller row index
//
// The horizon is row Cols/2. The ring is assumed to lie entirely above it;
// nothing at or below the horizon is ever foreground. Rods are only counted
// from row Rows/2 down to the horizon (the rod band).
//
// # Failure Reporting
//
// Estimation failures are recoverable and mean "no target this frame":
//   - ErrEmptyForeground: no pixel survived masking and thresholding
//   - ErrCenterNotFound (as *CenterNotFoundError): no rods for X, or no sparse
//     rows for Y
//   - Result.RadiusCapReached: advisory only, the radius search hit its cap
//
// Session.Detect returns whatever was estimated before a failure alongside
// the error so callers can decide whether a partial result is usable.
//
// # Concurrency
//
// All functions are pure over their inputs. A Session is immutable once
// built and may be shared between goroutines; each Detect call owns its
// working copy and ForegroundSet.
package detection
