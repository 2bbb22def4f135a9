package imaging

import (
	"container/list"
	"fmt"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
)

// DefaultCacheFrames is the cache capacity used when none is configured.
const DefaultCacheFrames = 64

// FrameCache provides thread-safe caching of decoded frames keyed by file
// path and the depth scale used to convert them.
//
// The cache holds at most its capacity in frames; loading past it drops the
// least recently used frame.
//
// # Example Usage
//
//	cache := imaging.NewFrameCache(imaging.DefaultCacheFrames)
//	frame, err := cache.Load("/captures/frame-0001.png", 8000)
//	if err != nil {
//	    return err
//	}
//	res, err := session.Detect(frame)
type FrameCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	frames   map[frameKey]*list.Element
}

type frameKey struct {
	path     string
	maxDepth float64
}

type cacheEntry struct {
	key   frameKey
	frame detection.Frame
}

// NewFrameCache creates an empty frame cache holding at most capacity
// frames. A capacity below 1 uses DefaultCacheFrames.
func NewFrameCache(capacity int) *FrameCache {
	if capacity < 1 {
		capacity = DefaultCacheFrames
	}
	return &FrameCache{
		capacity: capacity,
		order:    list.New(),
		frames:   make(map[frameKey]*list.Element),
	}
}

// Load returns the frame for path, decoding and converting it on first use.
//
// Parameters:
//   - path: PNG, JPEG or GIF file. 16-bit grayscale PNGs are depth maps.
//   - maxDepth: depth in millimeters mapped to intensity 255.
//
// The returned frame is shared with the cache and must not be modified.
func (c *FrameCache) Load(path string, maxDepth float64) (detection.Frame, error) {
	key := frameKey{path: path, maxDepth: maxDepth}

	c.mu.Lock()
	if el, ok := c.frames[key]; ok {
		c.order.MoveToFront(el)
		c.mu.Unlock()
		return el.Value.(*cacheEntry).frame, nil
	}
	c.mu.Unlock()

	img, err := imgio.Open(path)
	if err != nil {
		return detection.Frame{}, fmt.Errorf("failed to open frame: %w", err)
	}

	f, err := ToFrame(img, maxDepth)
	if err != nil {
		return detection.Frame{}, fmt.Errorf("failed to convert %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have converted the same file meanwhile
	if el, ok := c.frames[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).frame, nil
	}
	c.frames[key] = c.order.PushFront(&cacheEntry{key: key, frame: f})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.frames, oldest.Value.(*cacheEntry).key)
	}

	return f, nil
}

// Evict drops every cached conversion of path.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, el := range c.frames {
		if k.path == path {
			c.order.Remove(el)
			delete(c.frames, k)
		}
	}
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

// ToFrame converts img to an 8-bit intensity frame.
//
// *image.Gray16 input is a depth map and is scaled with DepthToIntensity;
// *image.Gray is copied; anything else is reduced to luminance.
func ToFrame(img image.Image, maxDepth float64) (detection.Frame, error) {
	bounds := img.Bounds()
	rows, cols := bounds.Dy(), bounds.Dx()
	if rows <= 0 || cols <= 0 {
		return detection.Frame{}, fmt.Errorf("%w: empty image", detection.ErrFrameShape)
	}

	f := detection.BlankFrame(rows, cols)

	switch src := img.(type) {
	case *image.Gray16:
		if maxDepth <= 0 {
			return detection.Frame{}, fmt.Errorf("max depth must be positive, got %g", maxDepth)
		}
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				depth := src.Gray16At(x+bounds.Min.X, y+bounds.Min.Y).Y
				f.Set(y, x, DepthToIntensity(depth, maxDepth))
			}
		}
	case *image.Gray:
		for y := 0; y < rows; y++ {
			off := src.PixOffset(bounds.Min.X, y+bounds.Min.Y)
			copy(f.Pix[y*cols:(y+1)*cols], src.Pix[off:off+cols])
		}
	default:
		gray := imaging.Grayscale(img)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				f.Set(y, x, gray.Pix[gray.PixOffset(x, y)])
			}
		}
	}

	return f, nil
}

// FrameImage wraps a frame as an *image.Gray sharing its buffer.
func FrameImage(f detection.Frame) *image.Gray {
	return &image.Gray{
		Pix:    f.Pix,
		Stride: f.Cols,
		Rect:   image.Rect(0, 0, f.Cols, f.Rows),
	}
}
