package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/ring-target-mcp/internal/detection"
	"github.com/ironsheep/ring-target-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "target_detect").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// A frame without a detectable target is not an error; it is reported in the
// result with found=false.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	out, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.Printf("Tool %s failed: %v", params.Name, err)
		return errorResponse(req.ID, codeToolFailed, "Tool execution failed", err.Error())
	}

	return result(req.ID, map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": mustMarshalJSON(out),
			},
		},
	})
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "target_threshold":
		return s.handleTargetThreshold(args)
	case "target_detect":
		return s.handleTargetDetect(args)
	case "target_detect_batch":
		return s.handleTargetDetectBatch(args)
	case "target_foreground":
		return s.handleTargetForeground(args)
	case "target_overlay":
		return s.handleTargetOverlay(args)
	case "target_crop":
		return s.handleTargetCrop(args)
	case "target_export":
		return s.handleTargetExport(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Detection plumbing ===

// isMiss reports whether err only means "no target in this frame".
func isMiss(err error) bool {
	return errors.Is(err, detection.ErrEmptyForeground) || errors.Is(err, detection.ErrCenterNotFound)
}

// detect loads path and runs the pipeline on it.
//
// The returned error is non-nil only for I/O, conversion or configuration
// failures. Detection misses come back in the result together with missErr.
func (s *Server) detect(path string) (frame detection.Frame, res *detection.Result, missErr error, err error) {
	frame, err = s.cache.Load(path, s.cfg.Geometry.MaxDepth)
	if err != nil {
		return detection.Frame{}, nil, nil, err
	}

	session, err := detection.NewSession(frame.Rows, frame.Cols, s.cfg.Geometry, s.cfg.Estimator)
	if err != nil {
		return detection.Frame{}, nil, nil, err
	}

	res, err = session.Detect(frame)
	if err != nil && !isMiss(err) {
		return detection.Frame{}, nil, nil, err
	}
	if s.debug {
		log.Printf("detect %s: center=%+v radius=%d foreground=%d err=%v",
			path, res.Center, res.Radius, res.ForegroundCount, err)
	}
	return frame, res, err, nil
}

// DetectionReport is the tool-facing view of a detection.
type DetectionReport struct {
	Path   string `json:"path"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Found  bool   `json:"found"`
	Reason string `json:"reason,omitempty"`
	*detection.Result
}

func newReport(path string, frame detection.Frame, res *detection.Result, missErr error) *DetectionReport {
	r := &DetectionReport{
		Path:   path,
		Rows:   frame.Rows,
		Cols:   frame.Cols,
		Found:  missErr == nil && res.Found(),
		Result: res,
	}
	if missErr != nil {
		r.Reason = missErr.Error()
	}
	return r
}

// === Threshold Handler ===

type targetThresholdArgs struct {
	FenceHeight   *float64 `json:"fence_height"`
	SensorHeight  *float64 `json:"sensor_height"`
	FenceDistance *float64 `json:"fence_distance"`
	Tolerance     *float64 `json:"tolerance"`
	MaxDepth      *float64 `json:"max_depth"`
}

func (s *Server) handleTargetThreshold(args json.RawMessage) (interface{}, error) {
	var a targetThresholdArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	g := s.cfg.Geometry
	override := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	override(&g.FenceHeight, a.FenceHeight)
	override(&g.SensorHeight, a.SensorHeight)
	override(&g.FenceDistance, a.FenceDistance)
	override(&g.Tolerance, a.Tolerance)
	override(&g.MaxDepth, a.MaxDepth)

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid geometry: %w", err)
	}

	return struct {
		Geometry detection.Geometry `json:"geometry"`
		detection.ThresholdResult
	}{g, detection.ThresholdDetail(g)}, nil
}

// === Detection Handlers ===

type targetPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleTargetDetect(args json.RawMessage) (interface{}, error) {
	var a targetPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	frame, res, missErr, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}
	return newReport(a.Path, frame, res, missErr), nil
}

type targetDetectBatchArgs struct {
	Paths   []string `json:"paths"`
	Workers int      `json:"workers"`
}

// BatchItem is one frame of a batch detection. Error is set when the frame
// could not be read; otherwise Report holds the detection.
type BatchItem struct {
	Report *DetectionReport `json:"report,omitempty"`
	Path   string           `json:"path"`
	Error  string           `json:"error,omitempty"`
}

// BatchResult collects a batch detection in request order.
type BatchResult struct {
	Items  []BatchItem `json:"items"`
	Found  int         `json:"found"`
	Failed int         `json:"failed"`
}

func (s *Server) handleTargetDetectBatch(args json.RawMessage) (interface{}, error) {
	var a targetDetectBatchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	if a.Workers <= 0 {
		a.Workers = s.cfg.Workers
	}

	return s.detectBatch(a.Paths, a.Workers), nil
}

// detectBatch runs independent detections with at most workers in flight.
// Each goroutine writes only its own slot. Batch frames are dropped from the
// cache afterwards so a large batch does not push out frames in active use.
func (s *Server) detectBatch(paths []string, workers int) *BatchResult {
	items := make([]BatchItem, len(paths))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			items[i].Path = path
			frame, res, missErr, err := s.detect(path)
			if err != nil {
				items[i].Error = err.Error()
				return nil
			}
			items[i].Report = newReport(path, frame, res, missErr)
			return nil
		})
	}
	_ = g.Wait()

	for _, path := range paths {
		s.cache.Evict(path)
	}

	out := &BatchResult{Items: items}
	for _, it := range items {
		switch {
		case it.Error != "":
			out.Failed++
		case it.Report.Found:
			out.Found++
		}
	}
	return out
}

// === Visualization Handlers ===

// ForegroundResult is the thresholded working image of a frame.
type ForegroundResult struct {
	*imaging.RenderResult
	Cutoff          uint8 `json:"cutoff"`
	ForegroundCount int   `json:"foreground_count"`
}

func (s *Server) handleTargetForeground(args json.RawMessage) (interface{}, error) {
	var a targetPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, _, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}

	rendered, err := imaging.EncodePNG(imaging.FrameImage(res.Mask))
	if err != nil {
		return nil, err
	}
	return &ForegroundResult{
		RenderResult:    rendered,
		Cutoff:          res.Cutoff,
		ForegroundCount: res.ForegroundCount,
	}, nil
}

type targetOverlayArgs struct {
	Path      string `json:"path"`
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
}

// OverlayResult is a rendered overlay plus the detection it shows.
type OverlayResult struct {
	*imaging.RenderResult
	Detection *DetectionReport `json:"detection"`
}

func (s *Server) overlay(path, hex string, thickness int) (image.Image, *DetectionReport, error) {
	if hex == "" {
		hex = s.cfg.OverlayColor
	}
	if thickness == 0 {
		thickness = 2
	}
	c, err := imaging.ParseColor(hex)
	if err != nil {
		return nil, nil, err
	}

	frame, res, missErr, err := s.detect(path)
	if err != nil {
		return nil, nil, err
	}
	return imaging.Overlay(frame, res, c, thickness), newReport(path, frame, res, missErr), nil
}

func (s *Server) handleTargetOverlay(args json.RawMessage) (interface{}, error) {
	var a targetOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	img, report, err := s.overlay(a.Path, a.Color, a.Thickness)
	if err != nil {
		return nil, err
	}
	rendered, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{RenderResult: rendered, Detection: report}, nil
}

type targetCropArgs struct {
	Path   string  `json:"path"`
	Margin *int    `json:"margin"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleTargetCrop(args json.RawMessage) (interface{}, error) {
	var a targetCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	margin := 10
	if a.Margin != nil {
		margin = *a.Margin
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}

	frame, res, missErr, err := s.detect(a.Path)
	if err != nil {
		return nil, err
	}
	if missErr != nil {
		return nil, fmt.Errorf("no target to crop: %w", missErr)
	}

	cropped, err := imaging.CropTarget(imaging.FrameImage(frame), frame, res, margin, a.Scale)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNG(cropped)
}

type targetExportArgs struct {
	Path      string `json:"path"`
	Output    string `json:"output"`
	Kind      string `json:"kind"`
	Color     string `json:"color"`
	Thickness int    `json:"thickness"`
}

// ExportResult describes a written export.
type ExportResult struct {
	Output    string           `json:"output"`
	Kind      string           `json:"kind"`
	Detection *DetectionReport `json:"detection"`
}

func (s *Server) handleTargetExport(args json.RawMessage) (interface{}, error) {
	var a targetExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output path is required")
	}
	if a.Kind == "" {
		a.Kind = "mask"
	}

	var (
		img    image.Image
		report *DetectionReport
	)
	switch a.Kind {
	case "mask":
		frame, res, missErr, err := s.detect(a.Path)
		if err != nil {
			return nil, err
		}
		img = imaging.FrameImage(res.Mask)
		report = newReport(a.Path, frame, res, missErr)
	case "overlay":
		var err error
		img, report, err = s.overlay(a.Path, a.Color, a.Thickness)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown export kind: %s", a.Kind)
	}

	if err := imaging.Export(a.Output, img); err != nil {
		return nil, err
	}
	log.Printf("Exported %s of %s to %s", a.Kind, a.Path, a.Output)
	return &ExportResult{Output: a.Output, Kind: a.Kind, Detection: report}, nil
}
