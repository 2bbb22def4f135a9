package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool that reads a frame file.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the frame image (8-bit grayscale, color, or 16-bit depth PNG in millimeters)",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Threshold
		{
			Name:        "target_threshold",
			Description: "Compute the intensity cutoff separating the ring target from background, derived from the sensor and fence geometry. Omitted values use the configured rig.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"fence_height": map[string]interface{}{
						"type":        "number",
						"description": "Height of the ring center above the floor in millimeters",
					},
					"sensor_height": map[string]interface{}{
						"type":        "number",
						"description": "Height of the depth sensor above the floor in millimeters",
					},
					"fence_distance": map[string]interface{}{
						"type":        "number",
						"description": "Horizontal sensor-to-fence distance in millimeters",
					},
					"tolerance": map[string]interface{}{
						"type":        "number",
						"description": "Margin subtracted from the center distance in millimeters",
					},
					"max_depth": map[string]interface{}{
						"type":        "number",
						"description": "Depth mapped to intensity 255 in millimeters",
					},
				},
			},
		},

		// Detection
		{
			Name:        "target_detect",
			Description: "Locate the ring target in a frame and return its center (row, col) and radius in pixels. A frame without a target returns found=false and the reason.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "target_detect_batch",
			Description: "Locate the ring target in several frames concurrently. Results are returned in request order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"paths": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Absolute paths to the frame images",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum concurrent detections. Default: configured worker count",
					},
				},
				"required": []string{"paths"},
			},
		},

		// Visualization
		{
			Name:        "target_foreground",
			Description: "Return the thresholded working image (white foreground, black background) as base64-encoded PNG along with the foreground pixel count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "target_overlay",
			Description: "Draw the detected ring on the frame and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Circle color in hex format (e.g., '#FF0000'). Default: configured overlay color",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Circle stroke width in pixels. Default 2",
						"default":     2,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "target_crop",
			Description: "Crop the region around the detected ring and return it as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Extra pixels around the ring. Default 10",
						"default":     10,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "target_export",
			Description: "Write the thresholded mask or the detection overlay of a frame to a PNG file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Destination PNG path",
					},
					"kind": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"mask", "overlay"},
						"description": "What to export. Default: mask",
						"default":     "mask",
					},
					"color": map[string]interface{}{
						"type":        "string",
						"description": "Overlay circle color in hex format. Default: configured overlay color",
					},
					"thickness": map[string]interface{}{
						"type":        "integer",
						"description": "Overlay circle stroke width in pixels. Default 2",
						"default":     2,
					},
				},
				"required": []string{"path", "output"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return result(req.ID, map[string]interface{}{
		"tools": GetToolDefinitions(),
	})
}
