// Package server implements the MCP (Model Context Protocol) server for ring
// target detection.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline through the MCP protocol, so that MCP-compatible clients can locate
// the ring target in captured depth frames and inspect the intermediate images.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Geometry:
//   - target_threshold: Intensity cutoff for a sensor and fence geometry
//
// Detection:
//   - target_detect: Center and radius of the ring in one frame
//   - target_detect_batch: The same for many frames, run concurrently
//
// Visualization:
//   - target_foreground: Thresholded working image
//   - target_overlay: Frame with the detected ring drawn on it
//   - target_crop: Region around the detected ring
//   - target_export: Mask or overlay written to a PNG file
//
// A frame in which no target is found is not a tool failure. target_detect
// reports it with found=false and a reason; only target_crop, which needs a
// target to crop, turns it into an error.
//
// # Frame Caching
//
// Loaded frames are cached by path and maximum depth, so repeated calls on the
// same capture decode it once. The cache persists for the lifetime of the
// server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.LoadFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
