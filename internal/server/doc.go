// Package server implements the MCP (Model Context Protocol) server for
// stripe marker inspection and image re-orientation.
//
// This package provides a JSON-RPC 2.0 server that exposes the marker
// detector through the MCP protocol, so an MCP client can inspect an image,
// see which markers the detector finds, and produce the upright image.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Color Operations:
//   - image_sample_color: Get color at pixel and its marker color class
//
// Marker Operations:
//   - image_find_markers: List every marker and the outcome (no_pattern, single, ambiguous)
//   - image_normalize_orientation: Rotate the image upright from its single marker
//   - image_crop_marker: Magnified crop around the single marker
//
// # Image Caching
//
// The server maintains an in-memory cache of loaded images. Images are cached
// by path and reused across multiple tool calls, avoiding redundant disk I/O.
// Writing a result over a cached path evicts that entry.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, e.g. "no marker pattern found"
//
// # Usage
//
//	srv := server.New(cfg, logger, version)
//	if err := srv.Run(ctx); err != nil {
//	    logger.Fatal().Err(err).Msg("server error")
//	}
package server
