package server

import "github.com/ironsheep/stripe-orient/internal/imaging"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, color depth and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Color Operations
		{
			Name:        "image_sample_color",
			Description: "Get the exact color value at a specific pixel coordinate, and whether the marker detector reads it as white, red or other.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based, from left)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based, from top)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Marker Operations
		{
			Name:        "image_find_markers",
			Description: "Find every 6-pixel red/white stripe marker (3 pure white + 3 pure red, either order) in rows and columns. Returns each marker and the outcome: no_pattern, single or ambiguous.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_normalize_orientation",
			Description: "Rotate an image so its single stripe marker runs vertically with white at the top. Fails when the image has no marker or more than one. Returns the image as base64 PNG, or writes it to output_path.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Optional file to write the result to; format follows the extension. When set, no base64 image is returned.",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_crop_marker",
			Description: "Crop the area around the image's single stripe marker and magnify it with nearest-neighbor scaling for visual inspection. Returns base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"margin": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context on each side of the marker. Default 4",
						"default":     defaultCropMargin,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description":      "Magnification factor. Default 8.0",
						"default":          defaultCropScale,
						"exclusiveMinimum": 0,
						"maximum":          imaging.MaxScale,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
