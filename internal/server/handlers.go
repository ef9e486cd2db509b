package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/ironsheep/stripe-orient/internal/detection"
	"github.com/ironsheep/stripe-orient/internal/imaging"
	"github.com/ironsheep/stripe-orient/internal/report"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_find_markers").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn().Err(err).Str("tool", params.Name).Msg("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(args)

	// Marker Operations
	case "image_find_markers":
		return s.handleImageFindMarkers(ctx, args)
	case "image_normalize_orientation":
		return s.handleImageNormalizeOrientation(ctx, args)
	case "image_crop_marker":
		return s.handleImageCropMarker(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadImage returns the cached image at path, rejecting images above the
// configured pixel limit.
func (s *Server) loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}
	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	if err := imaging.CheckSize(img, s.cfg.Limits.MaxPixels); err != nil {
		return nil, err
	}
	return img, nil
}

// findMarkers loads path and scans it.
func (s *Server) findMarkers(ctx context.Context, path string) (image.Image, []detection.Marker, error) {
	img, err := s.loadImage(path)
	if err != nil {
		return nil, nil, err
	}
	markers, err := detection.FindMarkers(ctx, img, s.cfg.Scan.Parallel)
	if err != nil {
		return nil, nil, err
	}
	return img, markers, nil
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.loadImage(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.loadImage(a.Path); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// SampleColorResult is a pixel color plus the marker color class it falls in.
type SampleColorResult struct {
	imaging.ColorResult
	Code string `json:"code"`
}

func (s *Server) handleImageSampleColor(args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.loadImage(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := imaging.SampleColor(img, a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return &SampleColorResult{
		ColorResult: *c,
		Code:        detection.CodeOf(img.At(a.X, a.Y)).String(),
	}, nil
}

// === Marker Operation Handlers ===

type imageFindMarkersArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageFindMarkers(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFindMarkersArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, markers, err := s.findMarkers(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	return report.NewScan(a.Path, img.Bounds(), markers), nil
}

// NormalizeResult describes a re-oriented image. Image is set unless the
// result was written to OutputPath.
type NormalizeResult struct {
	Marker     report.Marker         `json:"marker"`
	Rotation   int                   `json:"rotation"`
	Width      int                   `json:"width"`
	Height     int                   `json:"height"`
	OutputPath string                `json:"output_path,omitempty"`
	Image      *imaging.EncodedImage `json:"image,omitempty"`
}

type imageNormalizeArgs struct {
	Path       string `json:"path"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageNormalizeOrientation(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageNormalizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, markers, err := s.findMarkers(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	m, err := detection.Classify(markers)
	if err != nil {
		return nil, err
	}

	out := detection.Reorient(img, m)
	result := &NormalizeResult{
		Marker:   report.FromMarker(m),
		Rotation: m.Rotation(),
		Width:    out.Bounds().Dx(),
		Height:   out.Bounds().Dy(),
	}

	if a.OutputPath != "" {
		if err := imaging.Save(out, a.OutputPath); err != nil {
			return nil, err
		}
		s.cache.Evict(a.OutputPath)
		result.OutputPath = a.OutputPath
	} else {
		enc, err := imaging.EncodeBase64PNG(out)
		if err != nil {
			return nil, err
		}
		result.Image = enc
	}

	s.logger.Info().
		Str("path", a.Path).
		Stringer("marker", m).
		Int("rotation", m.Rotation()).
		Msg("image normalized")
	return result, nil
}

// CropMarkerResult is a magnified view of the single marker in an image.
type CropMarkerResult struct {
	Marker report.Marker         `json:"marker"`
	Image  *imaging.EncodedImage `json:"image"`
}

type imageCropMarkerArgs struct {
	Path   string  `json:"path"`
	Margin *int    `json:"margin"`
	Scale  float64 `json:"scale"`
}

const (
	defaultCropMargin = 4
	defaultCropScale  = 8.0
)

func (s *Server) handleImageCropMarker(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageCropMarkerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	margin := defaultCropMargin
	if a.Margin != nil {
		margin = *a.Margin
	}
	if a.Scale == 0 {
		a.Scale = defaultCropScale
	}

	img, markers, err := s.findMarkers(ctx, a.Path)
	if err != nil {
		return nil, err
	}
	m, err := detection.Classify(markers)
	if err != nil {
		return nil, err
	}

	// Marker positions are grid coordinates; shift them into image space.
	region := m.Bounds().Add(img.Bounds().Min)
	enc, err := imaging.CropAround(img, region, margin, a.Scale, s.cfg.Limits.MaxPixels)
	if err != nil {
		return nil, err
	}
	return &CropMarkerResult{
		Marker: report.FromMarker(m),
		Image:  enc,
	}, nil
}
