package httpapi

import (
	"bytes"
	"context"
	"errors"
	"image"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/stripe-orient/internal/config"
	"github.com/ironsheep/stripe-orient/internal/detection"
	"github.com/ironsheep/stripe-orient/internal/imaging"
)

// Handler routes the HTTP endpoints.
type Handler struct {
	cfg    *config.Config
	logger zerolog.Logger
	mux    *http.ServeMux
}

// New creates a Handler using the HTTP, limits and scan settings from cfg.
func New(cfg *config.Config, logger zerolog.Logger) *Handler {
	h := &Handler{
		cfg:    cfg,
		logger: logger.With().Str("component", "httpapi").Logger(),
		mux:    http.NewServeMux(),
	}
	h.mux.HandleFunc("POST /rotate", h.handleRotate)
	h.mux.HandleFunc("GET /healthz", h.handleHealthz)
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleRotate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.HTTP.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.fail(w, http.StatusRequestEntityTooLarge, "upload too large", err)
		case errors.Is(err, http.ErrMissingFile):
			h.fail(w, http.StatusNoContent, "file is empty or missing", err)
		default:
			h.fail(w, http.StatusBadRequest, "malformed multipart request", err)
		}
		return
	}
	defer file.Close()

	if header.Size == 0 {
		h.fail(w, http.StatusNoContent, "file is empty or missing", nil)
		return
	}

	if mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type")); err != nil || mediaType != "image/png" {
		h.fail(w, http.StatusBadRequest, "file must be image/png", err)
		return
	}

	img, err := imaging.Decode(file)
	if err != nil {
		h.fail(w, http.StatusBadRequest, "file is not a readable image", err)
		return
	}

	if err := imaging.CheckSize(img, h.cfg.Limits.MaxPixels); err != nil {
		h.fail(w, http.StatusRequestEntityTooLarge, "image too large", err)
		return
	}

	out, m, err := h.normalize(r.Context(), img)
	if err != nil {
		status, reason := pipelineStatus(err)
		h.fail(w, status, reason, err)
		return
	}

	var buf bytes.Buffer
	if err := imaging.EncodePNG(&buf, out); err != nil {
		h.fail(w, http.StatusInternalServerError, "failed to encode image", err)
		return
	}

	h.logger.Info().
		Str("file", header.Filename).
		Stringer("marker", m).
		Int("rotation", m.Rotation()).
		Dur("elapsed", time.Since(start)).
		Msg("image normalized")

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) normalize(ctx context.Context, img image.Image) (image.Image, detection.Marker, error) {
	if h.cfg.Scan.Parallel {
		return detection.NormalizeContext(ctx, img)
	}
	return detection.NormalizeSequential(ctx, img)
}

// pipelineStatus maps a normalization error to its response status.
func pipelineStatus(err error) (int, string) {
	switch {
	case errors.Is(err, detection.ErrNoPattern):
		return http.StatusNoContent, "image has no marker"
	case errors.Is(err, detection.ErrAmbiguousPattern):
		return http.StatusBadRequest, "image has conflicting markers"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "request cancelled"
	default:
		return http.StatusInternalServerError, "failed to normalize image"
	}
}

// fail writes status with reason as the body. 204 responses get no body.
func (h *Handler) fail(w http.ResponseWriter, status int, reason string, err error) {
	h.logger.Debug().Err(err).Int("status", status).Msg(reason)

	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	http.Error(w, reason, status)
}
