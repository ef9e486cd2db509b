// Package httpapi serves marker normalization over HTTP.
//
// # Endpoints
//
//	POST /rotate   multipart/form-data, image in the "file" field
//	GET  /healthz  liveness probe, always "ok"
//
// # Status Codes
//
// POST /rotate answers:
//   - 200 OK with the re-oriented image as image/png
//   - 204 No Content when the file is missing or empty, or when the image has no marker
//   - 400 Bad Request when the part is not image/png, cannot be decoded, or has
//     more than one marker
//   - 413 Request Entity Too Large when the upload or the decoded image exceeds
//     the configured limits
//
// Error bodies are short plain-text reasons; 204 responses carry no body.
package httpapi
