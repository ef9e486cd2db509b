// Package imaging provides the image I/O and inspection helpers around the
// marker detector: loading and caching files, decoding uploads, encoding PNG
// output, sampling pixel colors, and cropping regions for visual inspection.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Pixel Fidelity
//
// The marker detector compares colors exactly, so nothing in this package
// alters pixel values on the way in or out. Decoding does not apply EXIF
// auto-orientation, PNG encoding is lossless, and crops are magnified with
// nearest-neighbor sampling.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Size Limits
//
// CheckSize rejects images whose pixel count exceeds a configured maximum.
// Transports call it after decoding and before running the detector, which
// bounds the time and memory a single request can take.
package imaging
