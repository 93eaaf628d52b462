// Package formatter provides response wrapping and serialization for route
// ranking responses.
//
// This package is organized into:
// - wrapper.go: Response wrapping logic (envelope, strategy filtering, error payloads)
// - json.go: JSON serialization
// - xml.go: XML serialization with proper escaping
//
// XML is written by hand for precise control over element order and naming.
package formatter
