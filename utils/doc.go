// Package utils provides small shared helpers for the route-ranking engine.
//
// It contains:
//   - Great-circle distance between coordinates
//   - Human-readable minute and fare formatting
//   - Timestamp formatting for response envelopes
package utils
