// Package tracing wraps OpenTelemetry so engine code can open and close spans
// without importing the SDK.
package tracing
