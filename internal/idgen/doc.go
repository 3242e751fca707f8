// Package idgen wraps identifier generation so that it can be stubbed in
// tests. Task identifiers are opaque UUID strings while process instance
// identifiers come from a monotonic Sequence.
package idgen
