// Package progress keeps aggregated engine counters: instances started and
// completed, tasks pending, delegate failures.
package progress
