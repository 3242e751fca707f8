// Package history defines the activity ledger: one entry per visited node with
// enter and exit timestamps, the raw material for duration reports.
package history
