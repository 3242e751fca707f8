// Package engine drives process instances through their definition. Every
// call runs the instance forward until it reaches a user task or an end node,
// staging ledger, task and instance changes and committing them only when the
// run succeeds.
package engine
