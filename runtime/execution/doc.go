// Package execution holds the runtime records produced while executing a
// definition: process instances, pending user tasks and ledger activities.
package execution
