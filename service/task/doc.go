// Package task defines the queue of pending user tasks. Tasks are claimed by
// candidate group and removed exactly once when completed.
package task
