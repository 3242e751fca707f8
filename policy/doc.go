// Package policy carries the acting user in a context so the engine can refuse
// task completions by actors outside a task's candidate group.
package policy
