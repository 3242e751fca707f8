// Package state defines process variables: a closed Value variant over
// string, integer and boolean, and the Bag that holds an instance's
// variables with type-checked accessors.
package state
