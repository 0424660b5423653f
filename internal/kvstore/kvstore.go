// Package kvstore holds the durable key-value backends the workouts snapshot
// is written to. Every backend stores one opaque blob per key and overwrites
// it on each Set.
package kvstore

import "errors"

var ErrNotFound = errors.New("key not found")
