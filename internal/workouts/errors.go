package workouts

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrPersistence     = errors.New("workouts persistence failed")
	ErrCorruptState    = errors.New("workouts state corrupt")
	ErrWorkoutNotFound = errors.New("workout not found")
)

// InvalidInputError is returned when user supplied workout data cannot be
// turned into a workout. No record is created when it occurs.
type InvalidInputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s [%s]: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// UserMessage is the text shown to the person who filled in the form.
func (e *InvalidInputError) UserMessage() string {
	switch e.Field {
	case "type":
		return "unknown workout type, choose running or cycling"
	case "coordinates":
		return "pick a valid location on the map"
	case "id":
		return "workout already recorded"
	case "pace", "speed":
		return fmt.Sprintf("distance and duration give an out of range %s", e.Field)
	default:
		return fmt.Sprintf("%s: enter a positive number", e.Field)
	}
}

type PersistenceError struct {
	Op  string // read | write | encode
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("workouts %s [%s]: %s", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

type CorruptStateError struct {
	Key    string
	Reason string
	Err    error
}

func (e *CorruptStateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt workouts state [%s]: %s: %s", e.Key, e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt workouts state [%s]: %s", e.Key, e.Reason)
}

func (e *CorruptStateError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCorruptState}
	}
	return []error{ErrCorruptState, e.Err}
}
