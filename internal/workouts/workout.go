package workouts

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind can be one of:
//   - running
//   - cycling
type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindRunning, KindCycling:
		return true
	default:
		return false
	}
}

func ParseKind(s string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", &InvalidInputError{Field: "type", Value: s, Reason: "unknown workout type"}
	}
	return kind, nil
}

// Coordinates is a [latitude, longitude] pair, serialized as a 2 element array.
type Coordinates [2]float64

func (c Coordinates) Lat() float64 {
	return c[0]
}

func (c Coordinates) Lng() float64 {
	return c[1]
}

func (c Coordinates) Validate() error {
	lat, lng := c.Lat(), c.Lng()
	switch {
	case !isFinite(lat) || !isFinite(lng):
		return &InvalidInputError{Field: "coordinates", Value: c.String(), Reason: "not a finite number"}
	case lat < -90 || lat > 90:
		return &InvalidInputError{Field: "coordinates", Value: c.String(), Reason: "latitude out of range"}
	case lng < -180 || lng > 180:
		return &InvalidInputError{Field: "coordinates", Value: c.String(), Reason: "longitude out of range"}
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%g,%g", c.Lat(), c.Lng())
}

type Running struct {
	Cadence float64 // steps per minute
	Pace    float64 // minutes per km
}

type Cycling struct {
	ElevationGain float64 // meters
	Speed         float64 // km per hour
}

// Workout is a single recorded session. Exactly one of Running and Cycling is
// set, matching Kind. Workouts are never mutated after creation; Label and the
// derived metric are computed once by the Factory.
type Workout struct {
	ID          string
	CreatedAt   time.Time
	Coordinates Coordinates
	Distance    float64 // km
	Duration    float64 // minutes
	Kind        Kind
	Label       string

	Running *Running
	Cycling *Cycling
}

// clone copies w together with its payload, so the copy shares no memory with w.
func (w Workout) clone() Workout {
	if w.Running != nil {
		running := *w.Running
		w.Running = &running
	}
	if w.Cycling != nil {
		cycling := *w.Cycling
		w.Cycling = &cycling
	}
	return w
}

// Extra returns the kind specific user input: cadence or elevation gain.
func (w Workout) Extra() float64 {
	switch w.Kind {
	case KindRunning:
		return w.Running.Cadence
	case KindCycling:
		return w.Cycling.ElevationGain
	default:
		return 0
	}
}

// Metric returns the derived metric: pace for running, speed for cycling.
func (w Workout) Metric() float64 {
	switch w.Kind {
	case KindRunning:
		return w.Running.Pace
	case KindCycling:
		return w.Cycling.Speed
	default:
		return 0
	}
}

// Validate checks a workout which did not come out of the Factory, i.e. one
// restored from persisted state.
func (w Workout) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	if w.CreatedAt.IsZero() {
		return fmt.Errorf("%w: workout %s: missing createdAt", ErrInvalidInput, w.ID)
	}
	if w.Label == "" {
		return fmt.Errorf("%w: workout %s: missing label", ErrInvalidInput, w.ID)
	}
	if err := w.Coordinates.Validate(); err != nil {
		return err
	}
	if err := checkPositive("distance", w.Distance); err != nil {
		return err
	}
	if err := checkPositive("duration", w.Duration); err != nil {
		return err
	}

	switch w.Kind {
	case KindRunning:
		if w.Running == nil || w.Cycling != nil {
			return fmt.Errorf("%w: workout %s: running payload mismatch", ErrInvalidInput, w.ID)
		}
		if err := checkPositive("cadence", w.Running.Cadence); err != nil {
			return err
		}
		return checkPositive("pace", w.Running.Pace)
	case KindCycling:
		if w.Cycling == nil || w.Running != nil {
			return fmt.Errorf("%w: workout %s: cycling payload mismatch", ErrInvalidInput, w.ID)
		}
		if err := checkPositive("elevationGain", w.Cycling.ElevationGain); err != nil {
			return err
		}
		return checkPositive("speed", w.Cycling.Speed)
	default:
		return &InvalidInputError{Field: "type", Value: w.Kind.String(), Reason: "unknown workout type"}
	}
}

// record is the persisted (and API) shape of a workout: one flat object with
// the kind specific fields present only for their kind.
type record struct {
	ID            string      `json:"id"`
	CreatedAt     time.Time   `json:"createdAt"`
	Coordinates   Coordinates `json:"coordinates"`
	Distance      float64     `json:"distance"`
	Duration      float64     `json:"duration"`
	Kind          Kind        `json:"kind"`
	Label         string      `json:"label"`
	Cadence       *float64    `json:"cadence,omitempty"`
	Pace          *float64    `json:"pace,omitempty"`
	ElevationGain *float64    `json:"elevationGain,omitempty"`
	Speed         *float64    `json:"speed,omitempty"`
}

func (w Workout) MarshalJSON() ([]byte, error) {
	r := record{
		ID:          w.ID,
		CreatedAt:   w.CreatedAt,
		Coordinates: w.Coordinates,
		Distance:    w.Distance,
		Duration:    w.Duration,
		Kind:        w.Kind,
		Label:       w.Label,
	}

	switch w.Kind {
	case KindRunning:
		if w.Running == nil {
			return nil, fmt.Errorf("marshal workout %s: running payload missing", w.ID)
		}
		r.Cadence = &w.Running.Cadence
		r.Pace = &w.Running.Pace
	case KindCycling:
		if w.Cycling == nil {
			return nil, fmt.Errorf("marshal workout %s: cycling payload missing", w.ID)
		}
		r.ElevationGain = &w.Cycling.ElevationGain
		r.Speed = &w.Cycling.Speed
	default:
		return nil, fmt.Errorf("marshal workout %s: unknown kind [%s]", w.ID, w.Kind)
	}

	return json.Marshal(r)
}

// UnmarshalJSON restores the variant from the kind discriminator. Derived
// fields are taken as stored, not recomputed.
func (w *Workout) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}

	restored := Workout{
		ID:          r.ID,
		CreatedAt:   r.CreatedAt,
		Coordinates: r.Coordinates,
		Distance:    r.Distance,
		Duration:    r.Duration,
		Kind:        r.Kind,
		Label:       r.Label,
	}

	switch r.Kind {
	case KindRunning:
		if r.Cadence == nil || r.Pace == nil {
			return fmt.Errorf("workout %s: running record without cadence/pace", r.ID)
		}
		restored.Running = &Running{Cadence: *r.Cadence, Pace: *r.Pace}
	case KindCycling:
		if r.ElevationGain == nil || r.Speed == nil {
			return fmt.Errorf("workout %s: cycling record without elevationGain/speed", r.ID)
		}
		restored.Cycling = &Cycling{ElevationGain: *r.ElevationGain, Speed: *r.Speed}
	default:
		return fmt.Errorf("workout %s: unknown kind [%s]", r.ID, r.Kind)
	}

	*w = restored
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func checkPositive(field string, value float64) error {
	if !isFinite(value) {
		return &InvalidInputError{Field: field, Value: fmt.Sprint(value), Reason: "not a finite number"}
	}
	if value <= 0 {
		return &InvalidInputError{Field: field, Value: fmt.Sprint(value), Reason: "must be positive"}
	}
	return nil
}
