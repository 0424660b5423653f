package workouts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/workoutmap/internal/telemetry/tracing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Input is the raw form submission: numbers still as the user typed them.
type Input struct {
	Kind        string
	Coordinates Coordinates
	Distance    string
	Duration    string
	// Extra is cadence for running, elevation gain for cycling.
	Extra string
}

type Factory struct {
	now      func() time.Time
	newID    func() string
	locale   Locale
	location *time.Location
}

type FactoryOption func(f *Factory)

func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		f.now = now
	}
}

func WithIDGenerator(newID func() string) FactoryOption {
	return func(f *Factory) {
		f.newID = newID
	}
}

func WithLocale(locale Locale) FactoryOption {
	return func(f *Factory) {
		f.locale = locale
	}
}

// WithLabelLocation sets the time zone the label date is rendered in.
func WithLabelLocation(loc *time.Location) FactoryOption {
	return func(f *Factory) {
		f.location = loc
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		now:      time.Now,
		newID:    uuid.NewString,
		locale:   LocaleEnUS,
		location: time.UTC,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Factory) Locale() Locale {
	return f.locale
}

// Create validates the raw input and builds the workout. Every numeric field
// must parse to a finite number greater than zero, for both kinds.
func (f *Factory) Create(ctx context.Context, in Input) (_ Workout, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "factory.workouts.create")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("kind", in.Kind))

	kind, err := ParseKind(in.Kind)
	if err != nil {
		return Workout{}, err
	}

	distance, err := parsePositive("distance", in.Distance)
	if err != nil {
		return Workout{}, err
	}
	duration, err := parsePositive("duration", in.Duration)
	if err != nil {
		return Workout{}, err
	}
	extra, err := parsePositive(ExtraField(kind), in.Extra)
	if err != nil {
		return Workout{}, err
	}

	return f.CreateFromValues(kind, in.Coordinates, distance, duration, extra)
}

// CreateFromValues is Create for already numeric input.
func (f *Factory) CreateFromValues(
	kind Kind,
	coords Coordinates,
	distance, duration, extra float64,
) (Workout, error) {
	if !kind.IsValid() {
		return Workout{}, &InvalidInputError{Field: "type", Value: kind.String(), Reason: "unknown workout type"}
	}
	if err := coords.Validate(); err != nil {
		return Workout{}, err
	}
	if err := checkPositive("distance", distance); err != nil {
		return Workout{}, err
	}
	if err := checkPositive("duration", duration); err != nil {
		return Workout{}, err
	}
	if err := checkPositive(ExtraField(kind), extra); err != nil {
		return Workout{}, err
	}

	w := Workout{
		ID:          f.newID(),
		CreatedAt:   f.now().UTC().Truncate(time.Millisecond),
		Coordinates: coords,
		Distance:    distance,
		Duration:    duration,
		Kind:        kind,
	}

	switch kind {
	case KindRunning:
		w.Running = &Running{
			Cadence: extra,
			Pace:    duration / distance,
		}
	case KindCycling:
		w.Cycling = &Cycling{
			ElevationGain: extra,
			Speed:         distance / (duration / 60),
		}
	}

	// finite positive inputs can still over or underflow the ratio
	if err := checkPositive(MetricField(kind), w.Metric()); err != nil {
		return Workout{}, err
	}

	w.Label = f.locale.Label(kind, w.CreatedAt.In(f.location))

	return w, nil
}

// ExtraField names the kind specific input field.
func ExtraField(kind Kind) string {
	if kind == KindCycling {
		return "elevationGain"
	}
	return "cadence"
}

// MetricField names the derived metric of kind.
func MetricField(kind Kind) string {
	if kind == KindCycling {
		return "speed"
	}
	return "pace"
}

// ParseCoordinates parses a map click position given as text.
func ParseCoordinates(lat, lng string) (Coordinates, error) {
	latVal, latErr := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	lngVal, lngErr := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err := errors.Join(latErr, lngErr); err != nil {
		return Coordinates{}, &InvalidInputError{
			Field:  "coordinates",
			Value:  fmt.Sprintf("%s,%s", lat, lng),
			Reason: "not a number",
		}
	}

	coords := Coordinates{latVal, lngVal}
	if err := coords.Validate(); err != nil {
		return Coordinates{}, err
	}
	return coords, nil
}

func parsePositive(field, raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, &InvalidInputError{Field: field, Value: raw, Reason: "empty"}
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &InvalidInputError{Field: field, Value: raw, Reason: "not a number"}
	}

	if err := checkPositive(field, value); err != nil {
		return 0, err
	}
	return value, nil
}
