package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/2beens/workoutmap/internal/kvstore"
	"github.com/2beens/workoutmap/internal/telemetry/metrics"
	"github.com/2beens/workoutmap/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultStorageKey = "workouts"

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=workouts_test

type blobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store keeps the ordered list of workouts and mirrors it to a blob store as
// one full snapshot under a single key. Every Add rewrites the whole snapshot.
type Store struct {
	mu       sync.Mutex
	blobs    blobStore
	key      string
	schema   *snapshotValidator
	metrics  *metrics.Manager
	workouts []Workout

	// set while the last LoadAll could not read the blob; memory may then be
	// missing what is persisted, so Add reloads before writing a snapshot
	stale bool
}

func NewStore(blobs blobStore, key string, metricsManager *metrics.Manager) (*Store, error) {
	if key == "" {
		key = DefaultStorageKey
	}

	schema, err := newSnapshotValidator()
	if err != nil {
		return nil, err
	}

	return &Store{
		blobs:    blobs,
		key:      key,
		schema:   schema,
		metrics:  metricsManager,
		workouts: []Workout{},
	}, nil
}

// Add appends w and persists the full sequence. If persisting fails, the
// in-memory sequence is left as it was. After a failed read Add first reloads
// the persisted sequence and fails with a *PersistenceError if it still cannot.
func (s *Store) Add(ctx context.Context, w Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.add")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("id", w.ID), attribute.String("kind", w.Kind.String()))

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stale {
		log.Debugf("reloading workouts under [%s] before add", s.key)
		if err := s.load(ctx); err != nil && !errors.Is(err, ErrCorruptState) {
			return err
		}
	}

	if s.indexOf(w.ID) >= 0 {
		return &InvalidInputError{Field: "id", Value: w.ID, Reason: "duplicate id"}
	}
	// nothing the loader would reject gets written
	if err := w.Validate(); err != nil {
		return err
	}

	next := append(slices.Clip(s.workouts), w.clone())
	if err := s.persist(ctx, next); err != nil {
		return err
	}

	s.workouts = next
	s.metrics.CounterWorkoutsAdded.WithLabelValues(w.Kind.String()).Inc()
	s.metrics.GaugeWorkouts.Set(float64(len(s.workouts)))

	return nil
}

func (s *Store) persist(ctx context.Context, workouts []Workout) error {
	blob, err := json.Marshal(workouts)
	if err != nil {
		s.metrics.CounterPersistFailures.WithLabelValues("encode").Inc()
		return &PersistenceError{Op: "encode", Key: s.key, Err: err}
	}

	if err := s.blobs.Set(ctx, s.key, blob); err != nil {
		s.metrics.CounterPersistFailures.WithLabelValues("write").Inc()
		return &PersistenceError{Op: "write", Key: s.key, Err: err}
	}

	s.metrics.HistogramSnapshotBytes.Observe(float64(len(blob)))
	return nil
}

// LoadAll replaces the in-memory sequence with the persisted one and returns it.
// A missing snapshot yields an empty sequence. A corrupt snapshot yields an
// empty sequence plus a *CorruptStateError. A failed read yields an empty
// sequence plus a *PersistenceError, leaves memory untouched and makes the
// next Add reload first.
func (s *Store) LoadAll(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "store.workouts.loadall")
	defer tracing.EndSpan(span, &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return []Workout{}, err
	}

	span.SetAttributes(attribute.Int("count", len(s.workouts)))
	return cloneAll(s.workouts), nil
}

// load must be called with mu held.
func (s *Store) load(ctx context.Context) error {
	raw, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			log.Debugf("no persisted workouts under [%s]", s.key)
			s.replace(nil)
			return nil
		}
		s.stale = true
		s.metrics.CounterPersistFailures.WithLabelValues("read").Inc()
		return &PersistenceError{Op: "read", Key: s.key, Err: err}
	}

	restored, err := s.decode(raw)
	if err != nil {
		s.metrics.CounterCorruptLoads.Inc()
		log.Warnf("discarding persisted workouts: %s", err)
		s.replace(nil)
		return err
	}

	s.replace(restored)
	return nil
}

func (s *Store) decode(raw []byte) ([]Workout, error) {
	if reason, err := s.schema.validate(raw); reason != "" {
		return nil, &CorruptStateError{Key: s.key, Reason: reason, Err: err}
	}

	var restored []Workout
	if err := json.Unmarshal(raw, &restored); err != nil {
		return nil, &CorruptStateError{Key: s.key, Reason: "decode", Err: err}
	}

	seen := make(map[string]bool, len(restored))
	for _, w := range restored {
		if err := w.Validate(); err != nil {
			return nil, &CorruptStateError{Key: s.key, Reason: "invalid workout", Err: err}
		}
		if seen[w.ID] {
			return nil, &CorruptStateError{Key: s.key, Reason: "duplicate id " + w.ID}
		}
		seen[w.ID] = true
	}

	return restored, nil
}

func (s *Store) replace(workouts []Workout) {
	if workouts == nil {
		workouts = []Workout{}
	}
	s.workouts = workouts
	s.stale = false
	s.metrics.GaugeWorkouts.Set(float64(len(workouts)))
}

func (s *Store) FindByID(ctx context.Context, id string) (_ Workout, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "store.workouts.findbyid")
	defer tracing.EndSpan(span, &err)
	span.SetAttributes(attribute.String("id", id))

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.workouts[i].clone(), nil
	}
	return Workout{}, ErrWorkoutNotFound
}

// All returns a copy of the in-memory sequence, in insertion order.
func (s *Store) All() []Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.workouts)
}

func cloneAll(workouts []Workout) []Workout {
	cloned := make([]Workout, len(workouts))
	for i, w := range workouts {
		cloned[i] = w.clone()
	}
	return cloned
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.workouts, func(w Workout) bool {
		return w.ID == id
	})
}
