package workouts_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/2beens/workoutmap/internal/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkout_MarshalJSON(t *testing.T) {
	f := newTestFactory()
	running, err := f.CreateFromValues(workouts.KindRunning, workouts.Coordinates{10, 20}, 5, 25, 170)
	require.NoError(t, err)
	cycling, err := f.CreateFromValues(workouts.KindCycling, workouts.Coordinates{11, 21}, 15, 45, 200)
	require.NoError(t, err)

	runningJson, err := json.Marshal(running)
	require.NoError(t, err)
	var runningRecord map[string]any
	require.NoError(t, json.Unmarshal(runningJson, &runningRecord))

	assert.Equal(t, "w-1", runningRecord["id"])
	assert.Equal(t, "running", runningRecord["kind"])
	assert.Equal(t, "2026-10-19T10:30:15.123Z", runningRecord["createdAt"])
	assert.Equal(t, []any{10.0, 20.0}, runningRecord["coordinates"])
	assert.Equal(t, 170.0, runningRecord["cadence"])
	assert.Equal(t, 5.0, runningRecord["pace"])
	assert.NotContains(t, runningRecord, "elevationGain")
	assert.NotContains(t, runningRecord, "speed")

	cyclingJson, err := json.Marshal(cycling)
	require.NoError(t, err)
	var cyclingRecord map[string]any
	require.NoError(t, json.Unmarshal(cyclingJson, &cyclingRecord))

	assert.Equal(t, "cycling", cyclingRecord["kind"])
	assert.Equal(t, 200.0, cyclingRecord["elevationGain"])
	assert.Equal(t, 20.0, cyclingRecord["speed"])
	assert.NotContains(t, cyclingRecord, "cadence")
	assert.NotContains(t, cyclingRecord, "pace")
}

func TestWorkout_MarshalJSON_BrokenVariant(t *testing.T) {
	_, err := json.Marshal(workouts.Workout{ID: "x", Kind: workouts.KindRunning})
	assert.Error(t, err)

	_, err = json.Marshal(workouts.Workout{ID: "x", Kind: "rowing"})
	assert.Error(t, err)
}

func TestWorkout_UnmarshalJSON(t *testing.T) {
	var w workouts.Workout
	err := json.Unmarshal([]byte(`{
		"id": "a1",
		"createdAt": "2026-10-19T10:30:15.123Z",
		"coordinates": [10, 20],
		"distance": 5,
		"duration": 25,
		"kind": "running",
		"label": "Running 10/19/2026",
		"cadence": 170,
		"pace": 4.9
	}`), &w)
	require.NoError(t, err)

	assert.Equal(t, "a1", w.ID)
	assert.Equal(t, time.Date(2026, time.October, 19, 10, 30, 15, 123000000, time.UTC), w.CreatedAt.UTC())
	require.NotNil(t, w.Running)
	// taken as stored, not recomputed from distance/duration
	assert.Equal(t, 4.9, w.Running.Pace)
	assert.NoError(t, w.Validate())

	testCases := []struct {
		name string
		raw  string
	}{
		{
			name: "RunningWithoutCadence",
			raw:  `{"id":"a1","kind":"running","pace":5}`,
		},
		{
			name: "CyclingWithoutSpeed",
			raw:  `{"id":"a1","kind":"cycling","elevationGain":100}`,
		},
		{
			name: "UnknownKind",
			raw:  `{"id":"a1","kind":"swimming"}`,
		},
		{
			name: "WrongType",
			raw:  `{"id":1}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var w workouts.Workout
			assert.Error(t, json.Unmarshal([]byte(tc.raw), &w))
		})
	}
}

func TestWorkout_Validate(t *testing.T) {
	valid := func() workouts.Workout {
		w, err := newTestFactory().CreateFromValues(workouts.KindRunning, workouts.Coordinates{10, 20}, 5, 25, 170)
		require.NoError(t, err)
		return w
	}

	require.NoError(t, valid().Validate())

	testCases := []struct {
		name   string
		mutate func(w *workouts.Workout)
	}{
		{name: "EmptyID", mutate: func(w *workouts.Workout) { w.ID = "" }},
		{name: "ZeroCreatedAt", mutate: func(w *workouts.Workout) { w.CreatedAt = time.Time{} }},
		{name: "EmptyLabel", mutate: func(w *workouts.Workout) { w.Label = "" }},
		{name: "BadCoordinates", mutate: func(w *workouts.Workout) { w.Coordinates = workouts.Coordinates{10, 200} }},
		{name: "NegativeDistance", mutate: func(w *workouts.Workout) { w.Distance = -5 }},
		{name: "ZeroDuration", mutate: func(w *workouts.Workout) { w.Duration = 0 }},
		{name: "ZeroCadence", mutate: func(w *workouts.Workout) { w.Running.Cadence = 0 }},
		{name: "MissingPayload", mutate: func(w *workouts.Workout) { w.Running = nil }},
		{name: "BothPayloads", mutate: func(w *workouts.Workout) { w.Cycling = &workouts.Cycling{ElevationGain: 1, Speed: 1} }},
		{name: "WrongKind", mutate: func(w *workouts.Workout) { w.Kind = "cycling" }},
		{name: "UnknownKind", mutate: func(w *workouts.Workout) { w.Kind = "yoga" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := valid()
			tc.mutate(&w)
			err := w.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, workouts.ErrInvalidInput)
		})
	}
}

func TestParseKind(t *testing.T) {
	kind, err := workouts.ParseKind("RUNNING")
	require.NoError(t, err)
	assert.Equal(t, workouts.KindRunning, kind)
	assert.True(t, kind.IsValid())

	_, err = workouts.ParseKind("")
	assert.ErrorIs(t, err, workouts.ErrInvalidInput)
	assert.False(t, workouts.Kind("walking").IsValid())
}
