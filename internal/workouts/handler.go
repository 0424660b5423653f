package workouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/2beens/workoutmap/internal/middleware"
	"github.com/2beens/workoutmap/internal/telemetry/metrics"
	"github.com/2beens/workoutmap/internal/telemetry/tracing"
	"github.com/2beens/workoutmap/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutFactory interface {
	Create(ctx context.Context, in Input) (Workout, error)
}

type workoutStore interface {
	Add(ctx context.Context, w Workout) error
	All() []Workout
	FindByID(ctx context.Context, id string) (Workout, error)
}

type ListResponse struct {
	Workouts []Workout `json:"workouts"`
	Total    int       `json:"total"`
}

// AddRequest is the JSON body of a new workout. Numbers are accepted both as
// JSON numbers and as strings, the way a form sends them.
type AddRequest struct {
	Type          string       `json:"type"`
	Lat           numericField `json:"lat"`
	Lng           numericField `json:"lng"`
	Distance      numericField `json:"distance"`
	Duration      numericField `json:"duration"`
	Cadence       numericField `json:"cadence"`
	ElevationGain numericField `json:"elevationGain"`
}

type numericField string

func (f *numericField) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = numericField(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = numericField(n.String())
	return nil
}

type Handler struct {
	factory        workoutFactory
	store          workoutStore
	locale         Locale
	metricsManager *metrics.Manager
}

func NewHandler(
	factory workoutFactory,
	store workoutStore,
	locale Locale,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		factory:        factory,
		store:          store,
		locale:         locale,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the workouts routes. The add route is rate limited
// only when a rate limiter is given.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	addAllowedPerMin int,
) {
	var addHandler http.Handler = http.HandlerFunc(handler.HandleAdd)
	if rateLimiter != nil && addAllowedPerMin > 0 {
		addHandler = middleware.RateLimit(rateLimiter, "new-workout", addAllowedPerMin, handler.metricsManager)(addHandler)
	}

	mainRouter.Handle("/workouts", addHandler).Methods("POST").Name("new-workout")
	mainRouter.HandleFunc("/workouts", handler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	mainRouter.HandleFunc("/workouts/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	mainRouter.HandleFunc("/workouts/{id}/view", handler.HandleView).Methods("GET", "OPTIONS").Name("view-workout")
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.new")
	defer span.End()

	in, err := readInput(r)
	if err != nil {
		handler.rejectInput(w, err)
		return
	}
	span.SetAttributes(attribute.String("kind", in.Kind))

	workout, err := handler.factory.Create(ctx, in)
	if err != nil {
		handler.rejectInput(w, err)
		return
	}

	if err := handler.store.Add(ctx, workout); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			handler.rejectInput(w, err)
			return
		}
		log.Errorf("failed to store new workout [%s]: %s", workout.ID, err)
		span.RecordError(err)
		http.Error(w, "error, failed to save workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("new workout added: %s [%s]", workout.ID, workout.Label)
	pkg.WriteJSON(w, workout, http.StatusCreated)
}

func (handler *Handler) rejectInput(w http.ResponseWriter, err error) {
	var invalidErr *InvalidInputError
	if !errors.As(err, &invalidErr) {
		log.Tracef("new workout, bad request: %s", err)
		http.Error(w, "error, invalid request", http.StatusBadRequest)
		return
	}

	log.Tracef("new workout rejected: %s", invalidErr)
	handler.metricsManager.CounterInvalidInputs.WithLabelValues(invalidErr.Field).Inc()

	status := http.StatusBadRequest
	if invalidErr.Field == "id" {
		status = http.StatusConflict
	}
	http.Error(w, invalidErr.UserMessage(), status)
}

func readInput(r *http.Request) (Input, error) {
	var req AddRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), pkg.ContentType.JSON) {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return Input{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return Input{}, err
		}
		req = AddRequest{
			Type:          r.PostForm.Get("type"),
			Lat:           numericField(r.PostForm.Get("lat")),
			Lng:           numericField(r.PostForm.Get("lng")),
			Distance:      numericField(r.PostForm.Get("distance")),
			Duration:      numericField(r.PostForm.Get("duration")),
			Cadence:       numericField(r.PostForm.Get("cadence")),
			ElevationGain: numericField(r.PostForm.Get("elevationGain")),
		}
	}

	coords, err := ParseCoordinates(string(req.Lat), string(req.Lng))
	if err != nil {
		return Input{}, err
	}

	extra := req.Cadence
	if kind, _ := ParseKind(req.Type); kind == KindCycling {
		extra = req.ElevationGain
	}

	return Input{
		Kind:        req.Type,
		Coordinates: coords,
		Distance:    string(req.Distance),
		Duration:    string(req.Duration),
		Extra:       string(extra),
	}, nil
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	all := handler.store.All()
	span.SetAttributes(attribute.Int("total", len(all)))

	pkg.WriteJSON(w, ListResponse{
		Workouts: all,
		Total:    len(all),
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	workout, ok := handler.find(ctx, w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.view")
	defer span.End()

	workout, ok := handler.find(ctx, w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	pkg.WriteJSON(w, NewView(workout, handler.locale), http.StatusOK)
}

func (handler *Handler) find(ctx context.Context, w http.ResponseWriter, id string) (Workout, bool) {
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return Workout{}, false
	}

	workout, err := handler.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return Workout{}, false
		}
		log.Errorf("get workout %s: %s", id, err)
		http.Error(w, "error, failed to get workout", http.StatusInternalServerError)
		return Workout{}, false
	}

	return workout, true
}
