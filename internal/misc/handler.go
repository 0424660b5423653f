package misc

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/workoutmap/internal/telemetry/tracing"
	"github.com/2beens/workoutmap/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=misc_test

// pinger is the workouts blob backend, as far as readiness is concerned.
type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	backend     pinger
	versionInfo string
}

func NewHandler(backend pinger, versionInfo string) *Handler {
	return &Handler{
		backend:     backend,
		versionInfo: versionInfo,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/ready", handler.handleReady).Methods("GET").Name("ready")
	mainRouter.HandleFunc("/myip", handler.handleGetMyIp).Methods("GET").Name("myip")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

// handleReady reports whether the workouts backend can be reached.
func (handler *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.misc.ready")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := handler.backend.Ping(ctx); err != nil {
		log.Errorf("readiness check, ping backend: %s", err)
		span.SetStatus(codes.Error, "ping-failed")
		http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
		return
	}

	pkg.WriteTextResponseOK(w, "ready")
}

func (handler *Handler) handleGetMyIp(w http.ResponseWriter, r *http.Request) {
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Errorf("failed to get user ip address: %s", err)
		http.Error(w, "error getting ip address", http.StatusInternalServerError)
		return
	}
	pkg.WriteTextResponseOK(w, ip)
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}
