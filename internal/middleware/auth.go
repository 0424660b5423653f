package middleware

import (
	"net/http"

	"github.com/2beens/workoutmap/internal/telemetry/tracing"
	"github.com/2beens/workoutmap/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const WriteSecretHeader = "X-Workouts-Secret"

// AuthMiddlewareHandler guards the write routes with a shared client secret.
// Only the bcrypt hash of the secret is known to the server.
type AuthMiddlewareHandler struct {
	writeSecretHash string
	writeMethods    map[string]bool
}

func NewAuthMiddlewareHandler(writeSecretHash string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		writeSecretHash: writeSecretHash,
		writeMethods: map[string]bool{
			http.MethodPost:   true,
			http.MethodPut:    true,
			http.MethodPatch:  true,
			http.MethodDelete: true,
		},
	}
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			// reads are public, and without a configured hash so are writes (dev setup)
			if !h.writeMethods[r.Method] || h.writeSecretHash == "" {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			secret := r.Header.Get(WriteSecretHeader)
			if secret == "" {
				log.Tracef("[missing secret] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-secret")
				return
			}

			if !pkg.CheckSecretHash(secret, h.writeSecretHash) {
				reqIp, _ := pkg.ReadUserIP(r)
				log.Warnf("[invalid secret] [auth middleware] unauthorized %s %s from %s", r.Method, r.URL.Path, reqIp)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-secret")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
