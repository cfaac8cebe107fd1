package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/configuration"
)

type statusWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

// RealIP resolves the caller IP: first entry of the forwarded-for header,
// else the socket address, else a static "unknown" bucket.
func RealIP(r *http.Request, conf *configuration.Configuration) string {
	if fwd := r.Header.Get(conf.ForwardedForHeader); fwd != "" {
		parts := strings.Split(fwd, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func requestID(r *http.Request, conf *configuration.Configuration) string {
	if id := r.Header.Get(conf.RequestIDHeader); id != "" {
		return id
	}
	return uuid.New().String()
}

// WithLogger attaches a request-scoped logger and the request params
// (IP, user agent) to the context, logs start/completion, and recovers
// panics into a stable JSON 500.
func WithLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	conf := configuration.Use()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := requestID(r, conf)
			ip := RealIP(r, conf)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": reqID,
				"path":       r.RequestURI,
				"method":     r.Method,
			})

			fieldsLogger.WithFields(logrus.Fields{
				"ip":         ip,
				"user-agent": r.UserAgent(),
			}).Info("request started")

			ctx := composables.WithLogger(r.Context(), fieldsLogger)
			ctx = composables.WithParams(ctx, &composables.Params{
				IP:        ip,
				UserAgent: r.UserAgent(),
				RequestID: reqID,
			})

			w.Header().Set("X-Request-Id", reqID)
			wrapped := &statusWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic": recovered,
						"stack": string(debug.Stack()),
					}).Error("panic recovered in request handler")
					if !wrapped.statusWritten {
						wrapped.Header().Set("Content-Type", "application/json")
						wrapped.WriteHeader(http.StatusInternalServerError)
						_ = json.NewEncoder(wrapped).Encode(map[string]any{
							"code":    "INTERNAL_SERVER_ERROR",
							"message": "internal server error",
							"meta":    map[string]string{"request_id": reqID},
						})
					}
				}
			}()

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			fieldsLogger.WithFields(logrus.Fields{
				"duration":     time.Since(start),
				"status-code":  wrapped.Status(),
				"status-class": wrapped.Status() / 100,
			}).Info("request completed")
		})
	}
}
