package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Xavi-Linux/geoapy/pkg/apierr"
	"github.com/Xavi-Linux/geoapy/pkg/geoloc"
)

// errorResponse is the JSON error body for non-success responses.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleFields handles GET /v1/fields
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"fields": geoloc.Fields()})
}

// handleLookup handles GET /v1/lookup?ip=<ipv4>&fields=<a,b,c>&excludes=<d,e>&cached=1
// An absent ip resolves the proxy host's own public address.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := geoloc.Options{
		Fields:        splitParam(q.Get("fields")),
		ExcludeFields: splitParam(q.Get("excludes")),
		FromCache:     q.Get("cached") == "1" || q.Get("cached") == "true",
	}

	resp, err := s.client.Lookup(r.Context(), q.Get("ip"), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if q.Get("save") == "1" || q.Get("save") == "true" {
		if err := resp.Cache(r.Context()); err != nil {
			s.logger.Warn("persist lookup failed", "ip", resp.IP(), "error", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeError maps client errors to HTTP statuses. Validation failures
// are the caller's fault; a missing key is a deployment fault; provider
// statuses pass through; transport failures surface as a bad gateway.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apierr.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case apierr.CodeInvalidAddress, apierr.CodeUnknownField, apierr.CodeInvalidInput:
		status = http.StatusBadRequest
	case apierr.CodeNetwork:
		status = http.StatusBadGateway
	case apierr.CodeAPI:
		var se *apierr.StatusError
		if errors.As(err, &se) {
			status = se.Status
		}
	}

	if status >= 500 {
		s.logger.Error("lookup failed", "id", RequestIDFromContext(r.Context()), "error", err)
	}

	writeJSON(w, status, errorResponse{
		Code:    string(code),
		Message: apierr.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

// requestID tags each request with a UUID, echoed in the X-Request-ID
// response header and attached to the request context for logging.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request ID attached by the
// middleware, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
