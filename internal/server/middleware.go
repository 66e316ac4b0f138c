package server

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKeyLog struct{}

// adminPathPrefix is the protected area. Everything under it requires basic
// auth; everything outside bypasses the gate entirely.
const adminPathPrefix = "/admin"

// logHandler injects a request-scoped FieldLogger into the context and logs
// the request once it completes.
type logHandler struct {
	log  *logrus.Logger
	next http.Handler
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (lh *logHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := lh.log.WithFields(logrus.Fields{
		"http.req.method": r.Method,
		"http.req.path":   r.URL.Path,
	})
	r = r.WithContext(context.WithValue(r.Context(), ctxKeyLog{}, logrus.FieldLogger(log)))

	rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
	lh.next.ServeHTTP(rr, r)

	log.WithFields(logrus.Fields{
		"http.resp.status":  rr.status,
		"http.resp.took_ms": time.Since(start).Milliseconds(),
	}).Debug("request complete")
}

// requestLogger pulls the request-scoped logger out of the context.
func requestLogger(r *http.Request) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return logrus.StandardLogger()
}

// adminGate intercepts every request under the admin prefix. With no password
// configured nothing gets through. The Basic credential's username field is
// discarded; only the portion after the first colon is compared, so passwords
// may themselves contain colons.
func (s *Server) adminGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, adminPathPrefix) {
			next.ServeHTTP(w, r)
			return
		}
		if s.adminPassword == "" {
			unauthorized(w)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Basic ") {
			unauthorized(w)
			return
		}
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(auth, "Basic "))
		if err != nil {
			unauthorized(w)
			return
		}
		_, password, ok := strings.Cut(string(decoded), ":")
		if !ok || password != s.adminPassword {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="Admin Area", charset="UTF-8"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}
