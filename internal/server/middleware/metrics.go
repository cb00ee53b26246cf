package middleware

import (
	"net/http"
	"time"
)

// RequestObserver records finished requests.
type RequestObserver interface {
	ObserveRequest(method, path string, status int, elapsed time.Duration)
}

// Metrics reports every request to obs. Paths outside known are collapsed
// into "other" to keep label cardinality bounded.
func Metrics(obs RequestObserver, known ...string) func(http.Handler) http.Handler {
	paths := make(map[string]struct{}, len(known))
	for _, p := range known {
		paths[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if _, ok := paths[path]; !ok {
				path = "other"
			}
			obs.ObserveRequest(r.Method, path, rec.status, time.Since(start))
		})
	}
}

// Chain applies middlewares so that the first one listed is outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
