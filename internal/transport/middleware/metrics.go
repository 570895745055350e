package middleware

import (
	"net/http"
	"time"
)

type httpObserver interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
	InFlight(delta int)
}

// Metrics records request counts and latencies per route pattern.
// It must sit directly in front of the ServeMux: the mux writes the matched
// pattern into the request it receives, and that is the request seen here.
func Metrics(obs httpObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := newStatusWriter(w)

			obs.InFlight(1)
			defer obs.InFlight(-1)

			next.ServeHTTP(sw, r)

			obs.ObserveHTTP(r.Method, r.Pattern, sw.status, time.Since(start))
		})
	}
}
