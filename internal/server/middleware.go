package server

import (
	"log"
	"net/http"

	"github.com/google/uuid"
)

// requestIDHeader carries the request ID on responses (and is honored on
// requests, so upstream proxies can correlate).
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request an ID, stores it in the context, and echoes
// it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

// Recover converts handler panics into logged 500 responses so a single bad
// request cannot crash the process.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				id, _ := GetRequestID(r.Context())
				log.Printf("http: panic handling %s %s (request %s): %v", r.Method, r.URL.Path, id, rec)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
