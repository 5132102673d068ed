package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger is the storage surface the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Healthz reports liveness of the process and its database connection.
func Healthz(storage Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := storage.Ping(ctx); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
