package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/quizdeck-dev/quizdeck/internal/middleware"
	"github.com/quizdeck-dev/quizdeck/internal/service"
	"github.com/quizdeck-dev/quizdeck/internal/status"
)

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return val, nil
}

// queryId reads a required numeric id from the query string.
func queryId(r *http.Request, name string) (int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	id, err := parseIntParam(raw, name)
	if err != nil {
		return 0, false
	}
	return id, true
}

// regular rebuilds the Regular capability variant from the session user the
// auth middleware placed in the context.
func (h *Handler) regular(w http.ResponseWriter, r *http.Request) *service.Regular {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return nil
	}
	return service.NewRegular(*user, h.svc)
}

// moderator mints the Moderator variant; the role floor was already enforced
// by middleware, so a construction failure means a broken session.
func (h *Handler) moderator(w http.ResponseWriter, r *http.Request) *service.Moderator {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return nil
	}
	m, err := service.NewModerator(*user, h.svc)
	if err != nil {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil
	}
	return m
}

func (h *Handler) administrator(w http.ResponseWriter, r *http.Request) *service.Administrator {
	user := middleware.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
		return nil
	}
	a, err := service.NewAdministrator(*user, h.svc)
	if err != nil {
		http.Error(w, "Access denied", http.StatusForbidden)
		return nil
	}
	return a
}

// timePeriod reads the time_period query value, defaulting to all-time.
func timePeriod(r *http.Request) string {
	if p := r.URL.Query().Get("time_period"); p != "" {
		return p
	}
	return "alltime"
}

// writeList emits a list payload, or just the empty-state token when the
// status is an empty-but-valid outcome.
func writeList[T any](w http.ResponseWriter, st status.Status, items []T) {
	if !st.OK() || len(items) == 0 {
		writeStatus(w, st)
		return
	}
	writeResult(w, st, items)
}
