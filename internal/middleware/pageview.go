package middleware

import (
	"net/http"

	"github.com/quizdeck-dev/quizdeck/internal/domain"
	"github.com/quizdeck-dev/quizdeck/internal/service"
)

// NotifyPageViews publishes a page-view event for every authenticated GET.
// Must sit after RequireRole so the session user is in the context. The
// persistent observer ignores page views; only the console logger sees them.
func NotifyPageViews(subject *service.ActivitySubject) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				if user := GetUserFromContext(r); user != nil {
					subject.Notify(*user, domain.ActionPageView, r.URL.Path)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
