package chi

import (
	"net/http"

	"github.com/marcelsud/local-library/dashboard"
	"github.com/marcelsud/local-library/session"
)

func getDashboard(svc dashboard.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summarize(r.Context(), session.FromContext(r.Context()))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, sum)
	})
}
