package chi

import (
	"net/http"

	"github.com/marcelsud/local-library/catalog"
)

type lookupRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

type lookupResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func getGenres(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListGenres(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]lookupResponse, 0, len(all))
		for _, g := range all {
			result = append(result, lookupResponse{ID: g.ID, Name: g.Name})
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func postGenre(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lr lookupRequest
		if !decode(w, r, &lr) {
			return
		}
		g, err := svc.CreateGenre(r.Context(), lr.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, lookupResponse{ID: g.ID, Name: g.Name})
	})
}

func getLanguages(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListLanguages(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := make([]lookupResponse, 0, len(all))
		for _, l := range all {
			result = append(result, lookupResponse{ID: l.ID, Name: l.Name})
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func postLanguage(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var lr lookupRequest
		if !decode(w, r, &lr) {
			return
		}
		l, err := svc.CreateLanguage(r.Context(), lr.Name)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, lookupResponse{ID: l.ID, Name: l.Name})
	})
}
