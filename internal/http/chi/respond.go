package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"
	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/renewal"
)

type fieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
}

type errorResponse struct {
	Errors []fieldError `json:"errors"`
}

type pageResponse[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
	Pages    int `json:"pages"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		oplog := httplog.LogEntry(r.Context())
		oplog.Error().Err(err).Msg("encoding response")
	}
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Errors: []fieldError{{Message: msg}}})
}

// writeError maps domain errors to status codes. Only unexpected errors are logged as errors.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	oplog := httplog.LogEntry(r.Context())

	var renewErr *renewal.Error
	switch {
	case errors.As(err, &renewErr):
		oplog.Info().Str("kind", renewErr.Kind.String()).Msg("renewal rejected")
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Errors: []fieldError{{
			Field:   renewal.Field,
			Message: renewErr.Error(),
			Kind:    renewErr.Kind.String(),
		}}})
	case errors.Is(err, catalog.ErrInvalidLifespan):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Errors: []fieldError{{
			Field: "date_of_death", Message: catalog.ErrInvalidLifespan.Error(), Kind: "lifespan",
		}}})
	case errors.Is(err, catalog.ErrDueBackNotAllowed):
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Errors: []fieldError{{
			Field: "due_back", Message: catalog.ErrDueBackNotAllowed.Error(), Kind: "status",
		}}})
	case errors.Is(err, catalog.ErrInvalid):
		writeMessage(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeMessage(w, r, http.StatusNotFound, "not found")
	case errors.Is(err, catalog.ErrConflict):
		writeMessage(w, r, http.StatusConflict, "record was modified, reload and try again")
	case errors.Is(err, catalog.ErrInUse), errors.Is(err, catalog.ErrDuplicate):
		writeMessage(w, r, http.StatusConflict, err.Error())
	default:
		oplog.Error().Err(err).Msg("request failed")
		writeMessage(w, r, http.StatusInternalServerError, "internal server error")
	}
}

// writeReferenceError treats an unknown referenced record in a request body as invalid input
func writeReferenceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		writeMessage(w, r, http.StatusUnprocessableEntity, "referenced record does not exist")
		return
	}
	writeError(w, r, err)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "malformed request body")
		return false
	}
	if errs := validateStruct(v); len(errs) > 0 {
		writeJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Errors: errs})
		return false
	}
	return true
}

func int64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "invalid "+name)
		return uuid.UUID{}, false
	}
	return id, true
}

// writePage paginates items with the ?page= query parameter and writes the page
func writePage[T, R any](w http.ResponseWriter, r *http.Request, items []T, convert func(T) R) {
	number := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, "invalid page")
			return
		}
		number = n
	}
	page, err := catalog.Paginate(items, number)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := pageResponse[R]{
		Items:    make([]R, 0, len(page.Items)),
		Page:     page.Number,
		PageSize: page.Size,
		Total:    page.Total,
		Pages:    page.Pages(),
	}
	for _, item := range page.Items {
		out.Items = append(out.Items, convert(item))
	}
	writeJSON(w, r, http.StatusOK, out)
}

func formatDay(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(catalog.DateLayout)
	return &s
}

func parseDay(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := catalog.ParseDay(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
