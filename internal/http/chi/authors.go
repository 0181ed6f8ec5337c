package chi

import (
	"net/http"

	"github.com/marcelsud/local-library/catalog"
)

type authorRequest struct {
	FirstName   string  `json:"first_name" validate:"required,max=100"`
	LastName    string  `json:"last_name" validate:"required,max=100"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	DateOfDeath *string `json:"date_of_death" validate:"omitempty,datetime=2006-01-02"`
}

func (a authorRequest) author() catalog.Author {
	// dates were checked by the validator
	born, _ := parseDay(a.DateOfBirth)
	died, _ := parseDay(a.DateOfDeath)
	return catalog.Author{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: born,
		DateOfDeath: died,
	}
}

type authorResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	DateOfBirth *string `json:"date_of_birth"`
	DateOfDeath *string `json:"date_of_death"`
}

type authorDetailResponse struct {
	authorResponse
	Books []bookResponse `json:"books"`
}

func toAuthorResponse(a catalog.Author) authorResponse {
	return authorResponse{
		ID:          a.ID,
		Name:        a.Name(),
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: formatDay(a.DateOfBirth),
		DateOfDeath: formatDay(a.DateOfDeath),
	}
}

func getAuthors(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListAuthors(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writePage(w, r, all, toAuthorResponse)
	})
}

func getAuthor(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		a, err := svc.GetAuthor(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		books, err := svc.ListBooksByAuthor(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := authorDetailResponse{
			authorResponse: toAuthorResponse(a),
			Books:          make([]bookResponse, 0, len(books)),
		}
		for _, b := range books {
			result.Books = append(result.Books, toBookResponse(b))
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func postAuthor(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ar authorRequest
		if !decode(w, r, &ar) {
			return
		}
		a, err := svc.CreateAuthor(r.Context(), ar.author())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toAuthorResponse(a))
	})
}

func putAuthor(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		var ar authorRequest
		if !decode(w, r, &ar) {
			return
		}
		a := ar.author()
		a.ID = id
		if err := svc.UpdateAuthor(r.Context(), a); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toAuthorResponse(a))
	})
}

func deleteAuthor(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteAuthor(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
