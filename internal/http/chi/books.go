package chi

import (
	"net/http"

	"github.com/marcelsud/local-library/catalog"
)

type bookRequest struct {
	Title      string  `json:"title" validate:"required,max=200"`
	AuthorID   int64   `json:"author_id" validate:"required,gt=0"`
	Summary    string  `json:"summary" validate:"required,max=1000"`
	ISBN       string  `json:"isbn" validate:"required,isbn"`
	GenreIDs   []int64 `json:"genre_ids" validate:"unique,dive,gt=0"`
	LanguageID *int64  `json:"language_id" validate:"omitempty,gt=0"`
}

func (b bookRequest) book() catalog.Book {
	return catalog.Book{
		Title:      b.Title,
		AuthorID:   b.AuthorID,
		Summary:    b.Summary,
		ISBN:       b.ISBN,
		GenreIDs:   b.GenreIDs,
		LanguageID: b.LanguageID,
	}
}

type bookResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	AuthorID   int64   `json:"author_id"`
	Summary    string  `json:"summary"`
	ISBN       string  `json:"isbn"`
	GenreIDs   []int64 `json:"genre_ids"`
	LanguageID *int64  `json:"language_id"`
}

type bookDetailResponse struct {
	bookResponse
	Instances []instanceResponse `json:"instances"`
}

func toBookResponse(b catalog.Book) bookResponse {
	genres := b.GenreIDs
	if genres == nil {
		genres = []int64{}
	}
	return bookResponse{
		ID:         b.ID,
		Title:      b.Title,
		AuthorID:   b.AuthorID,
		Summary:    b.Summary,
		ISBN:       b.ISBN,
		GenreIDs:   genres,
		LanguageID: b.LanguageID,
	}
}

func getBooks(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		all, err := svc.ListBooks(r.Context())
		if err != nil {
			writeError(w, r, err)
			return
		}
		writePage(w, r, all, toBookResponse)
	})
}

func getBook(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		b, err := svc.GetBook(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		instances, err := svc.ListInstancesByBook(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		result := bookDetailResponse{
			bookResponse: toBookResponse(b),
			Instances:    make([]instanceResponse, 0, len(instances)),
		}
		for _, i := range instances {
			result.Instances = append(result.Instances, toInstanceResponse(i))
		}
		writeJSON(w, r, http.StatusOK, result)
	})
}

func postBook(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if !decode(w, r, &br) {
			return
		}
		b, err := svc.CreateBook(r.Context(), br.book())
		if err != nil {
			writeReferenceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toBookResponse(b))
	})
}

func putBook(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		var br bookRequest
		if !decode(w, r, &br) {
			return
		}
		b := br.book()
		b.ID = id
		if err := svc.UpdateBook(r.Context(), b); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toBookResponse(b))
	})
}

func deleteBook(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := int64Param(w, r, "id")
		if !ok {
			return
		}
		if err := svc.DeleteBook(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
