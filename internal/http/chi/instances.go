package chi

import (
	"net/http"
	"time"

	"github.com/marcelsud/local-library/catalog"
)

type instanceRequest struct {
	BookID   int64   `json:"book_id" validate:"required,gt=0"`
	Imprint  string  `json:"imprint" validate:"required,max=200"`
	DueBack  *string `json:"due_back" validate:"omitempty,datetime=2006-01-02"`
	Status   string  `json:"status" validate:"required,oneof=a o m r"`
	Borrower string  `json:"borrower" validate:"max=150"`
}

func (ir instanceRequest) instance() catalog.Instance {
	dueBack, _ := parseDay(ir.DueBack)
	status, _ := catalog.ParseStatus(ir.Status)
	return catalog.Instance{
		BookID:   ir.BookID,
		Imprint:  ir.Imprint,
		DueBack:  dueBack,
		Status:   status,
		Borrower: ir.Borrower,
	}
}

type instanceUpdateRequest struct {
	instanceRequest
	Version int64 `json:"version" validate:"required,gt=0"`
}

type instanceResponse struct {
	ID         string         `json:"id"`
	BookID     int64          `json:"book_id"`
	Imprint    string         `json:"imprint"`
	DueBack    *string        `json:"due_back"`
	Status     catalog.Status `json:"status"`
	StatusCode string         `json:"status_code"`
	Borrower   string         `json:"borrower,omitempty"`
	Overdue    bool           `json:"overdue"`
	Version    int64          `json:"version"`
}

func toInstanceResponse(i catalog.Instance) instanceResponse {
	return instanceResponse{
		ID:         i.ID.String(),
		BookID:     i.BookID,
		Imprint:    i.Imprint,
		DueBack:    formatDay(i.DueBack),
		Status:     i.Status,
		StatusCode: i.Status.Code(),
		Borrower:   i.Borrower,
		Overdue:    i.IsOverdue(time.Now()),
		Version:    i.Version,
	}
}

func listPartition(svc catalog.UseCase, p catalog.Partition, w http.ResponseWriter, r *http.Request) {
	all, err := svc.ListPartition(r.Context(), p, requester(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, r, all, toInstanceResponse)
}

// getMyBooks lists the instances the requester has on loan
func getMyBooks(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listPartition(svc, catalog.PartitionMyLoans, w, r)
	})
}

// getBorrowed lists every instance on loan, for librarians
func getBorrowed(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listPartition(svc, catalog.PartitionOnLoan, w, r)
	})
}

// getInstances lists the instances with ?status=
func getInstances(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, err := catalog.ParseStatus(r.URL.Query().Get("status"))
		if err != nil {
			writeMessage(w, r, http.StatusBadRequest, "status must be one of a, o, m, r")
			return
		}
		listPartition(svc, catalog.PartitionOf(status), w, r)
	})
}

func postInstance(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ir instanceRequest
		if !decode(w, r, &ir) {
			return
		}
		i, err := svc.CreateInstance(r.Context(), ir.instance())
		if err != nil {
			writeReferenceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, toInstanceResponse(i))
	})
}

func putInstance(svc catalog.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		var ur instanceUpdateRequest
		if !decode(w, r, &ur) {
			return
		}
		if _, err := svc.GetInstance(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		i := ur.instance()
		i.ID = id
		i.Version = ur.Version
		if err := svc.UpdateInstance(r.Context(), i); err != nil {
			writeReferenceError(w, r, err)
			return
		}
		updated, err := svc.GetInstance(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, toInstanceResponse(updated))
	})
}
