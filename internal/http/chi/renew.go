package chi

import (
	"net/http"

	"github.com/marcelsud/local-library/catalog"
	"github.com/marcelsud/local-library/renewal"
)

type renewRequest struct {
	DueBack string `json:"due_back"`
}

type renewProposalResponse struct {
	Instance        instanceResponse `json:"instance"`
	ProposedDueBack string           `json:"proposed_due_back"`
}

// getRenew shows the instance and the default renewal date
func getRenew(svc renewal.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		p, err := svc.Propose(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, renewProposalResponse{
			Instance:        toInstanceResponse(p.Instance),
			ProposedDueBack: p.DueBack.Format(catalog.DateLayout),
		})
	})
}

// postRenew stores a new due-back date and redirects to the borrowed listing
func postRenew(svc renewal.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := uuidParam(w, r, "id")
		if !ok {
			return
		}
		var rr renewRequest
		if !decode(w, r, &rr) {
			return
		}
		candidate, err := catalog.ParseDay(rr.DueBack)
		if err != nil {
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Errors: []fieldError{{
				Field:   renewal.Field,
				Message: "due_back must be a YYYY-MM-DD date",
			}}})
			return
		}
		if _, err := svc.Renew(r.Context(), id, candidate); err != nil {
			writeError(w, r, err)
			return
		}
		http.Redirect(w, r, "/v1/borrowed", http.StatusSeeOther)
	})
}
