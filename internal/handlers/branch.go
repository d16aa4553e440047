package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type branchQueryRequest struct {
	BranchID *int64 `json:"branch_id"`
}

type branchDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// getBranches returns the branch identified by branch_id, or all branches
// when the id is omitted.
func (r *Router) getBranches(w http.ResponseWriter, req *http.Request) {
	var in branchQueryRequest
	if err := decodeBody(req, &in); err != nil {
		if _, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "branch_id",
				"Branch ID provided must be an integer [branch_id]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	branches, err := r.svc.Catalog.Branches(req.Context(), in.BranchID)
	if err != nil {
		r.logger.Error("branch query failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	if len(branches) == 0 {
		respondFailure(w, "No branch found")
		return
	}

	data := make([]branchDTO, 0, len(branches))
	for _, b := range branches {
		data = append(data, branchDTO{ID: b.ID, Name: b.Name.String()})
	}
	respondData(w, data)
}
