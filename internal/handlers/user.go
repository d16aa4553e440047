package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

type userQueryRequest struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
}

type userDTO struct {
	ID       int64       `json:"id"`
	UserName interface{} `json:"user_name"`
}

// getUsers looks users up by id or name (OR match); both omitted returns
// every user.
func (r *Router) getUsers(w http.ResponseWriter, req *http.Request) {
	var in userQueryRequest
	if err := decodeBody(req, &in); err != nil {
		if _, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "user_id",
				"User ID provided must be an integer [user_id]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	users, err := r.svc.Directory.Users(req.Context(), in.UserID, in.UserName)
	if err != nil {
		r.logger.Error("user query failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	if len(users) == 0 {
		respondFailure(w, "No user found on the system")
		return
	}

	data := make([]userDTO, 0, len(users))
	for _, u := range users {
		data = append(data, userDTO{ID: u.ID, UserName: u.Name.OrNil()})
	}
	respondData(w, data)
}
