package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/services/directory"
)

type contactOperationRequest struct {
	ContactID       int64  `json:"contact_id"`
	ContactName     string `json:"contact_name"`
	ToCreateContact bool   `json:"to_create_contact"`
	Address1        string `json:"address1"`
	Address2        string `json:"address2"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
}

type contactDTO struct {
	ID          int64       `json:"id"`
	ContactName interface{} `json:"contact_name"`
	Address1    interface{} `json:"address1"`
	Address2    interface{} `json:"address2"`
	Phone       interface{} `json:"phone"`
	Email       interface{} `json:"email"`
}

// contactOperation looks contacts up by id or name (OR match, possibly
// several records) and optionally creates one when nothing matched.
// Empty fields serialize as null; that is what the mobile client expects.
func (r *Router) contactOperation(w http.ResponseWriter, req *http.Request) {
	var in contactOperationRequest
	if err := decodeBody(req, &in); err != nil {
		if _, ok := typeErrorField(err); ok {
			respondInvalid(w, http.StatusBadRequest, "contact_id",
				"Contact ID provided must be an integer [contact_id]")
			return
		}
		respondInvalid(w, http.StatusBadRequest, "invalid_payload", "Request body must be valid JSON")
		return
	}

	contacts, _, err := r.svc.Directory.Contacts(req.Context(), directory.ContactQuery{
		ID:       in.ContactID,
		Name:     in.ContactName,
		Create:   in.ToCreateContact,
		Address1: in.Address1,
		Address2: in.Address2,
		Phone:    in.Phone,
		Email:    in.Email,
	})
	if err != nil {
		if errors.Is(err, directory.ErrMissingContactFields) {
			respondFailure(w, "Please provide the following fields; contact name, address, phone and email")
			return
		}
		r.logger.Error("contact operation failed", zap.Error(err))
		respondFailure(w, err.Error())
		return
	}
	if len(contacts) == 0 {
		respondFailure(w, "No contact found on the system")
		return
	}

	data := make([]contactDTO, 0, len(contacts))
	for _, c := range contacts {
		data = append(data, contactDTO{
			ID:          c.ID,
			ContactName: c.Name.OrNil(),
			Address1:    c.Street.OrNil(),
			Address2:    c.Street2.OrNil(),
			Phone:       c.Phone.OrNil(),
			Email:       c.Email.OrNil(),
		})
	}
	respondData(w, data)
}
