// Package directory serves contact and user lookups, plus contact
// creation when a lookup misses.
package directory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/models"
)

// ErrMissingContactFields is returned when contact creation was requested
// without the full identifying field set.
var ErrMissingContactFields = errors.New("directory: contact name, address, phone and email are required to create a contact")

// Service wraps the partner and user directory.
type Service struct {
	gw     erp.Gateway
	logger *zap.Logger
}

// New creates a directory service.
func New(gw erp.Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// ContactQuery is an OR-lookup by id or name, with optional creation when
// nothing matches.
type ContactQuery struct {
	ID       int64
	Name     string
	Create   bool
	Address1 string
	Address2 string
	Phone    string
	Email    string
}

// Contacts returns every partner matching the query. When nothing matches
// and creation was requested, the contact is created (name, at least one
// address line, phone and email are all required) and returned; created
// reports whether that happened. An empty query matches all contacts.
func (s *Service) Contacts(ctx context.Context, q ContactQuery) (contacts []models.Contact, created bool, err error) {
	domain := erp.Domain{}
	if q.ID > 0 || q.Name != "" {
		domain = erp.Or(
			erp.Condition{"id", "=", q.ID},
			erp.Condition{"name", "=", q.Name},
		)
	}

	if err := s.gw.SearchRead(ctx, erp.ModelResPartner, domain, models.ContactFields, nil, &contacts); err != nil {
		return nil, false, err
	}

	if len(contacts) == 0 && q.Create {
		address := q.Address1
		if address == "" {
			address = q.Address2
		}
		if q.Name == "" || address == "" || q.Phone == "" || q.Email == "" {
			return nil, false, ErrMissingContactFields
		}

		values := erp.Values{
			"name":    q.Name,
			"street":  q.Address1,
			"street2": q.Address2,
			"phone":   q.Phone,
			"email":   q.Email,
		}
		id, err := s.gw.Create(ctx, erp.ModelResPartner, values, nil)
		if err != nil {
			return nil, false, err
		}
		s.logger.Info("contact created", zap.Int64("contact_id", id), zap.String("name", q.Name))

		if err := s.gw.SearchRead(ctx, erp.ModelResPartner, erp.Domain{{"id", "=", id}}, models.ContactFields, nil, &contacts); err != nil {
			return nil, false, err
		}
		created = true
	}

	return contacts, created, nil
}

// Users returns every user matching the id-or-name OR lookup; both zero
// values mean "all users".
func (s *Service) Users(ctx context.Context, id int64, name string) ([]models.User, error) {
	domain := erp.Domain{}
	if id > 0 || name != "" {
		domain = erp.Or(
			erp.Condition{"id", "=", id},
			erp.Condition{"name", "=", name},
		)
	}

	var users []models.User
	if err := s.gw.SearchRead(ctx, erp.ModelResUsers, domain, []string{"name", "partner_id"}, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
