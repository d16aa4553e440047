package models

import (
	"encoding/json"
	"errors"
)

// OdooString is a custom string type that handles Odoo's dynamic typing.
// Odoo returns `false` (boolean) for empty text fields instead of an empty
// string. This type implements json.Unmarshaler to handle both.
type OdooString string

// UnmarshalJSON handles dynamic typing from Odoo
func (os *OdooString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*os = OdooString(s)
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if !b {
			*os = ""
			return nil
		}
		*os = "true"
		return nil
	}

	return errors.New("OdooString: cannot unmarshal value into string")
}

// String returns native string value
func (os OdooString) String() string {
	return string(os)
}

// OrNil returns the string, or nil when empty. The legacy API serialized
// empty contact fields as JSON null and callers depend on that.
func (os OdooString) OrNil() interface{} {
	if os == "" {
		return nil
	}
	return string(os)
}

// OdooRelation is a many2one field. Odoo serializes these as a
// [id, display_name] pair, or `false` when unset.
type OdooRelation struct {
	ID   int64
	Name string
}

// UnmarshalJSON handles the pair, bare-id and false renderings
func (r *OdooRelation) UnmarshalJSON(data []byte) error {
	var pair []interface{}
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) > 0 {
			if id, ok := pair[0].(float64); ok {
				r.ID = int64(id)
			}
		}
		if len(pair) > 1 {
			if name, ok := pair[1].(string); ok {
				r.Name = name
			}
		}
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*r = OdooRelation{}
		return nil
	}

	var id float64
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = int64(id)
		return nil
	}

	return errors.New("OdooRelation: cannot unmarshal value into relation")
}

// IsSet reports whether the relation points at a record
func (r OdooRelation) IsSet() bool {
	return r.ID != 0
}
