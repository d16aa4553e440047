package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks the request structs; field names in errors come from the
// json tags so they match what the caller actually sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody decodes the JSON request body into dst. All endpoints carry
// their parameters in the body, including the GET ones; that is the
// contract the legacy API established.
func decodeBody(req *http.Request, dst interface{}) error {
	defer req.Body.Close()
	return json.NewDecoder(req.Body).Decode(dst)
}

// typeErrorField returns the offending field when the decode failure was a
// type mismatch (e.g. a string where an integer id belongs).
func typeErrorField(err error) (string, bool) {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return ute.Field, true
	}
	return "", false
}

// invalidFields extracts the failing field names from a validator error.
func invalidFields(err error) []string {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		return nil
	}
	fields := make([]string, 0, len(verr))
	for _, fe := range verr {
		fields = append(fields, fe.Field())
	}
	return fields
}
