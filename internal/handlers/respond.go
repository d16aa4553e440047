package handlers

import (
	"encoding/json"
	"net/http"
)

// response is the one envelope every endpoint uses. The legacy API mixed
// `success` and `status` keys between branches; callers now always get
// `success`, optionally with `data`, `message` and a stable `code`.
type response struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondData sends a successful result.
func respondData(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, response{Success: true, Data: data})
}

// respondMessage sends a successful result that carries only a message.
func respondMessage(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, response{Success: true, Message: message})
}

// respondFailure sends a domain soft failure. The transport status stays
// 200; callers inspect the body.
func respondFailure(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, response{Success: false, Message: message})
}

// respondInvalid sends a structured validation failure with a stable code.
// The status is whatever the legacy contract promised for that check,
// which is 200 in several places.
func respondInvalid(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, response{Success: false, Code: code, Message: message})
}
