package server

import (
	"encoding/json"
	"net/http"
)

// WriteJSON sends v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteMessage sends the contract's `{message}` payload. Every error
// body on the wire goes through here so clients can rely on the field.
func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, MessageResponse{Message: message})
}

// WriteCreated sends the `{message, id}` payload of creation endpoints.
func WriteCreated(w http.ResponseWriter, message string, id int) error {
	return WriteJSON(w, http.StatusCreated, MessageResponse{Message: message, ID: id})
}
