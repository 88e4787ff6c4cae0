// Package httputil holds the small helpers shared by every HTTP handler:
// JSON encoding and the error-body convention.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "talentgate/pkg/domain-errors"
)

type errorBody struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the wire format. Internal errors omit
// the description so causes never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	body := errorBody{Error: string(dErrors.CodeOf(err))}
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		body.Description = dErrors.MessageOf(err)
	}
	WriteJSON(w, dErrors.HTTPStatus(err), body)
}
