package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteText writes a plain-text response with the given status code. A couple
// of legacy endpoints answer with bare strings rather than JSON envelopes.
func WriteText(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(body))
}

// Error is the `{"error": "..."}` envelope most failure paths use.
type Error struct {
	Error string `json:"error"`
}

// WriteError writes the error envelope with the given status code.
func WriteError(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Error{Error: message})
}

// Failure is the `{"success": false, "message": "..."}` envelope the auth
// endpoints use instead of Error.
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// WriteFailure writes the auth failure envelope with the given status code.
func WriteFailure(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Failure{Success: false, Message: message})
}
