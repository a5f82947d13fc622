package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response shape used on every endpoint:
// {success, message, data} on success, {success, message, error} otherwise.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondOK(w http.ResponseWriter, code int, message string, data any) {
	writeJSON(w, code, Envelope{Success: true, Message: message, Data: data})
}

func respondErr(w http.ResponseWriter, code int, message, detail string) {
	writeJSON(w, code, Envelope{Success: false, Message: message, Error: detail})
}
