package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the fixed response shape for every JSON endpoint: a status
// code, a human message and an optional payload. Handlers never assemble
// ad hoc response bodies.
type Envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Respond writes the envelope with the given status code. Also used by the
// middleware so rejections share the same shape.
func Respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Envelope{Status: status, Message: message, Data: data})
}
