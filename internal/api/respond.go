// Package api holds the JSON request/response conventions shared by the
// HTTP handlers: {"message": ...} bodies on success, {"error": ...} bodies
// on failure.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// ErrInvalidBody is returned by Decode for unreadable or malformed JSON.
var ErrInvalidBody = errors.New("invalid request body")

// maxBodySize bounds request bodies; nothing this API accepts is large.
const maxBodySize = 1 << 20

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error writes an {"error": ...} body.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// PNG writes raw PNG image bytes.
func PNG(w http.ResponseWriter, status int, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(status)
	_, _ = w.Write(img)
}

// Decode reads the request body into v, rejecting oversized payloads.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return errors.Join(ErrInvalidBody, err)
	}
	return nil
}
