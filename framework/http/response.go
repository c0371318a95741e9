package http

import (
	"encoding/json"
	"net/http"
)

// Response writes JSON envelopes to an http.ResponseWriter.
//
// Successful payloads go under "data"; failures carry a machine-readable
// "error" name and a human-readable "detail".
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// JSON writes status and data encoded as JSON.
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 with {"data": v}.
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Problem sends status with {"error": name, "detail": detail}.
//
//	res.Problem(http.StatusNotFound, nf.ErrorName(), nf.Detail())
func (res *Response) Problem(status int, name, detail string) {
	res.JSON(status, envelope{"error": name, "detail": detail})
}

// ServerError sends a generic 500 problem.
func (res *Response) ServerError() {
	res.Problem(http.StatusInternalServerError, "server-error", "The server could not complete the request.")
}

type envelope map[string]any
