package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response wrapper every endpoint uses. Successful responses
// carry a payload; failures carry a human-readable message. Neither may ever
// contain a password hash, a stack trace, or the signing secret.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// Success writes a 200 with the payload wrapped in the standard envelope.
func Success(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Payload: payload})
}

// Created writes a 201 with the payload wrapped in the standard envelope.
func Created(w http.ResponseWriter, payload any) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Payload: payload})
}

// Fail writes a failure envelope with the given status and message.
//
// The upstream system answered every failure with a 200 body; returning real
// status codes here is a deliberate deviation, the body shape is unchanged so
// clients keying off the success flag still work.
func Fail(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, Envelope{Success: false, Message: message})
}
