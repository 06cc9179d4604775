package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error body. Error carries the numeric code clients
// switch on; Message is informational.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

// RespondError writes an error body whose code matches the HTTP status.
func RespondError(w http.ResponseWriter, status int) {
	RespondErrorMessage(w, status, Message(status))
}

// RespondErrorMessage writes an error body with a custom message.
func RespondErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error:   status,
		Message: message,
	})
}

// RespondBadRequest writes a 400 error response
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest)
}

// RespondNotFound writes a 404 error response
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound)
}

// RespondMethodNotAllowed writes a 405 error response
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed)
}

// RespondConflict writes a 409 error response
func RespondConflict(w http.ResponseWriter) {
	RespondError(w, http.StatusConflict)
}

// RespondUnprocessable writes a 422 error response
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity)
}

// RespondInternalError writes a 500 error response
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError)
}

// RespondServiceUnavailable writes a 503 error response
func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable)
}

// RespondJSON writes payload with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
