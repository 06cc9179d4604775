package errors

import "net/http"

// Messages paired with the numeric error codes returned to clients.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "resource not found"
	MsgMethodNotAllowed   = "method not allowed"
	MsgConflict           = "no questions remaining"
	MsgUnprocessable      = "unprocessable"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

var messages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusConflict:            MsgConflict,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusServiceUnavailable:  MsgServiceUnavailable,
}

// Message returns the stable message for status, falling back to the HTTP status text.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
