package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse carries the request id assigned by the middleware so a
// failure reported by a client can be matched to its log lines.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Ack acknowledges a write that produces no body of its own.
type Ack struct {
	Status string `json:"status"`
}

// SecondsResponse reports a rest duration.
type SecondsResponse struct {
	Seconds int `json:"seconds"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, requestID, message string, details error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Code:      statusCode,
		Message:   message,
		RequestID: requestID,
	}

	if details != nil {
		resp.Details = details.Error()
	}

	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}
