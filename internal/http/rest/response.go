package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/civicpulse/civicpulse/internal/store"
	"github.com/civicpulse/civicpulse/util"
	"github.com/civicpulse/civicpulse/util/tracing"
	"github.com/civicpulse/civicpulse/util/values"
)

type ServerResponse struct {
	Message    string      `json:"message"`
	Status     string      `json:"status"`
	StatusCode int         `json:"-"`
	Data       interface{} `json:"data,omitempty"`
}

func respondWithError(err error, message, status string, tc *tracing.Context) *ServerResponse {
	if tc != nil {
		log.Printf("[%s] %s: %v", tc.RequestID, message, err)
	} else {
		log.Printf("%s: %v", message, err)
	}
	return &ServerResponse{
		Message:    message,
		Status:     status,
		StatusCode: util.StatusCode(status),
	}
}

func writeJSONResponse(w http.ResponseWriter, body []byte, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Println("unable to write response body", err)
	}
}

func writeErrorResponse(w http.ResponseWriter, err error, status, message string) {
	log.Printf("%s: %v", message, err)
	body, marshalErr := json.Marshal(ServerResponse{
		Message: message,
		Status:  status,
	})
	if marshalErr != nil {
		http.Error(w, message, http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, body, util.StatusCode(status))
}

// storeStatus maps a domain error onto a response status string.
func storeStatus(err error) string {
	switch {
	case errors.Is(err, store.ErrIssueNotFound), errors.Is(err, store.ErrNotificationNotFound):
		return values.NotFound
	case errors.Is(err, store.ErrInvalidTransition), errors.Is(err, store.ErrInvalidState):
		return values.Conflict
	case store.IsValidation(err):
		return values.Unprocessable
	}
	return values.Error
}
