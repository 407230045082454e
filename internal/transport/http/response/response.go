package response

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"onbid-goods-api/pkg/apierror"
)

// OK writes a 200 JSON response.
func OK(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusOK, payload)
}

// Created writes a 201 JSON response.
func Created(w http.ResponseWriter, payload interface{}) {
	JSON(w, http.StatusCreated, payload)
}

// JSON writes an arbitrary JSON response.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[response] failed to encode response: %v", err)
	}
}

// Error writes a typed API error, falling back to UNKNOWN_ERROR for
// anything that is not an *apierror.APIError.
func Error(w http.ResponseWriter, err error) {
	var apiErr *apierror.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierror.InternalError(err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	w.Write(apiErr.ToJSON())
}
