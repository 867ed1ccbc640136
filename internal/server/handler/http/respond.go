package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"chordbook/internal/apperr"
)

// writeJSON writes v as the JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// writeError maps an error kind from the services to a transport status and
// writes a JSON error body. Ingestion failures keep their full message —
// the anchor name, status code or duplicate title is what makes them
// actionable for the caller — while everything else gets a generic message.
func writeError(w http.ResponseWriter, err error) {
	var (
		parseErr   *apperr.ParseError
		networkErr *apperr.NetworkError
		dupErr     *apperr.DuplicateError
		storageErr *apperr.StorageError
	)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.As(err, &dupErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: dupErr.Error()})
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: "already exists"})
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthenticated"})
	case errors.As(err, &parseErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: parseErr.Error()})
	case errors.As(err, &networkErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: networkErr.Error()})
	case errors.As(err, &storageErr):
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "storage failure, retry later"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
