package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dhruvrajput1/letmecook2.0/internal/models"
	"github.com/dhruvrajput1/letmecook2.0/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// respond wraps data in the success envelope.
func respond(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, models.APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// respondError wraps a failure in the error envelope.
func respondError(w http.ResponseWriter, status int, message string, errs ...string) {
	if errs == nil {
		errs = []string{}
	}
	writeJSON(w, status, models.APIErrorResponse{
		StatusCode: status,
		Success:    false,
		Message:    message,
		Errors:     errs,
	})
}

// handleServiceError maps the service error taxonomy onto status codes.
// Ownership failures surface as 401, matching the public API contract this
// backend has always exposed.
func handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *services.ValidationError
	var conflictErr *services.ConflictError
	var notFoundErr *services.NotFoundError
	var unauthorizedErr *services.UnauthorizedError
	var forbiddenErr *services.ForbiddenError
	var upstreamErr *services.UpstreamError
	var pgErr *pgconn.PgError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message, validationErr.Errors...)
	case errors.As(err, &conflictErr):
		respondError(w, http.StatusConflict, conflictErr.Message)
	case errors.As(err, &notFoundErr):
		respondError(w, http.StatusNotFound, notFoundErr.Message)
	case errors.As(err, &unauthorizedErr):
		respondError(w, http.StatusUnauthorized, unauthorizedErr.Message)
	case errors.As(err, &forbiddenErr):
		respondError(w, http.StatusUnauthorized, forbiddenErr.Message)
	case errors.As(err, &upstreamErr):
		respondError(w, http.StatusInternalServerError, upstreamErr.Message)
	case errors.Is(err, pgx.ErrNoRows):
		respondError(w, http.StatusNotFound, "Resource not found")
	case errors.As(err, &pgErr) && pgErr.Code == "23503":
		// Foreign-key violation: the referenced row is gone or never existed.
		respondError(w, http.StatusNotFound, "Resource not found")
	default:
		respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// uuidParam parses a UUID path parameter, reporting false after writing the
// validation error.
func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// parsePagination applies the page/limit defaults and bounds.
func parsePagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}
