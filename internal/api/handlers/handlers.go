package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/topicboard/engine/internal/api/types"
	appErr "github.com/topicboard/engine/pkg/errors"
	"github.com/topicboard/engine/pkg/pagination"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps stable error codes onto HTTP statuses. Conflicts surface
// as 400 so a duplicate username or topic name reads as a bad request.
func statusFor(code appErr.Code) int {
	switch code {
	case appErr.CodeInvalid, appErr.CodeConflict:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(appErr.CodeOf(err)), types.APIResponse{
		Success: false,
		Error:   types.FromAppError(err),
	})
}

func writeErrorStr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.APIResponse{
		Success: false,
		Error:   &types.APIError{Code: string(appErr.CodeInvalid), Message: msg},
	})
}

// idParam extracts a numeric chi URL parameter.
func idParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, appErr.New(appErr.CodeInvalid, "invalid "+name)
	}
	return uint(id), nil
}

// pageParams reads page and per_page from the query string. Absent values
// fall through as zero and take the defaults.
func pageParams(r *http.Request) (pagination.Params, error) {
	q := r.URL.Query()
	var page, perPage int
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			return pagination.Params{}, appErr.New(appErr.CodeInvalid, "page must be an integer >= 1")
		}
		page = n
	}
	if raw := q.Get("per_page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n == 0 {
			return pagination.Params{}, appErr.New(appErr.CodeInvalid, "per_page must be an integer between 1 and 100")
		}
		perPage = n
	}
	return pagination.NewParams(page, perPage)
}
