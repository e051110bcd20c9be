package handlers

import (
	"net/http"

	"github.com/topicboard/engine/internal/api/middleware"
	"github.com/topicboard/engine/internal/api/types"
	"github.com/topicboard/engine/internal/repository"
)

type UsersHandler struct {
	users repository.UserRepository
}

func NewUsersHandler(users repository.UserRepository) *UsersHandler {
	return &UsersHandler{users: users}
}

// Me returns the profile of the authenticated caller.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	writeJSON(w, http.StatusOK, types.APIResponse{Success: true, Data: user})
}

// List is admin-only and pages through all registered users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	p, err := pageParams(r)
	if err != nil {
		writeError(w, err)
		return
	}
	users, page, err := h.users.List(r.Context(), p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data:    users,
		Meta:    types.PageMeta(page),
	})
}
