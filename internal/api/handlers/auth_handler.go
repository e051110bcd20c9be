package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/topicboard/engine/internal/api/types"
	"github.com/topicboard/engine/internal/services"
)

type AuthHandler struct {
	auth     services.AuthService
	validate interface{ Struct(any) error }
}

func NewAuthHandler(auth services.AuthService, v interface{ Struct(any) error }) *AuthHandler {
	return &AuthHandler{auth: auth, validate: v}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.auth.Register(r.Context(), req.Username, req.Password, req.Nickname)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, types.APIResponse{Success: true, Data: user})
}

func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req types.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorStr(w, http.StatusBadRequest, err.Error())
		return
	}

	signed, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, types.APIResponse{
		Success: true,
		Data: types.TokenResponse{
			AccessToken: signed,
			TokenType:   "Bearer",
			ExpiresIn:   int64(h.auth.TokenTTL().Seconds()),
			User:        user,
		},
	})
}
