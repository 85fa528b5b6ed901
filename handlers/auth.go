package handlers

import (
	"encoding/json"
	"net/http"

	"grana/models"
	"grana/security"
	"grana/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := services.RegisterUser(h.DB, req.Username, req.Name, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := security.IssueToken(user.ID, user.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := services.AuthenticateUser(h.DB, req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	token, err := security.IssueToken(user.ID, user.Username)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
