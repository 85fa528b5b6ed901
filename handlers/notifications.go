package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"grana/middleware"
	"grana/models"
	"grana/services"

	"github.com/gorilla/mux"
)

func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := services.ListNotifications(h.DB, userID, unreadOnly)
	if err != nil {
		respondError(w, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	respondJSON(w, http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r)

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, fmt.Errorf("bad notification id: %w", models.ErrInvalidArgument))
		return
	}

	if err := services.MarkNotificationRead(h.DB, userID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
