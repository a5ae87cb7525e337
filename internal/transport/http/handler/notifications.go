package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/narcomap-api/internal/application/notification"
	"github.com/narcomap-api/internal/transport/http/middleware"
)

// NotificationHandler serves the admin notification feed.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	unreadOnly := q.Get("unread") == "true"

	views, err := h.svc.List(r.Context(), claims.AdminID, unreadOnly, limit)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, views)
}

func (h *NotificationHandler) Count(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, err := h.svc.CountUnread(r.Context(), claims.AdminID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeData(w, http.StatusOK, map[string]int{"count": count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	view, err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id"), claims.AdminID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "notification marked as read", view)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.MarkAllRead(r.Context(), claims.AdminID); err != nil {
		httpError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "all notifications marked as read", nil)
}
