package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/uolchat/batepapo/internal/api/apierr"
	"github.com/uolchat/batepapo/internal/api/middleware"
	"github.com/uolchat/batepapo/internal/api/request"
	"github.com/uolchat/batepapo/internal/api/response"
	"github.com/uolchat/batepapo/internal/model"
	"github.com/uolchat/batepapo/internal/services/chat"
)

// MessageHandler handles message-related endpoints
type MessageHandler struct {
	chat *chat.Service
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(chat *chat.Service) *MessageHandler {
	return &MessageHandler{
		chat: chat,
	}
}

// Post handles POST /messages
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	sender := middleware.MustGetSender(r.Context())

	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	msg, err := h.chat.Post(r.Context(), sender, req.To, req.Text, req.Type)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MessageFromModel(msg))
}

// List handles GET /messages?limit=N
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	sender := middleware.MustGetSender(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apierr.WriteError(w, model.NewValidationError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	messages, err := h.chat.ListVisibleTo(r.Context(), sender, limit)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessagesFromModel(messages))
}

// Edit handles PUT /messages/{id}
func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	sender := middleware.MustGetSender(r.Context())
	id := model.MessageID(mux.Vars(r)["id"])

	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	msg, err := h.chat.Edit(r.Context(), id, sender, req.To, req.Text, req.Type)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageFromModel(msg))
}

// Delete handles DELETE /messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sender := middleware.MustGetSender(r.Context())
	id := model.MessageID(mux.Vars(r)["id"])

	if err := h.chat.Delete(r.Context(), id, sender); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w)
}
