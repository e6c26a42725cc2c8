package handler

import (
	"encoding/json"
	"net/http"

	"github.com/uolchat/batepapo/internal/api/apierr"
	"github.com/uolchat/batepapo/internal/api/request"
	"github.com/uolchat/batepapo/internal/api/response"
	"github.com/uolchat/batepapo/internal/services/directory"
)

// ParticipantHandler handles participant-related endpoints
type ParticipantHandler struct {
	directory *directory.Service
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(directory *directory.Service) *ParticipantHandler {
	return &ParticipantHandler{
		directory: directory,
	}
}

// Login handles POST /participants
func (h *ParticipantHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	participant, err := h.directory.Login(r.Context(), req.Name)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromModel(participant))
}

// List handles GET /participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.directory.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantsFromModel(participants))
}
