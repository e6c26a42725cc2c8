package handler

import (
	"net/http"

	"github.com/uolchat/batepapo/internal/api/apierr"
	"github.com/uolchat/batepapo/internal/api/middleware"
	"github.com/uolchat/batepapo/internal/api/response"
	"github.com/uolchat/batepapo/internal/services/directory"
)

// StatusHandler handles the liveness heartbeat endpoint
type StatusHandler struct {
	directory *directory.Service
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(directory *directory.Service) *StatusHandler {
	return &StatusHandler{
		directory: directory,
	}
}

// Touch handles POST|PUT /status
func (h *StatusHandler) Touch(w http.ResponseWriter, r *http.Request) {
	sender := middleware.MustGetSender(r.Context())

	if err := h.directory.Touch(r.Context(), sender); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.OK(w)
}
