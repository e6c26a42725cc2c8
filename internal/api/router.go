package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/uolchat/batepapo/internal/api/handler"
	apimiddleware "github.com/uolchat/batepapo/internal/api/middleware"
	"github.com/uolchat/batepapo/internal/middleware"
	"github.com/uolchat/batepapo/internal/services/chat"
	"github.com/uolchat/batepapo/internal/services/directory"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger    *slog.Logger
	Directory *directory.Service
	Chat      *chat.Service
	// AllowedOrigins configures CORS; defaults to all origins, matching
	// the browser front end the original served
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	participantHandler := handler.NewParticipantHandler(cfg.Directory)
	messageHandler := handler.NewMessageHandler(cfg.Chat)
	statusHandler := handler.NewStatusHandler(cfg.Directory)

	// Create middleware
	identityMiddleware := apimiddleware.Identity()
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	// Participant routes (no identity required: login creates one)
	r.HandleFunc("/participants", participantHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)

	// Message routes (all carry a sender identity)
	messages := r.PathPrefix("/messages").Subrouter()
	messages.Use(identityMiddleware)
	messages.HandleFunc("", messageHandler.Post).Methods(http.MethodPost)
	messages.HandleFunc("", messageHandler.List).Methods(http.MethodGet)
	messages.HandleFunc("/{id}", messageHandler.Edit).Methods(http.MethodPut)
	messages.HandleFunc("/{id}", messageHandler.Delete).Methods(http.MethodDelete)

	// Heartbeat route; the original front end sends POST, older builds PUT
	status := r.PathPrefix("/status").Subrouter()
	status.Use(identityMiddleware)
	status.HandleFunc("", statusHandler.Touch).Methods(http.MethodPost, http.MethodPut)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", "User"}),
	)(r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
