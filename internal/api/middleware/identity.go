package middleware

import (
	"context"
	"net/http"

	"github.com/uolchat/batepapo/internal/api/apierr"
)

type contextKey string

const senderContextKey contextKey = "sender"

// identityHeader carries the claimed sender name. The claim is advisory:
// there is no proof of identity beyond presence-by-name, and endpoints
// re-check liveness against the directory before any mutation.
const identityHeader = "User"

// Identity extracts the sender name from the User header and rejects
// requests that carry none.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sender := r.Header.Get(identityHeader)
			if sender == "" {
				apierr.WriteError(w, apierr.NewIdentityRequiredError())
				return
			}

			ctx := context.WithValue(r.Context(), senderContextKey, sender)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSender returns the claimed sender name from the request context
func GetSender(ctx context.Context) string {
	sender, _ := ctx.Value(senderContextKey).(string)
	return sender
}

// MustGetSender returns the claimed sender name or panics
func MustGetSender(ctx context.Context) string {
	sender := GetSender(ctx)
	if sender == "" {
		panic("no sender in context - identity middleware not applied?")
	}
	return sender
}
