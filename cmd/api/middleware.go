package main

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userIDKey string

const userIDCtx userIDKey = "user_id"

var ErrMissingUserID = errors.New("X-User-ID header is required")

// requireUserID extracts the caller identity set by the upstream auth layer.
// Requests without a valid X-User-ID never reach user-scoped handlers.
func (app *application) requireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-User-ID")
		if raw == "" {
			app.unauthorizedResponse(w, r, ErrMissingUserID)
			return
		}

		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			app.unauthorizedResponse(w, r, ErrInvalidID)
			return
		}

		ctx := context.WithValue(r.Context(), userIDCtx, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getUserID(r *http.Request) primitive.ObjectID {
	userID, _ := r.Context().Value(userIDCtx).(primitive.ObjectID)
	return userID
}

func (app *application) rateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(r.RemoteAddr); !allow {
				app.rateLimitExceededResponse(w, r, retryAfter.String())
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
