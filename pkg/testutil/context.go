package testutil

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	id "hostel/pkg/domain"
	"hostel/pkg/requestcontext"
)

// WithCaller stores the caller identity the auth middleware would establish.
func WithCaller(req *http.Request, userID id.UserID, role string) *http.Request {
	ctx := requestcontext.WithUserID(req.Context(), userID)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}

// WithRequestTime pins the request clock.
func WithRequestTime(req *http.Request, at time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), at))
}

// CallerMiddleware authenticates every request as a fresh user holding role,
// standing in for the bearer-token middleware in handler tests. An empty role
// leaves the request anonymous.
func CallerMiddleware(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if role == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, WithCaller(r, id.UserID(uuid.New()), role))
		})
	}
}
