package middleware

import (
	"net/http"

	"github.com/andrewpaige1/thoughtcatcher-api/auth"
	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"github.com/andrewpaige1/thoughtcatcher-api/utils"
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"go.uber.org/zap"
)

// RequireUser resolves the validated token to a user id and attaches it to
// the context for downstream handlers. Must run behind EnsureValidToken.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserID(r.Context().Value(jwtmiddleware.ContextKey{}))
		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token is not valid"})
			return
		}

		ctx := utils.WithUserID(r.Context(), userID)
		ctx = logging.WithContext(ctx, logging.FromContext(ctx).With(zap.String("user_id", userID)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
