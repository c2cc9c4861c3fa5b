package middleware

import (
	"errors"
	"net/http"
	"strings"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/andrewpaige1/thoughtcatcher-api/logging"
	"go.uber.org/zap"
)

// EnsureValidToken rejects requests without a valid bearer or x-auth-token
// credential and leaves the validated claims in the request context.
func EnsureValidToken(v *validator.Validator) func(http.Handler) http.Handler {
	mw := jwtmiddleware.New(
		v.ValidateToken,
		jwtmiddleware.WithTokenExtractor(jwtmiddleware.MultiTokenExtractor(
			jwtmiddleware.AuthHeaderTokenExtractor,
			headerTokenExtractor("x-auth-token"),
		)),
		jwtmiddleware.WithErrorHandler(tokenErrorHandler),
	)
	return mw.CheckJWT
}

func headerTokenExtractor(name string) jwtmiddleware.TokenExtractor {
	return func(r *http.Request) (string, error) {
		return strings.TrimSpace(r.Header.Get(name)), nil
	}
}

func tokenErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	msg := "Token is not valid"
	if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
		msg = "No token, authorization denied"
	}
	logging.FromContext(r.Context()).Debug("rejected credential", zap.Error(err))
	writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": msg})
}
