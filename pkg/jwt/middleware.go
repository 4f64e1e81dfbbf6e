package jwt

import (
	"net/http"
	"strings"
)

// TokenExtractorFunc pulls a token string out of an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// ErrorHandlerFunc renders an authentication failure to the client.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures Middleware behavior. ClaimsFactory produces the
// destination value Parse unmarshals into; it defaults to map[string]any.
type MiddlewareConfig struct {
	Service       *Service
	Extractor     TokenExtractorFunc
	ErrorHandler  ErrorHandlerFunc
	ClaimsFactory func() any
}

// Middleware returns a pipeline stage that verifies the request token and
// injects the parsed claims into the request context. On any failure the
// chain is short-circuited before the wrapped handler runs.
func Middleware(cfg MiddlewareConfig) func(next http.Handler) http.Handler {
	if cfg.Extractor == nil {
		cfg.Extractor = AuthHeaderExtractor
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	if cfg.ClaimsFactory == nil {
		cfg.ClaimsFactory = func() any { return &map[string]any{} }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := cfg.Extractor(r)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			claims := cfg.ClaimsFactory()
			if err := cfg.Service.Parse(tokenString, claims); err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetClaims(r.Context(), claims)))
		})
	}
}

// AuthHeaderExtractor reads the token from the Authorization header. Both a
// bare token and the RFC 6750 "Bearer <token>" form are accepted; the bare
// form exists for compatibility with clients that send the signed string
// without a scheme prefix.
func AuthHeaderExtractor(r *http.Request) (string, error) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		token = strings.TrimSpace(token)
		if token == "" {
			return "", ErrInvalidToken
		}
		return token, nil
	}

	if strings.ContainsRune(authHeader, ' ') {
		return "", ErrInvalidToken
	}

	return authHeader, nil
}
