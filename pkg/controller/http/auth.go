package http

import (
	"context"
	"net/http"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Authenticator verifies bearer tokens against a remote JWKS. The key set
// is cached and refreshed in the background by the jwk cache.
type Authenticator struct {
	jwksURL  string
	issuer   string
	audience string
	cache    *jwk.Cache
}

// NewAuthenticator creates an Authenticator for the given JWKS endpoint.
// Issuer and audience checks are skipped when their values are empty.
// The JWKS is fetched once here so a misconfigured URL fails at startup
// instead of on the first request.
func NewAuthenticator(ctx context.Context, jwksURL, issuer, audience string) (*Authenticator, error) {
	cache := jwk.NewCache(ctx)
	if err := cache.Register(jwksURL); err != nil {
		return nil, goerr.Wrap(err, "failed to register JWKS URL", goerr.V("url", jwksURL))
	}
	if _, err := cache.Refresh(ctx, jwksURL); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch JWKS", goerr.V("url", jwksURL))
	}

	return &Authenticator{
		jwksURL:  jwksURL,
		issuer:   issuer,
		audience: audience,
		cache:    cache,
	}, nil
}

// Middleware rejects requests without a valid bearer token
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := ctxlog.From(ctx)

		keySet, err := a.cache.Get(ctx, a.jwksURL)
		if err != nil {
			logger.Error("Failed to load JWKS", "url", a.jwksURL, "error", err)
			writeError(w, goerr.New("verification keys unavailable"), http.StatusInternalServerError)
			return
		}

		options := []jwt.ParseOption{
			jwt.WithKeySet(keySet),
			jwt.WithValidate(true),
		}
		if a.issuer != "" {
			options = append(options, jwt.WithIssuer(a.issuer))
		}
		if a.audience != "" {
			options = append(options, jwt.WithAudience(a.audience))
		}

		token, err := jwt.ParseRequest(r, options...)
		if err != nil {
			logger.Warn("Rejected request with invalid token",
				"path", r.URL.Path,
				"error", err,
			)
			writeError(w, goerr.New("invalid token"), http.StatusUnauthorized)
			return
		}

		logger.Debug("Authenticated request", "subject", token.Subject())
		next.ServeHTTP(w, r)
	})
}
