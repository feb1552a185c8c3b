package v1handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"psychrometer/internal/config"
	"psychrometer/pkg/domain"
	"psychrometer/pkg/logger"
	"psychrometer/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

// OwnerIDKey stores the authenticated domain.OwnerID in the request context.
const OwnerIDKey ctxKey = "ownerID"

// SecHandlerOptions configure bearer token verification.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with.
	PublicKey string
	// Issuer, when set, must match the "iss" claim.
	Issuer string
}

func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{
		PublicKey: cfg.JWT.PublicKey,
		Issuer:    cfg.JWT.Issuer,
	}
}

// SecHandler authenticates batch requests with RS256 signed JWTs whose
// subject is the owner ID.
type SecHandler struct {
	parser *jwt.Parser
	key    any
}

func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}

	return &SecHandler{
		parser: jwt.NewParser(parserOpts...),
		key:    key,
	}, nil
}

// HandleBearerAuth verifies token and returns ctx carrying the owner ID.
func (s *SecHandler) HandleBearerAuth(ctx context.Context, token string) (context.Context, error) {
	var claims jwt.RegisteredClaims
	if _, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	}); err != nil {
		logger.Debug(ctx, "rejected bearer token", zap.Error(err))

		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	ownerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token subject")
	}

	ctx = logger.WithFields(ctx, zap.String("ownerID", ownerID.String()))

	return context.WithValue(ctx, OwnerIDKey, domain.OwnerID(ownerID)), nil
}

// Authenticate rejects requests without a valid "Authorization: Bearer"
// header and passes the owner ID on to next.
func (s *SecHandler) Authenticate(next http.Handler) http.Handler {
	errs := &Handler{}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			errs.writeError(r.Context(), w, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.HandleBearerAuth(r.Context(), strings.TrimSpace(token))
		if err != nil {
			errs.writeError(r.Context(), w, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerIDFromContext returns the authenticated owner, or the zero ID when
// the request was not authenticated.
func OwnerIDFromContext(ctx context.Context) domain.OwnerID {
	id, _ := ctx.Value(OwnerIDKey).(domain.OwnerID)

	return id
}
