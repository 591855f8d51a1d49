package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/y0usad/lyoki-site/internal/handlerutils"
	"github.com/y0usad/lyoki-site/internal/servererrors"
)

type contextKey struct{}

var EntityKey contextKey = contextKey{}

// AuthWithContext guards h with bearer token authentication. The token's
// entity type must match authEntityType, so a user token never reaches an
// admin route and the other way around. The authenticated entity id is
// attached to the request context for downstream ownership checks.
func (mw *middleware) AuthWithContext(h handlerutils.APIHandler, authEntityType string) handlerutils.APIHandler {
	return func(w http.ResponseWriter, r *http.Request) error {
		authHeader := r.Header.Get("Authorization")

		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrMissingBearerToken.Error(),
				nil,
			)
		}

		isValid, claims, err := mw.jwtManager.ValidateAccessToken(tokenStr)
		if err != nil {
			return err
		}

		if !isValid {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorized.Error(),
				nil,
			)
		}

		if claims.EntityType != authEntityType {
			return servererrors.New(
				http.StatusUnauthorized,
				servererrors.ErrUnauthorizedAccess.Error(),
				nil,
			)
		}

		// create context
		ctx := r.Context()
		ctx = context.WithValue(
			ctx,
			EntityKey,
			claims.EntityID,
		)
		r = r.WithContext(ctx)

		return h(w, r)
	}
}

func GetEntityIDFromContextKey(ctx context.Context) uuid.UUID {
	entityIDStr, ok := ctx.Value(EntityKey).(string)
	if !ok {
		return uuid.Nil
	}

	entityID, err := uuid.Parse(entityIDStr)
	if err != nil {
		return uuid.Nil
	}

	return entityID
}
