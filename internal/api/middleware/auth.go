package middleware

import (
	"context"
	"net/http"

	"github.com/dailysync/standup-backend/internal/entity"
	"github.com/dailysync/standup-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type principalCtxKey struct{}

// PrincipalResolver maps an incoming request to the authenticated caller.
// Handlers never see how the principal was obtained.
type PrincipalResolver interface {
	Resolve(ctx context.Context, r *http.Request) (entity.Principal, error)
}

// Auth resolves the principal once per request and injects it into the
// context. Requests without a resolvable principal get 401.
func Auth(resolver PrincipalResolver) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := resolver.Resolve(r.Context(), r)
			if err != nil {
				ctxzap.Extract(r.Context()).Warn("failed to resolve principal", zap.Error(err))
				response.Error(w, http.StatusUnauthorized, "no user found")
				return
			}

			ctx := context.WithValue(r.Context(), principalCtxKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by Auth.
func PrincipalFromContext(ctx context.Context) (entity.Principal, error) {
	principal, ok := ctx.Value(principalCtxKey{}).(entity.Principal)
	if !ok {
		return entity.Principal{}, entity.ErrNoPrincipal
	}
	return principal, nil
}

// UserSource is the minimal user lookup the dev resolver needs.
type UserSource interface {
	FirstUser(ctx context.Context) (*entity.User, error)
}

// DevResolver resolves every request to the first user in the database. It
// stands in for a session layer in development deployments only.
type DevResolver struct {
	users UserSource
}

func NewDevResolver(users UserSource) *DevResolver {
	return &DevResolver{users: users}
}

func (d *DevResolver) Resolve(ctx context.Context, _ *http.Request) (entity.Principal, error) {
	user, err := d.users.FirstUser(ctx)
	if err != nil {
		return entity.Principal{}, err
	}
	if user.OrgID == "" {
		return entity.Principal{}, entity.ErrNoPrincipal
	}
	return entity.Principal{UserID: user.ID, OrgID: user.OrgID}, nil
}
