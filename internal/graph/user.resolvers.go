package graph

import (
	"context"
	"strings"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"

	"go.uber.org/zap"
)

// Me is the resolver for the me field.
func (r *queryResolver) Me(ctx context.Context) (*model.User, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	u, err := r.UserSvc.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toGraphQLUser(u), nil
}

// Register is the resolver for the register field. The new token is also
// set as an HttpOnly cookie.
func (r *mutationResolver) Register(ctx context.Context, input model.RegisterInput) (*model.AuthPayload, error) {
	in := user.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		Name:     input.Name,
	}
	if input.Role != nil {
		in.Role = toDomainRole(*input.Role)
	}

	token, u, err := r.UserSvc.Register(ctx, in)
	if err != nil {
		return nil, err
	}

	setTokenCookie(ctx, token, int(tokenTTL.Seconds()), r.SecureCookies)
	return &model.AuthPayload{Token: token, User: toGraphQLUser(u)}, nil
}

// Login is the resolver for the login field.
func (r *mutationResolver) Login(ctx context.Context, email, password string) (*model.AuthPayload, error) {
	token, u, err := r.UserSvc.Login(ctx, email, password)
	if err != nil {
		logger.FromCtx(ctx).Info("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	setTokenCookie(ctx, token, int(tokenTTL.Seconds()), r.SecureCookies)
	return &model.AuthPayload{Token: token, User: toGraphQLUser(u)}, nil
}

// Logout clears the token cookie. Bearer tokens stay valid until they
// expire.
func (r *mutationResolver) Logout(ctx context.Context) (bool, error) {
	setTokenCookie(ctx, "", -1, r.SecureCookies)
	return true, nil
}

func toDomainRole(r model.Role) user.Role {
	return user.Role(strings.ToLower(string(r)))
}
