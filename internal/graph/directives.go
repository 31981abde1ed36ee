package graph

import (
	"context"
	"slices"
	"strings"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/utils"

	"github.com/99designs/gqlgen/graphql"
)

type DirectiveRoot struct {
	Auth    func(ctx context.Context, obj any, next graphql.Resolver) (any, error)
	HasRole func(ctx context.Context, obj any, next graphql.Resolver, roles []model.Role) (any, error)
}

func AuthDirective(ctx context.Context, obj any, next graphql.Resolver) (any, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, ErrUnauthenticated
	}
	return next(ctx)
}

// HasRoleDirective admits authenticated callers holding one of roles.
func HasRoleDirective(ctx context.Context, obj any, next graphql.Resolver, roles []model.Role) (any, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, ErrUnauthenticated
	}

	role := model.Role(strings.ToUpper(utils.GetUserRoleFromContext(ctx)))
	if !slices.Contains(roles, role) {
		return nil, ErrForbidden
	}
	return next(ctx)
}
