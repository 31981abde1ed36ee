package graph

import (
	"strings"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/user"
)

func toGraphQLRole(r user.Role) model.Role {
	return model.Role(strings.ToUpper(string(r)))
}

func toGraphQLUser(u *user.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      toGraphQLRole(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
