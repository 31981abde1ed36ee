package graph

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/checkout"
	"storefront-be/internal/coupon"
	"storefront-be/internal/notification"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/purchaserequest"
	"storefront-be/internal/store"
	"storefront-be/internal/user"

	"github.com/99designs/gqlgen/graphql"
	"github.com/99designs/gqlgen/graphql/handler"
	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/99designs/gqlgen/graphql/handler/transport"
)

type Resolver struct {
	UserSvc            user.Service
	StoreRepo          store.Repository
	ProductSvc         product.Service
	CartSvc            cart.Service
	CouponSvc          coupon.Service
	CheckoutSvc        checkout.Service
	OrderSvc           order.Service
	NotificationSvc    notification.Service
	PurchaseRequestSvc purchaserequest.Service

	SecureCookies bool
}

type queryResolver struct{ *Resolver }

type mutationResolver struct{ *Resolver }

func (r *Resolver) Query() *queryResolver { return &queryResolver{r} }

func (r *Resolver) Mutation() *mutationResolver { return &mutationResolver{r} }

func NewSchema(r *Resolver) graphql.ExecutableSchema {
	return newExecutableSchema(r, DirectiveRoot{
		Auth:    AuthDirective,
		HasRole: HasRoleDirective,
	})
}

// NewHandler serves the schema over GET and POST. Introspection stays off.
func NewHandler(r *Resolver) http.Handler {
	srv := handler.New(NewSchema(r))
	srv.AddTransport(transport.GET{})
	srv.AddTransport(transport.POST{})
	srv.SetQueryCache(lru.New(1000))
	return withResponseWriter(srv)
}
