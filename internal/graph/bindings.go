package graph

import (
	"context"
	"fmt"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/user"
)

// fields binds each Query field to its resolver method.
func (r *queryResolver) fields() map[string]fieldResolver {
	return map[string]fieldResolver{
		"me": func(ctx context.Context, _ args) (any, error) {
			return r.Me(ctx)
		},
		"stores": func(ctx context.Context, _ args) (any, error) {
			return r.Stores(ctx)
		},
		"storeProducts": func(ctx context.Context, a args) (any, error) {
			storeID, err := a.id("storeId")
			if err != nil {
				return nil, err
			}
			return r.StoreProducts(ctx, storeID)
		},
		"availableCoupons": func(ctx context.Context, a args) (any, error) {
			storeID := a.optString("storeId")
			if storeID != nil {
				if _, err := a.id("storeId"); err != nil {
					return nil, err
				}
			}
			return r.AvailableCoupons(ctx, storeID)
		},
		"cart": func(ctx context.Context, _ args) (any, error) {
			return r.Cart(ctx)
		},
		"checkoutPreview": func(ctx context.Context, a args) (any, error) {
			var in model.CheckoutInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.CheckoutPreview(ctx, in)
		},
		"myOrders": func(ctx context.Context, a args) (any, error) {
			var f model.OrderFilter
			if err := a.decode("filter", &f); err != nil {
				return nil, err
			}
			return r.MyOrders(ctx, f)
		},
		"order": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			return r.Order(ctx, id)
		},
		"notifications": func(ctx context.Context, a args) (any, error) {
			limit, err := a.optInt("limit")
			if err != nil {
				return nil, err
			}
			offset, err := a.optInt("offset")
			if err != nil {
				return nil, err
			}
			if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
				return nil, fmt.Errorf("%w: limit and offset must be non-negative", errBadInput)
			}
			return r.Notifications(ctx, a.flag("unreadOnly"), limit, offset)
		},
		"storeOrders": func(ctx context.Context, a args) (any, error) {
			var f model.OrderFilter
			if err := a.decode("filter", &f); err != nil {
				return nil, err
			}
			return r.StoreOrders(ctx, f)
		},
		"storeCoupons": func(ctx context.Context, _ args) (any, error) {
			return r.StoreCoupons(ctx)
		},
		"inventory": func(ctx context.Context, _ args) (any, error) {
			return r.Inventory(ctx)
		},
		"purchaseRequests": func(ctx context.Context, _ args) (any, error) {
			return r.PurchaseRequests(ctx)
		},
		"adminOrders": func(ctx context.Context, a args) (any, error) {
			var f model.OrderFilter
			if err := a.decode("filter", &f); err != nil {
				return nil, err
			}
			return r.AdminOrders(ctx, f)
		},
	}
}

// fields binds each Mutation field to its resolver method.
func (r *mutationResolver) fields() map[string]fieldResolver {
	return map[string]fieldResolver{
		"register": func(ctx context.Context, a args) (any, error) {
			var in model.RegisterInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.Register(ctx, in)
		},
		"login": func(ctx context.Context, a args) (any, error) {
			in := user.LoginInput{Email: a.str("email"), Password: a.str("password")}
			if err := validate.Struct(in); err != nil {
				return nil, validationError(err)
			}
			return r.Login(ctx, in.Email, in.Password)
		},
		"logout": func(ctx context.Context, _ args) (any, error) {
			return r.Logout(ctx)
		},
		"addCartItem": func(ctx context.Context, a args) (any, error) {
			var in model.AddCartItemInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.AddCartItem(ctx, in)
		},
		"updateCartItem": func(ctx context.Context, a args) (any, error) {
			var in model.UpdateCartItemInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.UpdateCartItem(ctx, in)
		},
		"removeCartItem": func(ctx context.Context, a args) (any, error) {
			storeID, err := a.id("storeId")
			if err != nil {
				return nil, err
			}
			productID, err := a.id("productId")
			if err != nil {
				return nil, err
			}
			return r.RemoveCartItem(ctx, storeID, productID)
		},
		"clearCart": func(ctx context.Context, _ args) (any, error) {
			return r.ClearCart(ctx)
		},
		"checkout": func(ctx context.Context, a args) (any, error) {
			var in model.CheckoutInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.Checkout(ctx, in)
		},
		"markNotificationRead": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			return r.MarkNotificationRead(ctx, id)
		},
		"updateOrderStatus": func(ctx context.Context, a args) (any, error) {
			orderID, err := a.id("orderId")
			if err != nil {
				return nil, err
			}
			return r.UpdateOrderStatus(ctx, orderID, model.OrderStatus(a.str("status")))
		},
		"createCoupon": func(ctx context.Context, a args) (any, error) {
			var in model.CouponInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.CreateCoupon(ctx, in)
		},
		"updateCoupon": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			var in model.CouponInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.UpdateCoupon(ctx, id, in)
		},
		"deleteCoupon": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			return r.DeleteCoupon(ctx, id)
		},
		"updateInventory": func(ctx context.Context, a args) (any, error) {
			productID, err := a.id("productId")
			if err != nil {
				return nil, err
			}
			var in model.InventoryInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.UpdateInventory(ctx, productID, in)
		},
		"createPurchaseRequest": func(ctx context.Context, a args) (any, error) {
			var in model.CreatePurchaseRequestInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.CreatePurchaseRequest(ctx, in)
		},
		"updatePurchaseRequest": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			var in model.UpdatePurchaseRequestInput
			if err := a.decode("input", &in); err != nil {
				return nil, err
			}
			return r.UpdatePurchaseRequest(ctx, id, in)
		},
		"deletePurchaseRequest": func(ctx context.Context, a args) (any, error) {
			id, err := a.id("id")
			if err != nil {
				return nil, err
			}
			return r.DeletePurchaseRequest(ctx, id)
		},
	}
}
