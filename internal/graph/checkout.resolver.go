package graph

import (
	"context"

	"storefront-be/internal/checkout"
	"storefront-be/internal/graph/model"
)

// CheckoutPreview prices the cart with the optional coupon. Nothing is
// written.
func (r *queryResolver) CheckoutPreview(ctx context.Context, input model.CheckoutInput) (*model.Settlement, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	s, err := r.CheckoutSvc.Preview(ctx, userID, checkout.Input{CouponID: input.CouponID})
	if err != nil {
		return nil, err
	}
	return toGraphQLSettlement(s), nil
}

// Checkout creates the pending order and returns what the client needs to
// open the hosted payment window.
func (r *mutationResolver) Checkout(ctx context.Context, input model.CheckoutInput) (*model.CheckoutResult, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	res, err := r.CheckoutSvc.Checkout(ctx, userID, checkout.Input{CouponID: input.CouponID})
	if err != nil {
		return nil, err
	}

	p := res.Payment
	return &model.CheckoutResult{
		Order: toGraphQLOrder(res.Order),
		Payment: &model.PaymentRequest{
			OrderID:       p.OrderID,
			OrderName:     p.OrderName,
			Amount:        p.Amount,
			CustomerName:  p.CustomerName,
			CustomerEmail: p.CustomerEmail,
			SuccessURL:    p.SuccessURL,
			FailURL:       p.FailURL,
		},
	}, nil
}
