package graph

import (
	"context"
	"strings"

	"storefront-be/internal/coupon"
	"storefront-be/internal/graph/model"
)

func toGraphQLCoupon(c *coupon.Coupon) *model.Coupon {
	return &model.Coupon{
		ID:                c.ID,
		StoreID:           c.StoreID,
		Name:              c.Name,
		Description:       c.Description,
		DiscountType:      model.DiscountType(strings.ToUpper(string(c.DiscountType))),
		DiscountValue:     c.DiscountValue,
		MinOrderAmount:    c.MinOrderAmount,
		MaxDiscountAmount: c.MaxDiscountAmount,
		ValidFrom:         c.ValidFrom,
		ValidUntil:        c.ValidUntil,
		IsActive:          c.IsActive,
		UsageLimit:        c.UsageLimit,
		UsedCount:         c.UsedCount,
	}
}

func toGraphQLCoupons(cs []coupon.Coupon) []*model.Coupon {
	list := make([]*model.Coupon, 0, len(cs))
	for i := range cs {
		list = append(list, toGraphQLCoupon(&cs[i]))
	}
	return list
}

func toCouponInput(in model.CouponInput) coupon.Input {
	return coupon.Input{
		Name:              in.Name,
		Description:       in.Description,
		DiscountType:      coupon.DiscountType(strings.ToLower(string(in.DiscountType))),
		DiscountValue:     in.DiscountValue,
		MinOrderAmount:    in.MinOrderAmount,
		MaxDiscountAmount: in.MaxDiscountAmount,
		ValidFrom:         in.ValidFrom,
		ValidUntil:        in.ValidUntil,
		IsActive:          in.IsActive,
		UsageLimit:        in.UsageLimit,
	}
}

// AvailableCoupons lists coupons usable now. With storeId it returns that
// store's coupons plus global ones.
func (r *queryResolver) AvailableCoupons(ctx context.Context, storeID *string) ([]*model.Coupon, error) {
	cs, err := r.CouponSvc.ListAvailable(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return toGraphQLCoupons(cs), nil
}

func (r *queryResolver) StoreCoupons(ctx context.Context) ([]*model.Coupon, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	cs, err := r.CouponSvc.ListByStore(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	return toGraphQLCoupons(cs), nil
}

func (r *mutationResolver) CreateCoupon(ctx context.Context, input model.CouponInput) (*model.Coupon, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CouponSvc.Create(ctx, st.ID, toCouponInput(input))
	if err != nil {
		return nil, err
	}
	return toGraphQLCoupon(c), nil
}

func (r *mutationResolver) UpdateCoupon(ctx context.Context, id string, input model.CouponInput) (*model.Coupon, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return nil, err
	}

	c, err := r.CouponSvc.Update(ctx, st.ID, id, toCouponInput(input))
	if err != nil {
		return nil, err
	}
	return toGraphQLCoupon(c), nil
}

func (r *mutationResolver) DeleteCoupon(ctx context.Context, id string) (bool, error) {
	st, err := r.ownerStore(ctx)
	if err != nil {
		return false, err
	}

	if err := r.CouponSvc.Delete(ctx, st.ID, id); err != nil {
		return false, err
	}
	return true, nil
}
