package graph

import (
	"context"
	"fmt"
	"strings"

	"storefront-be/internal/graph/model"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"
)

// --- MAPPER HELPERS ---

func toGraphQLOrderItem(it order.Item) *model.OrderItem {
	return &model.OrderItem{
		ID:        it.ID,
		ProductID: it.ProductID,
		Name:      it.Name,
		UnitPrice: it.UnitPrice,
		Quantity:  it.Quantity,
		Subtotal:  it.Subtotal,
	}
}

func toGraphQLOrder(o *order.Order) *model.Order {
	if o == nil {
		return nil
	}

	items := make([]*model.OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, toGraphQLOrderItem(it))
	}

	return &model.Order{
		ID:             o.ID,
		CustomerID:     o.CustomerID,
		StoreID:        o.StoreID,
		Items:          items,
		TotalAmount:    o.TotalAmount,
		DiscountAmount: o.DiscountAmount,
		FinalAmount:    o.FinalAmount,
		CouponID:       o.CouponID,
		Status:         model.OrderStatus(strings.ToUpper(string(o.Status))),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func toGraphQLOrders(os []order.Order) []*model.Order {
	list := make([]*model.Order, 0, len(os))
	for i := range os {
		list = append(list, toGraphQLOrder(&os[i]))
	}
	return list
}

func toDomainStatus(s model.OrderStatus) order.Status {
	return order.Status(strings.ToLower(string(s)))
}

// toListFilter converts the GraphQL filter. Dates accept RFC3339 or
// YYYY-MM-DD; storeId is dropped unless keepStore is set.
func toListFilter(f model.OrderFilter, keepStore bool) (order.ListFilter, error) {
	var out order.ListFilter

	if f.Status != nil {
		status := toDomainStatus(*f.Status)
		out.Status = &status
	}

	from, err := utils.ParseOptionalTime(utils.PtrString(f.From))
	if err != nil {
		return out, fmt.Errorf("%w: from must be RFC3339 or YYYY-MM-DD", errBadInput)
	}
	to, err := utils.ParseOptionalTime(utils.PtrString(f.To))
	if err != nil {
		return out, fmt.Errorf("%w: to must be RFC3339 or YYYY-MM-DD", errBadInput)
	}
	out.From, out.To = from, to

	if f.Limit != nil {
		out.Limit = *f.Limit
	}
	if f.Offset != nil {
		out.Offset = *f.Offset
	}
	if keepStore && f.StoreID != nil {
		out.StoreID = f.StoreID
	}
	return out, nil
}

// --- QUERIES ---

func (r *queryResolver) MyOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	f, err := toListFilter(filter, false)
	if err != nil {
		return nil, err
	}

	orders, err := r.OrderSvc.ListForCustomer(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrders(orders), nil
}

// Order returns one order to its customer, the owning store or an admin.
func (r *queryResolver) Order(ctx context.Context, id string) (*model.Order, error) {
	o, err := r.OrderSvc.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrder(o), nil
}

func (r *queryResolver) StoreOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	f, err := toListFilter(filter, false)
	if err != nil {
		return nil, err
	}

	orders, err := r.OrderSvc.ListForOwner(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrders(orders), nil
}

func (r *queryResolver) AdminOrders(ctx context.Context, filter model.OrderFilter) ([]*model.Order, error) {
	f, err := toListFilter(filter, true)
	if err != nil {
		return nil, err
	}

	orders, err := r.OrderSvc.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return toGraphQLOrders(orders), nil
}

// --- MUTATIONS ---

// UpdateOrderStatus moves an order of the caller's store along the status
// machine. Cancelling returns stock and coupon use.
func (r *mutationResolver) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (*model.Order, error) {
	userID, err := currentUserID(ctx)
	if err != nil {
		return nil, err
	}

	o, err := r.OrderSvc.UpdateStatus(ctx, userID, orderID, toDomainStatus(status))
	if err != nil {
		return nil, err
	}
	return toGraphQLOrder(o), nil
}
